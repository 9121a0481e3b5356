package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/foodgram-project/foodgram-server/internal/domain"
)

// --- in-memory fakes shared by the usecase tests ---

type mockCatalogRepo struct {
	tags        map[int64]domain.Tag
	ingredients map[int64]domain.Ingredient
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		tags: map[int64]domain.Tag{
			1: {ID: 1, Name: "breakfast", Color: "#ff0000", Slug: "breakfast"},
			2: {ID: 2, Name: "dinner", Color: "#00ff00", Slug: "dinner"},
		},
		ingredients: map[int64]domain.Ingredient{
			5: {ID: 5, Name: "flour", MeasurementUnit: "g"},
			6: {ID: 6, Name: "sugar", MeasurementUnit: "g"},
		},
	}
}

func (m *mockCatalogRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	result := make([]domain.Tag, 0, len(m.tags))
	for _, tag := range m.tags {
		result = append(result, tag)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCatalogRepo) GetTag(ctx context.Context, id int64) (domain.Tag, error) {
	tag, ok := m.tags[id]
	if !ok {
		return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
	}
	return tag, nil
}

func (m *mockCatalogRepo) GetTagsByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	result := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := m.GetTag(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, nil
}

func (m *mockCatalogRepo) ListIngredients(ctx context.Context, search string) ([]domain.Ingredient, error) {
	result := make([]domain.Ingredient, 0, len(m.ingredients))
	for _, ingredient := range m.ingredients {
		if search == "" || strings.HasPrefix(ingredient.Name, search) {
			result = append(result, ingredient)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCatalogRepo) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	ingredient, ok := m.ingredients[id]
	if !ok {
		return domain.Ingredient{}, domain.NotFoundError{Resource: "ingredient"}
	}
	return ingredient, nil
}

func (m *mockCatalogRepo) GetIngredientsByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	result := make([]domain.Ingredient, 0, len(ids))
	for _, id := range ids {
		ingredient, err := m.GetIngredient(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, ingredient)
	}
	return result, nil
}

type mockRecipeRepo struct {
	catalog     *mockCatalogRepo
	recipes     map[int64]domain.Recipe
	tags        map[int64][]int64
	ingredients map[int64][]domain.IngredientAmount
	nextID      int64
	writes      int
}

func newMockRecipeRepo(catalog *mockCatalogRepo) *mockRecipeRepo {
	return &mockRecipeRepo{
		catalog:     catalog,
		recipes:     map[int64]domain.Recipe{},
		tags:        map[int64][]int64{},
		ingredients: map[int64][]domain.IngredientAmount{},
	}
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error) {
	m.writes++
	for _, existing := range m.recipes {
		if existing.Name == recipe.Name {
			return domain.Recipe{}, domain.ConflictError{Message: "recipe name already exists"}
		}
	}
	m.nextID++
	recipe.ID = m.nextID
	m.recipes[recipe.ID] = recipe
	m.tags[recipe.ID] = append([]int64{}, tagIDs...)
	m.ingredients[recipe.ID] = append([]domain.IngredientAmount{}, ingredients...)
	return recipe, nil
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe domain.Recipe, tagIDs []int64, ingredients []domain.IngredientAmount) (domain.Recipe, error) {
	m.writes++
	existing, ok := m.recipes[recipe.ID]
	if !ok {
		return domain.Recipe{}, domain.NotFoundError{Resource: "recipe"}
	}
	recipe.AuthorID = existing.AuthorID
	recipe.Created = existing.Created
	m.recipes[recipe.ID] = recipe
	m.tags[recipe.ID] = append([]int64{}, tagIDs...)
	m.ingredients[recipe.ID] = append([]domain.IngredientAmount{}, ingredients...)
	return recipe, nil
}

func (m *mockRecipeRepo) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	recipe, ok := m.recipes[id]
	if !ok {
		return domain.Recipe{}, domain.NotFoundError{Resource: "recipe"}
	}
	return recipe, nil
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.recipes[id]; !ok {
		return domain.NotFoundError{Resource: "recipe"}
	}
	delete(m.recipes, id)
	delete(m.tags, id)
	delete(m.ingredients, id)
	return nil
}

func (m *mockRecipeRepo) List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	result := make([]domain.Recipe, 0, len(m.recipes))
	for _, recipe := range m.recipes {
		result = append(result, recipe)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockRecipeRepo) TagsOf(ctx context.Context, recipeID int64) ([]domain.Tag, error) {
	ids := append([]int64{}, m.tags[recipeID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return m.catalog.GetTagsByIDs(ctx, ids)
}

func (m *mockRecipeRepo) IngredientsOf(ctx context.Context, recipeID int64) ([]domain.IngredientView, error) {
	entries := append([]domain.IngredientAmount{}, m.ingredients[recipeID]...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].IngredientID < entries[j].IngredientID })
	result := make([]domain.IngredientView, 0, len(entries))
	for _, entry := range entries {
		ingredient, err := m.catalog.GetIngredient(ctx, entry.IngredientID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.IngredientView{Ingredient: ingredient, Amount: entry.Amount})
	}
	return result, nil
}

func (m *mockRecipeRepo) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	result := []domain.Recipe{}
	for _, recipe := range m.recipes {
		if recipe.AuthorID == authorID {
			result = append(result, recipe)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRecipeRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	for _, recipe := range m.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

type pair struct{ a, b int64 }

type mockRelationRepo struct {
	favorites map[pair]bool
	cart      map[pair]bool
	list      []domain.ShoppingListItem
	queries   int
}

func newMockRelationRepo() *mockRelationRepo {
	return &mockRelationRepo{
		favorites: map[pair]bool{},
		cart:      map[pair]bool{},
	}
}

func (m *mockRelationRepo) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	key := pair{userID, recipeID}
	if m.favorites[key] {
		return domain.ConflictError{Message: "recipe already in favorites"}
	}
	m.favorites[key] = true
	return nil
}

func (m *mockRelationRepo) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	key := pair{userID, recipeID}
	if !m.favorites[key] {
		return domain.NotFoundError{Resource: "favorite"}
	}
	delete(m.favorites, key)
	return nil
}

func (m *mockRelationRepo) AddCart(ctx context.Context, userID, recipeID int64) error {
	key := pair{userID, recipeID}
	if m.cart[key] {
		return domain.ConflictError{Message: "recipe already in shopping cart"}
	}
	m.cart[key] = true
	return nil
}

func (m *mockRelationRepo) RemoveCart(ctx context.Context, userID, recipeID int64) error {
	key := pair{userID, recipeID}
	if !m.cart[key] {
		return domain.NotFoundError{Resource: "shopping cart entry"}
	}
	delete(m.cart, key)
	return nil
}

func (m *mockRelationRepo) FavoritedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	m.queries++
	result := map[int64]bool{}
	for _, id := range recipeIDs {
		if m.favorites[pair{userID, id}] {
			result[id] = true
		}
	}
	return result, nil
}

func (m *mockRelationRepo) CartSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	m.queries++
	result := map[int64]bool{}
	for _, id := range recipeIDs {
		if m.cart[pair{userID, id}] {
			result[id] = true
		}
	}
	return result, nil
}

func (m *mockRelationRepo) ShoppingList(ctx context.Context, userID int64) ([]domain.ShoppingListItem, error) {
	return m.list, nil
}

type mockSubscriptionRepo struct {
	pairs   map[pair]bool
	queries int
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{pairs: map[pair]bool{}}
}

func (m *mockSubscriptionRepo) Add(ctx context.Context, subscriberID, targetID int64) error {
	key := pair{subscriberID, targetID}
	if m.pairs[key] {
		return domain.ConflictError{Message: "subscription already exists"}
	}
	m.pairs[key] = true
	return nil
}

func (m *mockSubscriptionRepo) Remove(ctx context.Context, subscriberID, targetID int64) error {
	key := pair{subscriberID, targetID}
	if !m.pairs[key] {
		return domain.NotFoundError{Resource: "subscription"}
	}
	delete(m.pairs, key)
	return nil
}

func (m *mockSubscriptionRepo) SubscribedSet(ctx context.Context, subscriberID int64, targetIDs []int64) (map[int64]bool, error) {
	m.queries++
	result := map[int64]bool{}
	for _, id := range targetIDs {
		if m.pairs[pair{subscriberID, id}] {
			result[id] = true
		}
	}
	return result, nil
}

func (m *mockSubscriptionRepo) Targets(ctx context.Context, subscriberID int64) ([]int64, error) {
	targets := []int64{}
	for key := range m.pairs {
		if key.a == subscriberID {
			targets = append(targets, key.b)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets, nil
}

type mockUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[int64]domain.User{}}
}

func (m *mockUserRepo) add(user domain.User) domain.User {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return domain.User{}, domain.ConflictError{Message: "email or username already taken"}
		}
	}
	return m.add(user), nil
}

func (m *mockUserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	result := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		user, err := m.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, nil
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	result := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type mockImageStore struct {
	saved int
}

func (m *mockImageStore) Save(dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", domain.ValidationError{Message: "image must be a base64 data URI"}
	}
	m.saved++
	return "/media/test.png", nil
}

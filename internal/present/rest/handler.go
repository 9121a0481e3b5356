package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foodgram-project/foodgram-server/internal/domain"
	"github.com/foodgram-project/foodgram-server/internal/present/rest/presenter"
	"github.com/foodgram-project/foodgram-server/internal/service"
	"github.com/foodgram-project/foodgram-server/internal/usecase"
)

type Handler struct {
	catalog       *usecase.CatalogUsecase
	recipe        *usecase.RecipeUsecase
	relation      *usecase.RelationUsecase
	shoppingList  *usecase.ShoppingListUsecase
	subscriptions *usecase.SubscriptionUsecase
	user          *usecase.UserUsecase
	auth          *service.AuthService
}

func NewHandler(
	catalog *usecase.CatalogUsecase,
	recipe *usecase.RecipeUsecase,
	relation *usecase.RelationUsecase,
	shoppingList *usecase.ShoppingListUsecase,
	subscriptions *usecase.SubscriptionUsecase,
	user *usecase.UserUsecase,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		catalog:       catalog,
		recipe:        recipe,
		relation:      relation,
		shoppingList:  shoppingList,
		subscriptions: subscriptions,
		user:          user,
		auth:          auth,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/tags", h.handleListTags)
	api.GET("/tags/:id", h.handleGetTag)
	api.GET("/ingredients", h.handleListIngredients)
	api.GET("/ingredients/:id", h.handleGetIngredient)

	api.GET("/recipes", h.handleListRecipes)
	api.POST("/recipes", h.handleCreateRecipe)
	api.GET("/recipes/download_shopping_cart", h.handleDownloadShoppingCart)
	api.GET("/recipes/:id", h.handleGetRecipe)
	api.PUT("/recipes/:id", h.handleUpdateRecipe)
	api.DELETE("/recipes/:id", h.handleDeleteRecipe)
	api.GET("/recipes/:id/favorite", h.handleAddFavorite)
	api.DELETE("/recipes/:id/favorite", h.handleRemoveFavorite)
	api.GET("/recipes/:id/shopping_cart", h.handleAddCart)
	api.DELETE("/recipes/:id/shopping_cart", h.handleRemoveCart)

	api.POST("/users", h.handleRegister)
	api.GET("/users", h.handleListUsers)
	api.GET("/users/me", h.handleMe)
	api.GET("/users/subscriptions", h.handleSubscriptions)
	api.GET("/users/:id", h.handleGetUser)
	api.GET("/users/:id/subscribe", h.handleSubscribe)
	api.DELETE("/users/:id/subscribe", h.handleUnsubscribe)

	api.POST("/auth/token/login", h.handleLogin)
	api.POST("/auth/token/logout", h.handleLogout)
}

// viewerFrom returns the authenticated user, if the auth middleware
// resolved one.
func viewerFrom(c echo.Context) (domain.User, bool) {
	value := c.Request().Context().Value(domain.ViewerCtxKey)
	user, ok := value.(domain.User)
	return user, ok
}

// viewerIDFrom returns the viewer id to thread into read calls; nil
// marks an anonymous viewer.
func viewerIDFrom(c echo.Context) *int64 {
	user, ok := viewerFrom(c)
	if !ok {
		return nil
	}
	return &user.ID
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Message: "invalid id parameter"}
	}
	return id, nil
}

// --- catalog ---

func (h *Handler) handleListTags(c echo.Context) error {
	ctx := c.Request().Context()

	tags, err := h.catalog.ListTags(ctx)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, tags)
}

func (h *Handler) handleGetTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	tag, err := h.catalog.GetTag(ctx, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, tag)
}

func (h *Handler) handleListIngredients(c echo.Context) error {
	ctx := c.Request().Context()

	ingredients, err := h.catalog.ListIngredients(ctx, c.QueryParam("search"))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, ingredients)
}

func (h *Handler) handleGetIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	ingredient, err := h.catalog.GetIngredient(ctx, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, ingredient)
}

// --- recipes ---

type ingredientEntry struct {
	ID     *int64 `json:"id"`
	Amount *int   `json:"amount"`
}

type recipeRequest struct {
	Name        string            `json:"name"`
	Text        string            `json:"text"`
	CookingTime int               `json:"cooking_time"`
	Image       string            `json:"image"`
	Tags        []int64           `json:"tags"`
	Ingredients []ingredientEntry `json:"ingredients"`
}

func (r recipeRequest) toInput() (usecase.RecipeInput, error) {
	ingredients := make([]domain.IngredientAmount, 0, len(r.Ingredients))
	for _, entry := range r.Ingredients {
		if entry.ID == nil {
			return usecase.RecipeInput{}, domain.ValidationError{Message: "'id' parameter is required"}
		}
		if entry.Amount == nil {
			return usecase.RecipeInput{}, domain.ValidationError{Message: "'amount' parameter is required"}
		}
		ingredients = append(ingredients, domain.IngredientAmount{
			IngredientID: *entry.ID,
			Amount:       *entry.Amount,
		})
	}
	return usecase.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       r.Image,
		TagIDs:      r.Tags,
		Ingredients: ingredients,
	}, nil
}

func (h *Handler) handleListRecipes(c echo.Context) error {
	ctx := c.Request().Context()
	viewerID := viewerIDFrom(c)

	var filter domain.RecipeFilter

	if author := c.QueryParam("author"); author != "" {
		authorID, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid author parameter")
		}
		filter.AuthorID = &authorID
	}
	filter.TagSlugs = c.QueryParams()["tags"]

	// Membership filters only make sense for an authenticated viewer;
	// anonymous requests ignore them, the way the original filter does.
	if isSet(c.QueryParam("is_favorited")) && viewerID != nil {
		filter.FavoritedBy = viewerID
	}
	if isSet(c.QueryParam("is_in_shopping_cart")) && viewerID != nil {
		filter.InCartOf = viewerID
	}

	page := 1
	if pageStr := c.QueryParam("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			return presenter.BadRequestMessage(c, "invalid page parameter")
		}
		page = parsed
	}
	limit := 6
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = parsed
	}
	if limit > 100 {
		limit = 100
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	views, err := h.recipe.List(ctx, filter, viewerID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, views)
}

func isSet(value string) bool {
	return value == "1" || value == "true"
}

func (h *Handler) handleGetRecipe(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	view, err := h.recipe.Get(ctx, id, viewerIDFrom(c))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, view)
}

func (h *Handler) handleCreateRecipe(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	input, err := req.toInput()
	if err != nil {
		return presenter.FromError(c, err)
	}

	view, err := h.recipe.Create(ctx, viewer, input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, view)
}

func (h *Handler) handleUpdateRecipe(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	input, err := req.toInput()
	if err != nil {
		return presenter.FromError(c, err)
	}

	view, err := h.recipe.Update(ctx, id, viewer, input)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, view)
}

func (h *Handler) handleDeleteRecipe(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	if err := h.recipe.Delete(ctx, id, viewer); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.NoContent(c)
}

// --- favorites and shopping cart ---

func (h *Handler) handleAddFavorite(c echo.Context) error {
	return h.handleAddRelation(c, h.relation.AddFavorite)
}

func (h *Handler) handleRemoveFavorite(c echo.Context) error {
	return h.handleRemoveRelation(c, h.relation.RemoveFavorite)
}

func (h *Handler) handleAddCart(c echo.Context) error {
	return h.handleAddRelation(c, h.relation.AddCart)
}

func (h *Handler) handleRemoveCart(c echo.Context) error {
	return h.handleRemoveRelation(c, h.relation.RemoveCart)
}

func (h *Handler) handleAddRelation(c echo.Context, add func(ctx context.Context, userID, recipeID int64) (domain.ShortRecipeView, error)) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	view, err := add(ctx, viewer.ID, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, view)
}

func (h *Handler) handleRemoveRelation(c echo.Context, remove func(ctx context.Context, userID, recipeID int64) error) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	if err := remove(ctx, viewer.ID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.NoContent(c)
}

func (h *Handler) handleDownloadShoppingCart(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	items, err := h.shoppingList.Build(ctx, viewer.ID)
	if err != nil {
		return presenter.FromError(c, err)
	}

	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", usecase.ShoppingListFileName),
	)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(h.shoppingList.Render(items)))
}

// --- users and subscriptions ---

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	view, err := h.user.Register(ctx, req)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, view)
}

func (h *Handler) handleListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = parsed
	}

	views, err := h.user.List(ctx, viewerIDFrom(c), limit, 0)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleGetUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}
	view, err := h.user.Get(ctx, id, viewerIDFrom(c))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, view)
}

func (h *Handler) handleMe(c echo.Context) error {
	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	return presenter.OK(c, viewer.View(false))
}

func (h *Handler) handleSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	var recipesLimit *int
	if limitStr := c.QueryParam("recipes_limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "parameter 'recipes_limit' expected a int type")
		}
		recipesLimit = &parsed
	}

	views, err := h.subscriptions.List(ctx, viewer.ID, recipesLimit)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, views)
}

func (h *Handler) handleSubscribe(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	view, err := h.subscriptions.Subscribe(ctx, viewer.ID, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.Created(c, view)
}

func (h *Handler) handleUnsubscribe(c echo.Context) error {
	ctx := c.Request().Context()

	viewer, ok := viewerFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}
	id, err := paramID(c)
	if err != nil {
		return presenter.FromError(c, err)
	}

	if err := h.subscriptions.Unsubscribe(ctx, viewer.ID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.NoContent(c)
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.OK(c, echo.Map{"auth_token": token})
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	token, ok := ctx.Value(domain.TokenCtxKey).(string)
	if !ok {
		return presenter.Unauthorized(c, "authentication required")
	}

	if err := h.auth.Logout(ctx, token); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.NoContent(c)
}

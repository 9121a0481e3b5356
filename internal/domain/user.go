package domain

// User is an account that authors recipes and owns the per-user
// relation sets (favorites, shopping cart, subscriptions).
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsStaff      bool
}

// UserView is the base user representation. IsSubscribed is computed
// against the viewing user and is always false for anonymous viewers.
type UserView struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SubscriptionView extends UserView with the target's authored recipes
// and their total count. Recipes may be truncated by a limit while
// RecipesCount always reflects the full total.
type SubscriptionView struct {
	UserView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// View renders the base representation of a user for a viewer-computed
// subscription flag.
func (u User) View(isSubscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

package models

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Username     string `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	FirstName    string `json:"firstName" gorm:"type:varchar(150)"`
	LastName     string `json:"lastName" gorm:"type:varchar(150)"`
	PasswordHash string `json:"-" gorm:"type:varchar(128);not null"`
	IsStaff      bool   `json:"isStaff" gorm:"not null;default:false"`
}

type FavoriteRecipe struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64  `json:"recipeID" gorm:"not null;uniqueIndex:favorite_recipe_user_exists"`
	Recipe   Recipe `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UserID   int64  `json:"userID" gorm:"not null;uniqueIndex:favorite_recipe_user_exists"`
	User     User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type RecipeShoppingCart struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64  `json:"recipeID" gorm:"not null;uniqueIndex:cart_recipe_user_exists"`
	Recipe   Recipe `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UserID   int64  `json:"userID" gorm:"not null;uniqueIndex:cart_recipe_user_exists"`
	User     User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type Subscription struct {
	ID           int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	SubscriberID int64 `json:"subscriberID" gorm:"not null;uniqueIndex:subscription_exists"`
	Subscriber   User  `json:"-" gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE;"`
	TargetID     int64 `json:"targetID" gorm:"not null;uniqueIndex:subscription_exists"`
	Target       User  `json:"-" gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE;"`
}

package models

import (
	"time"
)

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID    int64     `json:"authorID" gorm:"index;not null"`
	Author      User      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Name        string    `json:"name" gorm:"type:varchar(200);uniqueIndex;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cookingTime" gorm:"not null"`
	Image       string    `json:"image" gorm:"type:text;not null"`
	// Created is assigned once by the repository at insert time and
	// excluded from updates, so it stays portable across dialects.
	Created time.Time `json:"created" gorm:"index;not null"`
}

type RecipeTag struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID int64  `json:"recipeID" gorm:"not null;uniqueIndex:recipe_tag_exists"`
	Recipe   Recipe `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	TagID    int64  `json:"tagID" gorm:"not null;uniqueIndex:recipe_tag_exists"`
	Tag      Tag    `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type RecipeIngredient struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	RecipeID     int64      `json:"recipeID" gorm:"not null;uniqueIndex:recipe_ingredient_exists"`
	Recipe       Recipe     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	IngredientID int64      `json:"ingredientID" gorm:"not null;uniqueIndex:recipe_ingredient_exists"`
	Ingredient   Ingredient `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Amount       int        `json:"amount" gorm:"not null"`
}

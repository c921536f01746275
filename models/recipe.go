package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the storage and wire format of every calendar date
const DateLayout = "2006-01-02"

// GenerationStatus represents the lifecycle of one generation run
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// RecipeGeneration scopes the recipes written by one generation call
type RecipeGeneration struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	StartDate    string           `json:"start_date" gorm:"size:10;not null"`
	EndDate      string           `json:"end_date" gorm:"size:10;not null"`
	GeneratedAt  time.Time        `json:"generation_date" gorm:"autoCreateTime"`
	Status       GenerationStatus `json:"status" gorm:"not null;default:'pending'"`
	TotalRecipes int              `json:"total_recipes" gorm:"default:0"`
	Notes        string           `json:"notes"`
}

// Recipe is the dish served at a campus for one date and meal slot.
// (CampusID, Date, MealSlot) is unique; writes to an existing triple update it.
type Recipe struct {
	ID                   uint                                     `json:"id" gorm:"primaryKey"`
	CampusID             uint                                     `json:"campus_id" gorm:"not null;uniqueIndex:idx_recipe_slot"`
	Campus               *Campus                                  `json:"campus,omitempty" gorm:"foreignKey:CampusID"`
	DishID               uint                                     `json:"dish_id" gorm:"not null;index"`
	Dish                 *Dish                                    `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Date                 string                                   `json:"date" gorm:"size:10;not null;uniqueIndex:idx_recipe_slot"`
	MealSlot             MealSlot                                 `json:"meal_type" gorm:"not null;uniqueIndex:idx_recipe_slot"`
	GenerationID         uint                                     `json:"generation_id" gorm:"index"`
	Servings             int                                      `json:"servings" gorm:"default:100"`
	IngredientQuantities datatypes.JSONType[IngredientQuantities] `json:"ingredient_quantities"`
	Ingredients          []RecipeIngredient                       `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID"`
	CreatedAt            time.Time                                `json:"created_at"`
	UpdatedAt            time.Time                                `json:"updated_at"`
}

// RecipeIngredient materializes a recipe's quantities for aggregation
type RecipeIngredient struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RecipeID     uint        `json:"recipe_id" gorm:"not null;index"`
	IngredientID uint        `json:"ingredient_id" gorm:"not null;index"`
	Ingredient   *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`
	Quantity     float64     `json:"quantity" gorm:"not null"`
	Unit         string      `json:"unit" gorm:"not null"`
}

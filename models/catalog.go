package models

import (
	"time"

	"gorm.io/datatypes"
)

type Campus struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity" gorm:"default:100"` // informational only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the inflector, which treats "campus" as uncountable
func (Campus) TableName() string { return "campuses" }

type Ingredient struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	Name           string             `json:"name" gorm:"uniqueIndex;not null"`
	Category       IngredientCategory `json:"category" gorm:"not null;index"`
	Unit           string             `json:"unit" gorm:"not null;default:'g'"`
	CaloriesPer100 float64            `json:"calories_per_100g" gorm:"column:calories_per_100g;default:0"`
	CreatedAt      time.Time          `json:"created_at"`
}

// DishCategory ties dishes to exactly one meal slot
type DishCategory struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"uniqueIndex;not null"`
	MealSlot MealSlot `json:"type" gorm:"not null;index"`
}

// Nutrition is an estimate per serving
type Nutrition struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
}

type Dish struct {
	ID            uint                                    `json:"id" gorm:"primaryKey"`
	Name          string                                  `json:"name" gorm:"not null;index"`
	CategoryID    uint                                    `json:"category_id" gorm:"not null;index"`
	Category      *DishCategory                           `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Description   string                                  `json:"description"`
	Ingredients   datatypes.JSONType[DeclaredIngredients] `json:"ingredients"`
	NutritionInfo datatypes.JSONType[Nutrition]           `json:"nutrition_info"`
	Active        bool                                    `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time                               `json:"created_at"`
}

// MealSlot returns the slot of the preloaded category, or "" when it was not loaded.
func (d *Dish) MealSlot() MealSlot {
	if d.Category == nil {
		return ""
	}
	return d.Category.MealSlot
}

package models

// MealSlot is one of the five daily meal periods served at every campus
type MealSlot string

const (
	SlotBreakfast      MealSlot = "早餐"
	SlotMorningSnack   MealSlot = "上午加餐"
	SlotLunch          MealSlot = "午餐"
	SlotAfternoonSnack MealSlot = "下午加餐"
	SlotAfternoonTea   MealSlot = "午点"
)

// MealSlots lists the slots in serving order. Generation walks them in this order.
var MealSlots = []MealSlot{
	SlotBreakfast,
	SlotMorningSnack,
	SlotLunch,
	SlotAfternoonSnack,
	SlotAfternoonTea,
}

func (s MealSlot) Valid() bool {
	for _, m := range MealSlots {
		if s == m {
			return true
		}
	}
	return false
}

// IngredientCategory is the closed set of procurement categories
type IngredientCategory string

const (
	CategoryGrains     IngredientCategory = "grains"
	CategoryVegetables IngredientCategory = "vegetables"
	CategoryMeat       IngredientCategory = "meat"
	CategorySeafood    IngredientCategory = "seafood"
	CategoryFruits     IngredientCategory = "fruits"
	CategoryDairy      IngredientCategory = "dairy"
	CategorySeasonings IngredientCategory = "seasonings"
	CategoryOther      IngredientCategory = "other"
)

var IngredientCategories = []IngredientCategory{
	CategoryGrains,
	CategoryVegetables,
	CategoryMeat,
	CategorySeafood,
	CategoryFruits,
	CategoryDairy,
	CategorySeasonings,
	CategoryOther,
}

// TrackedCategories are precomputed into the statistics cache after every generation
var TrackedCategories = []IngredientCategory{
	CategoryGrains,
	CategoryFruits,
	CategoryMeat,
	CategorySeafood,
}

func (c IngredientCategory) Valid() bool {
	for _, ic := range IngredientCategories {
		if c == ic {
			return true
		}
	}
	return false
}

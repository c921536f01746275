package models

import "time"

// NoUsageIngredient labels the placeholder row of a campus with no usage in a category
const NoUsageIngredient = "无相关食材"

// StatisticsCacheEntry is a per-campus category total for one generation.
// It is derived data and may be dropped and recomputed at any time.
type StatisticsCacheEntry struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	GenerationID       uint               `json:"generation_id" gorm:"not null;uniqueIndex:idx_stats_key"`
	IngredientCategory IngredientCategory `json:"ingredient_category" gorm:"not null;uniqueIndex:idx_stats_key"`
	CampusID           uint               `json:"campus_id" gorm:"not null;uniqueIndex:idx_stats_key"`
	TotalQuantity      float64            `json:"total_quantity" gorm:"not null"`
	Unit               string             `json:"unit" gorm:"not null"`
	CalculatedAt       time.Time          `json:"calculated_at"`
}

func (StatisticsCacheEntry) TableName() string { return "statistics_cache" }

// IngredientUsage is one aggregated row: a campus's total of one ingredient
type IngredientUsage struct {
	CampusID       uint               `json:"campus_id"`
	CampusName     string             `json:"campus_name"`
	IngredientName string             `json:"ingredient_name"`
	Category       IngredientCategory `json:"category"`
	Unit           string             `json:"unit"`
	TotalQuantity  float64            `json:"total_quantity"`
}

// IsPlaceholder reports whether the row stands in for "no usage".
func (u IngredientUsage) IsPlaceholder() bool {
	return u.TotalQuantity == 0 && u.IngredientName == NoUsageIngredient
}

// CategorySummary is the grand total of one category across campuses
type CategorySummary struct {
	IngredientCategory IngredientCategory `json:"ingredient_category"`
	GrandTotal         float64            `json:"grand_total"`
	Unit               string             `json:"unit"`
	CampusCount        int                `json:"campus_count"`
	Display            string             `json:"display" gorm:"-"`
}

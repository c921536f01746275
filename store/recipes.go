package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"venus-recipe/apperrors"
	"venus-recipe/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeStore holds generations, recipes, their materialized ingredients
// and the statistics cache table.
type RecipeStore struct {
	db *gorm.DB
}

func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// RecipeFilter narrows ListRecipes; zero values match everything
type RecipeFilter struct {
	CampusID     uint
	GenerationID uint
	StartDate    string
	EndDate      string
	MealSlot     models.MealSlot
}

// slotOrder sorts rows by serving order instead of by slot name
func slotOrder(column string) string {
	var b strings.Builder
	b.WriteString("CASE " + column)
	for i, s := range models.MealSlots {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, i)
	}
	b.WriteString(" ELSE 99 END")
	return b.String()
}

// ── Generations ─────────────────────────────────────────────────────────────

func (s *RecipeStore) CreateGeneration(ctx context.Context, g *models.RecipeGeneration) error {
	if g.Status == "" {
		g.Status = models.GenerationPending
	}
	return translate(s.db.WithContext(ctx).Create(g).Error, "generation", g.StartDate)
}

func (s *RecipeStore) GetGeneration(ctx context.Context, id uint) (*models.RecipeGeneration, error) {
	var g models.RecipeGeneration
	if err := s.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err, "generation", id)
	}
	return &g, nil
}

func (s *RecipeStore) ListGenerations(ctx context.Context) ([]models.RecipeGeneration, error) {
	var gens []models.RecipeGeneration
	if err := s.db.WithContext(ctx).Order("generated_at DESC, id DESC").Find(&gens).Error; err != nil {
		return nil, translate(err, "generation", nil)
	}
	return gens, nil
}

// SetGenerationStatus records the outcome of a run. Transition rules are checked by the caller.
func (s *RecipeStore) SetGenerationStatus(ctx context.Context, id uint, status models.GenerationStatus, totalRecipes int) error {
	result := s.db.WithContext(ctx).Model(&models.RecipeGeneration{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "total_recipes": totalRecipes})
	if result.Error != nil {
		return translate(result.Error, "generation", id)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("generation", id)
	}
	return nil
}

// LatestGenerationWithStatistics returns the newest completed generation that
// has at least one statistics cache row.
func (s *RecipeStore) LatestGenerationWithStatistics(ctx context.Context) (*models.RecipeGeneration, error) {
	var g models.RecipeGeneration
	err := s.db.WithContext(ctx).
		Where("status = ?", models.GenerationCompleted).
		Where("EXISTS (SELECT 1 FROM statistics_cache sc WHERE sc.generation_id = recipe_generations.id)").
		Order("generated_at DESC, id DESC").
		First(&g).Error
	if err != nil {
		return nil, translate(err, "generation", "latest")
	}
	return &g, nil
}

// ── Recipes ─────────────────────────────────────────────────────────────────

// UpsertRecipe inserts the recipe, or overwrites the one already stored for
// the same campus, date and meal slot. Its ingredient rows are rebuilt. When
// the overwritten row belonged to another generation, that generation's id is
// returned so its statistics can be refreshed.
func (s *RecipeStore) UpsertRecipe(ctx context.Context, recipe *models.Recipe) (uint, error) {
	var displaced uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		err := tx.Where("campus_id = ? AND date = ? AND meal_slot = ?", recipe.CampusID, recipe.Date, recipe.MealSlot).
			Take(&existing).Error
		switch {
		case err == nil:
			recipe.ID = existing.ID
			recipe.CreatedAt = existing.CreatedAt
			if err := tx.Model(&existing).
				Select("dish_id", "generation_id", "servings", "ingredient_quantities").
				Updates(recipe).Error; err != nil {
				return err
			}
			if existing.GenerationID != 0 && existing.GenerationID != recipe.GenerationID {
				displaced = existing.GenerationID
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return rebuildIngredients(tx, recipe.ID, recipe.IngredientQuantities.Data())
	})
	if err != nil {
		return 0, translate(err, "recipe", recipe.ID)
	}
	return displaced, nil
}

// UpdateRecipe rewrites an existing recipe row and its ingredient rows
func (s *RecipeStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
			Select("dish_id", "date", "meal_slot", "servings", "ingredient_quantities").
			Updates(recipe)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return rebuildIngredients(tx, recipe.ID, recipe.IngredientQuantities.Data())
	})
	return translate(err, "recipe", recipe.ID)
}

// DeleteRecipe removes a recipe with its ingredient rows
func (s *RecipeStore) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "recipe", id)
}

// rebuildIngredients replaces the recipe's ingredient rows. Names missing from
// the ingredient catalog produce no row.
func rebuildIngredients(tx *gorm.DB, recipeID uint, quantities models.IngredientQuantities) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(quantities) == 0 {
		return nil
	}

	names := make([]string, 0, len(quantities))
	for name := range quantities {
		names = append(names, name)
	}
	sort.Strings(names)

	var catalog []models.Ingredient
	if err := tx.Where("name IN ?", names).Find(&catalog).Error; err != nil {
		return err
	}
	ids := make(map[string]uint, len(catalog))
	for _, ing := range catalog {
		ids[ing.Name] = ing.ID
	}

	rows := make([]models.RecipeIngredient, 0, len(names))
	for _, name := range names {
		id, ok := ids[name]
		if !ok {
			continue
		}
		q := quantities[name]
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: id,
			Quantity:     q.Quantity,
			Unit:         q.Unit,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (s *RecipeStore) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Campus").
		Preload("Dish.Category").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, translate(err, "recipe", id)
	}
	return &recipe, nil
}

// ListRecipes returns recipes ordered by date, campus and serving order
func (s *RecipeStore) ListRecipes(ctx context.Context, f RecipeFilter) ([]models.Recipe, error) {
	q := s.db.WithContext(ctx).Preload("Campus").Preload("Dish.Category")
	if f.CampusID != 0 {
		q = q.Where("campus_id = ?", f.CampusID)
	}
	if f.GenerationID != 0 {
		q = q.Where("generation_id = ?", f.GenerationID)
	}
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if f.MealSlot != "" {
		q = q.Where("meal_slot = ?", f.MealSlot)
	}

	var recipes []models.Recipe
	err := q.Order("date, campus_id, " + slotOrder("meal_slot") + ", id").Find(&recipes).Error
	if err != nil {
		return nil, translate(err, "recipe", nil)
	}
	return recipes, nil
}

// RecipeBySlot finds the recipe stored for one campus, date and slot
func (s *RecipeStore) RecipeBySlot(ctx context.Context, campusID uint, date string, slot models.MealSlot) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("campus_id = ? AND date = ? AND meal_slot = ?", campusID, date, slot).
		Take(&recipe).Error
	if err != nil {
		return nil, translate(err, "recipe", date+" "+string(slot))
	}
	return &recipe, nil
}

// UsedDishIDsInRange lists the distinct dishes a campus is served between two dates inclusive
func (s *RecipeStore) UsedDishIDsInRange(ctx context.Context, campusID uint, start, end string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("campus_id = ? AND date >= ? AND date <= ?", campusID, start, end).
		Distinct().
		Pluck("dish_id", &ids).Error
	if err != nil {
		return nil, translate(err, "recipe", campusID)
	}
	return ids, nil
}

// DishIDsOnDate lists the dishes a campus is served on one date
func (s *RecipeStore) DishIDsOnDate(ctx context.Context, campusID uint, date string) ([]uint, error) {
	return s.UsedDishIDsInRange(ctx, campusID, date, date)
}

// ── Statistics ──────────────────────────────────────────────────────────────

const usageQuery = `
SELECT c.id AS campus_id, c.name AS campus_name, i.name AS ingredient_name,
       i.category AS category, ri.unit AS unit, SUM(ri.quantity) AS total_quantity
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
JOIN recipes r ON r.id = ri.recipe_id
JOIN campuses c ON c.id = r.campus_id
WHERE r.generation_id = ? AND i.category = ?
GROUP BY c.id, c.name, i.name, i.category, ri.unit`

// IngredientUsage sums one category's quantities per campus and ingredient.
// Campuses without usage are absent; zero-filling is up to the caller.
func (s *RecipeStore) IngredientUsage(ctx context.Context, generationID uint, category models.IngredientCategory) ([]models.IngredientUsage, error) {
	var rows []models.IngredientUsage
	if err := s.db.WithContext(ctx).Raw(usageQuery, generationID, category).Scan(&rows).Error; err != nil {
		return nil, translate(err, "statistics", generationID)
	}
	return rows, nil
}

// UpsertStatistics writes cache rows keyed by generation, category and campus
func (s *RecipeStore) UpsertStatistics(ctx context.Context, entries []models.StatisticsCacheEntry) error {
	if len(entries) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "generation_id"},
			{Name: "ingredient_category"},
			{Name: "campus_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"total_quantity", "unit", "calculated_at"}),
	}).Create(&entries).Error
	return translate(err, "statistics", entries[0].GenerationID)
}

func (s *RecipeStore) ClearStatistics(ctx context.Context, generationID uint) error {
	err := s.db.WithContext(ctx).Where("generation_id = ?", generationID).Delete(&models.StatisticsCacheEntry{}).Error
	return translate(err, "statistics", generationID)
}

// StatisticsSummary totals the cache rows of a generation per category and unit
func (s *RecipeStore) StatisticsSummary(ctx context.Context, generationID uint) ([]models.CategorySummary, error) {
	var rows []models.CategorySummary
	err := s.db.WithContext(ctx).Model(&models.StatisticsCacheEntry{}).
		Select("ingredient_category, unit, SUM(total_quantity) AS grand_total, COUNT(DISTINCT campus_id) AS campus_count").
		Where("generation_id = ?", generationID).
		Group("ingredient_category, unit").
		Order("ingredient_category, unit").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "statistics", generationID)
	}
	return rows, nil
}

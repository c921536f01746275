package store

import (
	"context"
	"fmt"

	"venus-recipe/apperrors"
	"venus-recipe/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogStore holds campuses, dish categories, dishes and ingredients.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ── Campuses ────────────────────────────────────────────────────────────────

func (s *CatalogStore) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	var campuses []models.Campus
	if err := s.db.WithContext(ctx).Order("name").Find(&campuses).Error; err != nil {
		return nil, translate(err, "campus", nil)
	}
	return campuses, nil
}

func (s *CatalogStore) GetCampus(ctx context.Context, id uint) (*models.Campus, error) {
	var campus models.Campus
	if err := s.db.WithContext(ctx).First(&campus, id).Error; err != nil {
		return nil, translate(err, "campus", id)
	}
	return &campus, nil
}

func (s *CatalogStore) CreateCampus(ctx context.Context, campus *models.Campus) error {
	return translate(s.db.WithContext(ctx).Create(campus).Error, "campus", campus.Code)
}

// UpdateCampus applies the given columns and returns the fresh row
func (s *CatalogStore) UpdateCampus(ctx context.Context, id uint, fields map[string]interface{}) (*models.Campus, error) {
	campus, err := s.GetCampus(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(campus).Updates(fields).Error; err != nil {
		return nil, translate(err, "campus", id)
	}
	return s.GetCampus(ctx, id)
}

func (s *CatalogStore) DeleteCampus(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Campus{}, id)
	if result.Error != nil {
		return translate(result.Error, "campus", id)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("campus", id)
	}
	return nil
}

// ── Dish categories ─────────────────────────────────────────────────────────

// ListDishCategories returns all categories, or those of one slot when slot is set
func (s *CatalogStore) ListDishCategories(ctx context.Context, slot models.MealSlot) ([]models.DishCategory, error) {
	var categories []models.DishCategory
	q := s.db.WithContext(ctx).Order("id")
	if slot != "" {
		q = q.Where("meal_slot = ?", slot)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, translate(err, "dish category", slot)
	}
	return categories, nil
}

func (s *CatalogStore) GetDishCategory(ctx context.Context, id uint) (*models.DishCategory, error) {
	var category models.DishCategory
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, "dish category", id)
	}
	return &category, nil
}

// CategoryForSlot returns the first category declared for a meal slot
func (s *CatalogStore) CategoryForSlot(ctx context.Context, slot models.MealSlot) (*models.DishCategory, error) {
	var category models.DishCategory
	if err := s.db.WithContext(ctx).Where("meal_slot = ?", slot).Order("id").First(&category).Error; err != nil {
		return nil, translate(err, "dish category", slot)
	}
	return &category, nil
}

func (s *CatalogStore) CreateDishCategory(ctx context.Context, category *models.DishCategory) error {
	return translate(s.db.WithContext(ctx).Create(category).Error, "dish category", category.Name)
}

// ── Dishes ──────────────────────────────────────────────────────────────────

func (s *CatalogStore) dishQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Category").
		Joins("JOIN dish_categories ON dish_categories.id = dishes.category_id")
}

// ListDishes returns dishes ordered by name; slot "" means every slot
func (s *CatalogStore) ListDishes(ctx context.Context, slot models.MealSlot, activeOnly bool) ([]models.Dish, error) {
	var dishes []models.Dish
	q := s.dishQuery(ctx)
	if slot != "" {
		q = q.Where("dish_categories.meal_slot = ?", slot)
	}
	if activeOnly {
		q = q.Where("dishes.active = ?", true)
	}
	if err := q.Order("dishes.name").Find(&dishes).Error; err != nil {
		return nil, translate(err, "dish", slot)
	}
	return dishes, nil
}

func (s *CatalogStore) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).Preload("Category").First(&dish, id).Error; err != nil {
		return nil, translate(err, "dish", id)
	}
	return &dish, nil
}

// DishByName finds an active dish by exact name
func (s *CatalogStore) DishByName(ctx context.Context, name string) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).Preload("Category").
		Where("name = ? AND active = ?", name, true).
		Order("id").
		First(&dish).Error
	if err != nil {
		return nil, translate(err, "dish", name)
	}
	return &dish, nil
}

// DishCandidates lists the active dishes of a slot, minus the excluded ids
func (s *CatalogStore) DishCandidates(ctx context.Context, slot models.MealSlot, exclude []uint) ([]models.Dish, error) {
	var dishes []models.Dish
	q := s.dishQuery(ctx).
		Where("dish_categories.meal_slot = ? AND dishes.active = ?", slot, true)
	if len(exclude) > 0 {
		q = q.Where("dishes.id NOT IN ?", exclude)
	}
	if err := q.Order("dishes.id").Find(&dishes).Error; err != nil {
		return nil, translate(err, "dish", slot)
	}
	return dishes, nil
}

func (s *CatalogStore) CreateDish(ctx context.Context, dish *models.Dish) error {
	if dish.CategoryID == 0 {
		return apperrors.NewValidationError("Invalid dish", "category_id is required")
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(dish).Error; err != nil {
		return translate(err, "dish", dish.Name)
	}
	fresh, err := s.GetDish(ctx, dish.ID)
	if err != nil {
		return err
	}
	*dish = *fresh
	return nil
}

// UpdateDish writes every column of the dish, including the active flag
func (s *CatalogStore) UpdateDish(ctx context.Context, dish *models.Dish) error {
	result := s.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", dish.ID).
		Select("name", "category_id", "description", "ingredients", "nutrition_info", "active").
		Updates(dish)
	if result.Error != nil {
		return translate(result.Error, "dish", dish.ID)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("dish", dish.ID)
	}
	return nil
}

// DeactivateDish soft-deletes a dish; recipes keep pointing at it
func (s *CatalogStore) DeactivateDish(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return translate(result.Error, "dish", id)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("dish", id)
	}
	return nil
}

// ── Ingredients ─────────────────────────────────────────────────────────────

func (s *CatalogStore) ListIngredients(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	q := s.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("category, name").Find(&ingredients).Error; err != nil {
		return nil, translate(err, "ingredient", category)
	}
	return ingredients, nil
}

func (s *CatalogStore) IngredientByName(ctx context.Context, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&ingredient).Error; err != nil {
		return nil, translate(err, "ingredient", name)
	}
	return &ingredient, nil
}

func (s *CatalogStore) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if !ingredient.Category.Valid() {
		return apperrors.NewValidationError("Invalid ingredient", fmt.Sprintf("unknown category %q", ingredient.Category))
	}
	return translate(s.db.WithContext(ctx).Create(ingredient).Error, "ingredient", ingredient.Name)
}

func (s *CatalogStore) UpdateIngredient(ctx context.Context, id uint, fields map[string]interface{}) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err, "ingredient", id)
	}
	if err := s.db.WithContext(ctx).Model(&ingredient).Updates(fields).Error; err != nil {
		return nil, translate(err, "ingredient", id)
	}
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err, "ingredient", id)
	}
	return &ingredient, nil
}

func (s *CatalogStore) DeleteIngredient(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Ingredient{}, id)
	if result.Error != nil {
		return translate(result.Error, "ingredient", id)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ingredient", id)
	}
	return nil
}

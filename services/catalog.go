package services

import (
	"context"
	"log/slog"
	"time"

	"venus-recipe/cache"
	"venus-recipe/models"

	"gorm.io/datatypes"
)

const (
	campusesTTL           = time.Hour
	defaultCampusCapacity = 100
)

// CatalogRepository is the catalog store as seen by the admin service
type CatalogRepository interface {
	CampusLookup
	CreateCampus(ctx context.Context, campus *models.Campus) error
	UpdateCampus(ctx context.Context, id uint, fields map[string]interface{}) (*models.Campus, error)
	DeleteCampus(ctx context.Context, id uint) error

	ListDishCategories(ctx context.Context, slot models.MealSlot) ([]models.DishCategory, error)
	GetDishCategory(ctx context.Context, id uint) (*models.DishCategory, error)

	ListDishes(ctx context.Context, slot models.MealSlot, activeOnly bool) ([]models.Dish, error)
	GetDish(ctx context.Context, id uint) (*models.Dish, error)
	CreateDish(ctx context.Context, dish *models.Dish) error
	UpdateDish(ctx context.Context, dish *models.Dish) error
	DeactivateDish(ctx context.Context, id uint) error

	ListIngredients(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	UpdateIngredient(ctx context.Context, id uint, fields map[string]interface{}) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uint) error
}

type CampusInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Code     string `json:"code" binding:"required,alphanum,max=20"`
	Address  string `json:"address" binding:"max=200"`
	Capacity int    `json:"capacity" binding:"gte=0"`
}

// capacity falls back to the column default when the field is left out
func (in CampusInput) capacity() int {
	if in.Capacity == 0 {
		return defaultCampusCapacity
	}
	return in.Capacity
}

type DishInput struct {
	Name          string                     `json:"name" binding:"required,max=100"`
	CategoryID    uint                       `json:"category_id" binding:"required"`
	Description   string                     `json:"description" binding:"max=500"`
	Ingredients   models.DeclaredIngredients `json:"ingredients" binding:"dive"`
	NutritionInfo models.Nutrition           `json:"nutrition_info"`
	Active        *bool                      `json:"is_active"`
}

type IngredientInput struct {
	Name           string                    `json:"name" binding:"required,max=50"`
	Category       models.IngredientCategory `json:"category" binding:"required,ingredient_category"`
	Unit           string                    `json:"unit" binding:"max=10"`
	CaloriesPer100 float64                   `json:"calories_per_100g" binding:"gte=0"`
}

// CatalogService covers campus, dish and ingredient administration
type CatalogService struct {
	repo  CatalogRepository
	cache cache.Store
	log   *slog.Logger
}

func NewCatalogService(repo CatalogRepository, c cache.Store, log *slog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: c, log: log}
}

// ── Campuses ────────────────────────────────────────────────────────────────

func (s *CatalogService) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	var campuses []models.Campus
	if ok, err := s.cache.Get(ctx, cache.CampusesKey, &campuses); err == nil && ok {
		return campuses, nil
	}
	campuses, err := s.repo.ListCampuses(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.CampusesKey, campuses, campusesTTL); err != nil {
		s.log.WarnContext(ctx, "Campus cache write failed", "error", err)
	}
	return campuses, nil
}

func (s *CatalogService) GetCampus(ctx context.Context, id uint) (*models.Campus, error) {
	return s.repo.GetCampus(ctx, id)
}

// campusesChanged drops the campus list and every memoized statistic, whose
// zero rows depend on the campus set.
func (s *CatalogService) campusesChanged(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.CampusesKey); err != nil {
		s.log.WarnContext(ctx, "Campus cache invalidation failed", "error", err)
	}
	if _, err := s.cache.DeleteByPattern(ctx, "statistics:*"); err != nil {
		s.log.WarnContext(ctx, "Statistics cache invalidation failed", "error", err)
	}
}

func (s *CatalogService) CreateCampus(ctx context.Context, in CampusInput) (*models.Campus, error) {
	if err := validateInput("Invalid campus", in); err != nil {
		return nil, err
	}
	campus := &models.Campus{Name: in.Name, Code: in.Code, Address: in.Address, Capacity: in.capacity()}
	if err := s.repo.CreateCampus(ctx, campus); err != nil {
		return nil, err
	}
	s.campusesChanged(ctx)
	s.log.InfoContext(ctx, "Campus created", "campus_id", campus.ID, "code", campus.Code)
	return campus, nil
}

func (s *CatalogService) UpdateCampus(ctx context.Context, id uint, in CampusInput) (*models.Campus, error) {
	if err := validateInput("Invalid campus", in); err != nil {
		return nil, err
	}
	campus, err := s.repo.UpdateCampus(ctx, id, map[string]interface{}{
		"name":     in.Name,
		"code":     in.Code,
		"address":  in.Address,
		"capacity": in.capacity(),
	})
	if err != nil {
		return nil, err
	}
	s.campusesChanged(ctx)
	return campus, nil
}

func (s *CatalogService) DeleteCampus(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCampus(ctx, id); err != nil {
		return err
	}
	s.campusesChanged(ctx)
	s.log.InfoContext(ctx, "Campus deleted", "campus_id", id)
	return nil
}

// ── Dishes ──────────────────────────────────────────────────────────────────

func (s *CatalogService) ListDishCategories(ctx context.Context, slot models.MealSlot) ([]models.DishCategory, error) {
	return s.repo.ListDishCategories(ctx, slot)
}

// ListDishes returns active dishes, of one slot when slot is set
func (s *CatalogService) ListDishes(ctx context.Context, slot models.MealSlot) ([]models.Dish, error) {
	return s.repo.ListDishes(ctx, slot, true)
}

func (s *CatalogService) GetDish(ctx context.Context, id uint) (*models.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *CatalogService) dishFromInput(ctx context.Context, in DishInput) (*models.Dish, error) {
	if err := validateInput("Invalid dish", in); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetDishCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	ingredients := in.Ingredients
	if ingredients == nil {
		ingredients = models.DeclaredIngredients{}
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &models.Dish{
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		Description:   in.Description,
		Ingredients:   datatypes.NewJSONType(ingredients),
		NutritionInfo: datatypes.NewJSONType(in.NutritionInfo),
		Active:        active,
	}, nil
}

func (s *CatalogService) CreateDish(ctx context.Context, in DishInput) (*models.Dish, error) {
	dish, err := s.dishFromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	active := dish.Active
	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return nil, err
	}
	// the column defaults to true, so an inactive dish is flipped after insert
	if !active {
		if err := s.repo.DeactivateDish(ctx, dish.ID); err != nil {
			return nil, err
		}
		dish.Active = false
	}
	s.log.InfoContext(ctx, "Dish created", "dish_id", dish.ID, "name", dish.Name)
	return dish, nil
}

func (s *CatalogService) UpdateDish(ctx context.Context, id uint, in DishInput) (*models.Dish, error) {
	dish, err := s.dishFromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	dish.ID = id
	if err := s.repo.UpdateDish(ctx, dish); err != nil {
		return nil, err
	}
	return s.repo.GetDish(ctx, id)
}

// DeactivateDish hides a dish from selection; existing recipes keep it
func (s *CatalogService) DeactivateDish(ctx context.Context, id uint) error {
	return s.repo.DeactivateDish(ctx, id)
}

// ── Ingredients ─────────────────────────────────────────────────────────────

func (s *CatalogService) ListIngredients(ctx context.Context, category models.IngredientCategory) ([]models.Ingredient, error) {
	return s.repo.ListIngredients(ctx, category)
}

func (s *CatalogService) CreateIngredient(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	if err := validateInput("Invalid ingredient", in); err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = "g"
	}
	ingredient := &models.Ingredient{Name: in.Name, Category: in.Category, Unit: unit, CaloriesPer100: in.CaloriesPer100}
	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *CatalogService) UpdateIngredient(ctx context.Context, id uint, in IngredientInput) (*models.Ingredient, error) {
	if err := validateInput("Invalid ingredient", in); err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = "g"
	}
	return s.repo.UpdateIngredient(ctx, id, map[string]interface{}{
		"name":              in.Name,
		"category":          in.Category,
		"unit":              unit,
		"calories_per_100g": in.CaloriesPer100,
	})
}

func (s *CatalogService) DeleteIngredient(ctx context.Context, id uint) error {
	return s.repo.DeleteIngredient(ctx, id)
}

package services

import (
	"context"

	"venus-recipe/models"
	"venus-recipe/store"
)

//go:generate mockgen -destination=mocks_test.go -package=services venus-recipe/services IngredientLookup,DishUsage,CampusLookup

// The services depend on these narrow views of the stores. *store.CatalogStore
// and *store.RecipeStore satisfy them.

type IngredientLookup interface {
	IngredientByName(ctx context.Context, name string) (*models.Ingredient, error)
}

type DishCatalog interface {
	DishCandidates(ctx context.Context, slot models.MealSlot, exclude []uint) ([]models.Dish, error)
	CategoryForSlot(ctx context.Context, slot models.MealSlot) (*models.DishCategory, error)
	CreateDishCategory(ctx context.Context, category *models.DishCategory) error
	CreateDish(ctx context.Context, dish *models.Dish) error
}

type DishUsage interface {
	UsedDishIDsInRange(ctx context.Context, campusID uint, start, end string) ([]uint, error)
	DishIDsOnDate(ctx context.Context, campusID uint, date string) ([]uint, error)
}

type CampusLookup interface {
	GetCampus(ctx context.Context, id uint) (*models.Campus, error)
	ListCampuses(ctx context.Context) ([]models.Campus, error)
}

type GenerationWriter interface {
	CreateGeneration(ctx context.Context, g *models.RecipeGeneration) error
	GetGeneration(ctx context.Context, id uint) (*models.RecipeGeneration, error)
	SetGenerationStatus(ctx context.Context, id uint, status models.GenerationStatus, totalRecipes int) error
	UpsertRecipe(ctx context.Context, recipe *models.Recipe) (uint, error)
}

type StatisticsSource interface {
	GetGeneration(ctx context.Context, id uint) (*models.RecipeGeneration, error)
	IngredientUsage(ctx context.Context, generationID uint, category models.IngredientCategory) ([]models.IngredientUsage, error)
	UpsertStatistics(ctx context.Context, entries []models.StatisticsCacheEntry) error
	ClearStatistics(ctx context.Context, generationID uint) error
	StatisticsSummary(ctx context.Context, generationID uint) ([]models.CategorySummary, error)
	LatestGenerationWithStatistics(ctx context.Context) (*models.RecipeGeneration, error)
}

type RecipeRepository interface {
	GenerationWriter
	ListGenerations(ctx context.Context) ([]models.RecipeGeneration, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context, f store.RecipeFilter) ([]models.Recipe, error)
	RecipeBySlot(ctx context.Context, campusID uint, date string, slot models.MealSlot) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id uint) error
}

var (
	_ IngredientLookup = (*store.CatalogStore)(nil)
	_ DishCatalog      = (*store.CatalogStore)(nil)
	_ CampusLookup     = (*store.CatalogStore)(nil)
	_ DishUsage        = (*store.RecipeStore)(nil)
	_ StatisticsSource = (*store.RecipeStore)(nil)
	_ RecipeRepository = (*store.RecipeStore)(nil)
)

var _ CatalogRepository = (*store.CatalogStore)(nil)

var _ RecipeCatalog = (*store.CatalogStore)(nil)

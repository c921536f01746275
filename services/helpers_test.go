package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"venus-recipe/cache"
	"venus-recipe/config"
	"venus-recipe/logger"
	"venus-recipe/models"
	"venus-recipe/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// firstPicker always takes the first candidate and the minimum dish count
type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

type testEnv struct {
	db        *gorm.DB
	catalog   *store.CatalogStore
	recipes   *store.RecipeStore
	templates *Templates
	cache     *cache.Memory
	resolver  *QuantityResolver
	selector  *DishSelector
	stats     *StatisticsAggregator
	generator *ScheduleGenerator
	recipeSvc *RecipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{Path: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logger.Discard()
	templates, err := LoadTemplates()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	env := &testEnv{
		db:        db,
		catalog:   store.NewCatalogStore(db),
		recipes:   store.NewRecipeStore(db),
		templates: templates,
		cache:     cache.NewMemory(log),
	}
	env.resolver = NewQuantityResolver(env.catalog, templates, log)
	env.selector = NewDishSelector(env.catalog, env.recipes, templates, firstPicker{}, log)
	env.stats = NewStatisticsAggregator(env.recipes, env.catalog, env.cache, time.Hour, log)
	env.generator = NewScheduleGenerator(env.catalog, env.recipes, env.selector, env.resolver, env.stats, templates, firstPicker{}, log)
	env.recipeSvc = NewRecipeService(env.recipes, env.catalog, env.resolver, env.stats, log)
	return env
}

func (e *testEnv) campus(t *testing.T, name, code string) models.Campus {
	t.Helper()
	c := models.Campus{Name: name, Code: code}
	if err := e.catalog.CreateCampus(context.Background(), &c); err != nil {
		t.Fatal(err)
	}
	return c
}

func (e *testEnv) ingredient(t *testing.T, name string, category models.IngredientCategory) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, Category: category, Unit: "g"}
	if err := e.catalog.CreateIngredient(context.Background(), &ing); err != nil {
		t.Fatal(err)
	}
	return ing
}

func (e *testEnv) category(t *testing.T, name string, slot models.MealSlot) models.DishCategory {
	t.Helper()
	c := models.DishCategory{Name: name, MealSlot: slot}
	if err := e.catalog.CreateDishCategory(context.Background(), &c); err != nil {
		t.Fatal(err)
	}
	return c
}

// dish creates an active dish declaring name/quantity pairs
func (e *testEnv) dish(t *testing.T, name string, categoryID uint, pairs ...interface{}) models.Dish {
	t.Helper()
	declared := models.DeclaredIngredients{}
	for i := 0; i < len(pairs); i += 2 {
		q := pairs[i+1].(float64)
		declared = append(declared, models.DeclaredIngredient{Name: pairs[i].(string), Quantity: &q})
	}
	d := models.Dish{Name: name, CategoryID: categoryID, Ingredients: datatypes.NewJSONType(declared), Active: true}
	if err := e.catalog.CreateDish(context.Background(), &d); err != nil {
		t.Fatal(err)
	}
	return d
}

// fullCatalog gives every slot n dishes that all use 大米
func (e *testEnv) fullCatalog(t *testing.T, n int) {
	t.Helper()
	e.ingredient(t, "大米", models.CategoryGrains)
	for _, slot := range models.MealSlots {
		cat := e.category(t, string(slot)+"测试", slot)
		for i := 0; i < n; i++ {
			e.dish(t, fmt.Sprintf("%s菜品%02d", slot, i), cat.ID, "大米", 50.0)
		}
	}
}

func (e *testEnv) generation(t *testing.T) models.RecipeGeneration {
	t.Helper()
	g := models.RecipeGeneration{StartDate: "2025-03-03", EndDate: "2025-03-07"}
	if err := e.recipes.CreateGeneration(context.Background(), &g); err != nil {
		t.Fatal(err)
	}
	if err := e.recipes.SetGenerationStatus(context.Background(), g.ID, models.GenerationCompleted, 0); err != nil {
		t.Fatal(err)
	}
	return g
}

// serve writes a recipe whose quantities are resolved from the dish
func (e *testEnv) serve(t *testing.T, genID, campusID uint, dish models.Dish, date string, slot models.MealSlot, servings int) models.Recipe {
	t.Helper()
	r := models.Recipe{
		CampusID:             campusID,
		DishID:               dish.ID,
		Date:                 date,
		MealSlot:             slot,
		GenerationID:         genID,
		Servings:             servings,
		IngredientQuantities: datatypes.NewJSONType(e.resolver.Resolve(context.Background(), &dish, servings, slot)),
	}
	if _, err := e.recipes.UpsertRecipe(context.Background(), &r); err != nil {
		t.Fatal(err)
	}
	return r
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

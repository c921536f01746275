package services

import (
	"context"
	"testing"

	"venus-recipe/apperrors"
	"venus-recipe/cache"
	"venus-recipe/logger"
	"venus-recipe/models"
)

func newCatalogService(env *testEnv) *CatalogService {
	return NewCatalogService(env.catalog, env.cache, logger.Discard())
}

func TestCampusListIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCatalogService(env)

	if _, err := svc.CreateCampus(ctx, CampusInput{Name: "总园", Code: "JX001"}); err != nil {
		t.Fatal(err)
	}
	list, err := svc.ListCampuses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Capacity != 100 {
		t.Fatalf("campuses = %+v", list)
	}
	var cached []models.Campus
	if ok, _ := env.cache.Get(ctx, cache.CampusesKey, &cached); !ok {
		t.Fatal("campus list was not cached")
	}

	_ = env.cache.Set(ctx, cache.StatisticsKey(1, "grains"), []int{1}, 0)
	if _, err := svc.CreateCampus(ctx, CampusInput{Name: "分园A", Code: "JX002"}); err != nil {
		t.Fatal(err)
	}
	var stale []int
	if ok, _ := env.cache.Get(ctx, cache.StatisticsKey(1, "grains"), &stale); ok {
		t.Error("statistics survived a campus change")
	}
	list, _ = svc.ListCampuses(ctx)
	if len(list) != 2 {
		t.Errorf("campuses after create = %d, want 2", len(list))
	}
}

func TestUpdateCampusDefaultsCapacity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCatalogService(env)

	campus, err := svc.CreateCampus(ctx, CampusInput{Name: "总园", Code: "JX001", Capacity: 80})
	if err != nil {
		t.Fatal(err)
	}
	updated, err := svc.UpdateCampus(ctx, campus.ID, CampusInput{Name: "总园", Code: "JX001"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Capacity != 100 {
		t.Errorf("capacity = %d, want 100", updated.Capacity)
	}
}

func TestCampusInputValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := newCatalogService(env).CreateCampus(context.Background(), CampusInput{Code: "JX 001", Capacity: -1})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if !hasViolation(err, "name is required") {
		t.Errorf("err = %v", err)
	}
}

func TestCreateInactiveDish(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCatalogService(env)
	cat := env.category(t, "午餐主食", models.SlotLunch)
	inactive := false

	dish, err := svc.CreateDish(ctx, DishInput{Name: "糙米饭", CategoryID: cat.ID, Active: &inactive})
	if err != nil {
		t.Fatal(err)
	}
	if dish.Active {
		t.Error("dish reported active")
	}
	stored, err := svc.GetDish(ctx, dish.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Active {
		t.Error("dish stored active")
	}
	listed, _ := svc.ListDishes(ctx, models.SlotLunch)
	if len(listed) != 0 {
		t.Errorf("inactive dish listed: %+v", listed)
	}
}

func TestCreateDishUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	_, err := newCatalogService(env).CreateDish(context.Background(), DishInput{Name: "白米饭", CategoryID: 77})
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestIngredientCategoryValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newCatalogService(env)

	_, err := svc.CreateIngredient(ctx, IngredientInput{Name: "花椒", Category: "spices"})
	if !hasViolation(err, "not a known ingredient category") {
		t.Errorf("err = %v", err)
	}

	ing, err := svc.CreateIngredient(ctx, IngredientInput{Name: "花椒", Category: models.CategorySeasonings})
	if err != nil {
		t.Fatal(err)
	}
	if ing.Unit != "g" {
		t.Errorf("unit = %q, want g", ing.Unit)
	}
}

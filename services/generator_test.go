package services

import (
	"context"
	"errors"
	"testing"

	"venus-recipe/apperrors"
	"venus-recipe/logger"
	"venus-recipe/models"
	"venus-recipe/store"

	"go.uber.org/mock/gomock"
)

// dishes per day with firstPicker: 3 + 1 + 3 + 1 + 2
const minDishesPerDay = 10

func TestGenerateNoRepeatsWithinWeek(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	campus := env.campus(t, "总园", "JX001")
	env.fullCatalog(t, 30)

	result, err := env.generator.Generate(ctx, GenerationRequest{
		Campuses:  []uint{campus.ID},
		StartDate: "2025-03-03",
		EndDate:   "2025-03-07",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || len(result.Results) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.TotalRecipes != 5*minDishesPerDay {
		t.Errorf("totalRecipes = %d, want %d", result.TotalRecipes, 5*minDishesPerDay)
	}

	seen := map[uint]string{}
	for _, r := range result.Results[0].Recipes {
		if prev, dup := seen[r.DishID]; dup {
			t.Errorf("dish %s served on %s and again on %s %s", r.DishName, prev, r.Date, r.MealSlot)
		}
		seen[r.DishID] = r.Date
	}
	if stats := result.Results[0].Stats; stats.UniqueDishes != len(seen) || stats.DateRange != "2025-03-03 to 2025-03-07" {
		t.Errorf("stats = %+v", stats)
	}

	stored, err := env.recipes.ListRecipes(ctx, store.RecipeFilter{CampusID: campus.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 5*len(models.MealSlots) {
		t.Errorf("stored recipes = %d, want one per day and slot (%d)", len(stored), 5*len(models.MealSlots))
	}
}

func TestRegenerateKeepsOneRecipePerSlot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	if err := store.Seed(ctx, env.db, logger.Discard()); err != nil {
		t.Fatal(err)
	}
	req := GenerationRequest{Campuses: []uint{1, 2}, StartDate: "2025-03-05", EndDate: "2025-03-07"}

	first, err := env.generator.Generate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.generator.Generate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}

	stored, err := env.recipes.ListRecipes(ctx, store.RecipeFilter{StartDate: req.StartDate, EndDate: req.EndDate})
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 * 3 * len(models.MealSlots); len(stored) != want {
		t.Fatalf("stored recipes = %d, want %d", len(stored), want)
	}
	for _, r := range stored {
		if r.GenerationID != second.GenerationID {
			t.Errorf("recipe %d still belongs to generation %d", r.ID, r.GenerationID)
		}
	}

	old, err := env.recipes.ListRecipes(ctx, store.RecipeFilter{GenerationID: first.GenerationID})
	if err != nil {
		t.Fatal(err)
	}
	if len(old) != 0 {
		t.Errorf("first generation still owns %d recipes", len(old))
	}

	gen, err := env.recipes.GetGeneration(ctx, second.GenerationID)
	if err != nil {
		t.Fatal(err)
	}
	if gen.Status != models.GenerationCompleted || gen.TotalRecipes != second.TotalRecipes {
		t.Errorf("generation = %+v", gen)
	}
}

func TestRegenerateRefreshesDisplacedStatistics(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	campus := env.campus(t, "总园", "JX001")
	env.fullCatalog(t, 5)
	req := GenerationRequest{Campuses: []uint{campus.ID}, StartDate: "2025-03-03", EndDate: "2025-03-04"}

	first, err := env.generator.Generate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := env.stats.Grains(ctx, first.GenerationID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].IsPlaceholder() {
		t.Fatalf("first generation grains = %+v", rows)
	}

	if _, err := env.generator.Generate(ctx, req); err != nil {
		t.Fatal(err)
	}

	rows, err = env.stats.Grains(ctx, first.GenerationID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || !rows[0].IsPlaceholder() {
		t.Errorf("grains of the overwritten generation = %+v, want one placeholder", rows)
	}
	summary, err := env.stats.Summary(ctx, first.GenerationID)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range summary {
		if s.GrandTotal != 0 {
			t.Errorf("summary of the overwritten generation = %+v", s)
		}
	}
}

func TestGenerateSkipsUnknownCampus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	campus := env.campus(t, "总园", "JX001")
	env.fullCatalog(t, 3)

	result, err := env.generator.Generate(ctx, GenerationRequest{
		Campuses:  []uint{campus.ID, 999},
		StartDate: "2025-03-03",
		EndDate:   "2025-03-04",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 1 || result.Results[0].Campus.ID != campus.ID {
		t.Errorf("results = %+v", result.Results)
	}
}

func TestGeneratePrecomputesStatistics(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.campus(t, "总园", "JX001")
	env.campus(t, "分园A", "JX002")
	env.fullCatalog(t, 5)

	result, err := env.generator.Generate(ctx, GenerationRequest{Campuses: []uint{1}, StartDate: "2025-03-03", EndDate: "2025-03-04"})
	if err != nil {
		t.Fatal(err)
	}

	id, found, err := env.stats.DefaultGeneration(ctx)
	if err != nil || !found || id != result.GenerationID {
		t.Fatalf("DefaultGeneration = %d, %v, %v", id, found, err)
	}

	var rows int64
	env.db.Model(&models.StatisticsCacheEntry{}).Where("generation_id = ?", id).Count(&rows)
	if want := int64(2 * len(models.TrackedCategories)); rows != want {
		t.Errorf("statistics rows = %d, want %d", rows, want)
	}
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.generator.Generate(ctx, GenerationRequest{StartDate: "2025-03-07", EndDate: "2025-03-03"})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	gens, err := env.recipes.ListGenerations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 0 {
		t.Errorf("invalid request created %d generations", len(gens))
	}
}

func TestGenerateSkipsSlotsWhenSelectionFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	campus := env.campus(t, "总园", "JX001")
	env.fullCatalog(t, 3)

	ctrl := gomock.NewController(t)
	usage := NewMockDishUsage(ctrl)
	usage.EXPECT().UsedDishIDsInRange(gomock.Any(), campus.ID, gomock.Any(), gomock.Any()).
		Return(nil, apperrors.NewDatabaseError(errors.New("database is locked"))).
		Times(2 * len(models.MealSlots))

	log := logger.Discard()
	selector := NewDishSelector(env.catalog, usage, env.templates, firstPicker{}, log)
	generator := NewScheduleGenerator(env.catalog, env.recipes, selector, env.resolver, env.stats, env.templates, firstPicker{}, log)

	result, err := generator.Generate(ctx, GenerationRequest{Campuses: []uint{campus.ID}, StartDate: "2025-03-03", EndDate: "2025-03-04"})
	if err != nil {
		t.Fatal(err)
	}
	// each slot of both weekdays gives up after its first failed selection
	if result.TotalRecipes != 0 || !result.Success {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateMarksGenerationFailed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	ctrl := gomock.NewController(t)
	campuses := NewMockCampusLookup(ctrl)
	campuses.EXPECT().GetCampus(gomock.Any(), uint(1)).
		Return(nil, apperrors.NewDatabaseError(errors.New("no such table: campuses")))

	log := logger.Discard()
	generator := NewScheduleGenerator(campuses, env.recipes, env.selector, env.resolver, env.stats, env.templates, firstPicker{}, log)

	_, err := generator.Generate(ctx, GenerationRequest{Campuses: []uint{1}, StartDate: "2025-03-03", EndDate: "2025-03-04"})
	if !apperrors.IsType(err, apperrors.ErrorTypeDatabase) {
		t.Fatalf("err = %v, want database error", err)
	}

	gens, err := env.recipes.ListGenerations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 1 || gens[0].Status != models.GenerationFailed {
		t.Errorf("generations = %+v, want one failed", gens)
	}
}

func TestGenerateMarksGenerationFailedOnCancel(t *testing.T) {
	env := newTestEnv(t)
	campus := env.campus(t, "总园", "JX001")
	env.fullCatalog(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	ctrl := gomock.NewController(t)
	campuses := NewMockCampusLookup(ctrl)
	campuses.EXPECT().GetCampus(gomock.Any(), campus.ID).DoAndReturn(func(context.Context, uint) (*models.Campus, error) {
		cancel()
		return &campus, nil
	})

	generator := NewScheduleGenerator(campuses, env.recipes, env.selector, env.resolver, env.stats, env.templates, firstPicker{}, logger.Discard())
	if _, err := generator.Generate(ctx, GenerationRequest{Campuses: []uint{campus.ID}, StartDate: "2025-03-03", EndDate: "2025-03-04"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	gens, err := env.recipes.ListGenerations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 1 || gens[0].Status != models.GenerationFailed {
		t.Errorf("generations = %+v, want one failed", gens)
	}
}

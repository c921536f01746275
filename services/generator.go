package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"venus-recipe/apperrors"
	"venus-recipe/models"
	"venus-recipe/statemachine"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultServings is the head count every generated recipe is scaled to
const DefaultServings = 100

// StatisticsRefresher fills the statistics cache of a finished generation and
// recomputes it for generations whose recipes were taken over.
type StatisticsRefresher interface {
	Precompute(ctx context.Context, generationID uint) error
	Invalidate(ctx context.Context, generationID uint) error
}

type GeneratedRecipe struct {
	models.Recipe
	DishName string `json:"dish_name"`
}

type CampusStats struct {
	TotalRecipes int    `json:"totalRecipes"`
	UniqueDishes int    `json:"uniqueDishes"`
	DateRange    string `json:"dateRange"`
}

type CampusResult struct {
	Campus  *models.Campus    `json:"campus"`
	Recipes []GeneratedRecipe `json:"recipes"`
	Stats   CampusStats       `json:"stats"`
}

type GenerationResult struct {
	Success      bool           `json:"success"`
	GenerationID uint           `json:"generationId"`
	TotalRecipes int            `json:"totalRecipes"`
	Results      []CampusResult `json:"results"`
}

// ScheduleGenerator fills every weekday and meal slot of a date range for a
// set of campuses. It runs strictly sequentially.
type ScheduleGenerator struct {
	campuses  CampusLookup
	recipes   GenerationWriter
	selector  *DishSelector
	resolver  *QuantityResolver
	stats     StatisticsRefresher
	templates *Templates
	picker    Picker
	log       *slog.Logger
}

func NewScheduleGenerator(
	campuses CampusLookup,
	recipes GenerationWriter,
	selector *DishSelector,
	resolver *QuantityResolver,
	stats StatisticsRefresher,
	templates *Templates,
	picker Picker,
	log *slog.Logger,
) *ScheduleGenerator {
	return &ScheduleGenerator{
		campuses:  campuses,
		recipes:   recipes,
		selector:  selector,
		resolver:  resolver,
		stats:     stats,
		templates: templates,
		picker:    picker,
		log:       log,
	}
}

func (g *ScheduleGenerator) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if err := ValidateGenerationRequest(req); err != nil {
		return nil, err
	}
	start, _ := time.Parse(models.DateLayout, req.StartDate)
	end, _ := time.Parse(models.DateLayout, req.EndDate)
	days := Weekdays(start, end)

	gen := &models.RecipeGeneration{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.GenerationPending,
		Notes:     fmt.Sprintf("Generated for %d campus(es) from %s to %s", len(req.Campuses), req.StartDate, req.EndDate),
	}
	if err := g.recipes.CreateGeneration(ctx, gen); err != nil {
		return nil, err
	}

	log := g.log.With("run_id", uuid.NewString(), "generation_id", gen.ID)
	log.InfoContext(ctx, "Generation started", "campuses", len(req.Campuses), "weekdays", len(days))

	result := &GenerationResult{GenerationID: gen.ID, Results: []CampusResult{}}
	displaced := make(map[uint]struct{})
	processed := 0
	for _, campusID := range req.Campuses {
		campus, err := g.campuses.GetCampus(ctx, campusID)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				log.WarnContext(ctx, "Unknown campus skipped", "campus_id", campusID)
				continue
			}
			if processed == 0 {
				g.fail(ctx, log, gen.ID, err)
				return nil, err
			}
			log.ErrorContext(ctx, "Campus lookup failed", "campus_id", campusID, "error", err)
			continue
		}

		campusResult, err := g.generateCampus(ctx, log, campus, days, gen.ID, displaced)
		if err != nil {
			g.fail(ctx, log, gen.ID, err)
			return nil, err
		}
		campusResult.Stats.DateRange = req.StartDate + " to " + req.EndDate
		result.TotalRecipes += len(campusResult.Recipes)
		result.Results = append(result.Results, *campusResult)
		processed++
	}

	if err := statemachine.CanTransition(models.GenerationPending, models.GenerationCompleted, statemachine.ActorSystem); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := g.recipes.SetGenerationStatus(ctx, gen.ID, models.GenerationCompleted, result.TotalRecipes); err != nil {
		return nil, err
	}
	if err := g.stats.Precompute(ctx, gen.ID); err != nil {
		log.ErrorContext(ctx, "Statistics precompute failed", "error", err)
	}
	for id := range displaced {
		if err := g.stats.Invalidate(ctx, id); err != nil {
			log.ErrorContext(ctx, "Statistics refresh failed", "displaced_generation_id", id, "error", err)
		}
	}

	result.Success = true
	log.InfoContext(ctx, "Generation completed", "total_recipes", result.TotalRecipes, "campuses", processed)
	return result, nil
}

// generateCampus only returns an error when the request context is gone.
// Per-slot failures are logged and the slot is skipped. Generations whose
// recipes get overwritten are added to displaced.
func (g *ScheduleGenerator) generateCampus(ctx context.Context, log *slog.Logger, campus *models.Campus, days []time.Time, generationID uint, displaced map[uint]struct{}) (*CampusResult, error) {
	run := make(map[uint]struct{})
	res := &CampusResult{Campus: campus, Recipes: []GeneratedRecipe{}}

	for _, day := range days {
		date := day.Format(models.DateLayout)
		for _, slot := range models.MealSlots {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			bounds := g.templates.DishCountFor(slot)
			count := between(g.picker, bounds.Min, bounds.Max)

			for i := 0; i < count; i++ {
				dish, err := g.selector.Select(ctx, campus.ID, day, slot, run)
				if err != nil {
					log.ErrorContext(ctx, "Dish selection failed",
						"campus_id", campus.ID, "date", date, "meal_slot", slot, "error", err)
					break
				}

				recipe := models.Recipe{
					CampusID:             campus.ID,
					DishID:               dish.ID,
					Date:                 date,
					MealSlot:             slot,
					GenerationID:         generationID,
					Servings:             DefaultServings,
					IngredientQuantities: datatypes.NewJSONType(g.resolver.Resolve(ctx, dish, DefaultServings, slot)),
				}
				previous, err := g.recipes.UpsertRecipe(ctx, &recipe)
				if err != nil {
					log.ErrorContext(ctx, "Recipe write failed",
						"campus_id", campus.ID, "date", date, "meal_slot", slot, "dish_id", dish.ID, "error", err)
					continue
				}
				if previous != 0 {
					displaced[previous] = struct{}{}
				}
				res.Recipes = append(res.Recipes, GeneratedRecipe{Recipe: recipe, DishName: dish.Name})
				run[dish.ID] = struct{}{}
			}
		}
	}

	res.Stats = CampusStats{TotalRecipes: len(res.Recipes), UniqueDishes: len(run)}
	return res, nil
}

func (g *ScheduleGenerator) fail(ctx context.Context, log *slog.Logger, generationID uint, cause error) {
	log.ErrorContext(ctx, "Generation failed", "error", cause)
	if err := statemachine.CanTransition(models.GenerationPending, models.GenerationFailed, statemachine.ActorSystem); err != nil {
		log.ErrorContext(ctx, "Cannot mark generation failed", "error", err)
		return
	}
	if err := g.recipes.SetGenerationStatus(context.WithoutCancel(ctx), generationID, models.GenerationFailed, 0); err != nil {
		log.ErrorContext(ctx, "Cannot mark generation failed", "error", err)
	}
}

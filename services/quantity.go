package services

import (
	"context"
	"log/slog"

	"venus-recipe/apperrors"
	"venus-recipe/models"
)

// QuantityResolver turns a dish into concrete per-ingredient amounts for a
// number of servings. Declared quantities are per 100 servings.
type QuantityResolver struct {
	ingredients IngredientLookup
	templates   *Templates
	log         *slog.Logger
}

func NewQuantityResolver(ingredients IngredientLookup, templates *Templates, log *slog.Logger) *QuantityResolver {
	return &QuantityResolver{ingredients: ingredients, templates: templates, log: log}
}

func scale(base float64, servings int) float64 {
	return base * float64(servings) / 100
}

// Resolve never fails on a well-formed dish. Ingredients missing from the
// catalog are logged and left out.
func (r *QuantityResolver) Resolve(ctx context.Context, dish *models.Dish, servings int, slot models.MealSlot) models.IngredientQuantities {
	declared := dish.Ingredients.Data()
	if len(declared) == 0 {
		return r.defaults(slot, servings)
	}

	out := make(models.IngredientQuantities, len(declared))
	for _, item := range declared {
		if item.Name == "" {
			continue
		}
		ing, err := r.ingredients.IngredientByName(ctx, item.Name)
		if err != nil {
			level := slog.LevelWarn
			if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				level = slog.LevelError
			}
			r.log.Log(ctx, level, "Ingredient skipped",
				"dish", dish.Name,
				"ingredient", item.Name,
				"error", err,
			)
			continue
		}
		out[item.Name] = models.ResolvedQuantity{
			Quantity: scale(item.BaseQuantity(), servings),
			Unit:     ing.Unit,
			Category: ing.Category,
		}
	}
	return out
}

func (r *QuantityResolver) defaults(slot models.MealSlot, servings int) models.IngredientQuantities {
	tmpl := r.templates.DefaultsFor(slot)
	out := make(models.IngredientQuantities, len(tmpl))
	for _, d := range tmpl {
		out[d.Name] = models.ResolvedQuantity{
			Quantity: scale(d.Quantity, servings),
			Unit:     d.Unit,
			Category: d.Category,
		}
	}
	return out
}

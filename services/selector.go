package services

import (
	"context"
	"log/slog"
	"time"

	"venus-recipe/apperrors"
	"venus-recipe/models"

	"gorm.io/datatypes"
)

// weekAttempts bounds how often the week-level strategy re-queries the catalog
const weekAttempts = 10

// selectionStrategy is one relaxation step. exclude returns the dish ids the
// step refuses to pick.
type selectionStrategy struct {
	name     string
	attempts int
	exclude  func(ctx context.Context, campusID uint, date time.Time, run map[uint]struct{}) ([]uint, error)
}

// DishSelector picks a dish for one campus, date and slot, relaxing its
// uniqueness constraints step by step and synthesizing a dish as a last resort.
type DishSelector struct {
	dishes     DishCatalog
	usage      DishUsage
	templates  *Templates
	picker     Picker
	log        *slog.Logger
	strategies []selectionStrategy
}

func NewDishSelector(dishes DishCatalog, usage DishUsage, templates *Templates, picker Picker, log *slog.Logger) *DishSelector {
	s := &DishSelector{
		dishes:    dishes,
		usage:     usage,
		templates: templates,
		picker:    picker,
		log:       log,
	}
	s.strategies = []selectionStrategy{
		{name: "week", attempts: weekAttempts, exclude: s.excludeWeek},
		{name: "same-day", attempts: 1, exclude: s.excludeSameDay},
		{name: "any", attempts: 1, exclude: func(context.Context, uint, time.Time, map[uint]struct{}) ([]uint, error) {
			return nil, nil
		}},
	}
	return s
}

// WeekBounds returns Monday and Friday of the week containing date
func WeekBounds(date time.Time) (time.Time, time.Time) {
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 4)
}

func (s *DishSelector) excludeWeek(ctx context.Context, campusID uint, date time.Time, run map[uint]struct{}) ([]uint, error) {
	monday, friday := WeekBounds(date)
	used, err := s.usage.UsedDishIDsInRange(ctx, campusID, monday.Format(models.DateLayout), friday.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]struct{}, len(used)+len(run))
	ids := make([]uint, 0, len(used)+len(run))
	for _, id := range used {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range run {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *DishSelector) excludeSameDay(ctx context.Context, campusID uint, date time.Time, _ map[uint]struct{}) ([]uint, error) {
	return s.usage.DishIDsOnDate(ctx, campusID, date.Format(models.DateLayout))
}

// Select never returns a nil dish without an error. run is the set of dishes
// already picked for this campus in the current generation.
func (s *DishSelector) Select(ctx context.Context, campusID uint, date time.Time, slot models.MealSlot, run map[uint]struct{}) (*models.Dish, error) {
	for _, strategy := range s.strategies {
		exclude, err := strategy.exclude(ctx, campusID, date, run)
		if err != nil {
			return nil, err
		}
		for attempt := 0; attempt < strategy.attempts; attempt++ {
			candidates, err := s.dishes.DishCandidates(ctx, slot, exclude)
			if err != nil {
				return nil, err
			}
			if len(candidates) > 0 {
				dish := candidates[s.picker.Intn(len(candidates))]
				if strategy.name != "week" {
					s.log.DebugContext(ctx, "Dish constraints relaxed",
						"campus_id", campusID,
						"date", date.Format(models.DateLayout),
						"meal_slot", slot,
						"strategy", strategy.name,
					)
				}
				return &dish, nil
			}
		}
	}
	return s.synthesize(ctx, slot)
}

// synthesize persists a canned dish under the slot's first category,
// creating a "<slot>默认" category when the slot has none.
func (s *DishSelector) synthesize(ctx context.Context, slot models.MealSlot) (*models.Dish, error) {
	category, err := slotCategory(ctx, s.dishes, slot)
	if err != nil {
		return nil, err
	}

	options := s.templates.FallbacksFor(slot)
	tmpl := options[s.picker.Intn(len(options))]

	declared := make(models.DeclaredIngredients, 0, len(tmpl.Ingredients))
	for _, name := range tmpl.Ingredients {
		qty, unit := 100.0, "g"
		declared = append(declared, models.DeclaredIngredient{Name: name, Quantity: &qty, Unit: &unit})
	}

	dish := &models.Dish{
		Name:          tmpl.Name,
		CategoryID:    category.ID,
		Description:   string(slot) + "菜品",
		Ingredients:   datatypes.NewJSONType(declared),
		NutritionInfo: datatypes.NewJSONType(tmpl.Nutrition),
		Active:        true,
	}
	if err := s.dishes.CreateDish(ctx, dish); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "Fallback dish created", "dish", dish.Name, "dish_id", dish.ID, "meal_slot", slot)
	return dish, nil
}

type slotCategories interface {
	CategoryForSlot(ctx context.Context, slot models.MealSlot) (*models.DishCategory, error)
	CreateDishCategory(ctx context.Context, category *models.DishCategory) error
}

// slotCategory returns the slot's first category, creating "<slot>默认" if it has none
func slotCategory(ctx context.Context, categories slotCategories, slot models.MealSlot) (*models.DishCategory, error) {
	category, err := categories.CategoryForSlot(ctx, slot)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		category = &models.DishCategory{Name: string(slot) + "默认", MealSlot: slot}
		err = categories.CreateDishCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

package services

import (
	"context"
	"log/slog"
	"time"

	"venus-recipe/apperrors"
	"venus-recipe/models"
	"venus-recipe/statemachine"
	"venus-recipe/store"

	"gorm.io/datatypes"
)

// RecipeCatalog is what recipe editing needs from the catalog
type RecipeCatalog interface {
	GetCampus(ctx context.Context, id uint) (*models.Campus, error)
	GetDish(ctx context.Context, id uint) (*models.Dish, error)
	DishByName(ctx context.Context, name string) (*models.Dish, error)
	CategoryForSlot(ctx context.Context, slot models.MealSlot) (*models.DishCategory, error)
	CreateDishCategory(ctx context.Context, category *models.DishCategory) error
	CreateDish(ctx context.Context, dish *models.Dish) error
}

// StatisticsInvalidator recomputes a generation's statistics after an edit
type StatisticsInvalidator interface {
	Invalidate(ctx context.Context, generationID uint) error
}

// RecipeUpdate changes an existing recipe. Nil fields keep their value.
// Without IngredientQuantities the quantities are resolved from the dish.
type RecipeUpdate struct {
	DishID               *uint                        `json:"dish_id"`
	DishName             string                       `json:"dish_name"`
	Date                 *string                      `json:"date" binding:"omitempty,datetime=2006-01-02"`
	MealSlot             *models.MealSlot             `json:"meal_type" binding:"omitempty,meal_slot"`
	Servings             *int                         `json:"servings" binding:"omitempty,gt=0"`
	IngredientQuantities *models.IngredientQuantities `json:"ingredient_quantities"`
}

// ManualRecipe places one named dish on a campus schedule
type ManualRecipe struct {
	CampusID uint            `json:"campus_id" binding:"required"`
	DishName string          `json:"dish_name" binding:"required,max=100"`
	Date     string          `json:"date" binding:"required,datetime=2006-01-02"`
	MealSlot models.MealSlot `json:"meal_type" binding:"required,meal_slot"`
	Servings int             `json:"servings" binding:"omitempty,gt=0"`
}

// WeeklySchedule maps each Monday-Friday date to its five slots; empty slots are nil
type WeeklySchedule map[string]map[models.MealSlot]*models.Recipe

// RecipeService covers reads and manual edits of generated schedules
type RecipeService struct {
	recipes  RecipeRepository
	catalog  RecipeCatalog
	resolver *QuantityResolver
	stats    StatisticsInvalidator
	log      *slog.Logger
}

func NewRecipeService(recipes RecipeRepository, catalog RecipeCatalog, resolver *QuantityResolver, stats StatisticsInvalidator, log *slog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, catalog: catalog, resolver: resolver, stats: stats, log: log}
}

func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipes.GetRecipe(ctx, id)
}

func (s *RecipeService) List(ctx context.Context, f store.RecipeFilter) ([]models.Recipe, error) {
	var violations []string
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			violations = append(violations, "Invalid date format. Please use YYYY-MM-DD format.")
			break
		}
	}
	if f.MealSlot != "" && !f.MealSlot.Valid() {
		violations = append(violations, "mealType must be one of "+joinSlots())
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError("Invalid recipe filter", violations...)
	}
	return s.recipes.ListRecipes(ctx, f)
}

func (s *RecipeService) ListGenerations(ctx context.Context) ([]models.RecipeGeneration, error) {
	return s.recipes.ListGenerations(ctx)
}

func (s *RecipeService) GetGeneration(ctx context.Context, id uint) (*models.RecipeGeneration, error) {
	return s.recipes.GetGeneration(ctx, id)
}

// ListByGeneration returns the recipes a generation wrote that still belong to it
func (s *RecipeService) ListByGeneration(ctx context.Context, generationID uint) ([]models.Recipe, error) {
	if _, err := s.recipes.GetGeneration(ctx, generationID); err != nil {
		return nil, err
	}
	return s.recipes.ListRecipes(ctx, store.RecipeFilter{GenerationID: generationID})
}

// FailGeneration lets staff retire a run stuck in pending
func (s *RecipeService) FailGeneration(ctx context.Context, id uint) (*models.RecipeGeneration, error) {
	gen, err := s.recipes.GetGeneration(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(gen.Status, models.GenerationFailed, statemachine.ActorStaff); err != nil {
		return nil, apperrors.New(apperrors.ErrorTypeConflict, "INVALID_TRANSITION", err.Error())
	}
	if err := s.recipes.SetGenerationStatus(ctx, id, models.GenerationFailed, gen.TotalRecipes); err != nil {
		return nil, err
	}
	return s.recipes.GetGeneration(ctx, id)
}

// WeeklySchedule returns the Monday-Friday week containing date for a campus
func (s *RecipeService) WeeklySchedule(ctx context.Context, campusID uint, date string) (WeeklySchedule, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid schedule request", "Invalid date format. Please use YYYY-MM-DD format.")
	}
	if _, err := s.catalog.GetCampus(ctx, campusID); err != nil {
		return nil, err
	}

	monday, friday := WeekBounds(day)
	recipes, err := s.recipes.ListRecipes(ctx, store.RecipeFilter{
		CampusID:  campusID,
		StartDate: monday.Format(models.DateLayout),
		EndDate:   friday.Format(models.DateLayout),
	})
	if err != nil {
		return nil, err
	}

	schedule := make(WeeklySchedule, 5)
	for i := 0; i < 5; i++ {
		slots := make(map[models.MealSlot]*models.Recipe, len(models.MealSlots))
		for _, slot := range models.MealSlots {
			slots[slot] = nil
		}
		schedule[monday.AddDate(0, 0, i).Format(models.DateLayout)] = slots
	}
	for i := range recipes {
		r := &recipes[i]
		if slots, ok := schedule[r.Date]; ok {
			slots[r.MealSlot] = r
		}
	}
	return schedule, nil
}

func (s *RecipeService) resolveDish(ctx context.Context, id *uint, name string) (*models.Dish, error) {
	var (
		dish *models.Dish
		err  error
	)
	switch {
	case id != nil:
		dish, err = s.catalog.GetDish(ctx, *id)
	case name != "":
		dish, err = s.catalog.DishByName(ctx, name)
	default:
		return nil, nil
	}
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewValidationError("Invalid recipe", "Dish not found")
	}
	return dish, err
}

// Update edits a recipe and refreshes the statistics of its generation
func (s *RecipeService) Update(ctx context.Context, id uint, in RecipeUpdate) (*models.Recipe, error) {
	if err := validateInput("Invalid recipe", in); err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	dish, err := s.resolveDish(ctx, in.DishID, in.DishName)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		if dish, err = s.catalog.GetDish(ctx, recipe.DishID); err != nil {
			return nil, err
		}
	}

	recipe.DishID = dish.ID
	if in.Date != nil {
		recipe.Date = *in.Date
	}
	if in.MealSlot != nil {
		recipe.MealSlot = *in.MealSlot
	}
	if in.Servings != nil {
		recipe.Servings = *in.Servings
	}
	if in.IngredientQuantities != nil {
		recipe.IngredientQuantities = datatypes.NewJSONType(*in.IngredientQuantities)
	} else {
		recipe.IngredientQuantities = datatypes.NewJSONType(s.resolver.Resolve(ctx, dish, recipe.Servings, recipe.MealSlot))
	}

	if err := s.recipes.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	s.refresh(ctx, recipe.GenerationID)
	s.log.InfoContext(ctx, "Recipe updated", "recipe_id", id, "dish_id", dish.ID)
	return s.recipes.GetRecipe(ctx, id)
}

// Delete removes a recipe and refreshes the statistics of its generation
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, recipe.GenerationID)
	s.log.InfoContext(ctx, "Recipe deleted", "recipe_id", id)
	return nil
}

// CreateManual schedules a dish by name, creating the dish if needed. Each
// manual recipe gets its own one-day generation.
func (s *RecipeService) CreateManual(ctx context.Context, in ManualRecipe) (*models.Recipe, error) {
	if err := validateInput("Invalid recipe", in); err != nil {
		return nil, err
	}
	if in.Servings == 0 {
		in.Servings = DefaultServings
	}
	if _, err := s.catalog.GetCampus(ctx, in.CampusID); err != nil {
		return nil, err
	}

	dish, err := s.catalog.DishByName(ctx, in.DishName)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		dish, err = s.createDish(ctx, in.DishName, in.MealSlot)
	}
	if err != nil {
		return nil, err
	}

	gen := &models.RecipeGeneration{
		StartDate: in.Date,
		EndDate:   in.Date,
		Status:    models.GenerationPending,
		Notes:     "手动添加食谱: " + dish.Name,
	}
	if err := s.recipes.CreateGeneration(ctx, gen); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		CampusID:             in.CampusID,
		DishID:               dish.ID,
		Date:                 in.Date,
		MealSlot:             in.MealSlot,
		GenerationID:         gen.ID,
		Servings:             in.Servings,
		IngredientQuantities: datatypes.NewJSONType(s.resolver.Resolve(ctx, dish, in.Servings, in.MealSlot)),
	}
	displaced, err := s.recipes.UpsertRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(gen.Status, models.GenerationCompleted, statemachine.ActorSystem); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.recipes.SetGenerationStatus(ctx, gen.ID, models.GenerationCompleted, 1); err != nil {
		return nil, err
	}
	s.refresh(ctx, gen.ID)
	s.refresh(ctx, displaced)
	s.log.InfoContext(ctx, "Manual recipe added", "recipe_id", recipe.ID, "dish", dish.Name, "generation_id", gen.ID)
	return s.recipes.GetRecipe(ctx, recipe.ID)
}

func (s *RecipeService) createDish(ctx context.Context, name string, slot models.MealSlot) (*models.Dish, error) {
	category, err := slotCategory(ctx, s.catalog, slot)
	if err != nil {
		return nil, err
	}
	dish := &models.Dish{
		Name:          name,
		CategoryID:    category.ID,
		Description:   "手动添加的菜品",
		Ingredients:   datatypes.NewJSONType(models.DeclaredIngredients{}),
		NutritionInfo: datatypes.NewJSONType(models.Nutrition{}),
		Active:        true,
	}
	if err := s.catalog.CreateDish(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// refresh recomputes statistics; failures are logged, the edit itself stands
func (s *RecipeService) refresh(ctx context.Context, generationID uint) {
	if generationID == 0 {
		return
	}
	if err := s.stats.Invalidate(ctx, generationID); err != nil {
		s.log.ErrorContext(ctx, "Statistics refresh failed", "generation_id", generationID, "error", err)
	}
}

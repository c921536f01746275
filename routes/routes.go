package routes

import (
	"venus-recipe/handlers"
	"venus-recipe/middleware"
	"venus-recipe/models"
	"venus-recipe/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func SetupRoutes(r *gin.Engine, h *handlers.API) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.ConfigureValidator(v)
	}
	auth := h.Auth()

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Catalog
		public.GET("/campuses", h.ListCampuses)
		public.GET("/campuses/:id", h.GetCampus)
		public.GET("/campuses/:id/schedule", h.CampusSchedule)
		public.GET("/dishes", h.ListDishes)
		public.GET("/dish-categories", h.ListDishCategories)
		public.GET("/ingredients", h.ListIngredients)
		public.GET("/meal-slots", h.ListMealSlots)

		// Schedules and statistics
		public.GET("/recipes", h.ListRecipes)
		public.GET("/recipes/:id", h.GetRecipe)
		public.GET("/generations", h.ListGenerations)
		public.GET("/generations/:id", h.GetGeneration)
		public.GET("/generations/:id/recipes", h.GenerationRecipes)
		public.GET("/statistics/grains", h.GrainStatistics)
		public.GET("/statistics/fruits", h.FruitStatistics)
		public.GET("/statistics/meat", h.MeatStatistics)
		public.GET("/statistics/summary", h.StatisticsSummary)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(auth.Required())
	{
		authed.GET("/profile", h.GetProfile)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(auth.Required(), middleware.RoleRequired(models.RoleStaff, models.RoleAdmin))
	{
		staff.POST("/generate-recipes", h.GenerateRecipes)
		staff.PUT("/generations/:id/fail", h.FailGeneration)
		staff.POST("/recipes", h.CreateRecipe)
		staff.PUT("/recipes/:id", h.UpdateRecipe)
		staff.DELETE("/recipes/:id", h.DeleteRecipe)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(auth.Required(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/users", h.AdminCreateUser)

		admin.POST("/campuses", h.AdminCreateCampus)
		admin.PUT("/campuses/:id", h.AdminUpdateCampus)
		admin.DELETE("/campuses/:id", h.AdminDeleteCampus)

		admin.POST("/dishes", h.AdminCreateDish)
		admin.PUT("/dishes/:id", h.AdminUpdateDish)
		admin.DELETE("/dishes/:id", h.AdminDeleteDish)

		admin.POST("/ingredients", h.AdminCreateIngredient)
		admin.PUT("/ingredients/:id", h.AdminUpdateIngredient)
		admin.DELETE("/ingredients/:id", h.AdminDeleteIngredient)
	}
}

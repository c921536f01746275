package handlers

import (
	"net/http"

	"venus-recipe/apperrors"
	"venus-recipe/models"
	"venus-recipe/services"
	"venus-recipe/store"

	"github.com/gin-gonic/gin"
)

// ListRecipes filters by campusId, startDate, endDate and mealType
func (h *API) ListRecipes(c *gin.Context) {
	campusID, ok := h.optionalID(c, "campusId")
	if !ok {
		return
	}
	filter := store.RecipeFilter{
		CampusID:  campusID,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		MealSlot:  models.MealSlot(c.Query("mealType")),
	}
	recipes, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(recipes), "data": recipes})
}

func (h *API) GetRecipe(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recipe})
}

// CreateRecipe adds one dish to a campus schedule by name
func (h *API) CreateRecipe(c *gin.Context) {
	var req services.ManualRecipe
	if !h.bind(c, &req) {
		return
	}
	recipe, err := h.recipes.CreateManual(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Recipe added", "data": recipe})
}

func (h *API) UpdateRecipe(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req services.RecipeUpdate
	if !h.bind(c, &req) {
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe updated", "data": recipe})
}

func (h *API) DeleteRecipe(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe deleted"})
}

// CampusSchedule returns the Monday-Friday week around ?date= for a campus
func (h *API) CampusSchedule(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		h.respondError(c, apperrors.NewValidationError("Invalid schedule request", "date is required"))
		return
	}
	schedule, err := h.recipes.WeeklySchedule(c.Request.Context(), id, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "campusId": id, "data": schedule})
}

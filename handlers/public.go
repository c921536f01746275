package handlers

import (
	"net/http"

	"venus-recipe/apperrors"
	"venus-recipe/models"
	"venus-recipe/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCampuses returns every campus (cached)
func (h *API) ListCampuses(c *gin.Context) {
	campuses, err := h.catalog.ListCampuses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(campuses), "data": campuses})
}

func (h *API) GetCampus(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	campus, err := h.catalog.GetCampus(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": campus})
}

// mealSlotQuery reads ?mealType=, which may be empty
func (h *API) mealSlotQuery(c *gin.Context) (models.MealSlot, bool) {
	slot := models.MealSlot(c.Query("mealType"))
	if slot != "" && !slot.Valid() {
		h.respondError(c, apperrors.NewValidationError("Invalid mealType", "mealType must be a known meal slot"))
		return "", false
	}
	return slot, true
}

// ListDishes returns active dishes, optionally of one meal slot
func (h *API) ListDishes(c *gin.Context) {
	slot, ok := h.mealSlotQuery(c)
	if !ok {
		return
	}
	dishes, err := h.catalog.ListDishes(c.Request.Context(), slot)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(dishes), "data": dishes})
}

func (h *API) ListDishCategories(c *gin.Context) {
	slot, ok := h.mealSlotQuery(c)
	if !ok {
		return
	}
	categories, err := h.catalog.ListDishCategories(c.Request.Context(), slot)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// ListIngredients returns ingredients, optionally of one ?category=
func (h *API) ListIngredients(c *gin.Context) {
	category := models.IngredientCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		h.respondError(c, apperrors.NewValidationError("Invalid category", "category must be a known ingredient category"))
		return
	}
	ingredients, err := h.catalog.ListIngredients(c.Request.Context(), category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(ingredients), "data": ingredients})
}

// ListMealSlots returns the slots in serving order
func (h *API) ListMealSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": models.MealSlots})
}

// GetStateMachineInfo documents the generation lifecycle
func (h *API) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.GenerationStatus{models.GenerationCompleted, models.GenerationFailed},
		"description":     "Recipe generation lifecycle",
	})
}

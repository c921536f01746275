package handlers

import (
	"net/http"

	"venus-recipe/services"

	"github.com/gin-gonic/gin"
)

func (h *API) AdminCreateCampus(c *gin.Context) {
	var req services.CampusInput
	if !h.bind(c, &req) {
		return
	}
	campus, err := h.catalog.CreateCampus(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": campus})
}

func (h *API) AdminUpdateCampus(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req services.CampusInput
	if !h.bind(c, &req) {
		return
	}
	campus, err := h.catalog.UpdateCampus(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": campus})
}

func (h *API) AdminDeleteCampus(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCampus(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Campus deleted"})
}

func (h *API) AdminCreateDish(c *gin.Context) {
	var req services.DishInput
	if !h.bind(c, &req) {
		return
	}
	dish, err := h.catalog.CreateDish(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": dish})
}

func (h *API) AdminUpdateDish(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req services.DishInput
	if !h.bind(c, &req) {
		return
	}
	dish, err := h.catalog.UpdateDish(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dish})
}

// AdminDeleteDish deactivates the dish; generated recipes keep referencing it
func (h *API) AdminDeleteDish(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeactivateDish(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dish deactivated"})
}

func (h *API) AdminCreateIngredient(c *gin.Context) {
	var req services.IngredientInput
	if !h.bind(c, &req) {
		return
	}
	ingredient, err := h.catalog.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": ingredient})
}

func (h *API) AdminUpdateIngredient(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	var req services.IngredientInput
	if !h.bind(c, &req) {
		return
	}
	ingredient, err := h.catalog.UpdateIngredient(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ingredient})
}

func (h *API) AdminDeleteIngredient(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteIngredient(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ingredient deleted"})
}

package handlers

import (
	"net/http"

	"venus-recipe/services"

	"github.com/gin-gonic/gin"
)

// GenerateRecipes builds schedules for the requested campuses and dates
func (h *API) GenerateRecipes(c *gin.Context) {
	var req services.GenerationRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *API) ListGenerations(c *gin.Context) {
	gens, err := h.recipes.ListGenerations(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(gens), "data": gens})
}

func (h *API) GetGeneration(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	gen, err := h.recipes.GetGeneration(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gen})
}

func (h *API) GenerationRecipes(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	recipes, err := h.recipes.ListByGeneration(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(recipes), "data": recipes})
}

// FailGeneration retires a generation stuck in pending
func (h *API) FailGeneration(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}
	gen, err := h.recipes.FailGeneration(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gen})
}

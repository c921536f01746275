package handlers

import (
	"context"
	"net/http"

	"venus-recipe/models"

	"github.com/gin-gonic/gin"
)

type usageFunc func(ctx context.Context, generationID uint) ([]models.IngredientUsage, error)

// generationFor resolves ?generationId=, defaulting to the newest generation
// with cached statistics. ok is false when a response was already written.
func (h *API) generationFor(c *gin.Context) (id uint, found bool, ok bool) {
	id, ok = h.optionalID(c, "generationId")
	if !ok {
		return 0, false, false
	}
	if id != 0 {
		return id, true, true
	}
	id, found, err := h.stats.DefaultGeneration(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return 0, false, false
	}
	return id, found, true
}

func (h *API) usageStatistics(c *gin.Context, fetch usageFunc) {
	generationID, found, ok := h.generationFor(c)
	if !ok {
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []models.IngredientUsage{},
			"message": "No recipe generation with statistics yet",
		})
		return
	}

	rows, err := fetch(c.Request.Context(), generationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "generationId": generationID, "data": rows})
}

// GrainStatistics returns per-campus grain usage
func (h *API) GrainStatistics(c *gin.Context) {
	h.usageStatistics(c, h.stats.Grains)
}

// FruitStatistics returns per-campus fruit usage
func (h *API) FruitStatistics(c *gin.Context) {
	h.usageStatistics(c, h.stats.Fruits)
}

// MeatStatistics returns per-campus meat and seafood usage combined
func (h *API) MeatStatistics(c *gin.Context) {
	h.usageStatistics(c, h.stats.MeatSeafood)
}

func (h *API) StatisticsSummary(c *gin.Context) {
	generationID, found, ok := h.generationFor(c)
	if !ok {
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    []models.CategorySummary{},
			"message": "No recipe generation with statistics yet",
		})
		return
	}
	rows, err := h.stats.Summary(c.Request.Context(), generationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "generationId": generationID, "data": rows})
}

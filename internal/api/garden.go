package api

import (
	"net/http"

	"capsicum/internal/middleware"
	"capsicum/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) GetPlants(c *gin.Context) {
	plants, err := h.store.GetPlants(middleware.UserID(c))
	if err != nil {
		h.logger.Error("get_plants_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching plants."})
		return
	}
	c.JSON(http.StatusOK, plants)
}

func (h *Handlers) CreatePlant(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Variety string `json:"variety"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Variety == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and variety are required."})
		return
	}

	plant, err := h.store.CreatePlant(middleware.UserID(c), input.Name, input.Variety)
	if err != nil {
		h.logger.Error("create_plant_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error adding plant."})
		return
	}
	c.JSON(http.StatusCreated, plant)
}

// DeletePlant is scoped to id AND owner; a non-owned or unknown id affects
// zero rows and still returns 204.
func (h *Handlers) DeletePlant(c *gin.Context) {
	if err := h.store.DeletePlant(c.Param("plantId"), middleware.UserID(c)); err != nil {
		h.logger.Error("delete_plant_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error deleting plant."})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) CreateEntry(c *gin.Context) {
	plantID := c.Param("plantId")
	userID := middleware.UserID(c)

	var input struct {
		Type     string `json:"type"`
		Notes    string `json:"notes"`
		ImageURL string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidEntryType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A valid entry type is required."})
		return
	}

	owned, err := h.store.PlantOwnedBy(plantID, userID)
	if err != nil {
		h.logger.Error("plant_lookup_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error adding journal entry."})
		return
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"message": "Plant not found."})
		return
	}

	entry, err := h.store.CreateEntry(plantID, userID, input.Type, input.Notes, input.ImageURL)
	if err != nil {
		h.logger.Error("create_entry_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error adding journal entry."})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

package api

import (
	"net/http"

	"capsicum/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The AI handlers validate input, forward to the generator and relay the
// parsed result. Upstream failures are logged with detail; the client only
// ever sees a generic message.

func (h *Handlers) Diagnose(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"imageBase64"`
		MimeType    string `json:"mimeType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ImageBase64 == "" || input.MimeType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image data and mimeType are required."})
		return
	}

	diagnosis, err := h.gen.DiagnosePlant(c.Request.Context(), input.ImageBase64, input.MimeType)
	if err != nil {
		h.logger.Error("ai_diagnosis_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get AI diagnosis."})
		return
	}
	c.JSON(http.StatusOK, diagnosis)
}

func (h *Handlers) ChiliData(c *gin.Context) {
	var input struct {
		ChiliName string `json:"chiliName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ChiliName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "chiliName is required."})
		return
	}

	data, err := h.gen.VarietyProfile(c.Request.Context(), input.ChiliName)
	if err != nil {
		h.logger.Error("ai_chili_data_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get chili data."})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handlers) WeatherTip(c *gin.Context) {
	var weather models.WeatherData
	if err := c.ShouldBindJSON(&weather); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Weather data is required."})
		return
	}

	tip, err := h.gen.WeatherTip(c.Request.Context(), weather)
	if err != nil {
		h.logger.Error("ai_weather_tip_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get AI weather tip."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

package api

import (
	"net/http"

	"capsicum/internal/middleware"
	"capsicum/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handlers) Profile(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.store.GetUserByID(userID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	if err != nil {
		h.logger.Error("get_user_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching profile."})
		return
	}

	achievements, err := h.store.GetAchievements(userID)
	if err != nil {
		h.logger.Error("get_achievements_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching profile."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "achievements": achievements})
}

func (h *Handlers) UnlockAchievement(c *gin.Context) {
	var input struct {
		AchievementID string `json:"achievementId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.AchievementID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "achievementId is required."})
		return
	}

	if err := h.store.UnlockAchievement(middleware.UserID(c), input.AchievementID); err != nil {
		h.logger.Error("unlock_achievement_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error unlocking achievement."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Achievement unlocked."})
}

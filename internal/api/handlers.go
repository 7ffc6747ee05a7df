package api

import (
	"net/http"

	"capsicum/internal/ai"
	"capsicum/internal/auth"
	"capsicum/internal/middleware"
	"capsicum/internal/models"
	"capsicum/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	store     store.Store
	gen       ai.Generator
	logger    *zap.Logger
	jwtSecret []byte
}

func NewHandlers(s store.Store, gen ai.Generator, logger *zap.Logger, jwtSecret []byte) *Handlers {
	return &Handlers{store: s, gen: gen, logger: logger, jwtSecret: jwtSecret}
}

// Routes declares every endpoint and its authorization requirement in one
// place. Everything except registration and login sits behind the auth gate.
func (h *Handlers) Routes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "Project Capsicum API is running!")
	})

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", middleware.Auth(h.jwtSecret))
	{
		authed.GET("/profile", h.Profile)
		authed.POST("/profile/achievements", h.UnlockAchievement)

		authed.GET("/garden/plants", h.GetPlants)
		authed.POST("/garden/plants", h.CreatePlant)
		authed.DELETE("/garden/plants/:plantId", h.DeletePlant)
		authed.POST("/garden/plants/:plantId/entries", h.CreateEntry)

		authed.GET("/community/posts", h.GetPosts)
		authed.POST("/community/posts", h.CreatePost)

		authed.POST("/ai/diagnose", h.Diagnose)
		authed.POST("/ai/chili-data", h.ChiliData)
		authed.POST("/ai/weather-tip", h.WeatherTip)
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) Register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required."})
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		h.logger.Error("password_hash_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration."})
		return
	}

	user, err := h.store.CreateUser(creds.Username, hash)
	if err == store.ErrDuplicate {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists."})
		return
	}
	if err != nil {
		h.logger.Error("create_user_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration."})
		return
	}

	if err := h.store.UnlockAchievement(user.ID, models.AchievementJoinedCommunity); err != nil {
		h.logger.Error("unlock_achievement_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration."})
		return
	}

	token, err := auth.CreateToken(user.ID, h.jwtSecret)
	if err != nil {
		h.logger.Error("create_token_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handlers) Login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required."})
		return
	}

	// Unknown user and wrong password produce the same message so usernames
	// cannot be enumerated.
	user, err := h.store.GetUserByUsername(creds.Username)
	if err == store.ErrNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials."})
		return
	}
	if err != nil {
		h.logger.Error("get_user_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login."})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials."})
		return
	}

	token, err := auth.CreateToken(user.ID, h.jwtSecret)
	if err != nil {
		h.logger.Error("create_token_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

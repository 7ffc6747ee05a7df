package api

import (
	"net/http"

	"capsicum/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// feedLimit bounds the community feed to the most recent posts.
const feedLimit = 50

func (h *Handlers) GetPosts(c *gin.Context) {
	posts, err := h.store.GetPosts(feedLimit)
	if err != nil {
		h.logger.Error("get_posts_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error fetching posts."})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handlers) CreatePost(c *gin.Context) {
	var input struct {
		Text      string `json:"text"`
		ImageURL  string `json:"imageUrl"`
		Diagnosis string `json:"diagnosis"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required."})
		return
	}

	post, err := h.store.CreatePost(middleware.UserID(c), input.Text, input.ImageURL, input.Diagnosis)
	if err != nil {
		h.logger.Error("create_post_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error creating post."})
		return
	}
	c.JSON(http.StatusCreated, post)
}

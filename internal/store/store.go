package store

import (
	"errors"
	"time"

	"capsicum/internal/models"
)

// Sentinel errors returned by Store implementations. Handlers map these onto
// HTTP status codes; anything else is an internal error.
var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Store defines the interface for all database operations
type Store interface {
	// Users
	CreateUser(username, passwordHash string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetUserByID(id string) (models.User, error)

	// Plants
	CreatePlant(userID, name, variety string) (models.Plant, error)
	GetPlants(userID string) ([]models.Plant, error)
	DeletePlant(plantID, userID string) error
	PlantOwnedBy(plantID, userID string) (bool, error)

	// Journal entries
	CreateEntry(plantID, userID, entryType, notes, imageURL string) (models.JournalEntry, error)
	GetEntriesByTimeRange(userID string, start, end time.Time) ([]models.JournalEntry, error)

	// Community posts
	GetPosts(limit int) ([]models.Post, error)
	CreatePost(userID, text, imageURL, diagnosis string) (models.Post, error)

	// Achievements
	UnlockAchievement(userID, achievementID string) error
	GetAchievements(userID string) ([]string, error)

	Close() error
}

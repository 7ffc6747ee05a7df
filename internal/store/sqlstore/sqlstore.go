package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"capsicum/internal/models"
	"capsicum/internal/store"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// SQLStore implements the Store interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

var _ store.Store = (*SQLStore)(nil)

// New creates a new SQLStore with the given driver and connection string
func New(driver, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:     db,
		dbType: DBType(driver),
	}

	if s.dbType == SQLite {
		// A single pooled connection keeps :memory: databases coherent and
		// avoids SQLITE_BUSY under concurrent writes.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, err
		}
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema() error {
	var stmts []string

	if s.dbType == Postgres {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				username VARCHAR(50) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS plants (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				name VARCHAR(100) NOT NULL,
				variety VARCHAR(100) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS journal_entries (
				id UUID PRIMARY KEY,
				plant_id UUID NOT NULL REFERENCES plants(id) ON DELETE CASCADE,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				date TIMESTAMPTZ NOT NULL,
				type VARCHAR(50) NOT NULL,
				notes TEXT,
				image_url TEXT
			);`,
			`CREATE TABLE IF NOT EXISTS posts (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				image_url TEXT,
				diagnosis VARCHAR(255),
				created_at TIMESTAMPTZ NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS achievements (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				achievement_id VARCHAR(100) NOT NULL,
				unlocked_at TIMESTAMPTZ NOT NULL,
				UNIQUE(user_id, achievement_id)
			);`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at DATETIME NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS plants (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				name TEXT NOT NULL,
				variety TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS journal_entries (
				id TEXT PRIMARY KEY,
				plant_id TEXT NOT NULL,
				user_id TEXT NOT NULL,
				date DATETIME NOT NULL,
				type TEXT NOT NULL,
				notes TEXT,
				image_url TEXT,
				FOREIGN KEY(plant_id) REFERENCES plants(id) ON DELETE CASCADE,
				FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS posts (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				text TEXT NOT NULL,
				image_url TEXT,
				diagnosis TEXT,
				created_at DATETIME NOT NULL,
				FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
			);`,
			`CREATE TABLE IF NOT EXISTS achievements (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL,
				achievement_id TEXT NOT NULL,
				unlocked_at DATETIME NOT NULL,
				UNIQUE(user_id, achievement_id),
				FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
			);`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// User functions
func (s *SQLStore) CreateUser(username, passwordHash string) (models.User, error) {
	u := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.Exec(s.rebind("INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)"),
		u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, store.ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *SQLStore) GetUserByUsername(username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(s.rebind("SELECT id, username, password_hash, created_at FROM users WHERE username = ?"), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	}
	return u, err
}

func (s *SQLStore) GetUserByID(id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(s.rebind("SELECT id, username, password_hash, created_at FROM users WHERE id = ?"), id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	}
	return u, err
}

// Plant functions
func (s *SQLStore) CreatePlant(userID, name, variety string) (models.Plant, error) {
	p := models.Plant{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Variety:   variety,
		CreatedAt: time.Now().UTC(),
		Entries:   []models.JournalEntry{},
	}
	_, err := s.db.Exec(s.rebind("INSERT INTO plants (id, user_id, name, variety, created_at) VALUES (?, ?, ?, ?, ?)"),
		p.ID, p.UserID, p.Name, p.Variety, p.CreatedAt)
	if err != nil {
		return models.Plant{}, err
	}
	return p, nil
}

func (s *SQLStore) GetPlants(userID string) ([]models.Plant, error) {
	rows, err := s.db.Query(s.rebind("SELECT id, user_id, name, variety, created_at FROM plants WHERE user_id = ? ORDER BY created_at DESC"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plants := []models.Plant{}
	for rows.Next() {
		var p models.Plant
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Entries = []models.JournalEntry{}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(plants) == 0 {
		return plants, nil
	}

	plantIDs := make([]string, len(plants))
	for i, p := range plants {
		plantIDs[i] = p.ID
	}
	entries, err := s.getEntriesByPlantIDs(plantIDs)
	if err != nil {
		return nil, err
	}
	for i := range plants {
		if es, ok := entries[plants[i].ID]; ok {
			plants[i].Entries = es
		}
	}
	return plants, nil
}

func (s *SQLStore) getEntriesByPlantIDs(plantIDs []string) (map[string][]models.JournalEntry, error) {
	placeholders := make([]string, len(plantIDs))
	args := make([]interface{}, len(plantIDs))
	for i, id := range plantIDs {
		if s.dbType == Postgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
		args[i] = id
	}

	query := fmt.Sprintf("SELECT id, plant_id, user_id, date, type, notes, image_url FROM journal_entries WHERE plant_id IN (%s) ORDER BY date DESC", strings.Join(placeholders, ","))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]models.JournalEntry)
	for rows.Next() {
		var e models.JournalEntry
		var notes, imageURL sql.NullString
		if err := rows.Scan(&e.ID, &e.PlantID, &e.UserID, &e.Date, &e.Type, &notes, &imageURL); err != nil {
			return nil, err
		}
		e.Notes = notes.String
		e.ImageURL = imageURL.String
		result[e.PlantID] = append(result[e.PlantID], e)
	}
	return result, rows.Err()
}

// DeletePlant removes a plant scoped to its owner. Deleting a plant that does
// not exist or belongs to someone else affects zero rows and is not an error.
func (s *SQLStore) DeletePlant(plantID, userID string) error {
	result, err := s.db.Exec(s.rebind("DELETE FROM plants WHERE id = ? AND user_id = ?"), plantID, userID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n > 0 {
		// Schema cascades handle this too; the explicit delete covers SQLite
		// databases created without the foreign_keys pragma.
		s.db.Exec(s.rebind("DELETE FROM journal_entries WHERE plant_id = ?"), plantID)
	}
	return nil
}

func (s *SQLStore) PlantOwnedBy(plantID, userID string) (bool, error) {
	var one int
	err := s.db.QueryRow(s.rebind("SELECT 1 FROM plants WHERE id = ? AND user_id = ?"), plantID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Journal entry functions
func (s *SQLStore) CreateEntry(plantID, userID, entryType, notes, imageURL string) (models.JournalEntry, error) {
	e := models.JournalEntry{
		ID:       uuid.New().String(),
		PlantID:  plantID,
		UserID:   userID,
		Date:     time.Now().UTC(),
		Type:     entryType,
		Notes:    notes,
		ImageURL: imageURL,
	}
	_, err := s.db.Exec(s.rebind("INSERT INTO journal_entries (id, plant_id, user_id, date, type, notes, image_url) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		e.ID, e.PlantID, e.UserID, e.Date, e.Type, e.Notes, e.ImageURL)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

func (s *SQLStore) GetEntriesByTimeRange(userID string, start, end time.Time) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(s.rebind("SELECT id, plant_id, user_id, date, type, notes, image_url FROM journal_entries WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date DESC"),
		userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		var notes, imageURL sql.NullString
		if err := rows.Scan(&e.ID, &e.PlantID, &e.UserID, &e.Date, &e.Type, &notes, &imageURL); err != nil {
			return nil, err
		}
		e.Notes = notes.String
		e.ImageURL = imageURL.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Post functions
func (s *SQLStore) GetPosts(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(s.rebind(`SELECT posts.id, posts.user_id, users.username, posts.text, posts.image_url, posts.diagnosis, posts.created_at
		FROM posts JOIN users ON posts.user_id = users.id
		ORDER BY posts.created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		var imageURL, diagnosis sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Text, &imageURL, &diagnosis, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.ImageURL = imageURL.String
		p.Diagnosis = diagnosis.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *SQLStore) CreatePost(userID, text, imageURL, diagnosis string) (models.Post, error) {
	p := models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		ImageURL:  imageURL,
		Diagnosis: diagnosis,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(s.rebind("INSERT INTO posts (id, user_id, text, image_url, diagnosis, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		p.ID, p.UserID, p.Text, p.ImageURL, p.Diagnosis, p.CreatedAt)
	if err != nil {
		return models.Post{}, err
	}
	// Separate lookup rather than a join on write; the username cannot change
	// between the two statements through any exposed operation.
	err = s.db.QueryRow(s.rebind("SELECT username FROM users WHERE id = ?"), userID).Scan(&p.Username)
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Achievement functions

// UnlockAchievement is idempotent: unlocking an already-unlocked achievement
// is swallowed by the unique constraint, not surfaced as an error.
func (s *SQLStore) UnlockAchievement(userID, achievementID string) error {
	query := "INSERT INTO achievements (id, user_id, achievement_id, unlocked_at) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING"
	if s.dbType == SQLite {
		query = "INSERT OR IGNORE INTO achievements (id, user_id, achievement_id, unlocked_at) VALUES (?, ?, ?, ?)"
	}
	_, err := s.db.Exec(s.rebind(query), uuid.New().String(), userID, achievementID, time.Now().UTC())
	return err
}

func (s *SQLStore) GetAchievements(userID string) ([]string, error) {
	rows, err := s.db.Query(s.rebind("SELECT achievement_id FROM achievements WHERE user_id = ? ORDER BY unlocked_at ASC"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Plant struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Variety   string         `json:"variety"`
	CreatedAt time.Time      `json:"created_at"`
	Entries   []JournalEntry `json:"entries"`
}

type JournalEntry struct {
	ID       string    `json:"id"`
	PlantID  string    `json:"plant_id"`
	UserID   string    `json:"user_id"`
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes"`
	ImageURL string    `json:"image_url,omitempty"`
}

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"image_url,omitempty"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Diagnosis is the structured result of an AI plant diagnosis.
type Diagnosis struct {
	DiseaseName       string   `json:"diseaseName"`
	Description       string   `json:"description"`
	OrganicTreatment  []string `json:"organicTreatment"`
	ChemicalTreatment []string `json:"chemicalTreatment"`
}

// ChiliData is the structured profile of a chili variety.
type ChiliData struct {
	VarietyName   string `json:"varietyName"`
	Species       string `json:"species"`
	SHU           string `json:"shu"`
	Origin        string `json:"origin"`
	FlavorProfile string `json:"flavorProfile"`
}

// WeatherData is a client-supplied weather observation.
type WeatherData struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

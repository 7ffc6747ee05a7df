package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var samplePlants = []struct {
	name    string
	variety string
}{
	{"Window Sill Jala", "Jalapeño"},
	{"Big Red", "Carolina Reaper"},
	{"Hab One", "Habanero"},
	{"Smoky", "Poblano"},
	{"Little Fire", "Aji Charapita"},
}

var entryTypes = []string{"Note", "Watered", "Fertilized", "Pest Control", "First Flower", "Harvested"}

var sampleNotes = []string{
	"Looking healthy today",
	"Leaves slightly curled, keeping an eye on it",
	"New growth at the top",
	"Moved closer to the window",
	"Soil was dry, gave it a good soak",
	"Tiny aphids on the underside, treated with neem oil",
	"First buds forming",
	"Picked three ripe pods",
	"Repotted into a bigger container",
	"Added a layer of mulch",
}

func main() {
	db, err := sql.Open("sqlite3", "file:capsicum.db?_foreign_keys=on")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Seed against the first registered user
	var userID string
	if err := db.QueryRow("SELECT id FROM users ORDER BY created_at ASC LIMIT 1").Scan(&userID); err != nil {
		log.Fatalf("Could not find a user to seed for (register one first): %v", err)
	}

	fmt.Printf("Seeding garden for user %s\n", userID)

	now := time.Now()
	oneYearAgo := now.AddDate(-1, 0, 0)
	inserted := 0

	for _, sp := range samplePlants {
		plantID := uuid.New().String()
		createdAt := oneYearAgo.Add(time.Duration(rand.Intn(30*24)) * time.Hour)
		_, err := db.Exec(
			"INSERT INTO plants (id, user_id, name, variety, created_at) VALUES (?, ?, ?, ?, ?)",
			plantID, userID, sp.name, sp.variety, createdAt,
		)
		if err != nil {
			log.Printf("Error inserting plant: %v", err)
			continue
		}

		// A few entries per month since the plant was added
		for day := createdAt; day.Before(now); day = day.AddDate(0, 0, 7+rand.Intn(7)) {
			entryType := entryTypes[rand.Intn(len(entryTypes))]
			notes := sampleNotes[rand.Intn(len(sampleNotes))]
			_, err := db.Exec(
				"INSERT INTO journal_entries (id, plant_id, user_id, date, type, notes, image_url) VALUES (?, ?, ?, ?, ?, ?, ?)",
				uuid.New().String(), plantID, userID, day, entryType, notes, "",
			)
			if err != nil {
				log.Printf("Error inserting entry: %v", err)
				continue
			}
			inserted++
		}
	}

	fmt.Printf("Inserted %d plants and %d journal entries\n", len(samplePlants), inserted)
}

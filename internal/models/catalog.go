package models

// Journal entry types. The set is fixed; anything else is rejected at the API.
const (
	EntryNote        = "Note"
	EntryWatered     = "Watered"
	EntryFertilized  = "Fertilized"
	EntryPestControl = "Pest Control"
	EntryFirstFlower = "First Flower"
	EntryHarvested   = "Harvested"
)

var EntryTypes = []string{
	EntryNote,
	EntryWatered,
	EntryFertilized,
	EntryPestControl,
	EntryFirstFlower,
	EntryHarvested,
}

func ValidEntryType(t string) bool {
	for _, e := range EntryTypes {
		if e == t {
			return true
		}
	}
	return false
}

// Achievement unlock keys. The catalog below is static configuration; unlock
// rows in the database only store the key.
const (
	AchievementFirstPlant      = "first_plant"
	AchievementFirstEntry      = "first_entry"
	AchievementFirstHarvest    = "first_harvest"
	AchievementFirstDiagnosis  = "first_diagnosis"
	AchievementResearcher      = "researcher"
	AchievementJoinedCommunity = "joined_community"
	AchievementFirstPost       = "first_post"
	AchievementSharer          = "sharer"
)

type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var AchievementCatalog = []AchievementDef{
	{ID: AchievementFirstPlant, Name: "Green Thumb", Description: "You added your very first plant to the garden!", Icon: "🌱"},
	{ID: AchievementFirstEntry, Name: "Field Reporter", Description: "You made your first journal entry.", Icon: "📝"},
	{ID: AchievementFirstHarvest, Name: "Bountiful Harvest", Description: "You logged your first harvest. Well done!", Icon: "🌶️"},
	{ID: AchievementFirstDiagnosis, Name: "Plant Medic", Description: "You used Dr. Chili to diagnose a plant for the first time.", Icon: "🩺"},
	{ID: AchievementResearcher, Name: "Researcher", Description: "You looked up a chili in the database.", Icon: "📚"},
	{ID: AchievementJoinedCommunity, Name: "Town Crier", Description: "You set a username and joined the community.", Icon: "💬"},
	{ID: AchievementFirstPost, Name: "On the Air", Description: "You made your first post in the community feed.", Icon: "📢"},
	{ID: AchievementSharer, Name: "Helpful Hand", Description: "You shared a diagnosis with the community for feedback.", Icon: "🤝"},
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"capsicum/internal/models"
	"capsicum/internal/store/sqlstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGenerator satisfies ai.Generator and counts upstream invocations so
// tests can assert validation short-circuits before any AI call.
type stubGenerator struct {
	calls int
}

func (s *stubGenerator) DiagnosePlant(ctx context.Context, imageBase64, mimeType string) (models.Diagnosis, error) {
	s.calls++
	return models.Diagnosis{
		DiseaseName:       "Aphid infestation",
		Description:       "Small sap-sucking insects on the underside of leaves.",
		OrganicTreatment:  []string{"Neem oil spray"},
		ChemicalTreatment: []string{"Imidacloprid"},
	}, nil
}

func (s *stubGenerator) VarietyProfile(ctx context.Context, name string) (models.ChiliData, error) {
	s.calls++
	return models.ChiliData{
		VarietyName:   name,
		Species:       "Capsicum annuum",
		SHU:           "2,500-8,000",
		Origin:        "Mexico",
		FlavorProfile: "Bright and grassy",
	}, nil
}

func (s *stubGenerator) WeatherTip(ctx context.Context, weather models.WeatherData) (string, error) {
	s.calls++
	return "Water early in the morning before the heat peaks.", nil
}

func newTestServer(t *testing.T) (*gin.Engine, *stubGenerator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := sqlstore.New("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	gen := &stubGenerator{}
	h := NewHandlers(st, gen, zap.NewNop(), []byte("test-secret"))

	r := gin.New()
	h.Routes(r)
	return r, gen
}

func doRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username": %q, "password": "password123"}`, username)
	w := doRequest(r, "POST", "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, username, resp.User.Username)
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice")

	// Duplicate username
	w := doRequest(r, "POST", "/api/auth/register", `{"username": "alice", "password": "other"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists.")

	// Missing fields
	w = doRequest(r, "POST", "/api/auth/register", `{"username": "bob"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login
	w = doRequest(r, "POST", "/api/auth/login", `{"username": "alice", "password": "password123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	r, _ := newTestServer(t)
	register(t, r, "alice")

	wrongPassword := doRequest(r, "POST", "/api/auth/login", `{"username": "alice", "password": "wrong"}`, "")
	unknownUser := doRequest(r, "POST", "/api/auth/login", `{"username": "nobody", "password": "x"}`, "")

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestServer(t)

	for _, path := range []string{"/api/garden/plants", "/api/community/posts", "/api/profile"} {
		w := doRequest(r, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doRequest(r, "GET", "/api/garden/plants", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlantFlow(t *testing.T) {
	r, _ := newTestServer(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	// Create a plant; it starts with an empty entries collection.
	w := doRequest(r, "POST", "/api/garden/plants", `{"name": "Window Sill Jala", "variety": "Jalapeño"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plant))
	assert.NotEmpty(t, plant.ID)
	assert.NotNil(t, plant.Entries)
	assert.Empty(t, plant.Entries)

	// Missing variety
	w = doRequest(r, "POST", "/api/garden/plants", `{"name": "No Variety"}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Listing returns exactly one plant with empty entries.
	w = doRequest(r, "GET", "/api/garden/plants", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var plants []models.Plant
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plants))
	require.Len(t, plants, 1)
	assert.Empty(t, plants[0].Entries)

	// Bob deleting Alice's plant succeeds silently and changes nothing.
	w = doRequest(r, "DELETE", "/api/garden/plants/"+plant.ID, "", bob)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(r, "GET", "/api/garden/plants", "", alice)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plants))
	assert.Len(t, plants, 1)

	// Alice deletes it for real.
	w = doRequest(r, "DELETE", "/api/garden/plants/"+plant.ID, "", alice)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(r, "GET", "/api/garden/plants", "", alice)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plants))
	assert.Empty(t, plants)
}

func TestJournalEntries(t *testing.T) {
	r, _ := newTestServer(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	w := doRequest(r, "POST", "/api/garden/plants", `{"name": "Hab One", "variety": "Habanero"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plant))

	// Unknown entry type is rejected.
	w = doRequest(r, "POST", "/api/garden/plants/"+plant.ID+"/entries", `{"type": "Pruned", "notes": "x"}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bob cannot attach entries to Alice's plant.
	w = doRequest(r, "POST", "/api/garden/plants/"+plant.ID+"/entries", `{"type": "Note", "notes": "sneaky"}`, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, "POST", "/api/garden/plants/"+plant.ID+"/entries", `{"type": "Watered", "notes": "good soak"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	time.Sleep(10 * time.Millisecond)
	w = doRequest(r, "POST", "/api/garden/plants/"+plant.ID+"/entries", `{"type": "Harvested", "notes": "three pods"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	// The newest entry sits at the head of the plant's entry list.
	w = doRequest(r, "GET", "/api/garden/plants", "", alice)
	var plants []models.Plant
	require.NoError(t, json.NewDecoder(w.Body).Decode(&plants))
	require.Len(t, plants, 1)
	require.Len(t, plants[0].Entries, 2)
	assert.Equal(t, models.EntryHarvested, plants[0].Entries[0].Type)

	// The harvest unlock is idempotent end to end.
	for i := 0; i < 2; i++ {
		w = doRequest(r, "POST", "/api/profile/achievements", `{"achievementId": "first_harvest"}`, alice)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w = doRequest(r, "GET", "/api/profile", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		User         models.User `json:"user"`
		Achievements []string    `json:"achievements"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "alice", profile.User.Username)
	// joined_community from registration plus the single first_harvest row.
	assert.ElementsMatch(t, []string{models.AchievementJoinedCommunity, models.AchievementFirstHarvest}, profile.Achievements)
}

func TestCommunityFeed(t *testing.T) {
	r, _ := newTestServer(t)
	alice := register(t, r, "alice")

	w := doRequest(r, "POST", "/api/community/posts", `{"text": "My first harvest!", "diagnosis": "Healthy"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&post))
	assert.Equal(t, "alice", post.Username)
	assert.Equal(t, "Healthy", post.Diagnosis)

	time.Sleep(10 * time.Millisecond)
	w = doRequest(r, "POST", "/api/community/posts", `{"text": "Second post"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "GET", "/api/community/posts", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []models.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "Second post", posts[0].Text)

	// Empty text is rejected.
	w = doRequest(r, "POST", "/api/community/posts", `{}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiagnoseValidation(t *testing.T) {
	r, gen := newTestServer(t)
	alice := register(t, r, "alice")

	// Missing image: rejected before any AI call is made.
	w := doRequest(r, "POST", "/api/ai/diagnose", `{"mimeType": "image/png"}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(r, "POST", "/api/ai/diagnose", `{"imageBase64": "aGVsbG8="}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gen.calls)

	w = doRequest(r, "POST", "/api/ai/diagnose", `{"imageBase64": "aGVsbG8=", "mimeType": "image/png"}`, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gen.calls)

	var diagnosis models.Diagnosis
	require.NoError(t, json.NewDecoder(w.Body).Decode(&diagnosis))
	assert.Equal(t, "Aphid infestation", diagnosis.DiseaseName)
	assert.NotEmpty(t, diagnosis.OrganicTreatment)
}

func TestChiliData(t *testing.T) {
	r, gen := newTestServer(t)
	alice := register(t, r, "alice")

	w := doRequest(r, "POST", "/api/ai/chili-data", `{}`, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gen.calls)

	w = doRequest(r, "POST", "/api/ai/chili-data", `{"chiliName": "Jalapeño"}`, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var data models.ChiliData
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, "Jalapeño", data.VarietyName)
	assert.Equal(t, "Capsicum annuum", data.Species)
}

func TestWeatherTip(t *testing.T) {
	r, _ := newTestServer(t)
	alice := register(t, r, "alice")

	w := doRequest(r, "POST", "/api/ai/weather-tip", "", alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := `{"city": "Vienna", "temperature": 28.5, "condition": "Sunny", "humidity": 40, "windSpeed": 12}`
	w = doRequest(r, "POST", "/api/ai/weather-tip", body, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp["tip"])
}

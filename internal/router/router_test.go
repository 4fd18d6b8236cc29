package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/balanceai/wellness-backend/config"
	"github.com/balanceai/wellness-backend/internal/api"
	"github.com/balanceai/wellness-backend/internal/models"
	"github.com/balanceai/wellness-backend/internal/router"
	"github.com/balanceai/wellness-backend/internal/service"
	"github.com/balanceai/wellness-backend/internal/testhelpers"
)

func setupTestServer(t *testing.T, chatURL string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	ai, err := service.NewOpenAIService(&config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIChatURL: chatURL,
		ChatModel:     "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("failed to create OpenAI client: %v", err)
	}

	authService := service.NewAuthService(db, "test-secret")
	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Profile:   api.NewProfileHandler(service.NewProfileService(db)),
		Checkup:   api.NewCheckupHandler(service.NewCheckupService(db)),
		Chat:      api.NewChatHandler(service.NewChatService(db, ai)),
		Guidance:  api.NewGuidanceHandler(service.NewGuidanceService(db)),
		Scanner:   api.NewScannerHandler(service.NewScannerService(db, ai, nil)),
		Voice:     api.NewVoiceHandler(service.NewVoiceService(ai)),
		Workout:   api.NewWorkoutHandler(service.NewWorkoutService(db)),
		Todo:      api.NewTodoHandler(service.NewTodoService(db)),
		Dashboard: api.NewDashboardHandler(service.NewDashboardService(db, nil)),
	}

	return router.SetupRouter(handlers, authService, nil), db
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","display_name":"Tester","age":20}`, email)
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse register response: %v", err)
	}
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")

	token := registerUser(t, r, "flow@example.com")
	assert.NotEmpty(t, token)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"flow@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", `{"email":"flow@example.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, db := setupTestServer(t, "http://unused")

	// Short password is rejected before any row is written.
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", `{"email":"x@example.com","password":"short","display_name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/register", "", `{"email":"not-an-email","password":"password123","display_name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodPost, "/api/v1/chat"},
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodPost, "/api/v1/checkups"},
		{http.MethodGet, "/api/v1/guidance/today"},
	}
	for _, p := range paths {
		w := doJSON(r, p.method, p.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", p.path)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/profile", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"You got this!"}}],"usage":{"total_tokens":10}}`)
	}))
	defer ts.Close()

	r, db := setupTestServer(t, ts.URL)
	token := registerUser(t, r, "chat@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/chat", token, `{"message":"motivate me"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "You got this!", resp.Message)

	// Missing message is a binding failure; nothing is stored.
	var before int64
	db.Model(&models.ChatMessage{}).Count(&before)
	w = doJSON(r, http.MethodPost, "/api/v1/chat", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var after int64
	db.Model(&models.ChatMessage{}).Count(&after)
	assert.Equal(t, before, after)

	w = doJSON(r, http.MethodGet, "/api/v1/chat/history", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckupEndpoint(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "checkup@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/checkups", token,
		`{"answers":{"1":1,"2":0,"3":2,"4":0,"5":1,"6":0,"7":0}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Checkup struct {
			Score     int    `json:"score"`
			RiskLevel string `json:"risk_level"`
		} `json:"checkup"`
		SafetyAlert bool `json:"safety_alert"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Checkup.Score)
	assert.Equal(t, "low", resp.Checkup.RiskLevel)
	assert.False(t, resp.SafetyAlert)

	// Incomplete submissions are rejected.
	w = doJSON(r, http.MethodPost, "/api/v1/checkups", token, `{"answers":{"1":1}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/checkups", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVoiceEndpointInvalidAction(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "voice@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/voice", token, `{"action":"hum-a-tune"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid action")

	w = doJSON(r, http.MethodPost, "/api/v1/voice", token, `{"action":"speech-to-text","audio":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/voice", token, `{"action":"text-to-speech","text":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScannerEndpointValidation(t *testing.T) {
	r, db := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "scan@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/scanner/analyze", token, `{"image":"data:image/png;base64,aGk=","scan_type":"xray"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.ScanResult{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestWorkoutEndpoints(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "workout@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/workouts/plans", token,
		`{"title":"Push Day","difficulty":"intermediate","duration_minutes":45,"exercises":[{"name":"Bench","sets":3,"reps":10}]}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/workouts/sessions", token, `{}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var session struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))

	// A second open session conflicts.
	w = doJSON(r, http.MethodPost, "/api/v1/workouts/sessions", token, `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/workouts/sessions/"+session.ID+"/complete", token,
		`{"rating":4,"calories_burned":250,"notes":"solid"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/workouts/sessions", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTodoEndpoints(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "todo@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/todos", token, `{"task":"drink water","priority":2}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var item struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(r, http.MethodPost, "/api/v1/todos/"+item.ID+"/toggle", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/todos/"+item.ID, token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/todos/"+item.ID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "dash@example.com")

	w := doJSON(r, http.MethodGet, "/api/v1/dashboard", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Metrics      []json.RawMessage `json:"metrics"`
		Achievements []json.RawMessage `json:"achievements"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.NotEmpty(t, data.Metrics)
	assert.NotEmpty(t, data.Achievements)

	w = doJSON(r, http.MethodGet, "/api/v1/dashboard/children", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "profile@example.com")

	w := doJSON(r, http.MethodGet, "/api/v1/profile", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/api/v1/profile", token,
		`{"display_name":"Renamed","age":21,"fitness_level":"advanced"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		DisplayName  string `json:"display_name"`
		FitnessLevel string `json:"fitness_level"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Renamed", profile.DisplayName)
	assert.Equal(t, "advanced", profile.FitnessLevel)
}

func TestGuidanceEndpointNotFound(t *testing.T) {
	r, _ := setupTestServer(t, "http://unused")
	token := registerUser(t, r, "guide@example.com")

	w := doJSON(r, http.MethodGet, "/api/v1/guidance/today", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/guidance/toggle-task", token, `{"task_id":"meditation"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/careconnect/internal/app"
	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/db"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/service"
)

// newTestServer stands up the full HTTP surface on a migrated in-memory
// sqlite database. Only the services the exercised routes touch are
// wired; the rest stay nil.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		AppName:   "CareConnect",
		AppEnv:    "development",
		AppURL:    "http://localhost:8090",
		JWTSecret: "routes-test-secret",
		JWTExpiry: time.Hour,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	causeRepo := repository.NewCauseRepository(database)
	taskRepo := repository.NewTaskRepository(database)

	emailService := service.NewEmailService("", "noreply@example.com", cfg.AppURL, cfg.AppName, true)
	authService := service.NewAuthService(userRepo, profileRepo, emailService, cfg.JWTSecret, false, cfg.JWTExpiry)

	a := &app.App{
		Cfg:          cfg,
		DB:           database,
		AuthService:  authService,
		UserService:  service.NewUserService(userRepo, profileRepo),
		CauseService: service.NewCauseService(causeRepo, nil),
		TaskService:  service.NewTaskService(taskRepo, causeRepo, userRepo, profileRepo, emailService),
	}

	srv := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(srv.Close)
	return srv
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func registerUser(t *testing.T, srv *httptest.Server, email, name, role string) string {
	t.Helper()

	status, envelope := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "correct-horse-battery",
		"name":     name,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// Status updates are authenticated but not role-gated at the route: the
// service decides per destination. A volunteer must be able to move
// their own approved task into in_progress and completed.
func TestVolunteerCanAdvanceOwnTask(t *testing.T) {
	srv := newTestServer(t)

	ngoToken := registerUser(t, srv, "ngo@example.org", "River Trust", "ngo")
	volToken := registerUser(t, srv, "vol@example.com", "Jamie Vol", "volunteer")

	status, envelope := doJSON(t, srv, http.MethodPost, "/api/causes", ngoToken, map[string]any{
		"title":    "River Cleanup",
		"category": "environment",
		"urgency":  3,
	})
	require.Equal(t, http.StatusCreated, status)
	var cause struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &cause))

	status, envelope = doJSON(t, srv, http.MethodPost, "/api/causes/"+cause.ID+"/apply", volToken, map[string]any{})
	require.Equal(t, http.StatusCreated, status)
	var task struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &task))
	assert.Equal(t, "pending", task.Status)

	status, _ = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/status", ngoToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, status)

	status, envelope = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/status", volToken, map[string]string{"status": "in_progress"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(envelope.Data, &task))
	assert.Equal(t, "in_progress", task.Status)

	status, envelope = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/status", volToken, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(envelope.Data, &task))
	assert.Equal(t, "completed", task.Status)
}

// Triage destinations still belong to the NGO even though the route
// admits any authenticated caller.
func TestVolunteerCannotTriage(t *testing.T) {
	srv := newTestServer(t)

	ngoToken := registerUser(t, srv, "ngo@example.org", "River Trust", "ngo")
	volToken := registerUser(t, srv, "vol@example.com", "Jamie Vol", "volunteer")

	status, envelope := doJSON(t, srv, http.MethodPost, "/api/causes", ngoToken, map[string]any{
		"title":    "Food Pantry",
		"category": "food",
		"urgency":  5,
	})
	require.Equal(t, http.StatusCreated, status)
	var cause struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &cause))

	status, envelope = doJSON(t, srv, http.MethodPost, "/api/causes/"+cause.ID+"/apply", volToken, map[string]any{})
	require.Equal(t, http.StatusCreated, status)
	var task struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &task))

	// Self-approval is a triage move and gets denied in the service.
	status, envelope = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/status", volToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, envelope.Error)

	// Unauthenticated callers never reach the service at all.
	status, _ = doJSON(t, srv, http.MethodPatch, "/api/tasks/"+task.ID+"/status", "", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

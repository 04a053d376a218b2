package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"biceppump/backend/internal/cache"
	"biceppump/backend/internal/metrics"
	"biceppump/backend/internal/repository"
	"biceppump/backend/internal/repository/memory"
	"biceppump/backend/internal/service"
	"biceppump/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type testServer struct {
	router  *gin.Engine
	store   *repository.Store
	objects *storage.MemoryStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	objects := storage.NewMemoryStorage("http://files.test")
	m, reg := metrics.NewTestManagerAndRegistry()
	tokens := service.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)
	leaderboard := service.NewLeaderboardService(store.Users, cache.NewLeaderboard(1, time.Minute))

	router := gin.New()
	SetupRoutes(router, RouterConfig{
		AuthService:        service.NewAuthService(store.Users, tokens, service.WithSignupObserver(leaderboard)),
		WorkoutService:     service.NewWorkoutService(store.Workouts),
		ExerciseService:    service.NewExerciseService(store.Exercises, store.Workouts),
		LeaderboardService: leaderboard,
		AnalyticsService: service.NewAnalyticsService(store.Workouts, store.Users, 30, m,
			service.WithScoreObserver(leaderboard),
			service.WithExportStorage(objects, time.Minute),
		),
		Metrics:      m,
		Gatherer:     reg,
		CookieMaxAge: 24 * time.Hour,
	})

	return &testServer{router: router, store: store, objects: objects}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signup registers name and returns the access token and user id.
func (s *testServer) signup(t *testing.T, name string) (token, userID string) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":            name,
		"email":           name + "@pump.test",
		"phoneNumber":     "+1-" + name,
		"password":        "secret123",
		"confirmPassword": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	decode(t, w, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

func ptr[T any](v T) *T {
	return &v
}

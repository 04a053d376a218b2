package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"biceppump/backend/internal/analytics"
	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) logExercise(t *testing.T, token, workoutID, name string, sets, reps int, weight *float64) {
	t.Helper()
	body := map[string]any{"name": name, "sets": sets, "reps": reps, "workoutId": workoutID}
	if weight != nil {
		body["weight"] = *weight
	}
	w := s.do(t, http.MethodPost, "/api/exercises", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAnalyticsHandlers_PumpScore(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.signup(t, "arnold")
	workout := s.createWorkout(t, token, "Legs")
	s.logExercise(t, token, workout.ID, "Squat", 3, 5, ptr(100.0))

	w := s.do(t, http.MethodGet, "/api/analytics/pump-score", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pumpScore":12,"breakdown":{"volume":15,"intensity":10,"frequency":10,"workoutCount":1}}`, w.Body.String())

	user, err := s.store.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 12, user.PumpScore)
}

func TestAnalyticsHandlers_ProgressAndRecords(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "arnold")
	first := s.createWorkout(t, token, "Monday")
	s.logExercise(t, token, first.ID, "Bench Press", 3, 8, ptr(80.0))
	s.logExercise(t, token, first.ID, "Pull-up", 3, 10, nil)
	second := s.createWorkout(t, token, "Thursday")
	s.logExercise(t, token, second.ID, "Bench Press", 3, 5, ptr(90.0))
	s.logExercise(t, token, second.ID, "bench press", 1, 1, ptr(100.0))

	w := s.do(t, http.MethodGet, "/api/analytics/progress?exercise=BENCH", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var progress struct {
		ProgressData []analytics.ProgressSeries `json:"progressData"`
	}
	decode(t, w, &progress)
	require.Len(t, progress.ProgressData, 2, "names are grouped exactly")
	assert.Equal(t, "Bench Press", progress.ProgressData[0].Exercise)
	require.Len(t, progress.ProgressData[0].Data, 2)
	assert.Equal(t, 1920.0, progress.ProgressData[0].Data[0].Volume)
	assert.Equal(t, "bench press", progress.ProgressData[1].Exercise)

	w = s.do(t, http.MethodGet, "/api/analytics/prs", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var prs struct {
		PersonalRecords []analytics.PersonalRecord `json:"personalRecords"`
	}
	decode(t, w, &prs)
	require.Len(t, prs.PersonalRecords, 3)
	assert.Equal(t, "Bench Press", prs.PersonalRecords[0].Exercise)
	assert.Equal(t, 90.0, *prs.PersonalRecords[0].Weight)
	assert.Equal(t, "Pull-up", prs.PersonalRecords[1].Exercise)
	assert.Nil(t, prs.PersonalRecords[1].Weight)
	assert.Equal(t, "bench press", prs.PersonalRecords[2].Exercise)
}

func TestAnalyticsHandlers_EmptyHistory(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "arnold")

	w := s.do(t, http.MethodGet, "/api/analytics/progress", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"progressData":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/analytics/prs", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"personalRecords":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/analytics/pump-score", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pumpScore":0,"breakdown":{"volume":0,"intensity":0,"frequency":0,"workoutCount":0}}`, w.Body.String())
}

func TestAnalyticsHandlers_Unauthenticated(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/analytics/progress", "/api/analytics/pump-score", "/api/analytics/prs"} {
		w := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAnalyticsHandlers_Export(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.signup(t, "arnold")
	workout := s.createWorkout(t, token, "Legs")
	s.logExercise(t, token, workout.ID, "Squat", 3, 5, ptr(100.0))

	w := s.do(t, http.MethodPost, "/api/analytics/export", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var export service.Export
	decode(t, w, &export)
	assert.True(t, strings.HasPrefix(export.ObjectKey, "exports/"+userID+"/"))
	assert.Equal(t, "http://files.test/"+export.ObjectKey, export.DownloadURL)
	assert.WithinDuration(t, time.Now().Add(time.Minute), export.ExpiresAt, 10*time.Second)

	_, ok := s.objects.Get(export.ObjectKey)
	assert.True(t, ok)
}

// failingAnalytics fails every call.
type failingAnalytics struct{}

var errBoom = errors.New("boom")

func (failingAnalytics) Progress(context.Context, string, string) ([]analytics.ProgressSeries, error) {
	return nil, errBoom
}
func (failingAnalytics) PumpScore(context.Context, string) (*analytics.PumpScore, error) {
	return nil, errBoom
}
func (failingAnalytics) PersonalRecords(context.Context, string) ([]analytics.PersonalRecord, error) {
	return nil, errBoom
}
func (failingAnalytics) Export(context.Context, string) (*service.Export, error) {
	return nil, service.ErrExportUnavailable
}

func TestAnalyticsHandlers_ServerError(t *testing.T) {
	router := gin.New()
	h := NewAnalyticsHandler(failingAnalytics{})
	withUser := func(c *gin.Context) {
		c.Set(ContextUserKey, &domain.User{ID: "u1"})
		c.Set(ContextUserIDKey, "u1")
	}
	router.GET("/progress", withUser, h.GetProgress)
	router.GET("/pump-score", withUser, h.GetPumpScore)
	router.GET("/prs", withUser, h.GetPersonalRecords)
	router.POST("/export", withUser, h.Export)
	s := &testServer{router: router}

	for _, path := range []string{"/progress", "/pump-score", "/prs"} {
		w := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"message":"Server error!"}`, w.Body.String())
	}

	w := s.do(t, http.MethodPost, "/export", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package api

import (
	"net/http"
	"testing"

	"biceppump/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exerciseResponse struct {
	Message  string          `json:"message"`
	Exercise domain.Exercise `json:"exercise"`
}

func TestExerciseHandlers(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "arnold")
	workout := s.createWorkout(t, token, "Pull day")

	w := s.do(t, http.MethodPost, "/api/exercises", map[string]any{
		"name": "Deadlift", "sets": 1, "reps": 5, "weight": 180.5, "workoutId": workout.ID, "muscleGroup": "Back",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created exerciseResponse
	decode(t, w, &created)
	assert.Equal(t, "Exercise created successfully!", created.Message)
	assert.Equal(t, 180.5, *created.Exercise.Weight)
	assert.Equal(t, "Back", *created.Exercise.MuscleGroup)

	w = s.do(t, http.MethodPost, "/api/exercises", map[string]any{
		"name": "Pull-up", "sets": 3, "reps": 10, "workoutId": workout.ID,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/exercises/"+workout.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Exercises []domain.Exercise `json:"exercises"`
	}
	decode(t, w, &list)
	require.Len(t, list.Exercises, 2)
	assert.Equal(t, "Deadlift", list.Exercises[0].Name)
	assert.Nil(t, list.Exercises[1].Weight)
	assert.Nil(t, list.Exercises[1].MuscleGroup)

	w = s.do(t, http.MethodPut, "/api/exercises/"+created.Exercise.ID, map[string]any{
		"name": "Deadlift", "sets": 1, "reps": 3, "weight": 190,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated exerciseResponse
	decode(t, w, &updated)
	assert.Equal(t, 190.0, *updated.Exercise.Weight)
	assert.Equal(t, 3, updated.Exercise.Reps)
	assert.Nil(t, updated.Exercise.MuscleGroup)

	w = s.do(t, http.MethodDelete, "/api/exercises/"+created.Exercise.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Exercise deleted successfully!", message(t, w))

	w = s.do(t, http.MethodDelete, "/api/exercises/"+created.Exercise.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExerciseHandlers_Validation(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "arnold")
	workout := s.createWorkout(t, token, "Pull day")

	w := s.do(t, http.MethodPost, "/api/exercises", map[string]any{"name": "Row", "workoutId": workout.ID}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, sets, reps, and workoutId are required!", message(t, w))

	w = s.do(t, http.MethodPost, "/api/exercises", map[string]any{"name": "Row", "sets": 3, "reps": 10, "workoutId": "missing"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Workout not found!", message(t, w))
}

func TestExerciseHandlers_OtherUser(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.signup(t, "arnold")
	other, _ := s.signup(t, "franco")
	workout := s.createWorkout(t, owner, "Pull day")

	w := s.do(t, http.MethodPost, "/api/exercises", map[string]any{
		"name": "Row", "sets": 3, "reps": 10, "workoutId": workout.ID,
	}, owner)
	require.Equal(t, http.StatusCreated, w.Code)
	var created exerciseResponse
	decode(t, w, &created)

	w = s.do(t, http.MethodPost, "/api/exercises", map[string]any{
		"name": "Row", "sets": 3, "reps": 10, "workoutId": workout.ID,
	}, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/exercises/"+workout.ID, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/exercises/"+created.Exercise.ID, map[string]any{"name": "Mine", "sets": 1, "reps": 1}, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/exercises/"+created.Exercise.ID, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package api

import (
	"errors"
	"net/http"

	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler handles logged exercise entries.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

// Sets and reps must be non-zero; their sign is not checked.
type CreateExerciseRequest struct {
	Name        string   `json:"name" binding:"required"`
	Sets        int      `json:"sets" binding:"required"`
	Reps        int      `json:"reps" binding:"required"`
	Weight      *float64 `json:"weight"`
	WorkoutID   string   `json:"workoutId" binding:"required"`
	MuscleGroup *string  `json:"muscleGroup"`
}

type UpdateExerciseRequest struct {
	Name        string   `json:"name" binding:"required"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight"`
	MuscleGroup *string  `json:"muscleGroup"`
}

// --- Handler Methods ---

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Name, sets, reps, and workoutId are required!")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, req.WorkoutID, service.ExerciseInput{
		Name:        req.Name,
		Sets:        req.Sets,
		Reps:        req.Reps,
		Weight:      req.Weight,
		MuscleGroup: emptyToNil(req.MuscleGroup),
	})
	if err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Exercise created successfully!", "exercise": exercise})
}

// ListExercises returns the entries of a workout in logging order.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), userID, c.Param("workoutId"))
	if err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Exercise name is required!")
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, c.Param("id"), service.ExerciseInput{
		Name:        req.Name,
		Sets:        req.Sets,
		Reps:        req.Reps,
		Weight:      req.Weight,
		MuscleGroup: emptyToNil(req.MuscleGroup),
	})
	if err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise updated successfully!", "exercise": exercise})
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.abortWithExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted successfully!"})
}

func (h *ExerciseHandler) abortWithExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, "Name, sets, reps, and workoutId are required!")
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found!")
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, "Exercise not found!")
	default:
		abortWithError(c, http.StatusInternalServerError, "Server error!")
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

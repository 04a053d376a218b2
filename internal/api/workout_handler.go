package api

import (
	"errors"
	"net/http"
	"time"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type WorkoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Duration    *int   `json:"duration"`
}

type WorkoutListResponse struct {
	Workouts   []domain.Workout `json:"workouts"`
	Pagination Pagination       `json:"pagination"`
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Workout name is required!")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, service.WorkoutInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, "Workout name is required!")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Workout created successfully!", "workout": workout})
}

// ListWorkouts supports ?page, ?limit, ?muscleGroup, ?startDate, ?endDate,
// ?sortBy=date|name and ?order=asc|desc.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	page, limit := pageParams(c)
	query := domain.WorkoutQuery{
		MuscleGroup: c.Query("muscleGroup"),
		SortBy:      domain.SortByDate,
		Descending:  c.DefaultQuery("order", "desc") != "asc",
		Skip:        skipFor(page, limit),
		Limit:       limit,
	}
	if c.Query("sortBy") == string(domain.SortByName) {
		query.SortBy = domain.SortByName
	}

	if query.StartDate, err = parseDateQuery(c, "startDate", false); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid startDate!")
		return
	}
	if query.EndDate, err = parseDateQuery(c, "endDate", true); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid endDate!")
		return
	}

	result, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, query)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	c.JSON(http.StatusOK, WorkoutListResponse{
		Workouts:   result.Workouts,
		Pagination: newPagination(page, limit, result.Total),
	})
}

// parseDateQuery accepts RFC 3339 timestamps or plain dates. A plain end date
// covers the whole day.
func parseDateQuery(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Workout name is required!")
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, c.Param("id"), service.WorkoutInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		h.abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout updated successfully!", "workout": workout})
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error!")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.abortWithWorkoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully!"})
}

func (h *WorkoutHandler) abortWithWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found!")
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, "Workout name is required!")
	default:
		abortWithError(c, http.StatusInternalServerError, "Server error!")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	log "github.com/sirupsen/logrus"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrValidation      = errors.New("validation failed")
)

// WorkoutInput holds the editable fields of a workout.
type WorkoutInput struct {
	Name        string
	Description string
	Duration    *int
}

// WorkoutPage is one page of a workout listing.
type WorkoutPage struct {
	Workouts []domain.Workout
	Total    int64
}

type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID string, input WorkoutInput) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID string, query domain.WorkoutQuery) (*WorkoutPage, error)
	GetWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, userID, workoutID string, input WorkoutInput) (*domain.Workout, error)
	// DeleteWorkout removes the workout together with its exercises.
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) CreateWorkout(ctx context.Context, userID string, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrValidation)
	}

	workout := &domain.Workout{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Exercises:   []domain.Exercise{},
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		log.Errorf("create workout for %s: %s", userID, err)
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID string, query domain.WorkoutQuery) (*WorkoutPage, error) {
	total, err := s.workoutRepo.Count(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}
	workouts, err := s.workoutRepo.List(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return &WorkoutPage{Workouts: workouts, Total: total}, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID string, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrValidation)
	}

	workout := &domain.Workout{
		ID:          workoutID,
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		log.Errorf("update workout %s: %s", workoutID, err)
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	if err := s.workoutRepo.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		log.Errorf("delete workout %s: %s", workoutID, err)
		return err
	}
	return nil
}

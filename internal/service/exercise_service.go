package service

import (
	"context"
	"errors"
	"fmt"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	log "github.com/sirupsen/logrus"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// ExerciseInput holds the fields of a logged exercise entry.
type ExerciseInput struct {
	Name        string
	Sets        int
	Reps        int
	Weight      *float64
	MuscleGroup *string
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, userID, workoutID string, input ExerciseInput) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID, workoutID string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID string, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
}

// exerciseService only touches exercises whose workout belongs to the caller.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
	}
}

// CreateExercise adds an entry to a workout of userID. Numeric fields are stored as given.
func (s *exerciseService) CreateExercise(ctx context.Context, userID, workoutID string, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" || workoutID == "" {
		return nil, fmt.Errorf("%w: name, sets, reps and workoutId are required", ErrValidation)
	}
	if err := s.checkWorkout(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		WorkoutID:   workoutID,
		Name:        input.Name,
		Sets:        input.Sets,
		Reps:        input.Reps,
		Weight:      input.Weight,
		MuscleGroup: input.MuscleGroup,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// workout deleted in between
			return nil, ErrWorkoutNotFound
		}
		log.Errorf("create exercise in workout %s: %s", workoutID, err)
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, userID, workoutID string) ([]domain.Exercise, error) {
	if err := s.checkWorkout(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.ListByWorkout(ctx, workoutID)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID string, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	existing, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Sets = input.Sets
	existing.Reps = input.Reps
	existing.Weight = input.Weight
	existing.MuscleGroup = input.MuscleGroup
	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		log.Errorf("update exercise %s: %s", exerciseID, err)
		return nil, err
	}
	return existing, nil
}

func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	if _, err := s.ownedExercise(ctx, userID, exerciseID); err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		log.Errorf("delete exercise %s: %s", exerciseID, err)
		return err
	}
	return nil
}

func (s *exerciseService) checkWorkout(ctx context.Context, userID, workoutID string) error {
	if _, err := s.workoutRepo.GetByID(ctx, workoutID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// ownedExercise reports another user's exercise as not found.
func (s *exerciseService) ownedExercise(ctx context.Context, userID, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if err := s.checkWorkout(ctx, userID, exercise.WorkoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

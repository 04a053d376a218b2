package repository

import (
	"biceppump/backend/internal/domain"
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile domain.Profile) (*domain.User, error)
	// UpdatePumpScore overwrites the stored score; last write wins.
	UpdatePumpScore(ctx context.Context, id string, score int) error
	Count(ctx context.Context) (int64, error)
	// ListByPumpScore returns users ordered by pump score, highest first.
	ListByPumpScore(ctx context.Context, skip, limit int) ([]domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
// Workouts returned by List, GetByID and History carry their exercises.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Workout, error)
	List(ctx context.Context, userID string, query domain.WorkoutQuery) ([]domain.Workout, error)
	Count(ctx context.Context, userID string, query domain.WorkoutQuery) (int64, error)
	// History returns every workout of the user created at or after since
	// (zero = all), oldest first, with exercises in logging order.
	History(ctx context.Context, userID string, since time.Time) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	// Delete removes the workout and its exercises.
	Delete(ctx context.Context, id, userID string) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	ListByWorkout(ctx context.Context, workoutID string) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Users     UserRepository
	Workouts  WorkoutRepository
	Exercises ExerciseRepository

	closeFn func(ctx context.Context) error
}

// NewStore wires repositories together with the function releasing the
// underlying connection.
func NewStore(users UserRepository, workouts WorkoutRepository, exercises ExerciseRepository, closeFn func(ctx context.Context) error) *Store {
	return &Store{
		Users:     users,
		Workouts:  workouts,
		Exercises: exercises,
		closeFn:   closeFn,
	}
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
	"biceppump/backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

var errStorageDown = errors.New("storage down")

// brokenWorkoutRepo fails every history read.
type brokenWorkoutRepo struct {
	repository.WorkoutRepository
}

func (brokenWorkoutRepo) History(context.Context, string, time.Time) ([]domain.Workout, error) {
	return nil, errStorageDown
}

// brokenUserRepo fails every score write.
type brokenUserRepo struct {
	repository.UserRepository
}

func (brokenUserRepo) UpdatePumpScore(context.Context, string, int) error {
	return errStorageDown
}

func ptr[T any](v T) *T {
	return &v
}

func newUser(t *testing.T, store *repository.Store, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        name + "@pump.test",
		PhoneNumber:  "+1-" + name,
		PasswordHash: "hash",
	}
	_, err := store.Users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

// logWorkout stores a workout created at createdAt with the given exercises.
func logWorkout(t *testing.T, store *repository.Store, userID string, createdAt time.Time, exercises ...domain.Exercise) *domain.Workout {
	t.Helper()
	ctx := context.Background()

	workout := &domain.Workout{UserID: userID, Name: "session", CreatedAt: createdAt}
	_, err := store.Workouts.Create(ctx, workout)
	require.NoError(t, err)

	for i := range exercises {
		ex := exercises[i]
		ex.WorkoutID = workout.ID
		ex.CreatedAt = createdAt.Add(time.Duration(i) * time.Second)
		_, err := store.Exercises.Create(ctx, &ex)
		require.NoError(t, err)
	}
	return workout
}

func newMemoryStore() *repository.Store {
	return memory.NewStore()
}

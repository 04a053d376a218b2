package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
)

type workoutRow struct {
	workout domain.Workout
	seq     int64
}

type workoutRepo struct {
	db *db
}

func (r *workoutRepo) Create(_ context.Context, workout *domain.Workout) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	workout.ID = newID()
	stamp(&workout.CreatedAt, &workout.UpdatedAt, r.db.now())

	stored := *workout
	stored.Exercises = nil
	r.db.workouts[workout.ID] = &workoutRow{workout: stored, seq: r.db.nextSeq()}
	return workout.ID, nil
}

func (r *workoutRepo) GetByID(_ context.Context, id, userID string) (*domain.Workout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.workouts[id]
	if !ok || row.workout.UserID != userID {
		return nil, repository.ErrNotFound
	}
	workout := row.workout
	workout.Exercises = r.db.exercisesOf(workout.ID, "")
	return &workout, nil
}

func (r *workoutRepo) List(_ context.Context, userID string, query domain.WorkoutQuery) ([]domain.Workout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.db.matchingWorkouts(userID, query.StartDate, query.EndDate)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if query.Descending {
			a, b = b, a
		}
		if query.SortBy == domain.SortByName && a.workout.Name != b.workout.Name {
			return a.workout.Name < b.workout.Name
		}
		if !a.workout.CreatedAt.Equal(b.workout.CreatedAt) {
			return a.workout.CreatedAt.Before(b.workout.CreatedAt)
		}
		return a.seq < b.seq
	})

	workouts := []domain.Workout{}
	for _, row := range page(rows, query.Skip, query.Limit) {
		workout := row.workout
		workout.Exercises = r.db.exercisesOf(workout.ID, query.MuscleGroup)
		workouts = append(workouts, workout)
	}
	return workouts, nil
}

func (r *workoutRepo) Count(_ context.Context, userID string, query domain.WorkoutQuery) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.matchingWorkouts(userID, query.StartDate, query.EndDate))), nil
}

func (r *workoutRepo) History(_ context.Context, userID string, since time.Time) ([]domain.Workout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var start *time.Time
	if !since.IsZero() {
		start = &since
	}
	rows := r.db.matchingWorkouts(userID, start, nil)
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].workout.CreatedAt.Equal(rows[j].workout.CreatedAt) {
			return rows[i].workout.CreatedAt.Before(rows[j].workout.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})

	workouts := make([]domain.Workout, 0, len(rows))
	for _, row := range rows {
		workout := row.workout
		workout.Exercises = r.db.exercisesOf(workout.ID, "")
		workouts = append(workouts, workout)
	}
	return workouts, nil
}

func (r *workoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.workouts[workout.ID]
	if !ok || row.workout.UserID != workout.UserID {
		return repository.ErrNotFound
	}
	row.workout.Name = workout.Name
	row.workout.Description = workout.Description
	row.workout.Duration = workout.Duration
	row.workout.UpdatedAt = r.db.now()
	workout.CreatedAt = row.workout.CreatedAt
	workout.UpdatedAt = row.workout.UpdatedAt
	return nil
}

func (r *workoutRepo) Delete(_ context.Context, id, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.workouts[id]
	if !ok || row.workout.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.db.workouts, id)
	for exID, ex := range r.db.exercises {
		if ex.exercise.WorkoutID == id {
			delete(r.db.exercises, exID)
		}
	}
	return nil
}

// matchingWorkouts must be called with the lock held.
func (d *db) matchingWorkouts(userID string, start, end *time.Time) []*workoutRow {
	var rows []*workoutRow
	for _, row := range d.workouts {
		if row.workout.UserID != userID {
			continue
		}
		if start != nil && row.workout.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && row.workout.CreatedAt.After(*end) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// exercisesOf must be called with the lock held. An empty muscleGroup keeps
// every exercise.
func (d *db) exercisesOf(workoutID, muscleGroup string) []domain.Exercise {
	var rows []*exerciseRow
	for _, row := range d.exercises {
		if row.exercise.WorkoutID != workoutID {
			continue
		}
		if muscleGroup != "" && (row.exercise.MuscleGroup == nil || !strings.EqualFold(*row.exercise.MuscleGroup, muscleGroup)) {
			continue
		}
		rows = append(rows, row)
	}
	sortExercises(rows)

	exercises := make([]domain.Exercise, 0, len(rows))
	for _, row := range rows {
		exercises = append(exercises, row.exercise)
	}
	return exercises
}

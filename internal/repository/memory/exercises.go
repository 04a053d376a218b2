package memory

import (
	"context"
	"sort"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
)

type exerciseRow struct {
	exercise domain.Exercise
	seq      int64
}

type exerciseRepo struct {
	db *db
}

func (r *exerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.workouts[exercise.WorkoutID]; !ok {
		return "", repository.ErrNotFound
	}

	exercise.ID = newID()
	stamp(&exercise.CreatedAt, &exercise.UpdatedAt, r.db.now())
	r.db.exercises[exercise.ID] = &exerciseRow{exercise: *exercise, seq: r.db.nextSeq()}
	return exercise.ID, nil
}

func (r *exerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	exercise := row.exercise
	return &exercise, nil
}

func (r *exerciseRepo) ListByWorkout(_ context.Context, workoutID string) ([]domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.exercisesOf(workoutID, ""), nil
}

func (r *exerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.exercises[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	row.exercise.Name = exercise.Name
	row.exercise.Sets = exercise.Sets
	row.exercise.Reps = exercise.Reps
	row.exercise.Weight = exercise.Weight
	row.exercise.MuscleGroup = exercise.MuscleGroup
	row.exercise.UpdatedAt = r.db.now()
	*exercise = row.exercise
	return nil
}

func (r *exerciseRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.exercises, id)
	return nil
}

func sortExercises(rows []*exerciseRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].exercise.CreatedAt.Equal(rows[j].exercise.CreatedAt) {
			return rows[i].exercise.CreatedAt.Before(rows[j].exercise.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exerciseColumns = `id, workout_id, name, sets, reps, weight, muscle_group, created_at, updated_at`

type exerciseRepository struct {
	db *pgxpool.Pool
}

func NewExerciseRepository(db *pgxpool.Pool) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.WorkoutID == "" {
		return "", errors.New("exercise name and workout ID are required")
	}

	exercise.ID = uuid.NewString()
	now := time.Now().UTC()
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = now
	}
	exercise.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO exercises (`+exerciseColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		exercise.ID, exercise.WorkoutID, exercise.Name, exercise.Sets, exercise.Reps,
		exercise.Weight, exercise.MuscleGroup, exercise.CreatedAt, exercise.UpdatedAt)
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("inserting exercise: %w", err)
	}
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := scanExercise(r.db.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return exercise, err
}

func (r *exerciseRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.Exercise, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE workout_id = $1 ORDER BY created_at ASC, id ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	return exercises, rows.Err()
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	updated, err := scanExercise(r.db.QueryRow(ctx,
		`UPDATE exercises SET name = $2, sets = $3, reps = $4, weight = $5, muscle_group = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+exerciseColumns,
		exercise.ID, exercise.Name, exercise.Sets, exercise.Reps, exercise.Weight, exercise.MuscleGroup))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	*exercise = *updated
	return nil
}

func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanExercise(row pgx.Row) (*domain.Exercise, error) {
	var e domain.Exercise
	err := row.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps, &e.Weight, &e.MuscleGroup, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

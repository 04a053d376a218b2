package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workoutColumns = `id, user_id, name, description, duration, created_at, updated_at`

type workoutRepository struct {
	db *pgxpool.Pool
}

func NewWorkoutRepository(db *pgxpool.Pool) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" || workout.Name == "" {
		return "", errors.New("workout user ID and name are required")
	}

	workout.ID = uuid.NewString()
	now := time.Now().UTC()
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = now
	}
	workout.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO workouts (`+workoutColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		workout.ID, workout.UserID, workout.Name, workout.Description, workout.Duration,
		workout.CreatedAt, workout.UpdatedAt)
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("inserting workout: %w", err)
	}
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id, userID string) (*domain.Workout, error) {
	workout, err := scanWorkout(r.db.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	workouts := []domain.Workout{*workout}
	if err := r.attachExercises(ctx, workouts, ""); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

func (r *workoutRepository) List(ctx context.Context, userID string, query domain.WorkoutQuery) ([]domain.Workout, error) {
	where, args := workoutWhere(userID, query.StartDate, query.EndDate)

	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}
	orderBy := "created_at " + direction
	if query.SortBy == domain.SortByName {
		orderBy = "name " + direction + ", " + orderBy
	}

	sql := `SELECT ` + workoutColumns + ` FROM workouts WHERE ` + where +
		` ORDER BY ` + orderBy + `, id ` + direction +
		fmt.Sprintf(` OFFSET $%d`, len(args)+1)
	args = append(args, query.Skip)
	if query.Limit > 0 {
		sql += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, query.Limit)
	}

	workouts, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachExercises(ctx, workouts, query.MuscleGroup); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *workoutRepository) Count(ctx context.Context, userID string, query domain.WorkoutQuery) (int64, error) {
	where, args := workoutWhere(userID, query.StartDate, query.EndDate)
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE `+where, args...).Scan(&n)
	return n, err
}

func (r *workoutRepository) History(ctx context.Context, userID string, since time.Time) ([]domain.Workout, error) {
	var start *time.Time
	if !since.IsZero() {
		start = &since
	}
	where, args := workoutWhere(userID, start, nil)

	workouts, err := r.query(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE `+where+` ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachExercises(ctx, workouts, ""); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	err := r.db.QueryRow(ctx,
		`UPDATE workouts SET name = $3, description = $4, duration = $5, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING created_at, updated_at`,
		workout.ID, workout.UserID, workout.Name, workout.Description, workout.Duration,
	).Scan(&workout.CreatedAt, &workout.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// Delete relies on ON DELETE CASCADE for the exercises.
func (r *workoutRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Workout, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	return workouts, rows.Err()
}

func (r *workoutRepository) attachExercises(ctx context.Context, workouts []domain.Workout, muscleGroup string) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(workouts))
	index := make(map[string]int, len(workouts))
	for i := range workouts {
		ids = append(ids, workouts[i].ID)
		index[workouts[i].ID] = i
		workouts[i].Exercises = []domain.Exercise{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE workout_id = ANY($1) AND ($2 = '' OR LOWER(muscle_group) = LOWER($2))
		 ORDER BY created_at ASC, id ASC`, ids, muscleGroup)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return err
		}
		i := index[exercise.WorkoutID]
		workouts[i].Exercises = append(workouts[i].Exercises, *exercise)
	}
	return rows.Err()
}

func workoutWhere(userID string, start, end *time.Time) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var w domain.Workout
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.Duration, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

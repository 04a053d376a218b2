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

const userColumns = `id, name, email, phone_number, password_hash, pump_score,
	age, gender, height, weight, fitness_goal, activity_level, profile_completed,
	created_at, updated_at`

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return "", errors.New("user email and password hash are required")
	}

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		user.ID, user.Name, user.Email, user.PhoneNumber, user.PasswordHash, user.PumpScore,
		user.Age, user.Gender, user.Height, user.Weight, user.FitnessGoal, user.ActivityLevel,
		user.ProfileCompleted, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return "", repository.ErrDuplicate
		}
		return "", fmt.Errorf("inserting user: %w", err)
	}
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phone)
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, profile domain.Profile) (*domain.User, error) {
	return r.queryOne(ctx,
		`UPDATE users SET age = $2, gender = $3, height = $4, weight = $5,
		 fitness_goal = $6, activity_level = $7, profile_completed = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, profile.Age, profile.Gender, profile.Height, profile.Weight,
		profile.FitnessGoal, profile.ActivityLevel, profile.ProfileCompleted)
}

func (r *userRepository) UpdatePumpScore(ctx context.Context, id string, score int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET pump_score = $2, updated_at = NOW() WHERE id = $1`, id, score)
	if err != nil {
		return fmt.Errorf("updating pump score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepository) ListByPumpScore(ctx context.Context, skip, limit int) ([]domain.User, error) {
	// LIMIT NULL means no limit
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 ORDER BY pump_score DESC, created_at ASC, id ASC
		 OFFSET $1 LIMIT $2`, skip, lim)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) queryOne(ctx context.Context, sql string, args ...any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return user, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash, &u.PumpScore,
		&u.Age, &u.Gender, &u.Height, &u.Weight, &u.FitnessGoal, &u.ActivityLevel, &u.ProfileCompleted,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

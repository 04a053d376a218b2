package memory

import (
	"context"
	"sort"

	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
)

type userRow struct {
	user domain.User
	seq  int64
}

type userRepo struct {
	db *db
}

func (r *userRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, row := range r.db.users {
		if row.user.Email == user.Email || (user.PhoneNumber != "" && row.user.PhoneNumber == user.PhoneNumber) {
			return "", repository.ErrDuplicate
		}
	}

	user.ID = newID()
	stamp(&user.CreatedAt, &user.UpdatedAt, r.db.now())
	r.db.users[user.ID] = &userRow{user: *user, seq: r.db.nextSeq()}
	return user.ID, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := row.user
	return &user, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findOne(func(u domain.User) bool { return u.Email == email })
}

func (r *userRepo) GetByPhoneNumber(_ context.Context, phone string) (*domain.User, error) {
	return r.findOne(func(u domain.User) bool { return u.PhoneNumber == phone })
}

func (r *userRepo) findOne(match func(domain.User) bool) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.users {
		if match(row.user) {
			user := row.user
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) UpdateProfile(_ context.Context, id string, profile domain.Profile) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.user.Profile = profile
	row.user.UpdatedAt = r.db.now()
	user := row.user
	return &user, nil
}

func (r *userRepo) UpdatePumpScore(_ context.Context, id string, score int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.user.PumpScore = score
	row.user.UpdatedAt = r.db.now()
	return nil
}

func (r *userRepo) Count(_ context.Context) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(len(r.db.users)), nil
}

func (r *userRepo) ListByPumpScore(_ context.Context, skip, limit int) ([]domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*userRow, 0, len(r.db.users))
	for _, row := range r.db.users {
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].user.PumpScore != rows[j].user.PumpScore {
			return rows[i].user.PumpScore > rows[j].user.PumpScore
		}
		return rows[i].seq < rows[j].seq
	})

	users := []domain.User{}
	for _, row := range page(rows, skip, limit) {
		users = append(users, row.user)
	}
	return users, nil
}

// page applies skip/limit to an already ordered slice. limit <= 0 means all.
func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

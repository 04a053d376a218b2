// Package memory keeps every repository in process memory. It backs local
// development (database.driver: memory) and the handler tests.
package memory

import (
	"sync"
	"time"

	"biceppump/backend/internal/repository"

	"github.com/google/uuid"
)

// db is the shared state behind the three repositories, so that deleting a
// workout can drop its exercises under one lock.
type db struct {
	mu sync.RWMutex

	seq       int64
	users     map[string]*userRow
	workouts  map[string]*workoutRow
	exercises map[string]*exerciseRow

	now func() time.Time
}

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	d := &db{
		users:     make(map[string]*userRow),
		workouts:  make(map[string]*workoutRow),
		exercises: make(map[string]*exerciseRow),
		now:       func() time.Time { return time.Now().UTC() },
	}
	return repository.NewStore(&userRepo{db: d}, &workoutRepo{db: d}, &exerciseRepo{db: d}, nil)
}

func (d *db) nextSeq() int64 {
	d.seq++
	return d.seq
}

func newID() string {
	return uuid.NewString()
}

func stamp(createdAt *time.Time, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

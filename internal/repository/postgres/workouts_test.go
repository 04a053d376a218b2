package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkoutWhere(t *testing.T) {
	where, args := workoutWhere("u1", nil, nil)
	assert.Equal(t, "user_id = $1", where)
	assert.Equal(t, []any{"u1"}, args)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	where, args = workoutWhere("u1", &start, &end)
	assert.Equal(t, "user_id = $1 AND created_at >= $2 AND created_at <= $3", where)
	assert.Equal(t, []any{"u1", start, end}, args)

	where, args = workoutWhere("u1", nil, &end)
	assert.Equal(t, "user_id = $1 AND created_at <= $2", where)
	assert.Equal(t, []any{"u1", end}, args)
}

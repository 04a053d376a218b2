package service

import (
	"context"
	"testing"
	"time"

	"biceppump/backend/internal/cache"
	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_Ranks(t *testing.T) {
	store := newMemoryStore()
	svc := NewLeaderboardService(store.Users, nil)
	ctx := context.Background()

	scores := map[string]int{"arnold": 90, "franco": 75, "lou": 80, "sergio": 10}
	for _, name := range []string{"arnold", "franco", "lou", "sergio"} {
		u := newUser(t, store, name)
		require.NoError(t, store.Users.UpdatePumpScore(ctx, u.ID, scores[name]))
	}

	page, err := svc.Leaderboard(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "arnold", page.Entries[0].Name)
	assert.Equal(t, 1, page.Entries[0].Rank)
	assert.Equal(t, "lou", page.Entries[1].Name)
	assert.Equal(t, 2, page.Entries[1].Rank)

	page, err = svc.Leaderboard(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "franco", page.Entries[0].Name)
	assert.Equal(t, 3, page.Entries[0].Rank)
	assert.Equal(t, "sergio", page.Entries[1].Name)
	assert.Equal(t, 4, page.Entries[1].Rank)
}

func TestLeaderboardService_CacheInvalidatedOnScoreChange(t *testing.T) {
	store := newMemoryStore()
	svc := NewLeaderboardService(store.Users, cache.NewLeaderboard(1, time.Minute))
	ctx := context.Background()

	u := newUser(t, store, "arnold")

	page, err := svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Entries[0].PumpScore)

	require.NoError(t, store.Users.UpdatePumpScore(ctx, u.ID, 50))

	page, err = svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Entries[0].PumpScore, "served from cache")

	svc.ScoreChanged(u.ID, 50)

	page, err = svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Entries[0].PumpScore)
}

// scoreWriteDuringList changes a score while the leaderboard is being read.
type scoreWriteDuringList struct {
	repository.UserRepository
	during func()
}

func (r scoreWriteDuringList) ListByPumpScore(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := r.UserRepository.ListByPumpScore(ctx, skip, limit)
	if r.during != nil {
		r.during()
	}
	return users, err
}

func TestLeaderboardService_StalePageNotCached(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	u := newUser(t, store, "arnold")

	repo := &scoreWriteDuringList{UserRepository: store.Users}
	svc := NewLeaderboardService(repo, cache.NewLeaderboard(1, time.Minute))
	repo.during = func() {
		require.NoError(t, store.Users.UpdatePumpScore(ctx, u.ID, 50))
		svc.ScoreChanged(u.ID, 50)
	}

	page, err := svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Entries[0].PumpScore, "read before the write")

	repo.during = nil
	page, err = svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Entries[0].PumpScore, "stale page was not cached")
}

func TestLeaderboardService_SignupRefreshesTotal(t *testing.T) {
	store := newMemoryStore()
	svc := NewLeaderboardService(store.Users, cache.NewLeaderboard(1, time.Minute))
	auth := NewAuthService(store.Users, NewTokenIssuer("secret", time.Hour, time.Hour), WithSignupObserver(svc))
	ctx := context.Background()

	newUser(t, store, "arnold")
	page, err := svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, _, err = auth.Signup(ctx, SignupInput{
		Name:            "franco",
		Email:           "franco@pump.test",
		PhoneNumber:     "+1-franco",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	page, err = svc.Leaderboard(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Entries, 2)
}

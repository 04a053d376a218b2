package service

import (
	"context"
	"fmt"

	"biceppump/backend/internal/cache"
	"biceppump/backend/internal/domain"
	"biceppump/backend/internal/repository"
)

type LeaderboardService interface {
	// Leaderboard returns users ranked by pump score; rank = skip + index + 1.
	Leaderboard(ctx context.Context, skip, limit int) (*domain.LeaderboardPage, error)
	// ScoreChanged drops cached pages after a pump score was written.
	ScoreChanged(userID string, score int)
	// UserSignedUp drops cached pages; the total changed.
	UserSignedUp(userID string)
}

type leaderboardService struct {
	userRepo repository.UserRepository
	cache    *cache.Leaderboard
}

// NewLeaderboardService creates the service; pageCache may be nil.
func NewLeaderboardService(userRepo repository.UserRepository, pageCache *cache.Leaderboard) LeaderboardService {
	return &leaderboardService{
		userRepo: userRepo,
		cache:    pageCache,
	}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, skip, limit int) (*domain.LeaderboardPage, error) {
	var generation uint64
	if s.cache != nil {
		if page, ok := s.cache.Get(skip, limit); ok {
			return page, nil
		}
		generation = s.cache.Generation()
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	users, err := s.userRepo.ListByPumpScore(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users by pump score: %w", err)
	}

	page := &domain.LeaderboardPage{
		Entries: make([]domain.LeaderboardEntry, 0, len(users)),
		Total:   total,
	}
	for i, u := range users {
		page.Entries = append(page.Entries, domain.LeaderboardEntry{
			Rank:      skip + i + 1,
			ID:        u.ID,
			Name:      u.Name,
			PumpScore: u.PumpScore,
			CreatedAt: u.CreatedAt,
		})
	}

	if s.cache != nil {
		s.cache.Set(generation, skip, limit, page)
	}
	return page, nil
}

func (s *leaderboardService) ScoreChanged(string, int) {
	s.invalidate()
}

func (s *leaderboardService) UserSignedUp(string) {
	s.invalidate()
}

func (s *leaderboardService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

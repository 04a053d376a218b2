// Package cache holds in-process caches backed by freecache.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"biceppump/backend/internal/domain"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// Leaderboard caches rendered leaderboard pages keyed by skip and limit.
// A non-positive TTL disables caching.
//
// Every Invalidate bumps a generation. A page built from data read before an
// Invalidate carries the older generation and is not stored.
type Leaderboard struct {
	cache         *freecache.Cache
	expireSeconds int

	mu         sync.Mutex
	generation uint64
}

func NewLeaderboard(sizeMB int, ttl time.Duration) *Leaderboard {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &Leaderboard{
		cache:         freecache.NewCache(sizeMB * megabyte),
		expireSeconds: int(ttl.Seconds()),
	}
}

func (l *Leaderboard) Get(skip, limit int) (*domain.LeaderboardPage, bool) {
	if l.expireSeconds <= 0 {
		return nil, false
	}

	pageBytes, err := l.cache.Get(pageKey(skip, limit))
	if err != nil {
		log.Tracef("leaderboard page %d/%d not in cache: %s", skip, limit, err)
		return nil, false
	}

	page := &domain.LeaderboardPage{}
	if err := json.Unmarshal(pageBytes, page); err != nil {
		log.Errorf("failed to unmarshal leaderboard page from cache: %s", err)
		return nil, false
	}
	return page, true
}

// Generation is read before loading the data a page is built from.
func (l *Leaderboard) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Set stores page unless the cache was invalidated since generation was read.
// It reports whether the page was stored.
func (l *Leaderboard) Set(generation uint64, skip, limit int, page *domain.LeaderboardPage) bool {
	if l.expireSeconds <= 0 {
		return false
	}

	pageBytes, err := json.Marshal(page)
	if err != nil {
		log.Errorf("failed to marshal leaderboard page: %s", err)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if generation != l.generation {
		log.Debugf("leaderboard page %d/%d is stale, not cached", skip, limit)
		return false
	}
	if err := l.cache.Set(pageKey(skip, limit), pageBytes, l.expireSeconds); err != nil {
		log.Errorf("failed to write leaderboard cache: %s", err)
		return false
	}
	return true
}

// Invalidate drops every cached page, e.g. after a pump score changed.
func (l *Leaderboard) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.cache.Clear()
}

func pageKey(skip, limit int) []byte {
	return []byte(fmt.Sprintf("leaderboard::%d::%d", skip, limit))
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"biceppump/backend/internal/analytics"
	"biceppump/backend/internal/metrics"
	"biceppump/backend/internal/repository"
	"biceppump/backend/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrExportUnavailable = errors.New("analytics export is not configured")

// ScoreObserver is told about every pump score written back to a user.
type ScoreObserver interface {
	ScoreChanged(userID string, score int)
}

// Export is the stored analytics document and where to fetch it.
type Export struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type exportDocument struct {
	UserID          string                     `json:"userId"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
	PumpScore       analytics.PumpScore        `json:"pumpScore"`
	ProgressData    []analytics.ProgressSeries `json:"progressData"`
	PersonalRecords []analytics.PersonalRecord `json:"personalRecords"`
}

type AnalyticsService interface {
	Progress(ctx context.Context, userID, exerciseFilter string) ([]analytics.ProgressSeries, error)
	// PumpScore computes the score over the trailing window and stores it on the user.
	PumpScore(ctx context.Context, userID string) (*analytics.PumpScore, error)
	PersonalRecords(ctx context.Context, userID string) ([]analytics.PersonalRecord, error)
	// Export uploads progress and records as JSON and returns a presigned download URL.
	Export(ctx context.Context, userID string) (*Export, error)
}

type AnalyticsOption func(*analyticsService)

// WithClock replaces time.Now as the reference of the scoring window.
func WithClock(now func() time.Time) AnalyticsOption {
	return func(s *analyticsService) { s.now = now }
}

func WithScoreObserver(o ScoreObserver) AnalyticsOption {
	return func(s *analyticsService) { s.observer = o }
}

// WithExportStorage enables Export; urlExpiry bounds the download URL lifetime.
func WithExportStorage(store storage.ObjectStorage, urlExpiry time.Duration) AnalyticsOption {
	return func(s *analyticsService) {
		s.objects = store
		if urlExpiry > 0 {
			s.urlExpiry = urlExpiry
		}
	}
}

type analyticsService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
	windowDays  int
	metrics     *metrics.Manager

	now       func() time.Time
	observer  ScoreObserver
	objects   storage.ObjectStorage
	urlExpiry time.Duration
}

func NewAnalyticsService(
	workoutRepo repository.WorkoutRepository,
	userRepo repository.UserRepository,
	windowDays int,
	metricsManager *metrics.Manager,
	opts ...AnalyticsOption,
) AnalyticsService {
	if windowDays <= 0 {
		windowDays = analytics.DefaultWindowDays
	}
	s := &analyticsService{
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		windowDays:  windowDays,
		metrics:     metricsManager,
		now:         time.Now,
		urlExpiry:   storage.DefaultPresignedURLExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *analyticsService) Progress(ctx context.Context, userID, exerciseFilter string) ([]analytics.ProgressSeries, error) {
	workouts, err := s.workoutRepo.History(ctx, userID, time.Time{})
	if err != nil {
		log.Errorf("progress: load history of %s: %s", userID, err)
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	return analytics.BuildProgressSeries(workouts, exerciseFilter), nil
}

func (s *analyticsService) PumpScore(ctx context.Context, userID string) (*analytics.PumpScore, error) {
	score, err := s.computePumpScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePumpScore(ctx, userID, score.Score); err != nil {
		log.Errorf("pump score: store score of %s: %s", userID, err)
		return nil, fmt.Errorf("store pump score: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterPumpScoreRecompute.Inc()
		s.metrics.HistPumpScore.Observe(float64(score.Score))
	}
	if s.observer != nil {
		s.observer.ScoreChanged(userID, score.Score)
	}

	log.WithFields(log.Fields{
		"user":      userID,
		"score":     score.Score,
		"volume":    score.TotalVolume,
		"intensity": score.TotalIntensity,
		"workouts":  score.Breakdown.WorkoutCount,
	}).Debug("pump score recomputed")

	return score, nil
}

func (s *analyticsService) computePumpScore(ctx context.Context, userID string) (*analytics.PumpScore, error) {
	window := analytics.Window{Reference: s.now(), Days: s.windowDays}
	workouts, err := s.workoutRepo.History(ctx, userID, window.Since())
	if err != nil {
		log.Errorf("pump score: load history of %s: %s", userID, err)
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	score := analytics.ComputePumpScore(workouts)
	return &score, nil
}

func (s *analyticsService) PersonalRecords(ctx context.Context, userID string) ([]analytics.PersonalRecord, error) {
	workouts, err := s.workoutRepo.History(ctx, userID, time.Time{})
	if err != nil {
		log.Errorf("personal records: load history of %s: %s", userID, err)
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	return analytics.ComputePersonalRecords(workouts), nil
}

// Export does not write the pump score back; only PumpScore does.
func (s *analyticsService) Export(ctx context.Context, userID string) (*Export, error) {
	if s.objects == nil {
		return nil, ErrExportUnavailable
	}

	workouts, err := s.workoutRepo.History(ctx, userID, time.Time{})
	if err != nil {
		log.Errorf("export: load history of %s: %s", userID, err)
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	score, err := s.computePumpScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(exportDocument{
		UserID:          userID,
		GeneratedAt:     now,
		PumpScore:       *score,
		ProgressData:    analytics.BuildProgressSeries(workouts, ""),
		PersonalRecords: analytics.ComputePersonalRecords(workouts),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", userID, uuid.NewString())
	if err := s.objects.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	url, err := s.objects.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		// nobody can download it, so do not leave it in the bucket
		if delErr := s.objects.DeleteObject(ctx, objectKey); delErr != nil {
			log.Warnf("export: remove unreachable object %s: %s", objectKey, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterExports.Inc()
	}
	log.Infof("analytics export %s created for %s", objectKey, userID)

	return &Export{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   now.Add(s.urlExpiry),
	}, nil
}

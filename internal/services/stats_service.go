package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/galamath/galamath/internal/analytics"
	"github.com/galamath/galamath/internal/cache"
	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
)

// RecentResultsLimit is how many attempts the dashboard lists verbatim.
const RecentResultsLimit = 500

// StatsService builds the admin dashboard
type StatsService interface {
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	cache       cache.StatsCache
	ttl         time.Duration
	now         func() time.Time
}

// NewStatsService creates a new StatsService. A non-positive ttl disables caching.
func NewStatsService(attemptRepo repository.AttemptRepository, statsCache cache.StatsCache, ttl time.Duration) StatsService {
	if statsCache == nil || ttl <= 0 {
		statsCache = cache.Noop{}
	}
	return &statsService{
		attemptRepo: attemptRepo,
		cache:       statsCache,
		ttl:         ttl,
		now:         time.Now,
	}
}

// GetAdminStats returns the whole dashboard or nothing. The error carries
// only a generic message; the cause is logged.
func (s *statsService) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")
	log.Debug("getting admin stats")

	var stats models.AdminStats
	err := s.cache.CacheOrExecute(ctx, cache.AdminStatsKey, &stats, s.ttl, func() (any, error) {
		return s.compute(ctx)
	})
	if err != nil {
		log.Error("failed to build admin stats: %v", err)
		return nil, errors.NewUnavailableError("stats", err)
	}
	return &stats, nil
}

func (s *statsService) compute(ctx context.Context) (*models.AdminStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")
	start := time.Now()

	var training, test, recent []models.Attempt
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		training, err = s.attemptRepo.List(gctx, models.AttemptFilter{TestMode: models.Bool(false)})
		return err
	})
	g.Go(func() error {
		var err error
		test, err = s.attemptRepo.List(gctx, models.AttemptFilter{TestMode: models.Bool(true)})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.attemptRepo.List(gctx, models.AttemptFilter{NewestFirst: true, Limit: RecentResultsLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	everyone := make([]models.Attempt, 0, len(training)+len(test))
	everyone = append(everyone, training...)
	everyone = append(everyone, test...)

	result := analytics.Compute(training)
	if recent == nil {
		recent = []models.Attempt{}
	}

	stats := &models.AdminStats{
		Users:                analytics.Users(everyone),
		SummaryStats:         analytics.Summaries(training),
		SeriousnessStats:     result.FocusMetrics,
		SingleRoundStats:     analytics.SingleRoundStats(training),
		Round1Progress:       analytics.Round1Progress(training),
		LearningRateProgress: result.LearningRate,
		SessionAnalysis:      analytics.Seriousness(result.Sessions),
		ThemeMastery:         analytics.ThemeMastery(training),
		RepeatedMistakes:     analytics.RepeatedMistakes(training),
		TestSummaryStats:     analytics.TestSummaries(test),
		TestProgress:         analytics.TestProgress(test),
		TestThemeBreakdown:   analytics.TestThemeBreakdown(test),
		AllQuizResults:       recent,
		SkippedRecords:       result.Skipped,
		GeneratedAt:          s.now().UTC(),
	}

	if result.Skipped > 0 {
		log.Warn("skipped %d attempts without a readable completion time", result.Skipped)
	}
	log.WithFields(map[string]any{
		"training": len(training),
		"test":     len(test),
		"sessions": len(result.Sessions),
	}).Info("admin stats computed in %v", time.Since(start))
	return stats, nil
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/galamath/galamath/internal/cache"
	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/jobs"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
)

// ResultService records finished quiz rounds
type ResultService interface {
	Submit(ctx context.Context, result models.ResultSubmission) error
}

type resultService struct {
	attemptRepo repository.AttemptRepository
	cache       cache.StatsCache
	jobQueue    jobs.JobQueue
	now         func() time.Time
}

// NewResultService creates a new ResultService
func NewResultService(attemptRepo repository.AttemptRepository, statsCache cache.StatsCache, jobQueue jobs.JobQueue) ResultService {
	if statsCache == nil {
		statsCache = cache.Noop{}
	}
	return &resultService{
		attemptRepo: attemptRepo,
		cache:       statsCache,
		jobQueue:    jobQueue,
		now:         time.Now,
	}
}

// Submit validates and stores a round, then queues the parent email.
// Storage and email failures are logged and never reach the learner.
func (s *resultService) Submit(ctx context.Context, result models.ResultSubmission) error {
	log := logger.FromContext(ctx).WithPrefix("results").WithFields(map[string]any{
		"user":  result.UserName,
		"theme": result.ThemeName,
	})

	if err := validateResult(result); err != nil {
		log.Debug("rejecting result: %v", err)
		return err
	}

	attempt := result.Attempt()
	attempt.CompletedAt = s.now().UTC()

	id, err := s.attemptRepo.Insert(ctx, attempt)
	if err != nil {
		log.Error("database error (continuing without save): %v", err)
	} else {
		log.Info("stored attempt: id=%d round=%d score=%d/%d", id, attempt.Round, attempt.Score, attempt.TotalQuestions)
		if err := s.cache.Invalidate(ctx, cache.AdminStatsKey); err != nil {
			log.Warn("failed to invalidate stats cache: %v", err)
		}
	}

	if err := s.jobQueue.EnqueueResultEmail(result); err != nil {
		log.Warn("result email not queued: %v", err)
	}
	return nil
}

func validateResult(r models.ResultSubmission) error {
	switch {
	case strings.TrimSpace(r.UserID) == "":
		return errors.NewValidationError("userId", "is required")
	case strings.TrimSpace(r.UserName) == "":
		return errors.NewValidationError("userName", "is required")
	case strings.TrimSpace(r.ThemeName) == "":
		return errors.NewValidationError("themeName", "is required")
	case r.Score < 0 || r.TotalQuestions < 0 || r.TotalTimeSeconds < 0 || r.AvgTimePerQuestion < 0:
		return errors.NewValidationError("score", "counts and times cannot be negative")
	case r.Score > r.TotalQuestions:
		return errors.NewValidationError("score", "cannot exceed totalQuestions")
	case r.Round < 0:
		return errors.NewValidationError("round", "cannot be negative")
	case r.Level != "" && !r.Level.Valid():
		return errors.NewValidationError("level", "must be easy, medium or hard")
	}
	return nil
}

package services_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/cache"
	"github.com/galamath/galamath/internal/errors"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/services"
	"github.com/galamath/galamath/internal/testutil/mocks"
)

var (
	trainingFilter = models.AttemptFilter{TestMode: models.Bool(false)}
	testFilter     = models.AttemptFilter{TestMode: models.Bool(true)}
	recentFilter   = models.AttemptFilter{NewestFirst: true, Limit: services.RecentResultsLimit}
)

func intPtr(i int) *int { return &i }

func answer(q string, given, correct int) models.AnswerRecord {
	return models.AnswerRecord{Question: q, UserAnswer: intPtr(given), CorrectAnswer: correct}
}

func zoeSession() []models.Attempt {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	base := models.Attempt{UserID: "z", UserName: "Zoe", SessionID: "s1", ThemeName: "Fractions", Level: models.LevelEasy, TotalQuestions: 2}

	r1 := base
	r1.ID, r1.Round, r1.Score, r1.CompletedAt = 1, 1, 0, t0
	r1.AllAnswers = []models.AnswerRecord{answer("q1", 1, 2), answer("q2", 1, 3)}
	r1.Mistakes = []models.MistakeSummary{{QuestionNumber: 1, Question: "q1"}, {QuestionNumber: 2, Question: "q2"}}

	r2 := base
	r2.ID, r2.Round, r2.Score, r2.CompletedAt = 2, 2, 1, t0.Add(5*time.Minute)
	r2.AllAnswers = []models.AnswerRecord{answer("q1", 2, 2), answer("q2", 1, 3)}

	return []models.Attempt{r1, r2}
}

func testAttempt() models.Attempt {
	return models.Attempt{
		ID: 10, UserID: "m", UserName: "Max", ThemeName: "Mixed", Level: models.LevelHard, Round: 1,
		Score: 1, TotalQuestions: 2, IsTestMode: true, CompletedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		AllAnswers: []models.AnswerRecord{
			{Question: "a", UserAnswer: intPtr(1), CorrectAnswer: 1, SourceTheme: "Addition"},
			{Question: "b", UserAnswer: intPtr(0), CorrectAnswer: 1},
		},
	}
}

func TestStatsService_GetAdminStats(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	training := zoeSession()
	repo.On("List", mock.Anything, trainingFilter).Return(training, nil)
	repo.On("List", mock.Anything, testFilter).Return([]models.Attempt{testAttempt()}, nil)
	repo.On("List", mock.Anything, recentFilter).Return(nil, nil)

	svc := services.NewStatsService(repo, nil, 0)
	stats, err := svc.GetAdminStats(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.Users, 2)
	assert.Equal(t, "Max", stats.Users[0].UserName)

	require.Len(t, stats.SeriousnessStats, 1)
	fm := stats.SeriousnessStats[0]
	assert.Equal(t, 2, fm.TotalMistakes)
	assert.Equal(t, 1, fm.TotalCorrections)
	assert.Equal(t, 50, fm.CorrectionRate)

	require.Len(t, stats.LearningRateProgress, 1)
	assert.Equal(t, "s1", stats.LearningRateProgress[0].SessionID)
	require.Len(t, stats.SessionAnalysis, 1)

	require.Len(t, stats.TestSummaryStats, 1)
	require.Len(t, stats.TestThemeBreakdown, 2)
	assert.NotNil(t, stats.AllQuizResults)
	assert.Empty(t, stats.AllQuizResults)
	assert.Zero(t, stats.SkippedRecords)
	assert.False(t, stats.GeneratedAt.IsZero())

	repo.AssertExpectations(t)
}

func TestStatsService_AllOrNothing(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	repo.On("List", mock.Anything, trainingFilter).Return(zoeSession(), nil)
	repo.On("List", mock.Anything, testFilter).Return(nil, stderrors.New("pq: relation quiz_results does not exist"))
	repo.On("List", mock.Anything, recentFilter).Return(nil, nil)

	svc := services.NewStatsService(repo, nil, 0)
	stats, err := svc.GetAdminStats(context.Background())
	assert.Nil(t, stats)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnavailable, appErr.Code)
	assert.Equal(t, "stats unavailable", appErr.Message)
	assert.NotContains(t, appErr.Message, "quiz_results")
}

func TestStatsService_SkippedRecordsReported(t *testing.T) {
	undated := zoeSession()[0]
	undated.ID, undated.SessionID, undated.CompletedAt = 99, "", time.Time{}

	repo := new(mocks.MockAttemptRepository)
	repo.On("List", mock.Anything, trainingFilter).Return(append(zoeSession(), undated), nil)
	repo.On("List", mock.Anything, testFilter).Return(nil, nil)
	repo.On("List", mock.Anything, recentFilter).Return(nil, nil)

	stats, err := services.NewStatsService(repo, nil, 0).GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SkippedRecords)
	assert.Len(t, stats.SeriousnessStats, 1)
}

// memCache is an in-process StatsCache for exercising the cached path.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) CacheOrExecute(_ context.Context, key string, dest any, _ time.Duration, load cache.Loader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if raw, ok := c.data[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	v, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestStatsService_ServesFromCache(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	repo.On("List", mock.Anything, trainingFilter).Return(zoeSession(), nil).Once()
	repo.On("List", mock.Anything, testFilter).Return(nil, nil).Once()
	repo.On("List", mock.Anything, recentFilter).Return(nil, nil).Once()

	c := &memCache{data: map[string][]byte{}}
	svc := services.NewStatsService(repo, c, time.Minute)

	first, err := svc.GetAdminStats(context.Background())
	require.NoError(t, err)
	second, err := svc.GetAdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.SeriousnessStats, second.SeriousnessStats)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))
	repo.AssertExpectations(t)
}

package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/galamath/galamath/internal/db"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
	"github.com/galamath/galamath/internal/repository/sqlstore"
	"github.com/galamath/galamath/internal/testutil"
)

type AttemptRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.AttemptRepository
}

func (s *AttemptRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlstore.NewAttemptRepository(s.db)
}

func (s *AttemptRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func sampleAttempt(at time.Time) models.Attempt {
	wrong, right := 3, 4
	return models.Attempt{
		UserID:             "u1",
		UserName:           "Zoe",
		SessionID:          "sess-1",
		ThemeID:            "addition",
		ThemeName:          "Addition",
		Level:              models.LevelMedium,
		Round:              1,
		Score:              1,
		TotalQuestions:     2,
		TotalTimeSeconds:   20,
		AvgTimePerQuestion: 10,
		CompletedAt:        at,
		AllAnswers: []models.AnswerRecord{
			{QuestionID: 1, Question: "2+2", UserAnswer: &right, CorrectAnswer: 4},
			{QuestionID: 2, Question: "1+1", UserAnswer: &wrong, CorrectAnswer: 2, SourceTheme: "Addition"},
		},
		Mistakes: []models.MistakeSummary{{QuestionNumber: 2, Question: "1+1", CorrectAnswer: "2", Hint: "count"}},
	}
}

func (s *AttemptRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	id, err := s.repo.Insert(ctx, sampleAttempt(at))
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	got, err := s.repo.List(ctx, models.AttemptFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)

	a := got[0]
	s.Assert().Equal(id, a.ID)
	s.Assert().Equal("sess-1", a.SessionID)
	s.Assert().Equal(models.LevelMedium, a.Level)
	s.Assert().True(at.Equal(a.CompletedAt), "completed_at round-trips: %v", a.CompletedAt)
	s.Require().Len(a.AllAnswers, 2)
	s.Assert().True(a.AllAnswers[0].IsCorrect())
	s.Assert().False(a.AllAnswers[1].IsCorrect())
	s.Assert().Equal("Addition", a.AllAnswers[1].SourceTheme)
	s.Require().Len(a.Mistakes, 1)
	s.Assert().Equal("count", a.Mistakes[0].Hint)
}

func (s *AttemptRepositorySuite) TestList_Filters() {
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	training := sampleAttempt(at)
	legacy := sampleAttempt(at.Add(time.Minute))
	legacy.SessionID = ""
	retry := sampleAttempt(at.Add(2 * time.Minute))
	retry.Round = 2
	test := sampleAttempt(at.Add(3 * time.Minute))
	test.IsTestMode = true

	for _, a := range []models.Attempt{training, legacy, retry, test} {
		_, err := s.repo.Insert(ctx, a)
		s.Require().NoError(err)
	}

	all, err := s.repo.List(ctx, models.AttemptFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, 4)

	trainingOnly, err := s.repo.List(ctx, models.AttemptFilter{TestMode: models.Bool(false)})
	s.Require().NoError(err)
	s.Assert().Len(trainingOnly, 3)

	testOnly, err := s.repo.List(ctx, models.AttemptFilter{TestMode: models.Bool(true)})
	s.Require().NoError(err)
	s.Require().Len(testOnly, 1)
	s.Assert().True(testOnly[0].IsTestMode)

	withSession, err := s.repo.List(ctx, models.AttemptFilter{SessionOnly: true, TestMode: models.Bool(false)})
	s.Require().NoError(err)
	s.Assert().Len(withSession, 2)

	firstRounds, err := s.repo.List(ctx, models.AttemptFilter{RoundOne: true})
	s.Require().NoError(err)
	s.Assert().Len(firstRounds, 3)

	newest, err := s.repo.List(ctx, models.AttemptFilter{NewestFirst: true, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(newest, 2)
	s.Assert().True(newest[0].IsTestMode)
	s.Assert().Equal(2, newest[1].Round)
}

func (s *AttemptRepositorySuite) TestList_ToleratesMalformedRows() {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO quiz_results (user_id, user_name, theme_name, all_answers, mistakes, completed_at)
VALUES (?, ?, ?, ?, ?, ?)`, "u1", "Zoe", "Addition", "{not json", "[]", "yesterday-ish")
	s.Require().NoError(err)
	_, err = s.db.ExecContext(ctx, `
INSERT INTO quiz_results (user_id, user_name, theme_name, completed_at)
VALUES (?, ?, ?, NULL)`, "u1", "Zoe", "Addition")
	s.Require().NoError(err)

	got, err := s.repo.List(ctx, models.AttemptFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	for _, a := range got {
		s.Assert().True(a.CompletedAt.IsZero(), "unreadable timestamps decode as zero")
		s.Assert().NotNil(a.AllAnswers)
		s.Assert().Empty(a.AllAnswers)
	}
}

func TestAttemptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AttemptRepositorySuite))
}

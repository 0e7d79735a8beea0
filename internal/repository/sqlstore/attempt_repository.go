package sqlstore

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/galamath/galamath/internal/db"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
)

var attemptColumns = []string{
	"id", "user_id", "user_name", "session_id", "theme_id", "theme_name", "level", "round",
	"score", "total_questions", "total_time_seconds", "avg_time_per_question",
	"is_test_mode", "all_answers", "mistakes", "completed_at",
}

type attemptRepository struct {
	db *db.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(conn *db.DB) repository.AttemptRepository {
	return &attemptRepository{db: conn}
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query := r.db.Builder().Select(attemptColumns...).From("quiz_results")
	if filter.TestMode != nil {
		query = query.Where(squirrel.Eq{"is_test_mode": *filter.TestMode})
	}
	if filter.SessionOnly {
		query = query.Where(squirrel.And{
			squirrel.NotEq{"session_id": nil},
			squirrel.NotEq{"session_id": ""},
		})
	}
	if filter.RoundOne {
		query = query.Where(squirrel.Eq{"round": 1})
	}
	if filter.NewestFirst {
		query = query.OrderBy("completed_at DESC", "id DESC")
	} else {
		query = query.OrderBy("completed_at ASC", "id ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	undated := 0
	for rows.Next() {
		a, dated, err := scanAttempt(ctx, rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if !dated {
			undated++
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if undated > 0 {
		log.Warn("%d attempts have an unreadable completed_at", undated)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, nil
}

func scanAttempt(ctx context.Context, rows *sql.Rows) (models.Attempt, bool, error) {
	var (
		a          models.Attempt
		sessionID  sql.NullString
		level      string
		allAnswers []byte
		mistakes   []byte
		completed  timestamp
	)
	err := rows.Scan(&a.ID, &a.UserID, &a.UserName, &sessionID, &a.ThemeID, &a.ThemeName, &level, &a.Round,
		&a.Score, &a.TotalQuestions, &a.TotalTimeSeconds, &a.AvgTimePerQuestion,
		&a.IsTestMode, &allAnswers, &mistakes, &completed)
	if err != nil {
		return a, false, err
	}
	a.SessionID = sessionID.String
	a.Level = models.Level(level)
	a.CompletedAt = completed.Time

	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	var ok bool
	if a.AllAnswers, ok = decodeJSONList[models.AnswerRecord](allAnswers); !ok {
		log.Warn("attempt %d: malformed all_answers, treating as empty", a.ID)
	}
	if a.Mistakes, ok = decodeJSONList[models.MistakeSummary](mistakes); !ok {
		log.Warn("attempt %d: malformed mistakes, treating as empty", a.ID)
	}
	return a, !completed.Invalid, nil
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: user=%s theme=%s level=%s round=%d", a.UserID, a.ThemeName, a.Level, a.Round)

	allAnswers, err := encodeJSONList(a.AllAnswers)
	if err != nil {
		return 0, err
	}
	mistakes, err := encodeJSONList(a.Mistakes)
	if err != nil {
		return 0, err
	}
	var sessionID any
	if a.SessionID != "" {
		sessionID = a.SessionID
	}

	stmt, args, err := r.db.Builder().Insert("quiz_results").
		Columns(attemptColumns[1:]...).
		Values(a.UserID, a.UserName, sessionID, a.ThemeID, a.ThemeName, string(a.Level), a.Round,
			a.Score, a.TotalQuestions, a.TotalTimeSeconds, a.AvgTimePerQuestion,
			a.IsTestMode, allAnswers, mistakes, a.CompletedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return 0, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/galamath/galamath/internal/db"
	"github.com/galamath/galamath/internal/logger"
	"github.com/galamath/galamath/internal/models"
	"github.com/galamath/galamath/internal/repository"
)

type lessonRepository struct {
	db *db.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(conn *db.DB) repository.LessonRepository {
	return &lessonRepository{db: conn}
}

func (r *lessonRepository) Get(ctx context.Context, sessionID string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: session=%s", sessionID)

	stmt, args, err := r.db.Builder().
		Select("session_id", "user_id", "user_name", "theme_name", "grade", "lesson_text", "lesson_audio_base64", "created_at").
		From("lessons").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		l       models.Lesson
		audio   sql.NullString
		created timestamp
	)
	err = r.db.QueryRowContext(ctx, stmt, args...).
		Scan(&l.SessionID, &l.UserID, &l.UserName, &l.ThemeName, &l.Grade, &l.LessonText, &audio, &created)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: session=%s", sessionID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	l.LessonAudioBase64 = audio.String
	l.CreatedAt = created.Time
	return &l, nil
}

// Upsert inserts the lesson or replaces the text and audio of an existing one.
func (r *lessonRepository) Upsert(ctx context.Context, l models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("saving lesson: session=%s", l.SessionID)

	var audio any
	if l.LessonAudioBase64 != "" {
		audio = l.LessonAudioBase64
	}

	stmt, args, err := r.db.Builder().Insert("lessons").
		Columns("session_id", "user_id", "user_name", "theme_name", "grade", "lesson_text", "lesson_audio_base64").
		Values(l.SessionID, l.UserID, l.UserName, l.ThemeName, l.Grade, l.LessonText, audio).
		Suffix("ON CONFLICT (session_id) DO UPDATE SET lesson_text = excluded.lesson_text, lesson_audio_base64 = excluded.lesson_audio_base64").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("failed to save lesson: %v", err)
		return err
	}
	return nil
}

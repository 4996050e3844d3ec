package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `id, user_id, activity_type, activity_name, group_id, group_name, correct_count, wrong_count, started_at, completed_at`

// Create implements store.SessionStore.Create
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.ActivityType,
		session.ActivityName,
		session.GroupID,
		session.GroupName,
		session.CorrectCount,
		session.WrongCount,
		session.StartedAt,
		session.CompletedAt,
	)
	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Info("session created",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()),
		slog.String("activity_type", session.ActivityType))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`

	var session domain.Session
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ActivityType,
		&session.ActivityName,
		&session.GroupID,
		&session.GroupName,
		&session.CorrectCount,
		&session.WrongCount,
		&session.StartedAt,
		&session.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}
	return &session, nil
}

// Complete implements store.SessionStore.Complete
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) Complete(ctx context.Context, id uuid.UUID, correct, wrong int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE study_sessions
		SET correct_count = $1, wrong_count = $2, completed_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, correct, wrong, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to complete session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrSessionNotFound); err != nil {
		log.Debug("session not found for completion", slog.String("session_id", id.String()))
		return err
	}

	log.Info("session completed",
		slog.String("session_id", id.String()),
		slog.Int("correct", correct),
		slog.Int("wrong", wrong))
	return nil
}

// ListByUser implements store.SessionStore.ListByUser
func (s *PostgresSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var sessions []*domain.Session
	for rows.Next() {
		var session domain.Session
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.ActivityType,
			&session.ActivityName,
			&session.GroupID,
			&session.GroupName,
			&session.CorrectCount,
			&session.WrongCount,
			&session.StartedAt,
			&session.CompletedAt,
		)
		if err != nil {
			log.Error("failed to scan session row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if sessions == nil {
		sessions = []*domain.Session{}
	}

	log.Debug("listed sessions",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(sessions)))
	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

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

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Upsert implements store.ProgressStore.Upsert
// The unique (user_id, word_id) constraint drives the conflict clause;
// exactly one counter is incremented per call.
// Returns store.ErrInvalidEntity if the user or word does not exist.
func (s *PostgresProgressStore) Upsert(ctx context.Context, userID uuid.UUID, wordID string, isCorrect bool, reviewedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The prospective first row doubles as validation; on conflict its
	// counts become the increments applied to the existing row.
	row, err := domain.NewWordProgress(userID, wordID, isCorrect, reviewedAt)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO word_progress (id, user_id, word_id, correct_count, wrong_count, last_reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, word_id) DO UPDATE
		SET correct_count = word_progress.correct_count + $4,
		    wrong_count = word_progress.wrong_count + $5,
		    last_reviewed_at = $6
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		row.ID,
		row.UserID,
		row.WordID,
		row.CorrectCount,
		row.WrongCount,
		row.LastReviewedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("unknown user or word during progress upsert",
				slog.String("user_id", userID.String()),
				slog.String("word_id", wordID))
		} else {
			log.Error("failed to upsert word progress",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("word_id", wordID))
		}
		return MapError(err)
	}

	log.Debug("word progress recorded",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID),
		slog.Bool("correct", isCorrect))
	return nil
}

// Get implements store.ProgressStore.Get
// Returns store.ErrProgressNotFound if no answer has been recorded yet.
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID, wordID string) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, word_id, correct_count, wrong_count, last_reviewed_at
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2
	`

	var progress domain.WordProgress
	err := s.db.QueryRowContext(ctx, query, userID, wordID).Scan(
		&progress.ID,
		&progress.UserID,
		&progress.WordID,
		&progress.CorrectCount,
		&progress.WrongCount,
		&progress.LastReviewedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word progress not found",
				slog.String("user_id", userID.String()),
				slog.String("word_id", wordID))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID))
		return nil, MapError(err)
	}
	return &progress, nil
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, word_id, correct_count, wrong_count, last_reviewed_at
		FROM word_progress
		WHERE user_id = $1
		ORDER BY word_id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var progresses []*domain.WordProgress
	for rows.Next() {
		var progress domain.WordProgress
		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.WordID,
			&progress.CorrectCount,
			&progress.WrongCount,
			&progress.LastReviewedAt,
		)
		if err != nil {
			log.Error("failed to scan progress row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		progresses = append(progresses, &progress)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if progresses == nil {
		progresses = []*domain.WordProgress{}
	}
	return progresses, nil
}

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

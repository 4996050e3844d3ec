package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

const wordColumns = `id, greek, transliteration, english, part_of_speech, correct_count, wrong_count, created_at, updated_at`

// List implements store.WordStore.List
// Group memberships are attached from a second query so each word
// carries its GroupIDs.
func (s *PostgresWordStore) List(ctx context.Context) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query words", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	words, err := scanWords(rows, log)
	if err != nil {
		return nil, err
	}

	if err := s.attachGroupIDs(ctx, words); err != nil {
		return nil, err
	}

	log.Debug("listed words", slog.Int("count", len(words)))
	return words, nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

	var word domain.Word
	var pos string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.Greek,
		&word.Transliteration,
		&word.English,
		&pos,
		&word.CorrectCount,
		&word.WrongCount,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id))
		return nil, MapError(err)
	}
	word.PartOfSpeech = domain.PartOfSpeech(pos)

	if err := s.attachGroupIDs(ctx, []*domain.Word{&word}); err != nil {
		return nil, err
	}
	return &word, nil
}

// ListByGroup implements store.WordStore.ListByGroup
// An unknown group yields an empty slice.
func (s *PostgresWordStore) ListByGroup(ctx context.Context, groupID string) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT w.id, w.greek, w.transliteration, w.english, w.part_of_speech,
		       w.correct_count, w.wrong_count, w.created_at, w.updated_at
		FROM words w
		JOIN word_group_members m ON m.word_id = w.id
		WHERE m.group_id = $1
		ORDER BY w.id
	`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		log.Error("failed to query words by group",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID))
		return nil, MapError(err)
	}
	words, err := scanWords(rows, log)
	if err != nil {
		return nil, err
	}

	if err := s.attachGroupIDs(ctx, words); err != nil {
		return nil, err
	}

	log.Debug("listed words by group",
		slog.String("group_id", groupID),
		slog.Int("count", len(words)))
	return words, nil
}

// IncrementCounters implements store.WordStore.IncrementCounters
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) IncrementCounters(ctx context.Context, id string, isCorrect bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column := "wrong_count"
	if isCorrect {
		column = "correct_count"
	}

	// column is one of two fixed identifiers, never user input.
	query := `UPDATE words SET ` + column + ` = ` + column + ` + 1, updated_at = $1 WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, touchUpdatedAt(), id)
	if err != nil {
		log.Error("failed to increment word counter",
			slog.String("error", err.Error()),
			slog.String("word_id", id))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrWordNotFound)
}

// attachGroupIDs fills in GroupIDs for the given words.
func (s *PostgresWordStore) attachGroupIDs(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT word_id, group_id FROM word_group_members ORDER BY word_id, group_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query group memberships", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	byWord := make(map[string][]string)
	for rows.Next() {
		var wordID, groupID string
		if err := rows.Scan(&wordID, &groupID); err != nil {
			log.Error("failed to scan membership row", slog.String("error", err.Error()))
			return MapError(err)
		}
		byWord[wordID] = append(byWord[wordID], groupID)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return MapError(err)
	}

	for _, w := range words {
		w.GroupIDs = byWord[w.ID]
	}
	return nil
}

// scanWords drains a word result set, closing it.
func scanWords(rows *sql.Rows, log *slog.Logger) ([]*domain.Word, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var words []*domain.Word
	for rows.Next() {
		var word domain.Word
		var pos string
		err := rows.Scan(
			&word.ID,
			&word.Greek,
			&word.Transliteration,
			&word.English,
			&pos,
			&word.CorrectCount,
			&word.WrongCount,
			&word.CreatedAt,
			&word.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan word row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		word.PartOfSpeech = domain.PartOfSpeech(pos)
		words = append(words, &word)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if words == nil {
		words = []*domain.Word{}
	}
	return words, nil
}

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the
// GroupStore interface. If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// List implements store.GroupStore.List
func (s *PostgresGroupStore) List(ctx context.Context) ([]*domain.WordGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, word_count, created_at
		FROM word_groups
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query word groups", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var groups []*domain.WordGroup
	for rows.Next() {
		var group domain.WordGroup
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.WordCount,
			&group.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan group row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if groups == nil {
		groups = []*domain.WordGroup{}
	}
	return groups, nil
}

// GetByID implements store.GroupStore.GetByID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByID(ctx context.Context, id string) (*domain.WordGroup, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, word_count, created_at
		FROM word_groups
		WHERE id = $1
	`

	var group domain.WordGroup
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.WordCount,
		&group.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("group_id", id))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by ID",
			slog.String("error", err.Error()),
			slog.String("group_id", id))
		return nil, MapError(err)
	}
	return &group, nil
}

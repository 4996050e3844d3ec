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

// PasswordHasher derives a storable hash from a plaintext password.
// Satisfied by auth.BcryptVerifier.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	hasher PasswordHasher
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. The hasher is applied to the plaintext password
// during Create. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, hasher PasswordHasher, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It validates the user, hashes the plaintext password, and inserts the
// row. Returns store.ErrUsernameExists on a duplicate username.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.HashedPassword == "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate username during user creation",
				slog.String("username", user.Username))
			return MapUniqueViolation(err, store.ErrUsernameExists)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}
	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
// The username is normalized before lookup, matching registration.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, domain.NormalizeUsername(username)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, MapError(err)
	}
	return user, nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		hasher: s.hasher,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *PostgresUserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create
// Returns store.ErrUsernameExists if the username is already taken.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO profiles (id, user_id, username, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Username,
		profile.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate username during profile creation",
				slog.String("username", profile.Username))
			return MapUniqueViolation(err, store.ErrUsernameExists)
		}
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("user_id", profile.UserID.String()),
		slog.String("username", profile.Username))
	return nil
}

// GetByUserID implements store.ProfileStore.GetByUserID
// Returns store.ErrProfileNotFound if no profile exists.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, username, created_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile domain.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Username,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	return &profile, nil
}

// UsernameExists implements store.ProfileStore.UsernameExists
func (s *PostgresProfileStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, domain.NormalizeUsername(username)).Scan(&exists)
	if err != nil {
		log.Error("failed to check username availability",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return false, MapError(err)
	}
	return exists, nil
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}

// touchUpdatedAt is shared by stores that stamp updated_at on writes.
func touchUpdatedAt() time.Time {
	return time.Now().UTC()
}

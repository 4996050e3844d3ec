package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooShort    = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong     = errors.New("username must be at most 20 characters")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// SyntheticEmailDomain is the internal domain appended to usernames to form
// the credential identity handed to the persistence layer. Users never see
// or type these addresses.
const SyntheticEmailDomain = "hellenika.local"

// User represents a registered user, identified to the outside world by a
// display name. The stored Email is synthesized from the normalized username
// and exists only to satisfy the credential layer.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"-"` // Synthetic address, internal only
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and password.
// The username is normalized (trimmed, lowercased) and the synthetic email
// derived from it. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing it before storage.
func NewUser(username, password string) (*User, error) {
	normalized := NormalizeUsername(username)
	user := &User{
		ID:        uuid.New(),
		Username:  normalized,
		Email:     SyntheticEmail(normalized),
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeUsername trims surrounding whitespace and lowercases the name so
// that sign-up and sign-in agree on the stored form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// SyntheticEmail maps a normalized username to the internal credential
// address used by the persistence layer.
func SyntheticEmail(username string) string {
	return fmt.Sprintf("%s@%s", username, SyntheticEmailDomain)
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) < 3 {
		return ErrUsernameTooShort
	}
	if len(u.Username) > 20 {
		return ErrUsernameTooLong
	}
	if !validUsernameChars(u.Username) {
		return ErrInvalidUsername
	}

	// During user creation we validate the provided plaintext password;
	// existing users loaded from the store carry only the hash.
	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validUsernameChars reports whether the name consists only of letters,
// digits, and underscores.
func validUsernameChars(username string) bool {
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Profile holds the public-facing identity for a user.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfile creates a profile row for a freshly registered user.
func NewProfile(userID uuid.UUID, username string) (*Profile, error) {
	p := &Profile{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  NormalizeUsername(username),
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("%w: profile ID cannot be empty", ErrInvalidID)
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.Username == "" {
		return ErrEmptyUsername
	}
	return nil
}

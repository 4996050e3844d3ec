package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenika/hellenika-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("  Sokrates ", "hemlock-forever")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "sokrates", user.Username, "username is trimmed and lowercased")
	assert.Equal(t, "sokrates@hellenika.local", user.Email)
	assert.Equal(t, "hemlock-forever", user.Password)
	assert.Empty(t, user.HashedPassword)
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "username too short",
			username: "ab",
			password: "password123",
			wantErr:  domain.ErrUsernameTooShort,
		},
		{
			name:     "username too long",
			username: "a_very_long_username_over_limit",
			password: "password123",
			wantErr:  domain.ErrUsernameTooLong,
		},
		{
			name:     "username with invalid characters",
			username: "sok rates",
			password: "password123",
			wantErr:  domain.ErrInvalidUsername,
		},
		{
			name:     "password too short",
			username: "sokrates",
			password: "12345",
			wantErr:  domain.ErrPasswordTooShort,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewUser(tc.username, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store carries only the hash.
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "sokrates",
		Email:          domain.SyntheticEmail("sokrates"),
		HashedPassword: "$2a$10$fakehashfakehashfakehash",
	}
	require.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}

func TestSyntheticEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "platon@hellenika.local", domain.SyntheticEmail("platon"))
}

func TestNewProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	p, err := domain.NewProfile(userID, " Platon ")
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "platon", p.Username)

	_, err = domain.NewProfile(uuid.Nil, "platon")
	assert.Error(t, err)
}

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/domain/mastery"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Name is the normalized display name, echoed back so clients can
	// store exactly what the server knows
	Name string `json:"name"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// StartSessionRequest defines the payload for opening a study session.
type StartSessionRequest struct {
	ActivityID string  `json:"activity_id" validate:"required"`
	GroupID    *string `json:"group_id,omitempty"`
}

// SessionResponse is one row of the session history view.
type SessionResponse struct {
	ID              uuid.UUID  `json:"id"`
	ActivityType    string     `json:"activity_type"`
	ActivityName    string     `json:"activity_name"`
	GroupID         *string    `json:"group_id,omitempty"`
	GroupName       *string    `json:"group_name,omitempty"`
	CorrectCount    int        `json:"correct_count"`
	WrongCount      int        `json:"wrong_count"`
	Accuracy        int        `json:"accuracy"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
}

// NewSessionResponse derives the history row from a ledger session.
func NewSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		ID:           s.ID,
		ActivityType: s.ActivityType,
		ActivityName: s.ActivityName,
		GroupID:      s.GroupID,
		GroupName:    s.GroupName,
		CorrectCount: s.CorrectCount,
		WrongCount:   s.WrongCount,
		Accuracy:     mastery.Accuracy(s.CorrectCount, s.WrongCount),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
	if d, ok := s.Duration(); ok {
		seconds := int(d.Seconds())
		resp.DurationSeconds = &seconds
	}
	return resp
}

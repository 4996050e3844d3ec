package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/api/middleware"
	"github.com/hellenika/hellenika-api/internal/api/shared"
	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/service/auth"
	"github.com/hellenika/hellenika-api/internal/store"
)

// invalidCredentialsMessage is deliberately identical for unknown names
// and wrong passwords so login responses do not reveal which one failed.
const invalidCredentialsMessage = "Invalid name or password"

// AccountService is the part of the account service the handler uses.
type AccountService interface {
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts         AccountService
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	loginLimiter     *middleware.LoginRateLimiter
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accounts AccountService,
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	loginLimiter *middleware.LoginRateLimiter,
) *AuthHandler {
	return &AuthHandler{
		accounts:         accounts,
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		loginLimiter:     loginLimiter,
	}
}

// Register handles the /api/auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	available, err := h.accounts.UsernameAvailable(r.Context(), req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create account", err)
		return
	}
	if !available {
		shared.RespondWithError(w, r, http.StatusConflict, "Name already taken")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		// The availability check races with concurrent registrations; the
		// unique constraint is the authority.
		if errors.Is(err, store.ErrUsernameExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Name already taken")
			return
		}
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID:       user.ID,
		Name:         user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles the /api/auth/login endpoint. Attempts count against the
// rate limit whether or not the credentials turn out to be valid.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if h.loginLimiter != nil {
		allowed, retryAfter := h.loginLimiter.Allow(h.loginLimiter.Key(req.Name, r))
		if !allowed {
			seconds := int(retryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many login attempts, try again later", nil)
			return
		}
	}

	user, err := h.userStore.GetByUsername(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, invalidCredentialsMessage)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       user.ID,
		Name:         user.Username,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles the /api/auth/refresh endpoint, exchanging a valid
// refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Profile handles the /api/profile endpoint for the authenticated user.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.accounts.Profile(r.Context(), userID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// generateTokenPair creates matching access and refresh tokens.
func (h *AuthHandler) generateTokenPair(ctx context.Context, userID uuid.UUID) (string, string, error) {
	accessToken, err := h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", userID)
		return "", "", err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "user_id", userID)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/api/middleware"
	"github.com/hellenika/hellenika-api/internal/api/shared"
	"github.com/hellenika/hellenika-api/internal/study"
)

// StudyEngine is the part of the activity engine the handler uses.
type StudyEngine interface {
	Start(ctx context.Context, userID uuid.UUID, activityID string, groupID *string) (*study.State, error)
	Get(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*study.State, error)
	SubmitAnswer(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, ans study.Answer) (*study.Outcome, error)
	Restart(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) (*study.State, error)
}

// StudyHandler handles the study session endpoints.
type StudyHandler struct {
	engine StudyEngine
}

// NewStudyHandler creates a new StudyHandler with the given engine.
func NewStudyHandler(engine StudyEngine) *StudyHandler {
	if engine == nil {
		panic("engine cannot be nil")
	}
	return &StudyHandler{engine: engine}
}

// StartSession handles POST /api/study/sessions.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	state, err := h.engine.Start(r.Context(), userID, req.ActivityID, req.GroupID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// GetSession handles GET /api/study/sessions/{sessionID}.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	state, err := h.engine.Get(r.Context(), userID, sessionID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// SubmitAnswer handles POST /api/study/sessions/{sessionID}/answer.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	var ans study.Answer
	if err := shared.DecodeJSON(r, &ans); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	outcome, err := h.engine.SubmitAnswer(r.Context(), userID, sessionID, ans)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, outcome)
}

// RestartSession handles POST /api/study/sessions/{sessionID}/restart.
func (h *StudyHandler) RestartSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := h.sessionRequest(w, r)
	if !ok {
		return
	}

	state, err := h.engine.Restart(r.Context(), userID, sessionID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, state)
}

// sessionRequest extracts the authenticated user and the session ID path
// parameter, writing the error response itself when either is missing.
func (h *StudyHandler) sessionRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, sessionID, true
}

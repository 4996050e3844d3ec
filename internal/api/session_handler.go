package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hellenika/hellenika-api/internal/api/middleware"
	"github.com/hellenika/hellenika-api/internal/api/shared"
	"github.com/hellenika/hellenika-api/internal/browse"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/progress"
	"github.com/hellenika/hellenika-api/internal/store"
)

// ProgressTracker is the part of the progress tracker the handlers use.
type ProgressTracker interface {
	ComputeStats(ctx context.Context, userID uuid.UUID) (*progress.Stats, error)
	ListWordStatuses(ctx context.Context, userID uuid.UUID) ([]*progress.WordStatus, error)
}

// SessionHandler serves the session history and dashboard views.
type SessionHandler struct {
	sessionStore store.SessionStore
	tracker      ProgressTracker
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(sessionStore store.SessionStore, tracker ProgressTracker) *SessionHandler {
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	return &SessionHandler{
		sessionStore: sessionStore,
		tracker:      tracker,
	}
}

// ListSessions handles GET /api/sessions with sort and pagination
// query parameters.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// A failed history read degrades to an empty page; the client shows
	// "no sessions yet" rather than an error.
	sessions, err := h.sessionStore.ListByUser(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list sessions, serving empty history",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		sessions = nil
	}

	params := r.URL.Query()

	sortField := browse.SessionSortField(params.Get("sort_by"))
	if sortField == "" {
		sortField = browse.SessionSortDate
	}
	// History defaults to newest first.
	direction := browse.Descending
	if params.Get("order") == string(browse.Ascending) {
		direction = browse.Ascending
	}
	browse.SortSessions(sessions, sortField, direction)

	page := browse.Paginate(sessions, parsePage(params.Get("page")), browse.DefaultPageSize)

	rows := make([]SessionResponse, len(page.Items))
	for i, s := range page.Items {
		rows[i] = NewSessionResponse(s)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, browse.Page[SessionResponse]{
		Items:      rows,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	})
}

// Dashboard handles GET /api/dashboard.
func (h *SessionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.tracker.ComputeStats(r.Context(), userID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ListWordProgress handles GET /api/progress/words.
func (h *SessionHandler) ListWordProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	statuses, err := h.tracker.ListWordStatuses(r.Context(), userID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statuses)
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hellenika/hellenika-api/internal/api/shared"
	"github.com/hellenika/hellenika-api/internal/browse"
	"github.com/hellenika/hellenika-api/internal/catalog"
	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/platform/logger"
	"github.com/hellenika/hellenika-api/internal/store"
)

// CatalogHandler serves the read-only vocabulary catalog: words, groups,
// and the static activity list.
type CatalogHandler struct {
	wordStore  store.WordStore
	groupStore store.GroupStore
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(wordStore store.WordStore, groupStore store.GroupStore) *CatalogHandler {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if groupStore == nil {
		panic("groupStore cannot be nil")
	}
	return &CatalogHandler{
		wordStore:  wordStore,
		groupStore: groupStore,
	}
}

// ListWords handles GET /api/words with filter, sort, and pagination
// query parameters. A failed catalog read degrades to an empty page
// rather than an error response.
func (h *CatalogHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.wordStore.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list words, serving empty catalog",
			slog.String("error", err.Error()))
		words = nil
	}
	h.respondWordPage(w, r, words)
}

// ListGroups handles GET /api/groups. A failed read degrades to an
// empty list.
func (h *CatalogHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupStore.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list groups, serving empty list",
			slog.String("error", err.Error()))
		groups = []*domain.WordGroup{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, groups)
}

// GetGroup handles GET /api/groups/{groupID}.
func (h *CatalogHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	group, err := h.groupStore.GetByID(r.Context(), groupID)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, group)
}

// ListGroupWords handles GET /api/groups/{groupID}/words with the same
// filter, sort, and pagination parameters as the full catalog view.
func (h *CatalogHandler) ListGroupWords(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	// The group must exist; an unknown ID is 404, not an empty page.
	if _, err := h.groupStore.GetByID(r.Context(), groupID); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	words, err := h.wordStore.ListByGroup(r.Context(), groupID)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to list group words, serving empty page",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID))
		words = nil
	}
	h.respondWordPage(w, r, words)
}

// ListActivities handles GET /api/activities.
func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, catalog.Activities())
}

// respondWordPage applies the shared filter/sort/paginate pipeline and
// writes the page.
func (h *CatalogHandler) respondWordPage(w http.ResponseWriter, r *http.Request, words []*domain.Word) {
	params := r.URL.Query()

	filtered := browse.FilterWords(words, params.Get("q"))

	sortField := browse.WordSortField(params.Get("sort_by"))
	if sortField == "" {
		sortField = browse.WordSortGreek
	}
	direction := browse.Ascending
	if params.Get("order") == string(browse.Descending) {
		direction = browse.Descending
	}
	browse.SortWords(filtered, sortField, direction)

	page := parsePage(params.Get("page"))
	shared.RespondWithJSON(w, r, http.StatusOK,
		browse.Paginate(filtered, page, browse.DefaultPageSize))
}

// parsePage parses a 1-indexed page number, defaulting to the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

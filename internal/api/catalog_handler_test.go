package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenika/hellenika-api/internal/browse"
	"github.com/hellenika/hellenika-api/internal/domain"
	"github.com/hellenika/hellenika-api/internal/store"
)

// mockWordStore serves a fixed catalog.
type mockWordStore struct {
	words   []*domain.Word
	byGroup map[string][]*domain.Word
	err     error
}

func (m *mockWordStore) List(ctx context.Context) ([]*domain.Word, error) {
	return m.words, m.err
}

func (m *mockWordStore) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	for _, w := range m.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, store.ErrWordNotFound
}

func (m *mockWordStore) ListByGroup(ctx context.Context, groupID string) ([]*domain.Word, error) {
	return m.byGroup[groupID], m.err
}

func (m *mockWordStore) IncrementCounters(ctx context.Context, id string, isCorrect bool) error {
	return nil
}

// mockGroupStore serves fixed groups.
type mockGroupStore struct {
	groups []*domain.WordGroup
	err    error
}

func (m *mockGroupStore) List(ctx context.Context) ([]*domain.WordGroup, error) {
	return m.groups, m.err
}

func (m *mockGroupStore) GetByID(ctx context.Context, id string) (*domain.WordGroup, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, store.ErrGroupNotFound
}

func catalogFixture() (*mockWordStore, *mockGroupStore) {
	words := []*domain.Word{
		{ID: "logos", Greek: "λόγος", Transliteration: "logos", English: "word, reason", PartOfSpeech: domain.PartOfSpeechNoun},
		{ID: "psyche", Greek: "ψυχή", Transliteration: "psyche", English: "soul", PartOfSpeech: domain.PartOfSpeechNoun},
		{ID: "kalos", Greek: "καλός", Transliteration: "kalos", English: "beautiful, noble", PartOfSpeech: domain.PartOfSpeechAdjective},
		{ID: "einai", Greek: "εἶναι", Transliteration: "einai", English: "to be", PartOfSpeech: domain.PartOfSpeechVerb},
	}
	wordStore := &mockWordStore{
		words: words,
		byGroup: map[string][]*domain.Word{
			"philosophy": {words[0], words[1]},
		},
	}
	groupStore := &mockGroupStore{
		groups: []*domain.WordGroup{
			{ID: "philosophy", Name: "Philosophy", WordCount: 2},
			{ID: "core-verbs", Name: "Core Verbs", WordCount: 1},
		},
	}
	return wordStore, groupStore
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeWordPage(t *testing.T, rr *httptest.ResponseRecorder) browse.Page[*domain.Word] {
	t.Helper()
	var page browse.Page[*domain.Word]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	return page
}

func TestListWords(t *testing.T) {
	t.Parallel()

	wordStore, groupStore := catalogFixture()
	handler := NewCatalogHandler(wordStore, groupStore)

	t.Run("default greek collation order", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ListWords(rr, httptest.NewRequest(http.MethodGet, "/api/words", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		require.Len(t, page.Items, 4)
		// εἶναι < καλός < λόγος < ψυχή under Greek collation.
		assert.Equal(t, "einai", page.Items[0].ID)
		assert.Equal(t, "kalos", page.Items[1].ID)
		assert.Equal(t, "logos", page.Items[2].ID)
		assert.Equal(t, "psyche", page.Items[3].ID)
		assert.Equal(t, 4, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("filter by english gloss", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ListWords(rr, httptest.NewRequest(http.MethodGet, "/api/words?q=soul", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "psyche", page.Items[0].ID)
	})

	t.Run("sort by english descending", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ListWords(rr, httptest.NewRequest(http.MethodGet,
			"/api/words?sort_by=english&order=desc", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		require.Len(t, page.Items, 4)
		assert.Equal(t, "word, reason", page.Items[0].English)
	})

	t.Run("page past the end is empty, not clamped", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ListWords(rr, httptest.NewRequest(http.MethodGet, "/api/words?page=3", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		assert.Empty(t, page.Items)
		assert.Equal(t, 3, page.PageNumber)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})
}

func TestListWordsPagination(t *testing.T) {
	t.Parallel()

	words := make([]*domain.Word, 23)
	for i := range words {
		words[i] = &domain.Word{
			ID:           fmt.Sprintf("word-%02d", i),
			Greek:        fmt.Sprintf("λέξις %02d", i),
			English:      fmt.Sprintf("gloss %02d", i),
			PartOfSpeech: domain.PartOfSpeechNoun,
		}
	}
	handler := NewCatalogHandler(&mockWordStore{words: words}, &mockGroupStore{})

	rr := httptest.NewRecorder()
	handler.ListWords(rr, httptest.NewRequest(http.MethodGet, "/api/words?page=2", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeWordPage(t, rr)
	assert.Len(t, page.Items, browse.DefaultPageSize)
	assert.Equal(t, 23, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListGroups(t *testing.T) {
	t.Parallel()

	wordStore, groupStore := catalogFixture()
	handler := NewCatalogHandler(wordStore, groupStore)

	rr := httptest.NewRecorder()
	handler.ListGroups(rr, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var groups []*domain.WordGroup
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&groups))
	assert.Len(t, groups, 2)
}

func TestGetGroup(t *testing.T) {
	t.Parallel()

	wordStore, groupStore := catalogFixture()
	handler := NewCatalogHandler(wordStore, groupStore)

	t.Run("known group", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/groups/philosophy", nil),
			"groupID", "philosophy")
		rr := httptest.NewRecorder()
		handler.GetGroup(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var group domain.WordGroup
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&group))
		assert.Equal(t, "Philosophy", group.Name)
	})

	t.Run("unknown group", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/groups/nope", nil),
			"groupID", "nope")
		rr := httptest.NewRecorder()
		handler.GetGroup(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListGroupWords(t *testing.T) {
	t.Parallel()

	wordStore, groupStore := catalogFixture()
	handler := NewCatalogHandler(wordStore, groupStore)

	t.Run("known group", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/groups/philosophy/words", nil),
			"groupID", "philosophy")
		rr := httptest.NewRecorder()
		handler.ListGroupWords(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		assert.Len(t, page.Items, 2)
	})

	t.Run("unknown group is 404, not an empty page", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/groups/nope/words", nil),
			"groupID", "nope")
		rr := httptest.NewRecorder()
		handler.ListGroupWords(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCatalogReadFailures(t *testing.T) {
	t.Parallel()

	storeErr := fmt.Errorf("connection refused")

	t.Run("word list failure serves an empty page", func(t *testing.T) {
		handler := NewCatalogHandler(&mockWordStore{err: storeErr}, &mockGroupStore{})

		rr := httptest.NewRecorder()
		handler.ListWords(rr, httptest.NewRequest(http.MethodGet, "/api/words", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalItems)
	})

	t.Run("group list failure serves an empty list", func(t *testing.T) {
		handler := NewCatalogHandler(&mockWordStore{}, &mockGroupStore{err: storeErr})

		rr := httptest.NewRecorder()
		handler.ListGroups(rr, httptest.NewRequest(http.MethodGet, "/api/groups", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var groups []*domain.WordGroup
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&groups))
		assert.Empty(t, groups)
	})

	t.Run("group word fetch failure serves an empty page", func(t *testing.T) {
		groupStore := &mockGroupStore{groups: []*domain.WordGroup{
			{ID: "philosophy", Name: "Philosophy", WordCount: 2},
		}}
		handler := NewCatalogHandler(&mockWordStore{err: storeErr}, groupStore)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/groups/philosophy/words", nil),
			"groupID", "philosophy")
		rr := httptest.NewRecorder()
		handler.ListGroupWords(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		page := decodeWordPage(t, rr)
		assert.Empty(t, page.Items)
	})
}

func TestListActivities(t *testing.T) {
	t.Parallel()

	wordStore, groupStore := catalogFixture()
	handler := NewCatalogHandler(wordStore, groupStore)

	rr := httptest.NewRecorder()
	handler.ListActivities(rr, httptest.NewRequest(http.MethodGet, "/api/activities", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var activities []domain.StudyActivity
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&activities))
	require.NotEmpty(t, activities)

	ids := make([]string, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	assert.Contains(t, ids, "flashcard")
	assert.Contains(t, ids, "quiz")
	assert.Contains(t, ids, "typing")
}

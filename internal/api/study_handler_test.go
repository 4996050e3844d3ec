package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenika/hellenika-api/internal/api/shared"
	"github.com/hellenika/hellenika-api/internal/store"
	"github.com/hellenika/hellenika-api/internal/study"
)

// mockStudyEngine is a function-backed StudyEngine.
type mockStudyEngine struct {
	startFn   func(ctx context.Context, userID uuid.UUID, activityID string, groupID *string) (*study.State, error)
	getFn     func(ctx context.Context, userID, sessionID uuid.UUID) (*study.State, error)
	submitFn  func(ctx context.Context, userID, sessionID uuid.UUID, ans study.Answer) (*study.Outcome, error)
	restartFn func(ctx context.Context, userID, sessionID uuid.UUID) (*study.State, error)
}

func (m *mockStudyEngine) Start(ctx context.Context, userID uuid.UUID, activityID string, groupID *string) (*study.State, error) {
	return m.startFn(ctx, userID, activityID, groupID)
}

func (m *mockStudyEngine) Get(ctx context.Context, userID, sessionID uuid.UUID) (*study.State, error) {
	return m.getFn(ctx, userID, sessionID)
}

func (m *mockStudyEngine) SubmitAnswer(ctx context.Context, userID, sessionID uuid.UUID, ans study.Answer) (*study.Outcome, error) {
	return m.submitFn(ctx, userID, sessionID, ans)
}

func (m *mockStudyEngine) Restart(ctx context.Context, userID, sessionID uuid.UUID) (*study.State, error) {
	return m.restartFn(ctx, userID, sessionID)
}

// authedRequest builds a request carrying the authenticated user and,
// when sessionID is non-nil, the chi sessionID route parameter.
func authedRequest(method, path string, userID uuid.UUID, sessionID *uuid.UUID, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	if sessionID != nil {
		req = withURLParam(req, "sessionID", sessionID.String())
	}
	return req
}

func TestStartSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	engine := &mockStudyEngine{
		startFn: func(ctx context.Context, uid uuid.UUID, activityID string, groupID *string) (*study.State, error) {
			require.Equal(t, userID, uid)
			switch activityID {
			case "flashcard":
				return &study.State{
					SessionID:    sessionID,
					ActivityID:   "flashcard",
					ActivityName: "Flashcards",
					Prompt:       &study.Prompt{Index: 1, Total: 4, WordID: "logos", Greek: "λόγος"},
				}, nil
			default:
				return nil, study.ErrActivityNotFound
			}
		},
	}
	handler := NewStudyHandler(engine)

	t.Run("known activity", func(t *testing.T) {
		req := authedRequest(http.MethodPost, "/api/study/sessions", userID, nil,
			map[string]any{"activity_id": "flashcard"})
		rr := httptest.NewRecorder()
		handler.StartSession(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var state study.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Equal(t, sessionID, state.SessionID)
		require.NotNil(t, state.Prompt)
		assert.Equal(t, "λόγος", state.Prompt.Greek)
	})

	t.Run("unknown activity", func(t *testing.T) {
		req := authedRequest(http.MethodPost, "/api/study/sessions", userID, nil,
			map[string]any{"activity_id": "charades"})
		rr := httptest.NewRecorder()
		handler.StartSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing activity id", func(t *testing.T) {
		req := authedRequest(http.MethodPost, "/api/study/sessions", userID, nil,
			map[string]any{})
		rr := httptest.NewRecorder()
		handler.StartSession(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"activity_id": "flashcard"})
		req := httptest.NewRequest(http.MethodPost, "/api/study/sessions", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.StartSession(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	engine := &mockStudyEngine{
		getFn: func(ctx context.Context, uid, sid uuid.UUID) (*study.State, error) {
			if sid != sessionID {
				return nil, store.ErrSessionNotFound
			}
			return &study.State{SessionID: sid, ActivityID: "quiz", CorrectCount: 2}, nil
		},
	}
	handler := NewStudyHandler(engine)

	t.Run("known session", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/study/sessions/"+sessionID.String(),
			userID, &sessionID, nil)
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var state study.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Equal(t, 2, state.CorrectCount)
	})

	t.Run("unknown session", func(t *testing.T) {
		other := uuid.New()
		req := authedRequest(http.MethodGet, "/api/study/sessions/"+other.String(),
			userID, &other, nil)
		rr := httptest.NewRecorder()
		handler.GetSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed session id", func(t *testing.T) {
		req := authedRequest(http.MethodGet, "/api/study/sessions/not-a-uuid", userID, nil, nil)
		rctx := withURLParam(req, "sessionID", "not-a-uuid")
		rr := httptest.NewRecorder()
		handler.GetSession(rr, rctx)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()

	tests := []struct {
		name       string
		submitFn   func(ctx context.Context, userID, sessionID uuid.UUID, ans study.Answer) (*study.Outcome, error)
		payload    map[string]any
		wantStatus int
	}{
		{
			name: "correct answer advances",
			submitFn: func(ctx context.Context, uid, sid uuid.UUID, ans study.Answer) (*study.Outcome, error) {
				require.NotNil(t, ans.Correct)
				return &study.Outcome{
					Correct:      true,
					CorrectCount: 1,
					Next:         &study.Prompt{Index: 2, Total: 4},
				}, nil
			},
			payload:    map[string]any{"correct": true},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty answer",
			submitFn: func(ctx context.Context, uid, sid uuid.UUID, ans study.Answer) (*study.Outcome, error) {
				return nil, study.ErrMissingAnswer
			},
			payload:    map[string]any{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "completed session",
			submitFn: func(ctx context.Context, uid, sid uuid.UUID, ans study.Answer) (*study.Outcome, error) {
				return nil, study.ErrSessionNotActive
			},
			payload:    map[string]any{"correct": true},
			wantStatus: http.StatusConflict,
		},
		{
			name: "option index out of range",
			submitFn: func(ctx context.Context, uid, sid uuid.UUID, ans study.Answer) (*study.Outcome, error) {
				return nil, study.ErrInvalidOption
			},
			payload:    map[string]any{"option_index": 9},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewStudyHandler(&mockStudyEngine{submitFn: tc.submitFn})

			req := authedRequest(http.MethodPost,
				"/api/study/sessions/"+sessionID.String()+"/answer",
				userID, &sessionID, tc.payload)
			rr := httptest.NewRecorder()
			handler.SubmitAnswer(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantStatus == http.StatusOK {
				var outcome study.Outcome
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&outcome))
				assert.True(t, outcome.Correct)
				require.NotNil(t, outcome.Next)
				assert.Equal(t, 2, outcome.Next.Index)
			}
		})
	}
}

func TestRestartSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	oldID := uuid.New()
	newID := uuid.New()

	engine := &mockStudyEngine{
		restartFn: func(ctx context.Context, uid, sid uuid.UUID) (*study.State, error) {
			if sid != oldID {
				return nil, store.ErrSessionNotFound
			}
			return &study.State{SessionID: newID, ActivityID: "flashcard"}, nil
		},
	}
	handler := NewStudyHandler(engine)

	t.Run("restart returns fresh session", func(t *testing.T) {
		req := authedRequest(http.MethodPost,
			"/api/study/sessions/"+oldID.String()+"/restart", userID, &oldID, nil)
		rr := httptest.NewRecorder()
		handler.RestartSession(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var state study.State
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
		assert.Equal(t, newID, state.SessionID)
	})

	t.Run("someone else's session", func(t *testing.T) {
		other := uuid.New()
		req := authedRequest(http.MethodPost,
			"/api/study/sessions/"+other.String()+"/restart", userID, &other, nil)
		rr := httptest.NewRecorder()
		handler.RestartSession(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

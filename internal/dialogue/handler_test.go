package dialogue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

func newTestHandler(t *testing.T, llm *fakeLLM) (*Handler, chi.Router) {
	t.Helper()
	svc := newTestService(t, llm)
	h := NewHandler(svc, logging.New("error"))

	r := chi.NewRouter()
	r.Post("/sessions", h.Start)
	r.Post("/sessions/{sessionID}/messages", h.Message)
	r.Post("/sessions/{sessionID}/reset", h.Reset)
	return h, r
}

func TestHandlerStartSession(t *testing.T) {
	_, r := newTestHandler(t, &fakeLLM{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp StartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandlerMessage(t *testing.T) {
	llm := &fakeLLM{
		date: scripted{replies: []string{`{"response": "What day works for you?"}`}},
	}
	_, r := newTestHandler(t, llm)

	body := strings.NewReader(`{"message": "I need an appointment"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/s1/messages", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "What day works for you?", resp.Reply)
}

func TestHandlerMessageValidation(t *testing.T) {
	_, r := newTestHandler(t, &fakeLLM{})

	// Malformed JSON.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/s1/messages", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Empty message.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/s1/messages", strings.NewReader(`{"message": ""}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerReset(t *testing.T) {
	llm := &fakeLLM{
		date: scripted{replies: []string{`{"response": "What day works for you?"}`}},
	}
	h, r := newTestHandler(t, llm)

	body := strings.NewReader(`{"message": "I need an appointment"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/s1/messages", body))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/s1/reset", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	sess, err := h.service.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, StateIdle, sess.State)
}

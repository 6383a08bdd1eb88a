package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/wanderplan/internal/engine"
	"github.com/wanderplan/wanderplan/pkg/adapters/httpapi"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

type stubEngine struct {
	result engine.TurnResult
	err    error

	lastSessionID string
	lastInput     string
}

func (e *stubEngine) Submit(ctx context.Context, sessionID, text string) (engine.TurnResult, error) {
	e.lastSessionID = sessionID
	e.lastInput = text
	return e.result, e.err
}

func (e *stubEngine) SubmitSelection(ctx context.Context, sessionID, token string) (engine.TurnResult, error) {
	e.lastSessionID = sessionID
	e.lastInput = token
	return e.result, e.err
}

func TestSubmitMessage(t *testing.T) {
	eng := &stubEngine{result: engine.TurnResult{
		Response: "Here are some destinations",
		Menu:     []domain.MenuEntry{{Token: "D1", Description: "Choose Lisbon"}},
	}}
	srv := httptest.NewServer(httpapi.NewHandler(eng))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions/abc/messages", "application/json",
		strings.NewReader(`{"text": "help me choose"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", eng.lastSessionID)
	assert.Equal(t, "help me choose", eng.lastInput)

	var result engine.TurnResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "Here are some destinations", result.Response)
	require.Len(t, result.Menu, 1)
	assert.Equal(t, "D1", result.Menu[0].Token)
}

func TestSubmitMessageRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(httpapi.NewHandler(&stubEngine{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions/abc/messages", "application/json",
		strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitSelectionInvalidToken(t *testing.T) {
	eng := &stubEngine{
		result: engine.TurnResult{
			Response: "pick from the menu",
			Menu:     []domain.MenuEntry{{Token: "A1"}},
		},
		err: domain.ErrInvalidSelection,
	}
	srv := httptest.NewServer(httpapi.NewHandler(eng))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions/abc/selection", "application/json",
		strings.NewReader(`{"token": "Z9"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Error string             `json:"error"`
		Menu  []domain.MenuEntry `json:"menu"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Error)
	require.Len(t, body.Menu, 1)
	assert.Equal(t, "A1", body.Menu[0].Token)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(httpapi.NewHandler(&stubEngine{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type stubLister struct{ ids []string }

func (l *stubLister) List(ctx context.Context) ([]string, error) { return l.ids, nil }

func TestListSessions(t *testing.T) {
	handler := httpapi.NewHandler(&stubEngine{}, httpapi.WithSessionLister(&stubLister{ids: []string{"a", "b"}}))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"a", "b"}, body["sessions"])
}

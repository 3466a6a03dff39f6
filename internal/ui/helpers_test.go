package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/booktrack/internal/books"
)

const sampleBooks = `[
  {"id": 1, "name": "Dune", "author": "Frank Herbert", "genres": ["Science Fiction", "Classic"], "completed": true, "start": "2024-01-02", "end": "2024-02-10", "stars": 4, "img": "https://example.com/dune.jpg"},
  {"id": "2", "name": "Dune Messiah", "author": "Frank Herbert", "genres": ["Science Fiction"], "completed": false, "start": null, "end": null, "stars": null, "img": ""},
  {"id": 3, "name": "Emma", "author": "Jane Austen", "genres": [], "completed": false, "start": null, "end": null, "stars": 5, "img": ""}
]`

const sampleBook = `{"id": 1, "name": "Dune", "author": "Frank Herbert", "genres": ["Science Fiction"], "completed": true, "start": "2024-01-02T00:00:00.000Z", "end": "2024-02-10", "stars": 4, "img": "https://example.com/dune.jpg", "description": "Spice and sand."}`

// newTestEnv points a screen environment at handler.
func newTestEnv(t *testing.T, handler http.Handler) env {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newEnvForURL(t, srv.URL)
}

func newEnvForURL(t *testing.T, baseURL string) env {
	t.Helper()
	client, err := books.NewClient(baseURL)
	require.NoError(t, err)
	return env{
		ctx:  context.Background(),
		api:  client,
		log:  zap.NewNop(),
		keys: defaultKeyMap(),
	}
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// resolve runs a request command and feeds its result back to the screen.
func resolve(t *testing.T, s screen, cmd tea.Cmd) (requestDoneMsg, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	done, ok := cmd().(requestDoneMsg)
	require.True(t, ok, "command did not produce a requestDoneMsg")
	return done, s.Update(done)
}

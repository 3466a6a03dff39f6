package ui

import (
	"net/http"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/booktrack/internal/request"
)

func TestListScreen_RendersCards(t *testing.T) {
	var path atomic.Value
	e := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.Method + " " + r.URL.Path)
		jsonHandler(http.StatusOK, sampleBooks)(w, r)
	}))

	s := newListScreen(1, e)
	defer s.Close()
	s.Resize(100, 60)

	cmd := s.load()
	assert.True(t, s.Loading())
	assert.Contains(t, s.View(GetTheme("Nightfox")), "Loading books")

	done, _ := resolve(t, s, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, "GET /books", path.Load())

	assert.False(t, s.Loading())
	view := s.View(GetTheme("Nightfox"))
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
	assert.Contains(t, view, "Science Fiction")
	assert.Contains(t, view, "★★★★")
	assert.Contains(t, view, "/book/1")
	assert.Contains(t, view, "Emma")

	alert := s.Alert()
	assert.True(t, alert.Visible)
	assert.Equal(t, request.AlertSuccess, alert.Kind)
	assert.Equal(t, "Books loaded successfully", alert.Message)
}

func TestListScreen_ServerErrorShowsAlertAndNoCards(t *testing.T) {
	e := newTestEnv(t, jsonHandler(http.StatusInternalServerError, `{"error":"boom"}`))

	s := newListScreen(1, e)
	defer s.Close()
	s.Resize(100, 40)

	done, _ := resolve(t, s, s.load())
	require.Error(t, done.err)

	alert := s.Alert()
	assert.True(t, alert.Visible)
	assert.Equal(t, request.AlertError, alert.Kind)
	assert.Equal(t, "Error: request failed with status code 500", alert.Message)

	view := s.View(GetTheme("Nightfox"))
	assert.NotContains(t, view, "Learn More")
	assert.Contains(t, view, "No books yet")
}

func TestListScreen_NetworkErrorShowsAlert(t *testing.T) {
	e := newEnvForURL(t, "http://127.0.0.1:1")

	s := newListScreen(1, e)
	defer s.Close()

	done, _ := resolve(t, s, s.load())
	require.Error(t, done.err)

	alert := s.Alert()
	assert.True(t, alert.Visible)
	assert.Equal(t, request.AlertError, alert.Kind)
	assert.Contains(t, alert.Message, "Error: network error")
	assert.Empty(t, s.visible)
}

func TestListScreen_FilterByName(t *testing.T) {
	e := newTestEnv(t, jsonHandler(http.StatusOK, sampleBooks))

	s := newListScreen(1, e)
	defer s.Close()
	s.Resize(100, 60)
	resolve(t, s, s.load())
	require.Len(t, s.visible, 3)

	s.Update(runes("/"))
	require.True(t, s.Capturing())

	s.Update(runes("DUNE"))
	require.Len(t, s.visible, 2)
	assert.Equal(t, "Dune", s.visible[0].Name)
	assert.Equal(t, "Dune Messiah", s.visible[1].Name)
	assert.NotContains(t, s.View(GetTheme("Nightfox")), "Emma")

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, s.Capturing())

	s.filter.SetValue("zzz")
	s.refilter()
	assert.Empty(t, s.visible)
	assert.Contains(t, s.View(GetTheme("Nightfox")), `No books match "zzz"`)

	s.filter.SetValue("")
	s.refilter()
	assert.Len(t, s.visible, 3)
}

func TestListScreen_EnterOpensSelectedBook(t *testing.T) {
	e := newTestEnv(t, jsonHandler(http.StatusOK, sampleBooks))

	s := newListScreen(1, e)
	defer s.Close()
	s.Resize(100, 60)
	resolve(t, s, s.load())

	s.Update(runes("j"))
	cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, navigateMsg{path: "/book/2"}, cmd())
}

func TestListScreen_SelectionClampsToVisible(t *testing.T) {
	e := newTestEnv(t, jsonHandler(http.StatusOK, sampleBooks))

	s := newListScreen(1, e)
	defer s.Close()
	s.Resize(100, 60)
	resolve(t, s, s.load())

	s.Update(runes("G"))
	assert.Equal(t, 2, s.selected)

	s.filter.SetValue("emma")
	s.refilter()
	assert.Equal(t, 0, s.selected)

	book, ok := s.selectedBook()
	require.True(t, ok)
	assert.Equal(t, "Emma", book.Name)
}

func TestRenderStars_Clamps(t *testing.T) {
	theme := GetTheme("Slate")
	assert.Equal(t, "☆☆☆☆☆", renderStars(theme, -1))
	assert.Equal(t, "★★★☆☆", renderStars(theme, 3))
	assert.Equal(t, "★★★★★", renderStars(theme, 9))
}

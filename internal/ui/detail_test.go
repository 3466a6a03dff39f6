package ui

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailScreen_LoadsBook(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	e := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		jsonHandler(http.StatusOK, sampleBook)(w, r)
	}))

	theme := GetTheme("Kanagawa")
	s := newDetailScreen(1, e, "1", theme)
	defer s.Close()
	s.Resize(100, 40)

	cmd := s.load()
	assert.Contains(t, s.View(theme), "Loading book")

	done, _ := resolve(t, s, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, "Book loaded successfully", s.Alert().Message)

	view := s.View(theme)
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
	assert.Contains(t, view, "★★★★☆")
	assert.Contains(t, view, "Science Fiction")
	assert.Contains(t, view, "2024-01-02")
	assert.Contains(t, view, "2024-02-10")
	assert.Contains(t, view, "Spice and sand.")
	assert.Contains(t, view, "https://example.com/dune.jpg")

	mu.Lock()
	assert.Equal(t, []string{"/books/1"}, paths)
	mu.Unlock()
}

func TestDetailScreen_SetIDRefetches(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	e := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		jsonHandler(http.StatusOK, sampleBook)(w, r)
	}))

	s := newDetailScreen(1, e, "1", GetTheme("Nightfox"))
	defer s.Close()
	s.Resize(100, 40)
	resolve(t, s, s.load())

	assert.Nil(t, s.setID("1"), "same id must not refetch")

	theme := GetTheme("Nightfox")
	require.Contains(t, s.View(theme), "Spice and sand.")

	cmd := s.setID("2")
	require.NotNil(t, cmd)
	// The previous book is hidden while the new one is in flight.
	view := s.View(theme)
	assert.Contains(t, view, "Loading book")
	assert.NotContains(t, view, "Spice and sand.")

	// setID batches nothing else once the screen already had an id.
	done, ok := cmd().(requestDoneMsg)
	require.True(t, ok)
	s.Update(done)
	assert.Contains(t, s.View(theme), "Spice and sand.")

	mu.Lock()
	assert.Equal(t, []string{"/books/1", "/books/2"}, paths)
	mu.Unlock()
}

func TestDetailScreen_WithoutIDShowsPlaceholder(t *testing.T) {
	e := newEnvForURL(t, "http://127.0.0.1:1")

	s := newDetailScreen(1, e, "", GetTheme("Nightfox"))
	defer s.Close()

	assert.Nil(t, s.Init())
	assert.False(t, s.Loading())
	assert.Contains(t, s.View(GetTheme("Nightfox")), "No book selected")
}

func TestDetailScreen_NotFoundRaisesErrorAlert(t *testing.T) {
	e := newTestEnv(t, jsonHandler(http.StatusNotFound, `{}`))

	s := newDetailScreen(1, e, "404", GetTheme("Nightfox"))
	defer s.Close()

	done, _ := resolve(t, s, s.load())
	require.Error(t, done.err)
	assert.Equal(t, "Error: request failed with status code 404", s.Alert().Message)
	assert.Contains(t, s.View(GetTheme("Nightfox")), "could not be loaded")
}

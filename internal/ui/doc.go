// Package ui provides the Bubble Tea terminal interface for booktrack.
//
// # Routes
//
// The root Model owns a tiny router. Each route mounts a screen:
//
//   - "/": book list with a name filter and one card per book
//   - "/book/:id": details of a single book ("/book" alone shows a placeholder)
//   - "/addnew": form that posts a new book
//
// Unknown paths render a not-found message.
//
// # Screens and request state
//
// Every mounted screen builds its own request.Manager and closes it when the
// route changes, so loading flags and alerts never leak between screens.
// Requests run inside tea.Cmd goroutines. The manager's change channel is
// turned into stateChangedMsg values tagged with the screen id; messages for
// a screen that is no longer mounted are dropped by the root model.
//
// The root layout renders, top to bottom, a header (app name, route, API base
// URL), the current alert coloured by kind, the screen body and a command bar
// listing the screen's keys.
//
// # Key Bindings
//
//   - /: Search books (list)
//   - j/k: Move selection or scroll
//   - enter: Open the selected book
//   - a: Add a book
//   - H: Back to the book list
//   - esc/b: Previous route (on the form, esc first leaves the fields)
//   - tab/shift+tab: Move between form fields
//   - space: Toggle "completed" on the form
//   - ctrl+s: Submit the form
//   - r: Reload
//   - T: Cycle theme (saved to preferences)
//   - ?: Toggle help
//   - q or Ctrl+C: Quit
package ui

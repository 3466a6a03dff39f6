// Package request provides the per-screen request/state manager.
//
// # Overview
//
// Every screen builds its own Manager when it mounts and closes it when it
// unmounts. The manager wraps API calls with three pieces of observable state:
//
//   - Data: the last successfully decoded response body
//   - Loading: true from request start until that request completes
//   - Alert: a success or error message that hides itself after a delay
//
// # Lifecycle of a call
//
//	Get/Post/Update/Remove
//	  ├─> Loading = true, signal
//	  ├─> Doer.Do (HTTP)
//	  ├─> success: Data = body, success alert
//	  │   failure: error alert "Error: <message>"
//	  └─> Loading = false, signal
//
// Errors are converted to alerts inside the manager. The methods still return
// the error so callers and tests can branch on it, but ignoring it is safe.
//
// # Alerts
//
// Raising an alert stops the previous hide timer and starts a new one, so the
// most recent alert is always the one on screen and it stays visible for the
// full duration (5 seconds by default) from the moment it was raised. Expiry
// only clears Visible; the message and kind are kept.
//
// # Concurrency
//
// State is guarded by a mutex and read through Snapshot. Changes() yields a
// coalescing signal after each transition so an event loop (Bubble Tea) can
// re-render. Overlapping calls are neither queued nor deduplicated: whichever
// resolves last owns Data and Alert.
//
// After Close, new calls return ErrClosed without touching the network and
// results of calls already in flight are discarded.
package request

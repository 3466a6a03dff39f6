package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Messages

// stateChangedMsg reports that a screen's request state moved.
type stateChangedMsg struct {
	screen int
}

// requestDoneMsg reports that a request issued by a screen has resolved.
type requestDoneMsg struct {
	screen int
	op     string
	err    error
}

// navigateMsg asks the root model to mount a new route.
type navigateMsg struct {
	path string
}

// Commands

// waitForChange blocks until the manager signals a change. It yields nil once
// the channel is closed, which ends the chain for an unmounted screen.
func waitForChange(screen int, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{screen: screen}
	}
}

// runRequest turns a blocking manager call into a command.
func runRequest(screen int, op string, call func() error) tea.Cmd {
	return func() tea.Msg {
		return requestDoneMsg{screen: screen, op: op, err: call()}
	}
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path}
	}
}

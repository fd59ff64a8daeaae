package controller

import (
	"techexam-cli/session"
	"techexam-cli/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Command message types
type (
	// EvaluatedMsg is sent once the stored session has been checked
	EvaluatedMsg struct {
		State session.State
	}

	// LoggedOutMsg is sent when logout completes
	LoggedOutMsg struct {
		State session.State
	}

	// CredentialsChangedMsg carries a store change into the program loop
	CredentialsChangedMsg struct {
		Change store.Change
	}
)

// evaluateCmd decides the first screen from the stored credentials
func (c *Controller) evaluateCmd() tea.Cmd {
	return func() tea.Msg {
		return EvaluatedMsg{State: c.session.Evaluate()}
	}
}

// logoutCmd clears the stored session
func (c *Controller) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{State: c.session.Logout()}
	}
}

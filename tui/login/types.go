package login

import (
	"techexam-cli/auth"

	tea "github.com/charmbracelet/bubbletea"
)

// LoginSuccessMsg is sent when login is successful
type LoginSuccessMsg struct {
	Username string
}

// ResultMsg carries the outcome of one submitted attempt back to the form.
// Attempt lets the form drop results of attempts it has already abandoned.
type ResultMsg struct {
	Attempt int
	Result  auth.LoginResult
}

// LoginSuccessCommand creates a command that signals successful login
func LoginSuccessCommand(username string) tea.Cmd {
	return func() tea.Msg {
		return LoginSuccessMsg{Username: username}
	}
}

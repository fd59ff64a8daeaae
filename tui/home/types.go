package home

import tea "github.com/charmbracelet/bubbletea"

// LogoutMsg asks the controller to end the session
type LogoutMsg struct{}

// QuitMsg asks the controller to leave the application
type QuitMsg struct{}

// Info is what the home screen shows about the current session
type Info struct {
	Username string
	Session  string
	Server   string
}

// FlagStore reads and writes session flags
type FlagStore interface {
	Flag(name string) bool
	SetFlag(name string, value bool) error
}

func logoutCmd() tea.Cmd {
	return func() tea.Msg { return LogoutMsg{} }
}

func quitCmd() tea.Cmd {
	return func() tea.Msg { return QuitMsg{} }
}

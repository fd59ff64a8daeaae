package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds every binding used by the screens
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Next     key.Binding
	Previous key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Logout   key.Binding
	Quit     key.Binding
	// QuitShort is only active where no text is being typed
	QuitShort key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "log in"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitShort: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Handler matches key messages against a KeyMap
type Handler struct {
	keys KeyMap
}

// NewHandler creates a new key handler with default bindings
func NewHandler() *Handler {
	return &Handler{keys: DefaultKeyMap()}
}

// Keys returns the bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// IsQuit reports ctrl+c, which quits from every screen
func (h *Handler) IsQuit(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.Quit)
}

// IsQuitShort also accepts q, for screens without text input
func (h *Handler) IsQuitShort(msg tea.KeyMsg) bool {
	return key.Matches(msg, h.keys.QuitShort)
}

// LoginFooter returns the bindings shown under the login form
func (h *Handler) LoginFooter(canSubmit, submitting bool) []key.Binding {
	submit := h.keys.Submit
	submit.SetEnabled(canSubmit && !submitting)
	cancel := h.keys.Cancel
	cancel.SetEnabled(submitting)
	return []key.Binding{h.keys.Next, submit, cancel, h.keys.Quit}
}

// HomeFooter returns the bindings shown on the home screen
func (h *Handler) HomeFooter() []key.Binding {
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Select, h.keys.Logout, h.keys.QuitShort}
}

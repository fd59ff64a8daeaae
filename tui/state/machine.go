package state

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the screen currently shown
type State int

const (
	// Splash - stored credentials are being evaluated
	Splash State = iota

	// Login - the login form
	Login

	// Home - the signed-in home screen
	Home
)

// String returns a human-readable representation of the state
func (s State) String() string {
	switch s {
	case Splash:
		return "Splash"
	case Login:
		return "Login"
	case Home:
		return "Home"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid checks if the state is a valid state
func (s State) IsValid() bool {
	return s >= Splash && s <= Home
}

// allowed lists the screens reachable from each screen. Splash is entry only.
var allowed = map[State][]State{
	Splash: {Login, Home},
	Login:  {Home},
	Home:   {Login},
}

// CanTransition reports whether from -> to is a legal screen change
func CanTransition(from, to State) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition represents a state transition
type Transition struct {
	From State
	To   State
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// Machine tracks the current screen and every screen visited
type Machine struct {
	current State
	history []State
}

// NewMachine creates a new state machine with the given initial state
func NewMachine(initial State) *Machine {
	return &Machine{
		current: initial,
		history: []State{initial},
	}
}

// Current returns the current state
func (m *Machine) Current() State {
	return m.current
}

// Transition moves to a new screen. Illegal moves produce an ErrorMsg and
// leave the machine where it was; moving to the current screen is a no-op.
func (m *Machine) Transition(to State) tea.Cmd {
	if to == m.current {
		return nil
	}
	if !to.IsValid() || !CanTransition(m.current, to) {
		from := m.current
		return func() tea.Msg {
			return ErrorMsg{
				Error: fmt.Errorf("invalid state transition %s -> %s", from, to),
			}
		}
	}

	transition := Transition{From: m.current, To: to}
	m.current = to
	m.history = append(m.history, to)

	return func() tea.Msg {
		return TransitionMsg{Transition: transition}
	}
}

// History returns a copy of the state history
func (m *Machine) History() []State {
	history := make([]State, len(m.history))
	copy(history, m.history)
	return history
}

// Messages for state machine events
type (
	// TransitionMsg is sent when a state transition occurs
	TransitionMsg struct {
		Transition Transition
	}

	// ErrorMsg is sent when a state machine error occurs
	ErrorMsg struct {
		Error error
	}
)

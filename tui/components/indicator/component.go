package indicator

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Completion is the mark left behind when the indicator is dismissed
type Completion int

const (
	None Completion = iota
	Check
	Exclamation
	Cross
)

// Mark returns the glyph drawn for a completion
func (c Completion) Mark() string {
	switch c {
	case Check:
		return "✓"
	case Exclamation:
		return "!"
	case Cross:
		return "✗"
	default:
		return ""
	}
}

// Styles for the running spinner and each completion mark
type Styles struct {
	Spinner lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Failure lipgloss.Style
	Label   lipgloss.Style
}

// Component is a progress indicator that ends with a completion mark
type Component struct {
	spinner    spinner.Model
	styles     Styles
	label      string
	showing    bool
	completion Completion
}

// New creates a hidden indicator
func New(styles Styles) *Component {
	return &Component{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		styles:  styles,
	}
}

// Show starts the spinner with label. Showing twice keeps the first label.
func (c *Component) Show(label string) tea.Cmd {
	if c.showing {
		return nil
	}
	c.showing = true
	c.label = label
	c.completion = None
	return c.spinner.Tick
}

// Dismiss stops the spinner and leaves the completion mark with label.
// Dismissing a hidden indicator only updates the mark.
func (c *Component) Dismiss(completion Completion, label string) {
	c.showing = false
	c.completion = completion
	c.label = label
}

// Reset hides the indicator and clears any mark
func (c *Component) Reset() {
	c.showing = false
	c.completion = None
	c.label = ""
}

// IsShowing reports whether the spinner is running
func (c *Component) IsShowing() bool {
	return c.showing
}

// Completion returns the mark of the last dismissal
func (c *Component) Completion() Completion {
	return c.completion
}

// Update advances the spinner while showing
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if !c.showing {
		return c, nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return c, nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return c, cmd
}

// View renders the spinner, the completion mark, or nothing
func (c *Component) View() string {
	if c.showing {
		return c.spinner.View() + " " + c.styles.Label.Render(c.label)
	}

	var style lipgloss.Style
	switch c.completion {
	case Check:
		style = c.styles.Success
	case Exclamation:
		style = c.styles.Warning
	case Cross:
		style = c.styles.Failure
	default:
		return ""
	}
	view := style.Render(c.completion.Mark())
	if c.label != "" {
		view += " " + c.styles.Label.Render(c.label)
	}
	return view
}

package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorScheme defines colors for a specific theme
type ColorScheme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Error      lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
}

// DarkTheme is used unless a light background is detected
var DarkTheme = ColorScheme{
	Primary:    lipgloss.Color("#4f9dff"),
	Secondary:  lipgloss.Color("#7aa7d9"),
	Accent:     lipgloss.Color("#ffb347"),
	Error:      lipgloss.Color("#ff5f5f"),
	Background: lipgloss.Color("#101418"),
	Text:       lipgloss.Color("#e6e6e6"),
	Muted:      lipgloss.Color("#808890"),
	Success:    lipgloss.Color("#5fd787"),
}

// LightTheme colors
var LightTheme = ColorScheme{
	Primary:    lipgloss.Color("#0b5cad"),
	Secondary:  lipgloss.Color("#3a6ea5"),
	Accent:     lipgloss.Color("#b35c00"),
	Error:      lipgloss.Color("#c00000"),
	Background: lipgloss.Color("#ffffff"),
	Text:       lipgloss.Color("#1a1a1a"),
	Muted:      lipgloss.Color("#6a6a6a"),
	Success:    lipgloss.Color("#1f7a3a"),
}

// Manager handles theme-aware styling
type Manager struct {
	detector *Detector
	colors   ColorScheme
}

// NewManager detects the theme from the process environment
func NewManager() *Manager {
	return NewManagerWithDetector(NewDetector())
}

// NewManagerWithDetector uses detector instead of the process environment
func NewManagerWithDetector(detector *Detector) *Manager {
	m := &Manager{detector: detector}
	m.refresh()
	return m
}

// refresh detects the theme and picks its colors
func (m *Manager) refresh() {
	switch m.detector.DetectTheme() {
	case ThemeLight:
		m.colors = LightTheme
	default:
		m.colors = DarkTheme
	}
}

// BaseStyle pads every screen
func (m *Manager) BaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Text).
		Padding(1, 2)
}

// TitleStyle is used for screen titles and the welcome banner
func (m *Manager) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Accent).
		Bold(true).
		Padding(0, 1)
}

// LoginBoxStyle frames the login form
func (m *Manager) LoginBoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.colors.Accent).
		Padding(1, 4).
		Width(52)
}

// LabelStyle is used for field labels
func (m *Manager) LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Secondary)
}

// FocusedLabelStyle marks the focused field's label
func (m *Manager) FocusedLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Primary).
		Bold(true)
}

// ButtonStyle renders an enabled button
func (m *Manager) ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Background).
		Background(m.colors.Primary).
		Bold(true).
		Padding(0, 3)
}

// DisabledButtonStyle renders a button that cannot be pressed
func (m *Manager) DisabledButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Muted).
		Padding(0, 3).
		Faint(true)
}

// ErrorStyle returns the error style with theme-aware colors
func (m *Manager) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Error)
}

// HelpStyle returns the help style with theme-aware colors
func (m *Manager) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Secondary).
		Faint(true)
}

// SuccessStyle returns the success style with theme-aware colors
func (m *Manager) SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Success).
		Bold(true)
}

// MutedStyle returns the muted style with theme-aware colors
func (m *Manager) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Muted).
		Faint(true)
}

// SpinnerStyle returns the spinner style with theme-aware colors
func (m *Manager) SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Accent).
		Bold(true)
}

// MenuItemStyle and SelectedMenuItemStyle feed menu.Styles
func (m *Manager) MenuItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Primary).
		Padding(0, 1)
}

func (m *Manager) SelectedMenuItemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Background).
		Background(m.colors.Primary).
		Bold(true).
		Padding(0, 1)
}

// Table styles for bubble-table
func (m *Manager) TableHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Accent).
		Bold(true).
		Align(lipgloss.Center)
}

func (m *Manager) TableRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.colors.Text)
}

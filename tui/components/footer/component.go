package footer

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Component renders the short help line at the bottom of a screen
type Component struct {
	help help.Model
}

// New creates a footer drawing keys in keyStyle and descriptions in descStyle
func New(keyStyle, descStyle lipgloss.Style) *Component {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = descStyle
	h.Styles.ShortSeparator = descStyle
	return &Component{help: h}
}

// SetWidth truncates the footer to width columns, 0 means unlimited
func (c *Component) SetWidth(width int) {
	c.help.Width = width
}

// View renders the enabled bindings in order
func (c *Component) View(bindings ...key.Binding) string {
	if len(bindings) == 0 {
		return ""
	}
	return c.help.ShortHelpView(bindings)
}

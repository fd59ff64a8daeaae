package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap is the subset of bindings the menu reacts to
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// Styles defines the visual styling for menu components
type Styles struct {
	ItemStyle      lipgloss.Style
	SelectedStyle  lipgloss.Style
	Cursor         string
	SelectedCursor string
}

// Component is a vertical menu with one highlighted item
type Component struct {
	items         []string
	selectedIndex int
	keys          KeyMap
	styles        Styles
}

// New creates a menu over items
func New(items []string, keys KeyMap, styles Styles) *Component {
	return &Component{
		items:  items,
		keys:   keys,
		styles: styles,
	}
}

// SetItems updates the menu items, resetting an out-of-range selection
func (c *Component) SetItems(items []string) {
	c.items = items
	if c.selectedIndex >= len(items) {
		c.selectedIndex = 0
	}
}

// Items returns the current menu items
func (c *Component) Items() []string {
	return c.items
}

// SetSelectedIndex sets the current selection
func (c *Component) SetSelectedIndex(index int) {
	if index >= 0 && index < len(c.items) {
		c.selectedIndex = index
	}
}

// SelectedIndex returns the current selection index
func (c *Component) SelectedIndex() int {
	return c.selectedIndex
}

// SelectedItem returns the currently selected item
func (c *Component) SelectedItem() string {
	if c.selectedIndex < 0 || c.selectedIndex >= len(c.items) {
		return ""
	}
	return c.items[c.selectedIndex]
}

// SelectMsg is sent when an item is chosen
type SelectMsg struct {
	Index int
	Item  string
}

// Update moves the selection with wrap-around and emits SelectMsg on select
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.items) == 0 {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Up):
		c.selectedIndex--
		if c.selectedIndex < 0 {
			c.selectedIndex = len(c.items) - 1
		}
	case key.Matches(keyMsg, c.keys.Down):
		c.selectedIndex++
		if c.selectedIndex >= len(c.items) {
			c.selectedIndex = 0
		}
	case key.Matches(keyMsg, c.keys.Select):
		selected := SelectMsg{Index: c.selectedIndex, Item: c.SelectedItem()}
		return c, func() tea.Msg { return selected }
	}
	return c, nil
}

// View renders the menu
func (c *Component) View() string {
	lines := make([]string, 0, len(c.items))
	for i, item := range c.items {
		cursor, style := c.styles.Cursor, c.styles.ItemStyle
		if i == c.selectedIndex {
			cursor, style = c.styles.SelectedCursor, c.styles.SelectedStyle
		}
		lines = append(lines, cursor+style.Render(item))
	}
	return strings.Join(lines, "\n")
}

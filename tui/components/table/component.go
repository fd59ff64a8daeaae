package table

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	btable "github.com/evertras/bubble-table/table"
)

const (
	columnKeyField = "field"
	columnKeyValue = "value"
)

// Detail is one labelled row
type Detail struct {
	Field string
	Value string
}

// Component shows a two-column field/value table
type Component struct {
	table   btable.Model
	details []Detail
	focused bool
}

// New creates a details table with the given column widths
func New(fieldWidth, valueWidth int) *Component {
	columns := []btable.Column{
		btable.NewColumn(columnKeyField, "Field", fieldWidth),
		btable.NewColumn(columnKeyValue, "Value", valueWidth),
	}

	return &Component{
		table: btable.New(columns),
	}
}

// WithStyles sets the header and row styles
func (c *Component) WithStyles(header, rows lipgloss.Style) *Component {
	c.table = c.table.HeaderStyle(header).WithBaseStyle(rows)
	return c
}

// SetDetails replaces the table rows
func (c *Component) SetDetails(details []Detail) {
	c.details = details
	c.refreshTable()
}

// Details returns the current rows
func (c *Component) Details() []Detail {
	return c.details
}

// SetFocused sets whether the table should be focused
func (c *Component) SetFocused(focused bool) {
	c.focused = focused
	c.table = c.table.Focused(focused)
}

// HighlightedDetail returns the highlighted row, if any
func (c *Component) HighlightedDetail() (Detail, bool) {
	row := c.table.HighlightedRow()
	if row.Data == nil {
		return Detail{}, false
	}
	field, _ := row.Data[columnKeyField].(string)
	value, _ := row.Data[columnKeyValue].(string)
	return Detail{Field: field, Value: value}, true
}

// Update handles Bubble Tea messages
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

// View renders the table
func (c *Component) View() string {
	return c.table.View()
}

func (c *Component) refreshTable() {
	rows := make([]btable.Row, 0, len(c.details))
	for _, d := range c.details {
		rows = append(rows, btable.NewRow(btable.RowData{
			columnKeyField: d.Field,
			columnKeyValue: d.Value,
		}))
	}

	c.table = c.table.WithRows(rows)
	if c.focused {
		c.table = c.table.Focused(true)
	}
}

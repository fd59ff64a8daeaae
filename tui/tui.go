// Package tui runs the interactive interface: a Splash screen while the
// saved session is checked, then Login or Home.
package tui

import (
	"context"
	"errors"

	"techexam-cli/tui/controller"

	tea "github.com/charmbracelet/bubbletea"
)

// Model adapts the controller to tea.Model
type Model struct {
	controller *controller.Controller
}

// New wraps c
func New(c *controller.Controller) Model {
	return Model{controller: c}
}

func (m Model) Init() tea.Cmd {
	return m.controller.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.controller, cmd = m.controller.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.controller.View()
}

// Run starts the program on the alternate screen and blocks until it exits
// or ctx ends. Store changes reach the controller through Program.Send.
func Run(ctx context.Context, c *controller.Controller, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(c), opts...)

	c.Attach(p.Send)
	defer c.Close()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

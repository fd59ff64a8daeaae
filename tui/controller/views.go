package controller

import (
	"github.com/charmbracelet/lipgloss"
)

// View rendering functions

func (c *Controller) renderQuitting() string {
	return c.theme.ErrorStyle().Bold(true).Render("Goodbye!") + "\n"
}

func (c *Controller) renderSplash() string {
	title := c.theme.TitleStyle().Render("Technical Exam")
	status := c.theme.MutedStyle().Render("Checking saved session...")
	view := lipgloss.JoinVertical(lipgloss.Left, title, "", status)
	if c.version != "" {
		view += "\n\n" + c.theme.HelpStyle().Render("v"+c.version)
	}
	return c.theme.BaseStyle().Render(view)
}

func (c *Controller) renderLogin() string {
	return c.loginComponent.View()
}

func (c *Controller) renderHome() string {
	return c.homeComponent.View()
}

func (c *Controller) withError(view string) string {
	if c.errorMsg == "" {
		return view
	}
	return view + "\n" + c.theme.ErrorStyle().Render(c.errorMsg)
}

package home

import (
	"techexam-cli/store"
	"techexam-cli/tui/components/footer"
	"techexam-cli/tui/components/menu"
	"techexam-cli/tui/components/table"
	"techexam-cli/tui/keys"
	"techexam-cli/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const (
	menuLogout = "Logout"
	menuQuit   = "Quit"
)

const (
	firstVisitBanner = "Welcome User!"
	returningBanner  = "Welcome back"
)

// Component is the signed-in home screen
type Component struct {
	flags   FlagStore
	log     logrus.FieldLogger
	theme   *theme.Manager
	keys    *keys.Handler
	menu    *menu.Component
	details *table.Component
	footer  *footer.Component

	banner string
	info   Info
}

// New creates the home screen
func New(flags FlagStore, themeManager *theme.Manager, log logrus.FieldLogger) *Component {
	handler := keys.NewHandler()
	km := handler.Keys()

	return &Component{
		flags: flags,
		log:   log,
		theme: themeManager,
		keys:  handler,
		menu: menu.New(
			[]string{menuLogout, menuQuit},
			menu.KeyMap{Up: km.Up, Down: km.Down, Select: km.Select},
			menu.Styles{
				ItemStyle:      themeManager.MenuItemStyle(),
				SelectedStyle:  themeManager.SelectedMenuItemStyle(),
				Cursor:         "  ",
				SelectedCursor: "> ",
			},
		),
		details: table.New(12, 40).WithStyles(themeManager.TableHeaderStyle(), themeManager.TableRowStyle()),
		footer:  footer.New(themeManager.SuccessStyle(), themeManager.HelpStyle()),
	}
}

// Show is called every time the screen is entered. The first visit after a
// login greets the user and records the welcome_seen flag.
func (c *Component) Show(info Info) {
	c.info = info
	c.menu.SetSelectedIndex(0)
	c.details.SetDetails([]table.Detail{
		{Field: "User", Value: info.Username},
		{Field: "Session", Value: info.Session},
		{Field: "Server", Value: serverLabel(info.Server)},
	})

	if c.flags.Flag(store.FlagWelcomeSeen) {
		c.banner = returningBanner
		return
	}
	c.banner = firstVisitBanner
	if err := c.flags.SetFlag(store.FlagWelcomeSeen, true); err != nil {
		c.log.WithError(err).Warn("failed to record welcome flag")
	}
}

// Banner returns the welcome line currently shown
func (c *Component) Banner() string {
	return c.banner
}

// Info returns the session details currently shown
func (c *Component) Info() Info {
	return c.info
}

// Update handles menu navigation and the logout shortcut
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		km := c.keys.Keys()
		switch {
		case key.Matches(msg, km.Logout):
			return c, logoutCmd()
		case c.keys.IsQuitShort(msg):
			return c, quitCmd()
		}
	case menu.SelectMsg:
		switch msg.Item {
		case menuLogout:
			return c, logoutCmd()
		case menuQuit:
			return c, quitCmd()
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

// View renders the home screen
func (c *Component) View() string {
	banner := c.theme.TitleStyle().Render(c.banner)
	if c.banner == returningBanner && c.info.Username != "" {
		banner = c.theme.TitleStyle().Render(c.banner + ", " + c.info.Username)
	}

	return c.theme.BaseStyle().Render(lipgloss.JoinVertical(lipgloss.Left,
		banner,
		"",
		c.details.View(),
		"",
		c.menu.View(),
		"",
		c.footer.View(c.keys.HomeFooter()...),
	))
}

func serverLabel(url string) string {
	if url == "" {
		return "(not configured)"
	}
	return url
}

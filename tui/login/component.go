package login

import (
	"context"
	"strings"
	"time"

	"techexam-cli/form"
	"techexam-cli/tracing"
	"techexam-cli/tui/components/footer"
	"techexam-cli/tui/components/indicator"
	"techexam-cli/tui/keys"
	"techexam-cli/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	usernameInput = iota
	passwordInput
)

// Input limits. 254 is the longest address SMTP accepts.
const (
	maxUsernameLength = 254
	maxPasswordLength = 128
)

// Component handles user authentication UI
type Component struct {
	inputs   []textinput.Model
	focusIdx int
	form     *form.State

	// mirrored from the form streams
	canSubmit     bool
	usernameError *string
	passwordError *string
	unsubscribe   []func()

	service   Service
	tracer    *tracing.TUIIntegration
	timeout   time.Duration
	keys      *keys.Handler
	theme     *theme.Manager
	footer    *footer.Component
	indicator *indicator.Component

	errorMsg   string
	submitting bool
	attempt    int
	cancel     context.CancelFunc
}

// New creates a new login component. A nil tracer disables login tracing.
func New(service Service, timeout time.Duration, tracer *tracing.TUIIntegration, themeManager *theme.Manager) *Component {
	if tracer == nil {
		tracer = tracing.NewTUIIntegration(nil, "tui")
	}

	username := textinput.New()
	username.Placeholder = "you@example.com"
	username.Prompt = ""
	username.CharLimit = maxUsernameLength
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = maxPasswordLength
	password.Width = 40

	c := &Component{
		inputs:  []textinput.Model{username, password},
		form:    form.NewState(),
		service: service,
		tracer:  tracer,
		timeout: timeout,
		keys:    keys.NewHandler(),
		theme:   themeManager,
		footer:  footer.New(themeManager.SuccessStyle(), themeManager.HelpStyle()),
		indicator: indicator.New(indicator.Styles{
			Spinner: themeManager.SpinnerStyle(),
			Success: themeManager.SuccessStyle(),
			Warning: themeManager.TitleStyle(),
			Failure: themeManager.ErrorStyle(),
			Label:   themeManager.MutedStyle(),
		}),
	}

	c.unsubscribe = []func(){
		c.form.CanSubmit().Subscribe(func(v bool) { c.canSubmit = v }),
		c.form.UsernameError().Subscribe(func(v *string) { c.usernameError = v }),
		c.form.PasswordError().Subscribe(func(v *string) { c.passwordError = v }),
	}
	c.form.SetFocus(form.UsernameField)
	return c
}

// Init initializes the login component
func (c *Component) Init() tea.Cmd {
	return textinput.Blink
}

// Close stops listening to the form and aborts any attempt in flight
func (c *Component) Close() {
	for _, stop := range c.unsubscribe {
		stop()
	}
	c.unsubscribe = nil
	c.abort()
}

// Update handles messages for the login component
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c.handleKey(msg)
	case ResultMsg:
		return c.handleResult(msg)
	}

	var cmd tea.Cmd
	c.indicator, cmd = c.indicator.Update(msg)
	if cmd != nil {
		return c, cmd
	}
	c.inputs[c.focusIdx], cmd = c.inputs[c.focusIdx].Update(msg)
	return c, cmd
}

func (c *Component) handleKey(msg tea.KeyMsg) (*Component, tea.Cmd) {
	km := c.keys.Keys()

	if c.submitting {
		if key.Matches(msg, km.Cancel) {
			c.abort()
		}
		return c, nil
	}

	switch {
	case key.Matches(msg, km.Next):
		return c, c.setFocus((c.focusIdx + 1) % len(c.inputs))
	case key.Matches(msg, km.Previous):
		return c, c.setFocus((c.focusIdx + len(c.inputs) - 1) % len(c.inputs))
	case key.Matches(msg, km.Submit):
		if c.canSubmit {
			return c, c.submit()
		}
		if c.focusIdx == usernameInput {
			return c, c.setFocus(passwordInput)
		}
		return c, nil
	}

	before := c.inputs[c.focusIdx].Value()
	var cmd tea.Cmd
	c.inputs[c.focusIdx], cmd = c.inputs[c.focusIdx].Update(msg)
	if after := c.inputs[c.focusIdx].Value(); after != before {
		c.errorMsg = ""
		c.indicator.Reset()
		if c.focusIdx == usernameInput {
			c.form.SetUsername(after)
		} else {
			c.form.SetPassword(after)
		}
	}
	return c, cmd
}

func (c *Component) handleResult(msg ResultMsg) (*Component, tea.Cmd) {
	if msg.Attempt != c.attempt || !c.submitting {
		return c, nil
	}
	c.submitting = false
	c.cancel = nil

	result := msg.Result
	if result.Success {
		username := c.Username()
		c.indicator.Dismiss(indicator.Check, "Signed in")
		return c, LoginSuccessCommand(username)
	}

	c.errorMsg = result.Error
	if result.TimedOut || result.Cancelled {
		c.indicator.Dismiss(indicator.Exclamation, result.Error)
	} else {
		c.indicator.Dismiss(indicator.Cross, result.Error)
	}
	return c, nil
}

func (c *Component) submit() tea.Cmd {
	c.attempt++
	c.submitting = true
	c.errorMsg = ""

	run, cancel := attemptCmd(context.Background(), c.service, c.tracer, c.timeout,
		c.attempt, c.Username(), c.Password())
	c.cancel = cancel
	return tea.Batch(c.indicator.Show("Logging in..."), run)
}

// abort cancels the attempt in flight; its result still arrives and reports the cancellation
func (c *Component) abort() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Component) setFocus(idx int) tea.Cmd {
	c.focusIdx = idx
	var cmd tea.Cmd
	for i := range c.inputs {
		if i == idx {
			cmd = c.inputs[i].Focus()
		} else {
			c.inputs[i].Blur()
		}
	}
	if idx == usernameInput {
		c.form.SetFocus(form.UsernameField)
	} else {
		c.form.SetFocus(form.PasswordField)
	}
	return cmd
}

// Reset clears both fields and any message, focusing the username
func (c *Component) Reset() tea.Cmd {
	c.abort()
	c.submitting = false
	c.cancel = nil
	c.errorMsg = ""
	for i := range c.inputs {
		c.inputs[i].Reset()
	}
	c.indicator.Reset()
	c.form.Reset()
	return c.setFocus(usernameInput)
}

// Username returns the current username input
func (c *Component) Username() string {
	return c.inputs[usernameInput].Value()
}

// Password returns the current password input
func (c *Component) Password() string {
	return c.inputs[passwordInput].Value()
}

// SetError sets the error message
func (c *Component) SetError(msg string) {
	c.indicator.Reset()
	c.errorMsg = msg
}

// Error returns the message shown under the form
func (c *Component) Error() string {
	return c.errorMsg
}

// CanSubmit reports whether enter would submit
func (c *Component) CanSubmit() bool {
	return c.canSubmit && !c.submitting
}

// IsSubmitting reports whether an attempt is in flight
func (c *Component) IsSubmitting() bool {
	return c.submitting
}

// FieldErrors returns the current validation messages, "" when none
func (c *Component) FieldErrors() (username, password string) {
	if c.usernameError != nil {
		username = *c.usernameError
	}
	if c.passwordError != nil {
		password = *c.passwordError
	}
	return username, password
}

// View renders the login component
func (c *Component) View() string {
	usernameErr, passwordErr := c.FieldErrors()

	var b strings.Builder
	b.WriteString(c.theme.TitleStyle().Render("Login") + "\n\n")
	b.WriteString(c.field("Username", usernameInput, usernameErr))
	b.WriteString(c.field("Password", passwordInput, passwordErr))

	if c.CanSubmit() {
		b.WriteString(c.theme.ButtonStyle().Render("Login"))
	} else {
		b.WriteString(c.theme.DisabledButtonStyle().Render("Login"))
	}

	if status := c.indicator.View(); status != "" {
		b.WriteString("\n\n" + status)
	} else if c.errorMsg != "" {
		b.WriteString("\n\n" + c.theme.ErrorStyle().Render(c.errorMsg))
	}

	box := c.theme.LoginBoxStyle().Render(b.String())
	title := c.theme.TitleStyle().Render("Technical Exam")
	help := c.footer.View(c.keys.LoginFooter(c.canSubmit, c.submitting)...)

	return c.theme.BaseStyle().Render(lipgloss.JoinVertical(lipgloss.Left, title, "", box, help))
}

func (c *Component) field(label string, idx int, errMsg string) string {
	labelStyle := c.theme.LabelStyle()
	if idx == c.focusIdx {
		labelStyle = c.theme.FocusedLabelStyle()
	}
	view := labelStyle.Render(label) + "\n" + c.inputs[idx].View() + "\n"
	if errMsg != "" {
		view += c.theme.ErrorStyle().Render(errMsg) + "\n"
	}
	return view + "\n"
}

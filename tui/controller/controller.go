package controller

import (
	"time"

	"techexam-cli/config"
	"techexam-cli/session"
	"techexam-cli/store"
	"techexam-cli/tracing"
	"techexam-cli/tui/home"
	"techexam-cli/tui/keys"
	"techexam-cli/tui/login"
	"techexam-cli/tui/state"
	"techexam-cli/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// SessionMachine is the part of the session core the UI drives
type SessionMachine interface {
	Evaluate() session.State
	Logout() session.State
	Current() session.State
}

// CredentialStore is the part of the store the UI reads and watches
type CredentialStore interface {
	Get() store.Credentials
	Subscribe(fn func(store.Change)) *store.Subscription
	Flag(name string) bool
	SetFlag(name string, value bool) error
}

// Dependencies wires the controller to the application core
type Dependencies struct {
	Session      SessionMachine
	Store        CredentialStore
	Auth         login.Service
	Server       config.Server
	LoginTimeout time.Duration
	Tracer       *tracing.TUIIntegration
	Theme        *theme.Manager
	Log          logrus.FieldLogger
	Version      string
}

// Controller manages the overall TUI state and coordinates between components
type Controller struct {
	// State management
	stateMachine *state.Machine
	session      SessionMachine
	store        CredentialStore
	subscription *store.Subscription

	keyHandler *keys.Handler
	tracer     *tracing.TUIIntegration
	theme      *theme.Manager
	log        logrus.FieldLogger

	// Components
	loginComponent *login.Component
	homeComponent  *home.Component

	server     config.Server
	version    string
	errorMsg   string
	quitting   bool
	loggingOut bool
}

// New creates a new TUI controller. The first screen is Splash until the
// stored session has been evaluated.
func New(deps Dependencies) *Controller {
	tracer := deps.Tracer
	if tracer == nil {
		tracer = tracing.NewTUIIntegration(nil, "tui")
	}
	themeManager := deps.Theme
	if themeManager == nil {
		themeManager = theme.NewManager()
	}
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	_ = tracer.TrackStateChange("", state.Splash.String(), "initial_state_determination")

	return &Controller{
		stateMachine:   state.NewMachine(state.Splash),
		session:        deps.Session,
		store:          deps.Store,
		keyHandler:     keys.NewHandler(),
		tracer:         tracer,
		theme:          themeManager,
		log:            log,
		loginComponent: login.New(deps.Auth, deps.LoginTimeout, tracer, themeManager),
		homeComponent:  home.New(deps.Store, themeManager, log),
		server:         deps.Server,
		version:        deps.Version,
	}
}

// Attach forwards store changes into the program through send, which is
// normally tea.Program.Send. Calling it again replaces the previous forwarder.
func (c *Controller) Attach(send func(tea.Msg)) {
	if c.subscription != nil {
		c.subscription.Cancel()
	}
	c.subscription = c.store.Subscribe(func(change store.Change) {
		send(CredentialsChangedMsg{Change: change})
	})
}

// Close stops store forwarding and aborts any login in flight
func (c *Controller) Close() {
	if c.subscription != nil {
		c.subscription.Cancel()
		c.subscription = nil
	}
	c.loginComponent.Close()
}

// Init initializes the controller and returns initial commands
func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.evaluateCmd(), c.loginComponent.Init())
}

// Update handles incoming messages and updates the controller state
func (c *Controller) Update(msg tea.Msg) (*Controller, tea.Cmd) {
	// Handle global quit
	if keyMsg, ok := msg.(tea.KeyMsg); ok && c.keyHandler.IsQuit(keyMsg) {
		c.quitting = true
		c.cleanup()
		return c, tea.Quit
	}

	// Handle global messages
	switch msg := msg.(type) {
	case EvaluatedMsg:
		return c.handleEvaluated(msg)
	case LoggedOutMsg:
		return c.handleLoggedOut()
	case CredentialsChangedMsg:
		return c.handleCredentialsChanged(msg)
	case state.TransitionMsg:
		_ = c.tracer.TrackStateChange(msg.Transition.From.String(), msg.Transition.To.String(), "screen")
		return c, nil
	case state.ErrorMsg:
		c.errorMsg = msg.Error.Error()
		_ = c.tracer.TrackError(msg.Error, "controller", "screen_transition")
		return c, nil
	}

	// Delegate to state-specific handlers
	return c.handleStateUpdate(msg)
}

func (c *Controller) handleEvaluated(msg EvaluatedMsg) (*Controller, tea.Cmd) {
	if c.stateMachine.Current() != state.Splash {
		return c, nil
	}
	c.log.WithField("session", msg.State.String()).Info("session evaluated")
	if msg.State == session.Authenticated {
		return c, c.showHome()
	}
	return c, c.stateMachine.Transition(state.Login)
}

func (c *Controller) handleLoggedOut() (*Controller, tea.Cmd) {
	c.loggingOut = false
	if c.stateMachine.Current() != state.Home {
		return c, nil
	}
	return c, c.showLogin("You have been logged out.")
}

// handleCredentialsChanged keeps the visible screen in line with the store.
// A Home screen whose credentials disappear falls back to Login.
func (c *Controller) handleCredentialsChanged(msg CredentialsChangedMsg) (*Controller, tea.Cmd) {
	if c.stateMachine.Current() != state.Home || c.loggingOut {
		return c, nil
	}
	if msg.Change.New.Username == nil {
		return c, c.showLogin("Your session has ended.")
	}
	info := c.homeComponent.Info()
	if info.Username != msg.Change.New.UsernameOrEmpty() {
		info.Username = msg.Change.New.UsernameOrEmpty()
		c.homeComponent.Show(info)
	}
	return c, nil
}

// handleStateUpdate delegates message handling based on current state
func (c *Controller) handleStateUpdate(msg tea.Msg) (*Controller, tea.Cmd) {
	switch c.stateMachine.Current() {
	case state.Splash:
		// input waits for the evaluation
		return c, nil
	case state.Login:
		return c.handleLoginState(msg)
	case state.Home:
		return c.handleHomeState(msg)
	default:
		return c, nil
	}
}

func (c *Controller) handleLoginState(msg tea.Msg) (*Controller, tea.Cmd) {
	if msg, ok := msg.(login.LoginSuccessMsg); ok {
		c.errorMsg = ""
		c.log.WithField("user", msg.Username).Info("signed in")
		return c, c.showHome()
	}

	var cmd tea.Cmd
	c.loginComponent, cmd = c.loginComponent.Update(msg)
	return c, cmd
}

func (c *Controller) handleHomeState(msg tea.Msg) (*Controller, tea.Cmd) {
	switch msg.(type) {
	case home.LogoutMsg:
		if c.loggingOut {
			return c, nil
		}
		c.loggingOut = true
		c.log.Info("logging out")
		return c, c.logoutCmd()
	case home.QuitMsg:
		c.quitting = true
		c.cleanup()
		return c, tea.Quit
	}

	var cmd tea.Cmd
	c.homeComponent, cmd = c.homeComponent.Update(msg)
	return c, cmd
}

func (c *Controller) showHome() tea.Cmd {
	cmd := c.stateMachine.Transition(state.Home)
	c.homeComponent.Show(home.Info{
		Username: c.store.Get().UsernameOrEmpty(),
		Session:  c.session.Current().String(),
		Server:   c.server.URL(),
	})
	return cmd
}

func (c *Controller) showLogin(notice string) tea.Cmd {
	cmd := c.stateMachine.Transition(state.Login)
	reset := c.loginComponent.Reset()
	c.loginComponent.SetError(notice)
	return tea.Batch(cmd, reset)
}

// View renders the current state
func (c *Controller) View() string {
	if c.quitting {
		return c.renderQuitting()
	}

	switch c.stateMachine.Current() {
	case state.Splash:
		return c.withError(c.renderSplash())
	case state.Login:
		return c.withError(c.renderLogin())
	case state.Home:
		return c.withError(c.renderHome())
	default:
		return "Unknown state"
	}
}

// Getters for accessing controller state
func (c *Controller) IsQuitting() bool {
	return c.quitting
}

func (c *Controller) CurrentState() state.State {
	return c.stateMachine.Current()
}

func (c *Controller) GetErrorMsg() string {
	return c.errorMsg
}

// cleanup records the exit
func (c *Controller) cleanup() {
	_ = c.tracer.TrackStateChange(c.stateMachine.Current().String(), "application_exit", "user_quit")
}

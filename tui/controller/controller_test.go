package controller

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"techexam-cli/auth"
	"techexam-cli/config"
	"techexam-cli/session"
	"techexam-cli/store"
	"techexam-cli/tui/home"
	"techexam-cli/tui/login"
	"techexam-cli/tui/state"
	"techexam-cli/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// MockSession implements SessionMachine for testing
type MockSession struct {
	evaluated session.State
	current   session.State
	logouts   int
	store     *store.Store
}

func (m *MockSession) Evaluate() session.State {
	m.current = m.evaluated
	return m.evaluated
}

func (m *MockSession) Logout() session.State {
	m.logouts++
	if m.store != nil {
		_ = m.store.Clear()
	}
	m.current = session.NeedsLogin
	return m.current
}

func (m *MockSession) Current() session.State {
	return m.current
}

// MockAuth implements login.Service for testing
type MockAuth struct{}

func (m *MockAuth) AttemptLogin(ctx context.Context, username, password string) auth.LoginResult {
	return auth.LoginResult{Success: true}
}

func newTestController(t *testing.T, evaluated session.State) (*Controller, *MockSession, *store.Store) {
	t.Helper()
	scheduler := store.NewSerialScheduler()
	t.Cleanup(scheduler.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)

	credentials := store.New(store.NewMemoryBackend(), scheduler, store.WithLogger(log))
	mockSession := &MockSession{evaluated: evaluated, store: credentials}
	c := New(Dependencies{
		Session:      mockSession,
		Store:        credentials,
		Auth:         &MockAuth{},
		Server:       config.Server{Type: config.ServerTest},
		LoginTimeout: time.Second,
		Theme:        theme.NewManagerWithDetector(theme.NewDetectorWithEnv(func(string) string { return "" })),
		Log:          log,
		Version:      "1.2.3",
	})
	t.Cleanup(c.Close)
	return c, mockSession, credentials
}

func TestController_StartsOnSplash(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)

	// Act
	view := c.View()

	// Assert
	if c.CurrentState() != state.Splash {
		t.Errorf("Expected Splash, got %s", c.CurrentState())
	}
	if !strings.Contains(view, "Checking saved session") || !strings.Contains(view, "v1.2.3") {
		t.Errorf("Unexpected splash view %q", view)
	}
}

func TestController_EvaluateCmd(t *testing.T) {
	// Arrange
	c, mockSession, _ := newTestController(t, session.Authenticated)

	// Act
	msg := c.evaluateCmd()()

	// Assert
	evaluated, ok := msg.(EvaluatedMsg)
	if !ok {
		t.Fatalf("Expected EvaluatedMsg, got %T", msg)
	}
	if evaluated.State != session.Authenticated || mockSession.current != session.Authenticated {
		t.Errorf("Expected authenticated evaluation, got %s", evaluated.State)
	}
}

func TestController_EvaluatedNeedsLogin(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)

	// Act
	c.Update(EvaluatedMsg{State: session.NeedsLogin})

	// Assert
	if c.CurrentState() != state.Login {
		t.Errorf("Expected Login, got %s", c.CurrentState())
	}
}

func TestController_EvaluatedAuthenticated(t *testing.T) {
	// Arrange
	c, mockSession, credentials := newTestController(t, session.Authenticated)
	if err := credentials.Set(store.NewCredentials("User@yahoo.co", "P@ssword1")); err != nil {
		t.Fatal(err)
	}
	mockSession.current = session.Authenticated

	// Act
	c.Update(EvaluatedMsg{State: session.Authenticated})

	// Assert
	if c.CurrentState() != state.Home {
		t.Fatalf("Expected Home, got %s", c.CurrentState())
	}
	view := c.View()
	if !strings.Contains(view, "Welcome User!") || !strings.Contains(view, "User@yahoo.co") {
		t.Errorf("Unexpected home view %q", view)
	}
}

func TestController_EvaluatedIgnoredAfterSplash(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)
	c.Update(EvaluatedMsg{State: session.NeedsLogin})

	// Act
	c.Update(EvaluatedMsg{State: session.Authenticated})

	// Assert
	if c.CurrentState() != state.Login {
		t.Errorf("Expected to stay on Login, got %s", c.CurrentState())
	}
}

func TestController_LoginSuccessShowsHome(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)
	c.Update(EvaluatedMsg{State: session.NeedsLogin})

	// Act
	c.Update(login.LoginSuccessMsg{Username: "User@yahoo.co"})

	// Assert
	if c.CurrentState() != state.Home {
		t.Errorf("Expected Home, got %s", c.CurrentState())
	}
}

func TestController_LogoutReturnsToLogin(t *testing.T) {
	// Arrange
	c, mockSession, _ := newTestController(t, session.Authenticated)
	c.Update(EvaluatedMsg{State: session.Authenticated})

	// Act
	_, cmd := c.Update(home.LogoutMsg{})
	if cmd == nil {
		t.Fatal("Expected logout command")
	}
	c.Update(cmd())

	// Assert
	if mockSession.logouts != 1 {
		t.Errorf("Expected one logout, got %d", mockSession.logouts)
	}
	if c.CurrentState() != state.Login {
		t.Errorf("Expected Login, got %s", c.CurrentState())
	}
	if !strings.Contains(c.View(), "You have been logged out.") {
		t.Error("Expected logout notice on the login screen")
	}
}

func TestController_LogoutIgnoresSecondRequest(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.Authenticated)
	c.Update(EvaluatedMsg{State: session.Authenticated})
	c.Update(home.LogoutMsg{})

	// Act
	_, cmd := c.Update(home.LogoutMsg{})

	// Assert
	if cmd != nil {
		t.Error("Expected a second logout to be ignored while the first runs")
	}
}

func TestController_ClearedCredentialsEndHome(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.Authenticated)
	c.Update(EvaluatedMsg{State: session.Authenticated})

	// Act
	c.Update(CredentialsChangedMsg{Change: store.Change{
		Old: store.NewCredentials("User@yahoo.co", "P@ssword1"),
	}})

	// Assert
	if c.CurrentState() != state.Login {
		t.Errorf("Expected Login, got %s", c.CurrentState())
	}
	if !strings.Contains(c.View(), "Your session has ended.") {
		t.Error("Expected session ended notice")
	}
}

func TestController_CredentialsChangedOnLoginIgnored(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)
	c.Update(EvaluatedMsg{State: session.NeedsLogin})

	// Act
	_, cmd := c.Update(CredentialsChangedMsg{})

	// Assert
	if cmd != nil || c.CurrentState() != state.Login {
		t.Error("Expected change to be ignored on the login screen")
	}
}

func TestController_AttachForwardsChanges(t *testing.T) {
	// Arrange
	c, _, credentials := newTestController(t, session.NeedsLogin)
	received := make(chan tea.Msg, 1)
	c.Attach(func(msg tea.Msg) { received <- msg })

	// Act
	if err := credentials.Set(store.NewCredentials("User@yahoo.co", "P@ssword1")); err != nil {
		t.Fatal(err)
	}

	// Assert
	select {
	case msg := <-received:
		changed, ok := msg.(CredentialsChangedMsg)
		if !ok {
			t.Fatalf("Expected CredentialsChangedMsg, got %T", msg)
		}
		if changed.Change.New.UsernameOrEmpty() != "User@yahoo.co" {
			t.Errorf("Unexpected change %+v", changed.Change)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected change to be forwarded")
	}
}

func TestController_QuitKey(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)

	// Act
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	// Assert
	if !c.IsQuitting() {
		t.Error("Expected controller to be quitting")
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected QuitMsg")
	}
	if !strings.Contains(c.View(), "Goodbye!") {
		t.Error("Expected goodbye view")
	}
}

func TestController_HomeQuit(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.Authenticated)
	c.Update(EvaluatedMsg{State: session.Authenticated})

	// Act
	c.Update(home.QuitMsg{})

	// Assert
	if !c.IsQuitting() {
		t.Error("Expected controller to be quitting")
	}
}

func TestController_TransitionError(t *testing.T) {
	// Arrange
	c, _, _ := newTestController(t, session.NeedsLogin)

	// Act
	c.Update(state.ErrorMsg{Error: context.DeadlineExceeded})

	// Assert
	if c.GetErrorMsg() == "" {
		t.Error("Expected error message to be recorded")
	}
}

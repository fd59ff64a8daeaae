package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"techexam-cli/auth"
	"techexam-cli/session"
	"techexam-cli/store"
)

// MockSession implements Session for testing
type MockSession struct {
	state       session.State
	evaluations int
	logouts     int
}

func (m *MockSession) Evaluate() session.State {
	m.evaluations++
	return m.state
}

func (m *MockSession) Login(ctx context.Context, username, password string) error {
	return nil
}

func (m *MockSession) Logout() session.State {
	m.logouts++
	m.state = session.NeedsLogin
	return m.state
}

func (m *MockSession) Current() session.State {
	return m.state
}

// MockCredentials implements Credentials for testing
type MockCredentials struct {
	creds store.Credentials
}

func (m *MockCredentials) Get() store.Credentials {
	return m.creds
}

// MockAuthenticator records attempts and returns a canned result
type MockAuthenticator struct {
	result   auth.LoginResult
	username string
	password string
	calls    int
}

func (m *MockAuthenticator) AttemptLogin(ctx context.Context, username, password string) auth.LoginResult {
	m.calls++
	m.username = username
	m.password = password
	return m.result
}

type stubCommand struct {
	args []string
	err  error
}

func (s *stubCommand) Execute(ctx context.Context, args []string) error {
	s.args = args
	return s.err
}

func (s *stubCommand) Synopsis() string { return "stub" }

func TestRegistry_Run(t *testing.T) {
	// Arrange
	stub := &stubCommand{}
	registry := Registry{"status": stub}
	var out bytes.Buffer

	// Act
	err := registry.Run(context.Background(), []string{"status", "-x"}, &out)

	// Assert
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(stub.args) != 1 || stub.args[0] != "-x" {
		t.Errorf("Expected remaining args to be passed, got %v", stub.args)
	}
}

func TestRegistry_RunUnknown(t *testing.T) {
	// Arrange
	registry := Registry{"status": &stubCommand{}}
	var out bytes.Buffer

	// Act
	err := registry.Run(context.Background(), []string{"frobnicate"}, &out)

	// Assert
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
	if !strings.Contains(out.String(), "status") {
		t.Error("Expected usage to be printed")
	}
}

func TestRegistry_Help(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"help", []string{"help"}},
		{"flag", []string{"--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			registry := Registry{"logout": &stubCommand{}, "status": &stubCommand{}}

			err := registry.Run(context.Background(), tt.args, &out)

			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			usage := out.String()
			if strings.Index(usage, "logout") > strings.Index(usage, "status") {
				t.Errorf("Expected commands sorted by name, got %q", usage)
			}
		})
	}
}

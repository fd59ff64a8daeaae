package login

import (
	"context"
	"time"

	"techexam-cli/auth"
	"techexam-cli/tracing"

	tea "github.com/charmbracelet/bubbletea"
)

// Service runs a login attempt. *auth.AuthService satisfies it.
type Service interface {
	AttemptLogin(ctx context.Context, username, password string) auth.LoginResult
}

// attemptCmd runs one attempt under a timeout derived from parent and
// reports it as a ResultMsg. The returned cancel func aborts it.
func attemptCmd(parent context.Context, service Service, tracer *tracing.TUIIntegration, timeout time.Duration,
	attempt int, username, password string) (tea.Cmd, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	tracker := tracer.StartLogin()

	return func() tea.Msg {
		defer cancel()
		result := service.AttemptLogin(ctx, username, password)
		_ = tracker.Complete(result)
		return ResultMsg{Attempt: attempt, Result: result}
	}, cancel
}

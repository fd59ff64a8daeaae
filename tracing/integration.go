package tracing

import (
	"context"
	"errors"
	"time"

	"techexam-cli/auth"
	"techexam-cli/session"
)

// TUIIntegration adapts application events to tracing calls. A nil manager
// turns every call into a no-op.
type TUIIntegration struct {
	manager *Manager
	source  string
}

// NewTUIIntegration creates an integration tagging login attempts with source
func NewTUIIntegration(manager *Manager, source string) *TUIIntegration {
	return &TUIIntegration{manager: manager, source: source}
}

// TrackStateChange tracks a screen transition
func (t *TUIIntegration) TrackStateChange(oldState, newState, trigger string) error {
	if t.manager == nil {
		return nil
	}
	return t.manager.TrackStateTransition(oldState, newState, trigger)
}

// SessionHook returns a hook for session.WithTransitionHook
func (t *TUIIntegration) SessionHook() func(session.Transition) {
	return func(tr session.Transition) {
		_ = t.TrackStateChange("session_"+tr.From.String(), "session_"+tr.To.String(), tr.Reason)
	}
}

// LoginTracker times one login attempt
type LoginTracker struct {
	integration *TUIIntegration
	start       time.Time
}

// StartLogin begins timing a login attempt
func (t *TUIIntegration) StartLogin() *LoginTracker {
	return &LoginTracker{integration: t, start: time.Now()}
}

// Complete records the attempt's outcome derived from result
func (l *LoginTracker) Complete(result auth.LoginResult) error {
	if l.integration.manager == nil {
		return nil
	}
	return l.integration.manager.TrackLoginAttempt(l.integration.source, OutcomeOf(result), time.Since(l.start))
}

// OutcomeOf classifies a login result
func OutcomeOf(result auth.LoginResult) string {
	switch {
	case result.Success:
		return OutcomeSuccess
	case result.TimedOut:
		return OutcomeTimeout
	case result.Cancelled:
		return OutcomeCancelled
	case result.Rejected:
		return OutcomeRejected
	case result.Throttled:
		return OutcomeThrottled
	default:
		return OutcomeFailed
	}
}

// TrackError tracks errors with component context. Cancellations are not errors.
func (t *TUIIntegration) TrackError(err error, component, operation string) error {
	if t.manager == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return t.manager.TrackErrorWithContext(err, component, map[string]string{"operation": operation})
}

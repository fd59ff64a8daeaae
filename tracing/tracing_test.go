package tracing

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"techexam-cli/auth"
	"techexam-cli/session"
)

func readBatches(t *testing.T, dir string) []map[string]interface{} {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read traces directory: %v", err)
	}
	var batches []map[string]interface{}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("Failed to read trace file %s: %v", entry.Name(), err)
		}
		var batch map[string]interface{}
		if err := json.Unmarshal(data, &batch); err != nil {
			t.Fatalf("Trace file %s is not JSON: %v", entry.Name(), err)
		}
		batches = append(batches, batch)
	}
	return batches
}

func testConfig(dir string) Config {
	cfg := DefaultConfig(dir)
	cfg.FlushInterval = 0
	return cfg
}

func TestManager_WritesSessionTrail(t *testing.T) {
	// Arrange
	home := t.TempDir()
	manager, err := NewManager(testConfig(home), "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Act
	_ = manager.TrackStateTransition("splash", "login", "session_needs_login")
	_ = manager.TrackLoginAttempt("tui", OutcomeSuccess, 600*time.Millisecond)
	_ = manager.TrackError(errors.New("write session.yml: disk full"), "store")
	if err := manager.Close(); err != nil {
		t.Fatalf("Failed to close manager: %v", err)
	}

	// Assert
	batches := readBatches(t, filepath.Join(home, "traces"))
	if len(batches) != 1 {
		t.Fatalf("Expected one batch, got %d", len(batches))
	}
	events := batches[0]["events"].([]interface{})
	// session_start + 3 tracked + session_end
	if len(events) != 5 {
		t.Errorf("Expected 5 events, got %d", len(events))
	}
	session := batches[0]["session"].(map[string]interface{})
	if session["session_id"] != manager.SessionID() {
		t.Errorf("Expected session id %s, got %v", manager.SessionID(), session["session_id"])
	}
}

func TestManager_ClosedIgnoresEvents(t *testing.T) {
	manager, _ := NewManager(testConfig(t.TempDir()), "test")
	_ = manager.Close()

	if err := manager.TrackStateTransition("a", "b", "c"); err != nil {
		t.Errorf("Expected closed manager to ignore events, got %v", err)
	}
	if err := manager.Close(); err != nil {
		t.Errorf("Expected second close to be a no-op, got %v", err)
	}
}

func TestManager_Disabled(t *testing.T) {
	home := t.TempDir()
	cfg := testConfig(home)
	cfg.Enabled = false

	manager, err := NewManager(cfg, "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	_ = manager.TrackStateTransition("splash", "login", "x")
	_ = manager.Close()

	if _, err := os.Stat(filepath.Join(home, "traces")); !os.IsNotExist(err) {
		t.Error("Expected no traces directory when disabled")
	}
	if manager.IsEnabled() {
		t.Error("Expected manager to report disabled")
	}
}

func TestLoginAttemptEvent_NoCredentials(t *testing.T) {
	event := NewLoginAttemptEvent("s", "cli", OutcomeRejected, time.Second)

	data, err := json.Marshal(event.Sanitize())
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	for _, field := range []string{"username", "password"} {
		if strings.Contains(string(data), field) {
			t.Errorf("Expected no %s field in %s", field, data)
		}
	}
	if err := NewLoginAttemptEvent("s", "cli", "maybe", 0).Validate(); err == nil {
		t.Error("Expected unknown outcome to fail validation")
	}
}

func TestErrorEvent_Sanitize(t *testing.T) {
	// Arrange
	event := NewErrorEvent("s", "login failed for User@yahoo.co with password=P@ssword1", "login")
	event.Context["username"] = "User@yahoo.co"
	event.Context["operation"] = "submit"

	// Act
	sanitized := event.Sanitize().(*ErrorEvent)

	// Assert
	if strings.Contains(sanitized.Error, "yahoo") || strings.Contains(sanitized.Error, "P@ssword1") {
		t.Errorf("Expected personal data to be redacted, got %q", sanitized.Error)
	}
	if _, ok := sanitized.Context["username"]; ok {
		t.Error("Expected username context to be removed")
	}
	if sanitized.Context["operation"] != "submit" {
		t.Error("Expected safe context to be preserved")
	}
	if event.Context["username"] == "" {
		t.Error("Expected original event to be untouched")
	}
}

func TestLocalTracer_CleanupKeepsNewestSessions(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	for _, id := range []string{"aaa", "bbb", "ccc"} {
		name := filepath.Join(dir, "session_"+id+"_1700000000_001.json")
		_ = os.WriteFile(name, []byte("{}"), 0600)
		_ = os.Chtimes(name, old, old)
		old = old.Add(time.Minute)
	}
	cfg := testConfig(dir)
	cfg.Dir = dir
	cfg.MaxSessions = 2
	tracer, err := NewLocalTracer(cfg, "test")
	if err != nil {
		t.Fatalf("Failed to create tracer: %v", err)
	}
	_ = tracer.TrackEvent(NewNavigationEvent(tracer.SessionID(), "", "login", "test"))

	// Act
	if err := tracer.Close(); err != nil {
		t.Fatalf("Failed to close tracer: %v", err)
	}

	// Assert
	entries, _ := os.ReadDir(dir)
	var ids []string
	for _, e := range entries {
		id, _ := sessionIDFromName(e.Name())
		ids = append(ids, id)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 files, got %v", ids)
	}
	for _, id := range ids {
		if id == "aaa" || id == "bbb" {
			t.Errorf("Expected older sessions to be pruned, found %s", id)
		}
	}
}

func TestSessionIDFromName(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
		wantOK bool
	}{
		{"session_1b4e28ba-2fa1-11d2-883f-0016d3cca427_1700000000_001.json", "1b4e28ba-2fa1-11d2-883f-0016d3cca427", true},
		{"session_x.json", "", false},
		{"notes.txt", "", false},
	}
	for _, tt := range tests {
		id, ok := sessionIDFromName(tt.name)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("sessionIDFromName(%q) = %q, %v", tt.name, id, ok)
		}
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		result auth.LoginResult
		want   string
	}{
		{auth.LoginResult{Success: true}, OutcomeSuccess},
		{auth.LoginResult{Error: "Invalid credentials", Rejected: true}, OutcomeRejected},
		{auth.LoginResult{Error: "Login timed out", TimedOut: true}, OutcomeTimeout},
		{auth.LoginResult{Error: "Login cancelled", Cancelled: true}, OutcomeCancelled},
		{auth.LoginResult{Error: "Too many attempts, try again shortly", Throttled: true}, OutcomeThrottled},
		{auth.LoginResult{Error: "Username and password are required"}, OutcomeFailed},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.result); got != tt.want {
			t.Errorf("OutcomeOf(%+v) = %s, want %s", tt.result, got, tt.want)
		}
	}
}

func TestTUIIntegration_SessionHookAndNilManager(t *testing.T) {
	// nil manager never fails
	nop := NewTUIIntegration(nil, "tui")
	nop.SessionHook()(session.Transition{From: session.Unknown, To: session.NeedsLogin, Reason: "evaluate"})
	if err := nop.StartLogin().Complete(auth.LoginResult{Success: true}); err != nil {
		t.Errorf("Expected nil manager to be a no-op, got %v", err)
	}

	home := t.TempDir()
	manager, _ := NewManager(testConfig(home), "test")
	integration := NewTUIIntegration(manager, "tui")
	integration.SessionHook()(session.Transition{From: session.Unknown, To: session.Authenticated, Reason: "evaluate"})
	_ = integration.StartLogin().Complete(auth.LoginResult{Success: true})
	_ = manager.Close()

	batches := readBatches(t, filepath.Join(home, "traces"))
	data, _ := json.Marshal(batches)
	if !strings.Contains(string(data), "session_authenticated") {
		t.Error("Expected session transition to be traced")
	}
	if !strings.Contains(string(data), "login_attempt") {
		t.Error("Expected login attempt to be traced")
	}
}

package footer

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func newFooter() *Component {
	return New(lipgloss.NewStyle(), lipgloss.NewStyle())
}

func TestComponent_View_EmptyBindings(t *testing.T) {
	// Arrange
	component := newFooter()

	// Act
	result := component.View()

	// Assert
	if result != "" {
		t.Errorf("Expected empty string for no bindings, got '%s'", result)
	}
}

func TestComponent_View_MultipleBindings(t *testing.T) {
	// Arrange
	component := newFooter()
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in")),
	}

	// Act
	result := component.View(bindings...)

	// Assert
	for _, want := range []string{"tab", "next field", "enter", "log in"} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected result to contain '%s', got '%s'", want, result)
		}
	}
	if strings.Index(result, "tab") > strings.Index(result, "enter") {
		t.Error("Expected bindings to keep their order")
	}
}

func TestComponent_View_SkipsDisabledBindings(t *testing.T) {
	// Arrange
	component := newFooter()
	disabled := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in"))
	disabled.SetEnabled(false)
	quit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))

	// Act
	result := component.View(disabled, quit)

	// Assert
	if strings.Contains(result, "log in") {
		t.Errorf("Expected disabled binding to be skipped, got '%s'", result)
	}
	if !strings.Contains(result, "quit") {
		t.Errorf("Expected quit binding, got '%s'", result)
	}
}

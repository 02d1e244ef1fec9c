package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/chmouel/lazychanges/internal/config"
)

// TestModelInitialization verifies the model initializes correctly
func TestModelInitialization(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(cfg)

	if m == nil {
		t.Fatal("NewModel returned nil")
	}

	if m.config != cfg {
		t.Error("Model config not set correctly")
	}

	if m.files == nil || m.files.Len() != 0 {
		t.Error("Expected an empty file set before the first status load")
	}

	if m.screens.IsActive() {
		t.Error("No screen should be active at startup")
	}
}

// TestQuitKey exercises the full program loop and the quit key
func TestQuitKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoRefresh = false

	tm := teatest.NewTestModel(
		t,
		NewModel(cfg),
		teatest.WithInitialTermSize(120, 40),
	)

	// Wait for initial load
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm := tm.FinalModel(t)
	m, ok := fm.(*Model)
	if !ok {
		t.Fatal("Final model is not *Model type")
	}

	if !m.quitting {
		t.Error("Model should be marked as quitting after 'q' key")
	}
}

// TestHelpScreenToggle opens and closes the help overlay
func TestHelpScreenToggle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoRefresh = false

	tm := teatest.NewTestModel(
		t,
		NewModel(cfg),
		teatest.WithInitialTermSize(120, 40),
	)

	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm := tm.FinalModel(t)
	m, ok := fm.(*Model)
	if !ok {
		t.Fatal("Final model is not *Model type")
	}

	if m.screens.IsActive() {
		t.Error("Help screen should be closed again")
	}
}

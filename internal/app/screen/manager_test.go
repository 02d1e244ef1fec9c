package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/theme"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	confirm := NewConfirmScreen("discard everything?", thm)
	m.Push(confirm)

	if !m.IsActive() {
		t.Error("expected manager to be active after push")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm, got %v", m.Type())
	}

	info := NewInfoScreen("done", thm)
	m.Push(info)
	if m.Type() != TypeInfo {
		t.Errorf("expected TypeInfo, got %v", m.Type())
	}

	removed := m.Pop()
	if removed != Screen(info) {
		t.Error("expected Pop to return the info screen")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm after pop, got %v", m.Type())
	}

	m.Pop()
	if m.IsActive() {
		t.Error("expected manager to be inactive after popping everything")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()
	m.Push(NewConfirmScreen("a", thm))
	m.Push(NewInfoScreen("b", thm))

	m.Clear()
	if m.IsActive() {
		t.Error("expected manager to be inactive after clear")
	}
	if m.Current() != nil {
		t.Error("expected no current screen after clear")
	}
}

func TestConfirmScreenButtons(t *testing.T) {
	thm := theme.Dracula()
	confirmed, cancelled := false, false

	scr := NewConfirmScreen("sure?", thm)
	scr.OnConfirm = func() tea.Cmd { confirmed = true; return nil }
	scr.OnCancel = func() tea.Cmd { cancelled = true; return nil }

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Fatal("expected confirm screen to close on enter")
	}
	if !confirmed || cancelled {
		t.Fatalf("expected confirm callback, got confirmed=%v cancelled=%v", confirmed, cancelled)
	}
}

func TestDangerConfirmScreenDefaultsToCancel(t *testing.T) {
	thm := theme.Dracula()
	confirmed, cancelled := false, false

	scr := NewDangerConfirmScreen("discard 3 files?", thm)
	scr.OnConfirm = func() tea.Cmd { confirmed = true; return nil }
	scr.OnCancel = func() tea.Cmd { cancelled = true; return nil }

	if scr.SelectedButton != 1 {
		t.Fatalf("expected cancel button focused, got %d", scr.SelectedButton)
	}

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Fatal("expected screen to close on enter")
	}
	if confirmed || !cancelled {
		t.Fatalf("expected cancel callback, got confirmed=%v cancelled=%v", confirmed, cancelled)
	}
}

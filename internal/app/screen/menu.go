package screen

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazychanges/internal/theme"
)

// MenuItem represents a single entry in a menu screen.
type MenuItem struct {
	ID          string
	Label       string
	Description string
	Disabled    bool
	Separator   bool
}

// MenuScreen lets the user pick an action from a vertical menu. Disabled
// entries are rendered muted and cannot be activated, separators are
// rendered as rules and skipped during navigation.
type MenuScreen struct {
	Items  []MenuItem
	Cursor int
	Width  int
	Title  string
	Thm    *theme.Theme

	// Callbacks
	OnSelect func(MenuItem) tea.Cmd
	OnCancel func() tea.Cmd
}

// NewMenuScreen builds a menu screen sized to its items.
func NewMenuScreen(items []MenuItem, title string, maxWidth int, thm *theme.Theme) *MenuScreen {
	width := 60
	if maxWidth > 0 && maxWidth-10 < width {
		width = maxWidth - 10
	}
	if width < 30 {
		width = 30
	}

	scr := &MenuScreen{
		Items:  items,
		Cursor: -1,
		Width:  width,
		Title:  title,
		Thm:    thm,
	}
	scr.Cursor = scr.nextSelectable(-1, 1)
	return scr
}

// Type returns the screen type.
func (s *MenuScreen) Type() Type {
	return TypeMenu
}

// nextSelectable returns the index of the next non-separator item walking
// from start in the given direction, or the start index when none exists.
func (s *MenuScreen) nextSelectable(start, dir int) int {
	for i := start + dir; i >= 0 && i < len(s.Items); i += dir {
		if !s.Items[i].Separator {
			return i
		}
	}
	return start
}

// Update handles keyboard input and returns nil to signal the screen should close.
func (s *MenuScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		if item, ok := s.Selected(); ok && !item.Disabled {
			if s.OnSelect != nil {
				return nil, s.OnSelect(item)
			}
			return nil, nil
		}
		return s, nil
	case keyEsc, keyQ, keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case "up", "k", "ctrl+k":
		s.Cursor = s.nextSelectable(s.Cursor, -1)
		return s, nil
	case "down", "j", "ctrl+j":
		s.Cursor = s.nextSelectable(s.Cursor, 1)
		return s, nil
	}
	return s, nil
}

// Selected returns the item under the cursor, if any.
func (s *MenuScreen) Selected() (MenuItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Items) {
		return MenuItem{}, false
	}
	item := s.Items[s.Cursor]
	if item.Separator {
		return MenuItem{}, false
	}
	return item, true
}

// View renders the menu.
func (s *MenuScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render(s.Title)

	itemStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Foreground(s.Thm.TextFg)

	disabledStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Foreground(s.Thm.MutedFg).
		Italic(true)

	selectedStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg)

	separatorLine := lipgloss.NewStyle().
		Foreground(s.Thm.BorderDim).
		Padding(0, 1).
		Render(strings.Repeat("─", s.Width-4))

	var itemViews []string
	for i, item := range s.Items {
		if item.Separator {
			itemViews = append(itemViews, separatorLine)
			continue
		}

		label := item.Label
		if item.Description != "" {
			label = fmt.Sprintf("%s  %s", label, descStyle.Render(item.Description))
		}

		var line string
		switch {
		case i == s.Cursor:
			line = selectedStyle.Render(ansi.Strip(label))
		case item.Disabled:
			line = disabledStyle.Render(item.Label)
		default:
			line = itemStyle.Render(label)
		}
		itemViews = append(itemViews, line)
	}

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render("j/k to move • Enter to select • Esc to cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		strings.Join(itemViews, "\n"),
		footer,
	)

	return boxStyle.Render(content)
}

package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app/screen"
	"github.com/chmouel/lazychanges/internal/changes"
	"github.com/chmouel/lazychanges/internal/models"
)

// handleKey routes keyboard input to the active screen or the main list.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screens.IsActive() {
		next, cmd := m.screens.Current().Update(msg)
		if next == nil {
			m.screens.Pop()
		} else {
			m.screens.Set(next)
		}
		return m, cmd
	}

	if m.showingFilter {
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visibleIDs)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g":
		m.cursor = 0
		return m, nil

	case "G":
		if len(m.visibleIDs) > 0 {
			m.cursor = len(m.visibleIDs) - 1
		}
		return m, nil

	case " ":
		return m, m.toggleCursorInclude()

	case "a":
		return m, m.toggleAllIncludes()

	case "v":
		m.toggleSelection()
		return m, nil

	case "esc":
		if len(m.selectedIDs) > 0 {
			m.selectedIDs = nil
			return m, nil
		}
		if m.filterQuery != "" {
			m.filterQuery = ""
			m.filterInput.SetValue("")
			m.applyFilter()
		}
		return m, nil

	case "m", "enter":
		return m, m.openContextMenu()

	case "c":
		return m, m.openCommitComposer()

	case "e":
		return m, m.openInEditor()

	case "R":
		m.statusText = "Refreshing..."
		return m, m.loadStatus()

	case "/":
		m.showingFilter = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case "?":
		m.screens.Push(screen.NewHelpScreen(m.windowWidth, m.windowHeight, m.theme))
		return m, nil
	}

	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.showingFilter = false
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.showingFilter = false
		m.filterQuery = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if query := m.filterInput.Value(); query != m.filterQuery {
		m.filterQuery = query
		m.applyFilter()
	}
	return m, cmd
}

// toggleCursorInclude flips the inclusion of the file under the cursor.
func (m *Model) toggleCursorInclude() tea.Cmd {
	file, ok := m.cursorFile()
	if !ok {
		return nil
	}
	m.selection.ToggleFile(file.Path, file.Include != models.Included)
	m.restampIncludes()
	return nil
}

// toggleAllIncludes flips every file: everything off when all are
// included, everything on otherwise.
func (m *Model) toggleAllIncludes() tea.Cmd {
	if m.files.Len() == 0 {
		return nil
	}
	include := m.selection.AggregateState(m.files) != changes.IncludeAll
	m.selection.ToggleAll(include)
	m.restampIncludes()
	return nil
}

// restampIncludes reapplies the include store to the current snapshot.
func (m *Model) restampIncludes() {
	m.files = models.NewFileSet(m.includes.Apply(m.files.Files()))
}

// toggleSelection adds or removes the cursor file from the
// multi-selection, keeping insertion order.
func (m *Model) toggleSelection() {
	file, ok := m.cursorFile()
	if !ok {
		return
	}
	for i, id := range m.selectedIDs {
		if id == file.ID {
			m.selectedIDs = append(m.selectedIDs[:i], m.selectedIDs[i+1:]...)
			return
		}
	}
	m.selectedIDs = append(m.selectedIDs, file.ID)
}

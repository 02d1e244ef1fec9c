package app

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app/screen"
	"github.com/chmouel/lazychanges/internal/changes"
	"github.com/chmouel/lazychanges/internal/models"
)

// menuChoiceMsg carries the action picked from the context menu back
// into the update loop, after the menu screen has closed.
type menuChoiceMsg struct {
	action changes.MenuAction
}

// openContextMenu builds the action menu for the cursor file together
// with the current multi-selection and presents it as a modal.
func (m *Model) openContextMenu() tea.Cmd {
	file, ok := m.cursorFile()
	if !ok {
		return nil
	}

	actions := m.menuBuilder.Build(changes.MenuRequest{
		Path:      file.Path,
		Status:    file.Status,
		Selection: m.selectedIDs,
		FileSet:   m.files,
	})

	items := make([]screen.MenuItem, 0, len(actions))
	for i, action := range actions {
		if action.IsSeparator() {
			items = append(items, screen.MenuItem{Separator: true})
			continue
		}
		items = append(items, screen.MenuItem{
			ID:       strconv.Itoa(i),
			Label:    action.Label,
			Disabled: !action.Enabled,
		})
	}

	menu := screen.NewMenuScreen(items, file.Path, m.windowWidth, m.theme)
	menu.OnSelect = func(item screen.MenuItem) tea.Cmd {
		idx, err := strconv.Atoi(item.ID)
		if err != nil || idx < 0 || idx >= len(actions) {
			return nil
		}
		action := actions[idx]
		return func() tea.Msg { return menuChoiceMsg{action: action} }
	}
	m.screens.Push(menu)
	return nil
}

// performAction runs a chosen menu action, asking for confirmation
// before destructive discards.
func (m *Model) performAction(action changes.MenuAction) tea.Cmd {
	if action.Kind == changes.ActionDiscard && m.config.ConfirmDiscard {
		m.pushDiscardConfirm(action)
		return nil
	}
	return m.dispatchAction(action)
}

func (m *Model) pushDiscardConfirm(action changes.MenuAction) {
	message := fmt.Sprintf("Discard changes to %s?\n\nThis cannot be undone.", action.Target.Path)
	if action.Target.Batch {
		message = fmt.Sprintf("Discard changes to %d files?\n\nThis cannot be undone.", len(action.Target.Paths))
	}

	confirm := screen.NewDangerConfirmScreen(message, m.theme)
	confirm.OnConfirm = func() tea.Cmd {
		return m.dispatchAction(action)
	}
	m.screens.Push(confirm)
}

// dispatchAction forwards the action to the dispatcher off the UI
// loop. The dispatcher re-resolves target paths against the snapshot
// current at execution time.
func (m *Model) dispatchAction(action changes.MenuAction) tea.Cmd {
	return func() tea.Msg {
		m.dispatcher.Dispatch(action)
		return actionDoneMsg{info: actionInfo(action)}
	}
}

func actionInfo(action changes.MenuAction) string {
	switch action.Kind {
	case changes.ActionDiscard:
		return "Changes discarded"
	case changes.ActionIgnore, changes.ActionIgnorePattern:
		return "Ignore file updated"
	default:
		return ""
	}
}

// openCommitComposer shows the multiline commit message screen when at
// least one file is included.
func (m *Model) openCommitComposer() tea.Cmd {
	if m.selection.AggregateState(m.files) == changes.IncludeNone {
		m.showInfo("No files are included in the commit.\n\nUse Space or 'a' to include some first.")
		return nil
	}

	title := "Commit message"
	if identity := m.git.UserIdentity(m.ctx); identity != "" {
		title = "Commit message (" + identity + ")"
	}
	composer := screen.NewTextareaScreen(
		title,
		"Summary of the change...",
		"",
		m.windowWidth,
		m.windowHeight,
		m.theme,
	)
	composer.SetValidation(func(value string) string {
		if value == "" {
			return "Commit message cannot be empty"
		}
		return ""
	})
	composer.OnSubmit = func(value string) tea.Cmd {
		return m.commitIncluded(value)
	}
	m.screens.Push(composer)
	return nil
}

func (m *Model) commitIncluded(message string) tea.Cmd {
	var included []models.ChangedFile
	for _, file := range m.files.Files() {
		if file.Include == models.Included {
			included = append(included, file)
		}
	}

	return func() tea.Msg {
		ok := m.git.Commit(m.ctx, m.workdir, message, included)
		return commitDoneMsg{ok: ok}
	}
}

// gitDiscarder bridges the dispatcher to the git service.
type gitDiscarder struct {
	model *Model
}

func (g *gitDiscarder) DiscardFiles(files []models.ChangedFile) {
	g.model.git.DiscardFiles(g.model.ctx, g.model.workdir, files)
}

// gitIgnorer appends patterns to the repository ignore file.
type gitIgnorer struct {
	model *Model
}

func (g *gitIgnorer) AddIgnorePatterns(patterns ...string) {
	err := g.model.git.AddIgnorePatterns(g.model.ctx, g.model.workdir, g.model.config.IgnoreFile, patterns...)
	if err != nil {
		g.model.debugf("ignore: %v", err)
	}
}

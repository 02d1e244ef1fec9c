package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app/screen"
	"github.com/chmouel/lazychanges/internal/git"
	"github.com/chmouel/lazychanges/internal/models"
)

// Message types for the bubbletea app.
type (
	errMsg          struct{ err error }
	statusLoadedMsg struct {
		status     *git.WorkdirStatus
		lastCommit string
	}
	actionDoneMsg struct {
		info string
	}
	commitDoneMsg struct {
		ok bool
	}
	workdirChangedMsg  struct{}
	autoRefreshTickMsg struct{}
	loadingTickMsg     struct{}
)

// loadingTick drives the loading screen animation.
func (m *Model) loadingTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return loadingTickMsg{}
	})
}

// loadStatus queries git for the working tree status in the background.
func (m *Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status := m.git.Status(m.ctx, m.workdir)
		return statusLoadedMsg{
			status:     status,
			lastCommit: m.git.LastCommitSummary(m.ctx),
		}
	}
}

// handleStatusLoaded installs a fresh snapshot. Inclusion state is
// reapplied from the store, the filter is reapplied, and selection
// entries whose files vanished are dropped.
func (m *Model) handleStatusLoaded(msg statusLoadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	m.statusText = ""
	if m.screens.Type() == screen.TypeLoading {
		m.screens.Pop()
	}

	status := msg.status
	if status == nil {
		status = &git.WorkdirStatus{}
	}
	m.branch = status.Branch
	m.upstream = status.Upstream
	m.ahead = status.Ahead
	m.behind = status.Behind
	m.lastCommit = msg.lastCommit

	files := m.includes.Apply(status.Files)
	m.files = models.NewFileSet(files)
	m.includes.Prune(m.files)
	m.applyFilter()
	m.pruneSelection()
	m.clampCursor()

	return m, nil
}

func (m *Model) handleWorkdirChanged() (tea.Model, tea.Cmd) {
	if m.watch != nil {
		m.watch.ResetWaiting()
	}
	cmds := []tea.Cmd{m.waitForWatchEvent()}
	if m.shouldRefreshWatchEvent(time.Now()) {
		cmds = append(cmds, m.loadStatus())
	}
	return m, tea.Batch(cmds...)
}

// applyFilter recomputes the visible rows from the snapshot and the
// current filter query.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterQuery))

	var selectedID string
	if m.cursor >= 0 && m.cursor < len(m.visibleIDs) {
		selectedID = m.visibleIDs[m.cursor]
	}

	m.visibleIDs = m.visibleIDs[:0]
	for _, file := range m.files.Files() {
		if query != "" && !strings.Contains(strings.ToLower(file.Path), query) {
			continue
		}
		m.visibleIDs = append(m.visibleIDs, file.ID)
	}

	if selectedID != "" {
		for i, id := range m.visibleIDs {
			if id == selectedID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

// pruneSelection drops selection entries that no longer resolve in the
// snapshot, preserving order.
func (m *Model) pruneSelection() {
	if len(m.selectedIDs) == 0 {
		return
	}
	kept := m.selectedIDs[:0]
	for _, id := range m.selectedIDs {
		if _, ok := m.files.ByID(id); ok {
			kept = append(kept, id)
		}
	}
	m.selectedIDs = kept
}

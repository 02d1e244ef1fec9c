// Package app implements the lazychanges terminal UI.
package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app/screen"
	"github.com/chmouel/lazychanges/internal/app/services"
	"github.com/chmouel/lazychanges/internal/changes"
	"github.com/chmouel/lazychanges/internal/config"
	"github.com/chmouel/lazychanges/internal/git"
	log "github.com/chmouel/lazychanges/internal/log"
	"github.com/chmouel/lazychanges/internal/models"
	"github.com/chmouel/lazychanges/internal/theme"
)

// CommandRunner is a function type for creating exec.Cmd instances.
type CommandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd

const (
	minListWidth    = 36
	minDetailsWidth = 30
)

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.AppConfig
	git    *git.Service
	theme  *theme.Theme

	// Core subsystem
	files       *models.FileSet
	includes    *includeStore
	selection   *changes.SelectionModel
	menuBuilder *changes.MenuBuilder
	dispatcher  *changes.Dispatcher

	// UI components
	screens     *screen.Manager
	filterInput textinput.Model

	// State
	cursor        int
	visibleIDs    []string
	selectedIDs   []string
	filterQuery   string
	showingFilter bool
	branch        string
	upstream      string
	ahead, behind int
	lastCommit    string
	statusText    string
	workdir       string
	loaded        bool
	windowWidth   int
	windowHeight  int
	quitting      bool

	// Services
	watch              *services.WorkTreeWatchService
	autoRefreshStarted bool

	// Command execution, swappable in tests
	commandRunner CommandRunner
	startCommand  func(*exec.Cmd) error

	// Context
	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the application model.
func NewModel(cfg *config.AppConfig) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		config:   cfg,
		theme:    theme.GetTheme(cfg.Theme),
		includes: newIncludeStore(),
		screens:  screen.NewManager(),
		files:    models.NewFileSet(nil),
		ctx:      ctx,
		cancel:   cancel,
		commandRunner: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, name, args...)
		},
		startCommand: func(c *exec.Cmd) error { return c.Start() },
	}

	notify := func(message, severity string) {
		m.statusText = message
	}
	notifyOnce := func(key, message, severity string) {
		notify(message, severity)
	}
	m.git = git.NewService(notify, notifyOnce)

	m.selection = changes.NewSelectionModel(m.includes)
	m.menuBuilder = changes.NewMenuBuilder(changes.CurrentPlatform())
	m.dispatcher = changes.NewDispatcher(
		func() *models.FileSet { return m.files },
		&gitDiscarder{model: m},
		&gitIgnorer{model: m},
		&systemShell{model: m},
	)

	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	m.filterInput = ti

	if cwd, err := os.Getwd(); err == nil {
		m.workdir = cwd
	}

	return m
}

// Init starts the initial status load and background services.
func (m *Model) Init() tea.Cmd {
	m.screens.Push(screen.NewLoadingScreen("Reading working tree...", m.theme, nil))
	return tea.Batch(m.loadStatus(), m.loadingTick(), m.startWorkTreeWatcher(), m.startAutoRefresh())
}

// Update is the main bubbletea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.filterInput.Width = m.listWidth() - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusLoadedMsg:
		return m.handleStatusLoaded(msg)

	case menuChoiceMsg:
		return m, m.performAction(msg.action)

	case actionDoneMsg:
		if msg.info != "" {
			m.statusText = msg.info
		}
		return m, m.loadStatus()

	case commitDoneMsg:
		if msg.ok {
			m.statusText = "Commit recorded"
		}
		return m, m.loadStatus()

	case workdirChangedMsg:
		return m.handleWorkdirChanged()

	case autoRefreshTickMsg:
		return m, tea.Batch(m.loadStatus(), m.autoRefreshTick())

	case loadingTickMsg:
		if loading, ok := m.screens.Current().(*screen.LoadingScreen); ok {
			loading.Tick()
			return m, m.loadingTick()
		}
		return m, nil

	case errMsg:
		if msg.err != nil {
			m.statusText = msg.err.Error()
			m.debugf("error: %v", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// View renders the whole UI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screens.IsActive() {
		return m.overlayView(m.screens.Current().View())
	}
	return m.mainView()
}

// Close releases background resources.
func (m *Model) Close() {
	m.stopWorkTreeWatcher()
	m.cancel()
}

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// cursorFile returns the file under the cursor, if any.
func (m *Model) cursorFile() (models.ChangedFile, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visibleIDs) {
		return models.ChangedFile{}, false
	}
	if file, ok := m.files.ByID(m.visibleIDs[m.cursor]); ok {
		return file, true
	}
	return models.ChangedFile{}, false
}

// selectionRows maps the current multi-selection to visible row indices.
func (m *Model) selectionRows() []int {
	return changes.RowIndices(m.selectedIDs, m.files)
}

func (m *Model) clampCursor() {
	if len(m.visibleIDs) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(m.visibleIDs) {
		m.cursor = len(m.visibleIDs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) showInfo(message string) {
	m.screens.Push(screen.NewInfoScreen(message, m.theme))
}

func (m *Model) statusLine() string {
	if m.statusText != "" {
		return m.statusText
	}
	if !m.loaded {
		return "Loading changes..."
	}
	if m.files.Len() == 0 {
		return "Working tree clean"
	}
	included := 0
	for _, file := range m.files.Files() {
		if file.Include == models.Included {
			included++
		}
	}
	return fmt.Sprintf("%d changed, %d included", m.files.Len(), included)
}

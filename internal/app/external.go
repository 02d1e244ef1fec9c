package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/models"
)

// systemShell opens paths with the host file manager or default
// program. Paths coming from the dispatcher are repo relative and get
// resolved against the repository root first.
type systemShell struct {
	model *Model
}

func (s *systemShell) absolutePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	root := s.model.git.RepoRoot(s.model.ctx)
	if root == "" {
		root = s.model.workdir
	}
	return filepath.Join(root, path)
}

// RevealInFileManager shows the file in the platform file manager.
func (s *systemShell) RevealInFileManager(path string) {
	abs := s.absolutePath(path)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = s.model.commandRunner(s.model.ctx, "open", "-R", abs)
	case "windows":
		cmd = s.model.commandRunner(s.model.ctx, "explorer", "/select,"+abs)
	default:
		// No cross-desktop way to highlight a file, open its directory.
		cmd = s.model.commandRunner(s.model.ctx, "xdg-open", filepath.Dir(abs))
	}
	s.start(cmd)
}

// OpenWithDefaultProgram opens the file with the OS default handler.
func (s *systemShell) OpenWithDefaultProgram(path string) {
	abs := s.absolutePath(path)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = s.model.commandRunner(s.model.ctx, "open", abs)
	case "windows":
		cmd = s.model.commandRunner(s.model.ctx, "rundll32", "url.dll,FileProtocolHandler", abs)
	default:
		cmd = s.model.commandRunner(s.model.ctx, "xdg-open", abs)
	}
	s.start(cmd)
}

func (s *systemShell) start(cmd *exec.Cmd) {
	if err := s.model.startCommand(cmd); err != nil {
		s.model.debugf("external command: %v", err)
	}
}

// editorCommand returns the configured editor, falling back to $EDITOR
// and finally vi.
func (m *Model) editorCommand() string {
	if m.config.Editor != "" {
		return m.config.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// openInEditor opens the cursor file in the configured editor.
func (m *Model) openInEditor() tea.Cmd {
	file, ok := m.cursorFile()
	if !ok || file.Status == models.StatusDeleted {
		return nil
	}

	shell := systemShell{model: m}
	abs := shell.absolutePath(file.Path)
	editor := m.editorCommand()

	cmd := m.commandRunner(m.ctx, editor, abs)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return errMsg{err: fmt.Errorf("editor %s: %w", editor, err)}
		}
		return workdirChangedMsg{}
	})
}

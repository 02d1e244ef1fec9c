// Package git wraps the git commands and status parsing used by lazychanges.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"

	log "github.com/chmouel/lazychanges/internal/log"
	"github.com/chmouel/lazychanges/internal/models"
)

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

// NotifyFn receives ongoing notifications.
type NotifyFn func(message string, severity string)

// NotifyOnceFn reports deduplicated notification messages.
type NotifyOnceFn func(key string, message string, severity string)

// WorkdirStatus is the parsed result of a porcelain status query.
type WorkdirStatus struct {
	Branch   string
	Upstream string
	Ahead    int
	Behind   int
	Files    []models.ChangedFile
}

// Service orchestrates git commands for the UI.
type Service struct {
	notify     NotifyFn
	notifyOnce NotifyOnceFn
	semaphore  chan struct{}
	rootOnce   sync.Once
	root       string
}

// NewService constructs a Service and sets up concurrency limits.
func NewService(notify NotifyFn, notifyOnce NotifyOnceFn) *Service {
	limit := runtime.NumCPU() * 2
	if limit < 4 {
		limit = 4
	}
	if limit > 32 {
		limit = 32
	}

	semaphore := make(chan struct{}, limit)
	for i := 0; i < limit; i++ {
		semaphore <- struct{}{}
	}

	return &Service{
		notify:     notify,
		notifyOnce: notifyOnce,
		semaphore:  semaphore,
	}
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func prepareGitCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}
	if args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- arguments for git come from internal logic and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

func (s *Service) acquireSemaphore() {
	<-s.semaphore
}

func (s *Service) releaseSemaphore() {
	s.semaphore <- struct{}{}
}

// RunGit executes a git command and optionally trims its output.
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	s.debugf("run: %s (cwd=%s)", command, cwd)

	s.acquireSemaphore()
	defer s.releaseSemaphore()

	cmd, err := prepareGitCommand(ctx, args)
	if err != nil {
		key := fmt.Sprintf("unsupported_cmd:%s", command)
		s.notifyOnce(key, fmt.Sprintf("Unsupported command: %s", command), "error")
		s.debugf("error: %s (unsupported command)", command)
		return ""
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			returnCode := exitError.ExitCode()
			allowed := slices.Contains(okReturncodes, returnCode)
			if !allowed {
				if silent {
					s.debugf("error: %s (exit %d, silenced)", command, returnCode)
					return ""
				}
				stderr := string(exitError.Stderr)
				suffix := ""
				if stderr != "" {
					suffix = ": " + strings.TrimSpace(stderr)
				} else {
					suffix = fmt.Sprintf(" (exit %d)", returnCode)
				}
				key := fmt.Sprintf("git_fail:%s:%s", cwd, command)
				s.notifyOnce(key, fmt.Sprintf("Command failed: %s%s", command, suffix), "error")
				s.debugf("error: %s%s", command, suffix)
				return ""
			}
		} else {
			if !silent {
				key := "cmd_missing:git"
				s.notifyOnce(key, "Command not found: git", "error")
				s.debugf("error: command not found: git")
			}
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	s.debugf("ok: %s", command)
	return out
}

// RunCommandChecked runs the provided git command and reports failures via notify callbacks.
func (s *Service) RunCommandChecked(ctx context.Context, args []string, cwd, errorPrefix string) bool {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	s.debugf("run: %s (cwd=%s)", command, cwd)

	s.acquireSemaphore()
	defer s.releaseSemaphore()

	cmd, err := prepareGitCommand(ctx, args)
	if err != nil {
		message := fmt.Sprintf("%s: %v", errorPrefix, err)
		if errorPrefix == "" {
			message = fmt.Sprintf("command error: %v", err)
		}
		s.notify(message, "error")
		s.debugf("error: %s", message)
		return false
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			s.notify(fmt.Sprintf("%s: %s", errorPrefix, detail), "error")
			s.debugf("error: %s: %s", errorPrefix, detail)
		} else {
			s.notify(fmt.Sprintf("%s: %v", errorPrefix, err), "error")
			s.debugf("error: %s: %v", errorPrefix, err)
		}
		return false
	}

	s.debugf("ok: %s", command)
	return true
}

// RepoRoot returns the absolute path of the repository toplevel. The result
// is cached after the first successful lookup.
func (s *Service) RepoRoot(ctx context.Context) string {
	s.rootOnce.Do(func() {
		s.root = s.RunGit(ctx, []string{"git", "rev-parse", "--show-toplevel"}, "", []int{0}, true, true)
	})
	return s.root
}

// IsRepository reports whether the current directory is inside a git work tree.
func (s *Service) IsRepository(ctx context.Context) bool {
	out := s.RunGit(ctx, []string{"git", "rev-parse", "--is-inside-work-tree"}, "", []int{0}, true, true)
	return out == "true"
}

// Status runs a porcelain v2 status query and parses branch headers and
// changed file entries.
func (s *Service) Status(ctx context.Context, cwd string) *WorkdirStatus {
	raw := s.RunGit(ctx, []string{"git", "status", "--porcelain=v2", "--branch"}, cwd, []int{0}, false, false)
	return ParseStatus(raw)
}

// ParseStatus parses `git status --porcelain=v2 --branch` output.
func ParseStatus(raw string) *WorkdirStatus {
	status := &WorkdirStatus{}

	raw = strings.TrimRight(raw, "\n")
	if strings.TrimSpace(raw) == "" {
		return status
	}

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			parseBranchHeader(status, line)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		var file models.ChangedFile
		switch fields[0] {
		case "1": // 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
			if len(fields) < 9 {
				continue
			}
			file.Status = statusFromXY(fields[1])
			file.Path = fields[8]
		case "2": // 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\t<origPath>
			if len(fields) < 11 {
				continue
			}
			file.Status = statusFromXY(fields[1])
			file.Path = fields[9]
			file.OldPath = fields[10]
		case "u": // u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			if len(fields) < 11 {
				continue
			}
			file.Status = models.StatusConflicted
			file.Path = fields[10]
		case "?":
			file.Status = models.StatusUntracked
			file.Path = fields[1]
		default:
			continue
		}

		file.ID = file.Path
		file.Include = models.Included
		status.Files = append(status.Files, file)
	}

	return status
}

func parseBranchHeader(status *WorkdirStatus, line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}
	switch fields[1] {
	case "branch.head":
		status.Branch = fields[2]
	case "branch.upstream":
		status.Upstream = fields[2]
	case "branch.ab":
		// branch.ab only appears when upstream is set per git porcelain v2 docs
		if len(fields) >= 4 {
			if ahead, err := strconv.Atoi(strings.TrimPrefix(fields[2], "+")); err == nil {
				status.Ahead = ahead
			}
			if behind, err := strconv.Atoi(strings.TrimPrefix(fields[3], "-")); err == nil {
				status.Behind = behind
			}
		}
	}
}

func statusFromXY(xy string) models.FileStatus {
	switch {
	case strings.ContainsAny(xy, "U"):
		return models.StatusConflicted
	case strings.ContainsAny(xy, "R"):
		return models.StatusRenamed
	case strings.ContainsAny(xy, "C"):
		return models.StatusCopied
	case strings.ContainsAny(xy, "A"):
		return models.StatusNew
	case strings.ContainsAny(xy, "D"):
		return models.StatusDeleted
	default:
		return models.StatusModified
	}
}

// DiscardFiles throws away local modifications for the given files. Tracked
// files are restored from HEAD, untracked files are removed from disk.
func (s *Service) DiscardFiles(ctx context.Context, cwd string, files []models.ChangedFile) bool {
	var tracked, untracked []string
	for _, file := range files {
		if file.Path == "" {
			continue
		}
		switch file.Status {
		case models.StatusUntracked:
			untracked = append(untracked, file.Path)
		case models.StatusRenamed, models.StatusCopied:
			tracked = append(tracked, file.Path)
			if file.OldPath != "" {
				tracked = append(tracked, file.OldPath)
			}
		default:
			tracked = append(tracked, file.Path)
		}
	}

	ok := true
	if len(tracked) > 0 {
		args := append([]string{"git", "restore", "--source=HEAD", "--staged", "--worktree", "--"}, tracked...)
		ok = s.RunCommandChecked(ctx, args, cwd, "discard failed") && ok
	}
	if len(untracked) > 0 {
		args := append([]string{"git", "clean", "--force", "--"}, untracked...)
		ok = s.RunCommandChecked(ctx, args, cwd, "discard failed") && ok
	}
	return ok
}

// AddIgnorePatterns appends patterns to the repository ignore file, one per
// line. Existing content is preserved and a missing trailing newline is
// repaired before appending.
func (s *Service) AddIgnorePatterns(ctx context.Context, cwd, ignoreFile string, patterns ...string) error {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern != "" {
			cleaned = append(cleaned, pattern)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}

	root := s.RepoRoot(ctx)
	if root == "" {
		root = cwd
	}
	if ignoreFile == "" {
		ignoreFile = ".gitignore"
	}
	path := filepath.Join(root, ignoreFile)

	var builder strings.Builder
	existing, err := os.ReadFile(path) // #nosec G304 -- path is the repository ignore file
	switch {
	case err == nil:
		builder.Write(existing)
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			builder.WriteByte('\n')
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, pattern := range cleaned {
		builder.WriteString(pattern)
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil { // #nosec G306 -- ignore files are world readable
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.debugf("ignore: appended %d pattern(s) to %s", len(cleaned), path)
	return nil
}

// Commit stages the given files and records a commit with the provided
// message. Renamed files have their old path staged as well so the rename
// is captured whole.
func (s *Service) Commit(ctx context.Context, cwd, message string, files []models.ChangedFile) bool {
	message = strings.TrimSpace(message)
	if message == "" {
		s.notify("Commit message is empty", "error")
		return false
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		if file.Path == "" {
			continue
		}
		paths = append(paths, file.Path)
		if file.OldPath != "" {
			paths = append(paths, file.OldPath)
		}
	}
	if len(paths) == 0 {
		s.notify("Nothing selected to commit", "error")
		return false
	}

	stageArgs := append([]string{"git", "add", "--all", "--"}, paths...)
	if !s.RunCommandChecked(ctx, stageArgs, cwd, "stage failed") {
		return false
	}
	commitArgs := append([]string{"git", "commit", "--message", message, "--only", "--"}, paths...)
	return s.RunCommandChecked(ctx, commitArgs, cwd, "commit failed")
}

// LastCommitSummary returns a one line description of HEAD, or an empty
// string for an unborn branch.
func (s *Service) LastCommitSummary(ctx context.Context) string {
	return s.RunGit(ctx, []string{"git", "log", "-1", "--pretty=format:%h %s"}, "", []int{0, 128}, true, true)
}

// UserIdentity returns the configured committer as "Name <email>", or an
// empty string when neither half is set.
func (s *Service) UserIdentity(ctx context.Context) string {
	name := s.RunGit(ctx, []string{"git", "config", "user.name"}, "", []int{0, 1}, true, true)
	email := s.RunGit(ctx, []string{"git", "config", "user.email"}, "", []int{0, 1}, true, true)
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case name != "":
		return name
	case email != "":
		return fmt.Sprintf("<%s>", email)
	}
	return ""
}

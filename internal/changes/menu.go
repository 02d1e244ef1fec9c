package changes

import (
	"fmt"
	"path"
	"strings"

	"github.com/chmouel/lazychanges/internal/models"
)

// IgnoreFileName is the reserved name of the git ignore file. Offering
// to add it to itself would produce a self-referential ignore rule, so
// ignore actions targeting it are disabled.
const IgnoreFileName = ".gitignore"

// restrictedExtensions are potentially executable extensions for which
// open-with-default-program is disabled on Windows.
var restrictedExtensions = []string{".cmd", ".exe", ".bat", ".sh"}

// ActionKind identifies what a menu action does when dispatched.
type ActionKind int

// Menu action kinds.
const (
	ActionSeparator ActionKind = iota
	ActionDiscard
	ActionIgnore
	ActionIgnorePattern
	ActionReveal
	ActionOpen
)

// Target is the explicit single-or-batch variant a menu action operates
// on. Actions carry paths only, never file records: paths may be stale
// by the time the action fires and the dispatcher re-resolves them
// against the live snapshot.
type Target struct {
	Batch bool
	Path  string   // single target
	Paths []string // batch target
}

// SingleTarget wraps one path.
func SingleTarget(p string) Target {
	return Target{Path: p}
}

// BatchTarget wraps a list of paths.
func BatchTarget(paths []string) Target {
	return Target{Batch: true, Paths: paths}
}

// MenuAction is one entry of a context menu. Actions are immutable and
// built fresh for every menu; the dispatcher resolves Kind and Target at
// invocation time.
type MenuAction struct {
	Kind    ActionKind
	Label   string
	Enabled bool
	Target  Target
	Pattern string // wildcard for ActionIgnorePattern
}

// IsSeparator reports whether the action is a visual separator.
func (a MenuAction) IsSeparator() bool {
	return a.Kind == ActionSeparator
}

func separator() MenuAction {
	return MenuAction{Kind: ActionSeparator}
}

// MenuRequest carries everything the builder needs for one context menu.
type MenuRequest struct {
	Path      string            // the file the menu was requested on
	Status    models.FileStatus // that file's status
	Selection []string          // current multi-selection, as snapshot IDs
	FileSet   *models.FileSet   // current snapshot
}

// MenuBuilder synthesizes the ordered action list for a context menu.
// The host platform is injected at construction and consumed as plain
// data, driving labels and the open-with gate.
type MenuBuilder struct {
	platform HostPlatform
}

// NewMenuBuilder returns a builder for the given platform.
func NewMenuBuilder(platform HostPlatform) *MenuBuilder {
	return &MenuBuilder{platform: platform}
}

// Build produces the ordered, deduplicated action list: discard first,
// then ignore actions, then reveal and open. Disabled actions stay in
// the list so the menu layout is stable.
func (b *MenuBuilder) Build(req MenuRequest) []MenuAction {
	multi := len(req.Selection) > 0
	paths := b.effectivePaths(req)
	fileNames := baseNames(paths)
	extensions := dedupeExtensions(paths)
	distinct := dedupeStrings(fileNames)

	actions := []MenuAction{
		b.discardAction(req, paths, multi),
		separator(),
	}

	switch {
	case len(distinct) == 1:
		actions = append(actions, MenuAction{
			Kind:    ActionIgnore,
			Label:   b.ignoreLabel(),
			Enabled: distinct[0] != IgnoreFileName,
			Target:  SingleTarget(paths[0]),
		})
	case len(distinct) > 1:
		// The reserved-name check only looks at the first file name.
		// Known asymmetry inherited from the original behavior; a
		// .gitignore further down the selection does not disable the
		// batch action.
		actions = append(actions, MenuAction{
			Kind:    ActionIgnore,
			Label:   b.ignoreAllLabel(len(paths)),
			Enabled: fileNames[0] != IgnoreFileName,
			Target:  BatchTarget(paths),
		})
	}

	for _, ext := range extensions {
		pattern := "*" + ext
		actions = append(actions, MenuAction{
			Kind:    ActionIgnorePattern,
			Label:   b.ignorePatternLabel(pattern),
			Enabled: true,
			Target:  BatchTarget(paths),
			Pattern: pattern,
		})
	}

	actions = append(actions,
		separator(),
		MenuAction{
			Kind:    ActionReveal,
			Label:   b.revealLabel(),
			Enabled: req.Status != models.StatusDeleted,
			Target:  SingleTarget(req.Path),
		},
		MenuAction{
			Kind:    ActionOpen,
			Label:   b.openLabel(),
			Enabled: b.canOpen(req),
			Target:  SingleTarget(req.Path),
		},
	)

	return actions
}

// effectivePaths resolves the file paths an action operates on: the
// whole multi-selection when one exists (vanished identifiers dropped),
// the right-clicked file otherwise.
func (b *MenuBuilder) effectivePaths(req MenuRequest) []string {
	if len(req.Selection) == 0 {
		return []string{req.Path}
	}
	files := ResolveIDs(req.Selection, req.FileSet)
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

func (b *MenuBuilder) discardAction(req MenuRequest, paths []string, multi bool) MenuAction {
	action := MenuAction{
		Kind:    ActionDiscard,
		Enabled: req.FileSet.Len() > 0,
	}
	if multi {
		action.Label = b.discardAllLabel(len(paths))
		action.Target = BatchTarget(paths)
	} else {
		action.Label = b.discardLabel()
		action.Target = SingleTarget(req.Path)
	}
	return action
}

func (b *MenuBuilder) canOpen(req MenuRequest) bool {
	if req.Status == models.StatusDeleted {
		return false
	}
	if b.platform != PlatformWindows {
		return true
	}
	ext := strings.ToLower(fileExtension(path.Base(req.Path)))
	for _, restricted := range restrictedExtensions {
		if ext == restricted {
			return false
		}
	}
	return true
}

func (b *MenuBuilder) discardLabel() string {
	if b.platform == PlatformDarwin {
		return "Discard Changes…"
	}
	return "Discard changes…"
}

func (b *MenuBuilder) discardAllLabel(count int) string {
	if b.platform == PlatformDarwin {
		return fmt.Sprintf("Discard %d Selected Changes…", count)
	}
	return fmt.Sprintf("Discard %d selected changes…", count)
}

func (b *MenuBuilder) ignoreLabel() string {
	if b.platform == PlatformDarwin {
		return "Ignore File (Add to .gitignore)"
	}
	return "Ignore file (add to .gitignore)"
}

func (b *MenuBuilder) ignoreAllLabel(count int) string {
	if b.platform == PlatformDarwin {
		return fmt.Sprintf("Ignore %d Selected Files (Add to .gitignore)", count)
	}
	return fmt.Sprintf("Ignore %d selected files (add to .gitignore)", count)
}

func (b *MenuBuilder) ignorePatternLabel(pattern string) string {
	if b.platform == PlatformDarwin {
		return fmt.Sprintf("Ignore All %s Files (Add to .gitignore)", pattern)
	}
	return fmt.Sprintf("Ignore all %s files (add to .gitignore)", pattern)
}

func (b *MenuBuilder) revealLabel() string {
	switch b.platform {
	case PlatformDarwin:
		return "Reveal in Finder"
	case PlatformWindows:
		return "Show in Explorer"
	default:
		return "Show in your File Manager"
	}
}

func (b *MenuBuilder) openLabel() string {
	if b.platform == PlatformDarwin {
		return "Open with Default Program"
	}
	return "Open with default program"
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, path.Base(p))
	}
	return names
}

// fileExtension returns the extension of a base name including the dot,
// or "" when there is none. A leading dot does not start an extension,
// so ".gitignore" has no extension.
func fileExtension(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}

// dedupeExtensions collects the non-empty extensions of paths,
// deduplicated while preserving first-occurrence order.
func dedupeExtensions(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	exts := make([]string, 0, len(paths))
	for _, p := range paths {
		ext := fileExtension(path.Base(p))
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	return exts
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

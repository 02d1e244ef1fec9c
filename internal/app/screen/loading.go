package screen

import (
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazychanges/internal/theme"
)

// LoadingTips is a list of helpful tips shown during loading.
var LoadingTips = []string{
	"Press '?' to view the help guide anytime.",
	"Use Space to include or exclude the selected file.",
	"Press 'a' to toggle every file at once.",
	"Press 'm' or Enter to open the file context menu.",
	"Press 'c' to commit the included files.",
	"Press 'v' to add or remove a file from the selection.",
	"Press Esc to clear the current selection.",
	"Press 'R' to refresh the changes list manually.",
	"Use '/' to filter files by name.",
	"Discarding changes cannot be undone, read the prompt twice.",
	"Ignored patterns are appended to your repository's ignore file.",
	"Generate shell completions with: lazychanges completion <shell>.",
}

// LoadingScreen displays a modal with a spinner and a random tip.
type LoadingScreen struct {
	Message        string
	FrameIdx       int
	BorderColorIdx int
	Tip            string
	Thm            *theme.Theme
	SpinnerFrames  []string
}

// DefaultSpinnerFrames returns the text-only spinner frames.
func DefaultSpinnerFrames() []string {
	return []string{"...", ".. ", ".  "}
}

// NewLoadingScreen creates a loading modal with the given message.
// spinnerFrames should be provided by the caller; if nil, text fallback is used.
func NewLoadingScreen(message string, thm *theme.Theme, spinnerFrames []string) *LoadingScreen {
	frames := spinnerFrames
	if len(frames) == 0 {
		frames = DefaultSpinnerFrames()
	}

	// Pick a random tip (cryptographic randomness not needed for UI tips)
	tip := LoadingTips[rand.IntN(len(LoadingTips))] //nolint:gosec

	return &LoadingScreen{
		Message:       message,
		Tip:           tip,
		Thm:           thm,
		SpinnerFrames: frames,
	}
}

// Type returns the screen type.
func (s *LoadingScreen) Type() Type {
	return TypeLoading
}

// Update handles key events. Loading screen does not respond to keys.
func (s *LoadingScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	return s, nil
}

func (s *LoadingScreen) loadingBorderColors() []lipgloss.Color {
	return []lipgloss.Color{
		s.Thm.Accent,
		s.Thm.SuccessFg,
		s.Thm.WarnFg,
		s.Thm.Accent,
	}
}

// Tick advances the loading animation (spinner frame and border colour).
func (s *LoadingScreen) Tick() {
	s.FrameIdx = (s.FrameIdx + 1) % len(s.SpinnerFrames)
	colours := s.loadingBorderColors()
	s.BorderColorIdx = (s.BorderColorIdx + 1) % len(colours)
}

// View renders the loading modal with spinner, message, and a random tip.
func (s *LoadingScreen) View() string {
	width := 60
	height := 9

	colours := s.loadingBorderColors()
	borderColour := colours[s.BorderColorIdx%len(colours)]

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColour).
		Padding(1, 2).
		Width(width).
		Height(height)

	spinnerFrame := s.SpinnerFrames[s.FrameIdx%len(s.SpinnerFrames)]
	spinnerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(s.Thm.TextFg).
		Bold(true)

	separatorStyle := lipgloss.NewStyle().
		Foreground(s.Thm.BorderDim)
	separator := separatorStyle.Render(strings.Repeat("-", width-6))

	tipText := s.Tip
	maxTipLen := width - 12
	if len(tipText) > maxTipLen {
		tipText = tipText[:maxTipLen-3] + "..."
	}
	tipStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Italic(true)

	content := lipgloss.JoinVertical(lipgloss.Center,
		spinnerStyle.Render(spinnerFrame),
		"",
		messageStyle.Render(s.Message),
		separator,
		tipStyle.Render("Tip: "+tipText),
	)

	return boxStyle.Render(content)
}

// SetTheme updates the theme for this screen.
func (s *LoadingScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}

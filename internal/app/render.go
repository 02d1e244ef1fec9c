package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/chmouel/lazychanges/internal/changes"
	"github.com/chmouel/lazychanges/internal/models"
	"github.com/chmouel/lazychanges/internal/utils"
)

func (m *Model) listWidth() int {
	width := m.windowWidth * 55 / 100
	if width < minListWidth {
		width = minListWidth
	}
	return width
}

func (m *Model) detailsWidth() int {
	width := m.windowWidth - m.listWidth() - 2
	if width < minDetailsWidth {
		width = minDetailsWidth
	}
	return width
}

func (m *Model) bodyHeight() int {
	height := m.windowHeight - 3 // header, footer, status line
	if m.showingFilter {
		height--
	}
	if height < 3 {
		height = 3
	}
	return height
}

func (m *Model) mainView() string {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}
	if m.showingFilter {
		sections = append(sections, m.renderFilter())
	}
	sections = append(sections, m.renderBody(), m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	branchStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)

	branch := m.branch
	if branch == "" {
		branch = "(no branch)"
	}

	parts := []string{
		m.renderAggregateCheckbox(),
		branchStyle.Render(branch),
	}
	if m.upstream != "" {
		tracking := fmt.Sprintf("%s ↑%d ↓%d", m.upstream, m.ahead, m.behind)
		parts = append(parts, mutedStyle.Render(tracking))
	}
	if len(m.selectedIDs) > 0 {
		selStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg)
		parts = append(parts, selStyle.Render(fmt.Sprintf("%d selected", len(m.selectedIDs))))
	}
	if m.lastCommit != "" {
		parts = append(parts, mutedStyle.Render(m.lastCommit))
	}

	header := strings.Join(parts, "  ")
	return lipgloss.NewStyle().
		Width(m.windowWidth).
		Padding(0, 1).
		Render(ansi.Truncate(header, m.windowWidth-2, "…"))
}

// renderAggregateCheckbox renders the tri-state header checkbox.
func (m *Model) renderAggregateCheckbox() string {
	var box string
	var style lipgloss.Style
	switch changes.Aggregate(m.files) {
	case changes.IncludeAll:
		box = "[x]"
		style = lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Bold(true)
	case changes.IncludeMixed:
		box = "[~]"
		style = lipgloss.NewStyle().Foreground(m.theme.WarnFg).Bold(true)
	default:
		box = "[ ]"
		style = lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	}
	return style.Render(box)
}

func (m *Model) renderFilter() string {
	return lipgloss.NewStyle().
		Width(m.windowWidth).
		Padding(0, 1).
		Render(m.filterInput.View())
}

func (m *Model) renderBody() string {
	list := m.renderFileList()
	details := m.renderDetails()
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", details)
}

func (m *Model) renderFileList() string {
	width := m.listWidth()
	height := m.bodyHeight()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(width - 2).
		Height(height - 2)

	if len(m.visibleIDs) == 0 {
		empty := "Working tree clean"
		if m.filterQuery != "" {
			empty = fmt.Sprintf("No files match %q", m.filterQuery)
		}
		emptyStyle := lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Italic(true).
			Padding(0, 1)
		return borderStyle.Render(emptyStyle.Render(empty))
	}

	selected := make(map[string]struct{}, len(m.selectedIDs))
	for _, id := range m.selectedIDs {
		selected[id] = struct{}{}
	}

	visible := height - 2
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.visibleIDs) {
		end = len(m.visibleIDs)
	}

	var lines []string
	for i := start; i < end; i++ {
		file, ok := m.files.ByID(m.visibleIDs[i])
		if !ok {
			continue
		}
		lines = append(lines, m.renderFileRow(file, i == m.cursor, selected, width-4))
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFileRow(file models.ChangedFile, isCursor bool, selected map[string]struct{}, width int) string {
	checkbox := "[ ]"
	if file.Include == models.Included {
		checkbox = "[x]"
	}

	marker := " "
	if _, ok := selected[file.ID]; ok {
		marker = "▎"
	}

	icon := ""
	if m.config.ShowIcons {
		icon = iconWithSpace(deviconForName(file.Path, false))
	}

	indicator := file.Status.Indicator()
	path := utils.TruncateMiddle(file.Path, width-len(checkbox)-len(indicator)-6)

	line := fmt.Sprintf("%s%s %s %s%s", marker, checkbox, indicator, icon, path)

	if isCursor {
		return lipgloss.NewStyle().
			Width(width).
			Background(m.theme.Accent).
			Foreground(m.theme.AccentFg).
			Bold(true).
			Render(ansi.Strip(line))
	}

	style := lipgloss.NewStyle().Width(width).Foreground(m.theme.TextFg)
	if file.Include != models.Included {
		style = style.Foreground(m.theme.MutedFg)
	}
	switch file.Status {
	case models.StatusConflicted:
		style = style.Foreground(m.theme.ErrorFg)
	case models.StatusNew, models.StatusUntracked:
		if file.Include == models.Included {
			style = style.Foreground(m.theme.SuccessFg)
		}
	case models.StatusDeleted:
		style = style.Foreground(m.theme.WarnFg)
	}
	return style.Render(line)
}

func (m *Model) renderDetails() string {
	width := m.detailsWidth()
	height := m.bodyHeight()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderDim).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 1)

	file, ok := m.cursorFile()
	if !ok {
		return borderStyle.Render(lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Italic(true).
			Render("No file selected"))
	}

	labelStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)

	wrapWidth := width - 6
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	lines := []string{
		labelStyle.Render("Path"),
		valueStyle.Render(wordwrap.String(file.Path, wrapWidth)),
	}
	if file.OldPath != "" {
		lines = append(lines,
			labelStyle.Render("Renamed from"),
			valueStyle.Render(wordwrap.String(file.OldPath, wrapWidth)),
		)
	}
	lines = append(lines,
		"",
		labelStyle.Render("Status"),
		valueStyle.Render(file.Status.String()),
		"",
		labelStyle.Render("Included"),
	)
	if file.Include == models.Included {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Render("yes"))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.WarnFg).Render("no"))
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	hintStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg).Padding(0, 1)

	hints := "space:include  a:all  v:select  m:menu  c:commit  R:refresh  ?:help  q:quit"
	footer := lipgloss.JoinVertical(lipgloss.Left,
		statusStyle.Render(ansi.Truncate(m.statusLine(), m.windowWidth-2, "…")),
		hintStyle.Padding(0, 1).Render(ansi.Truncate(hints, m.windowWidth-2, "…")),
	)
	return footer
}

// overlayView overlays a popup on top of the base view, preserving the
// portions of the base that fall outside the popup bounds.
func (m *Model) overlayView(popup string) string {
	base := m.mainView()
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	if len(baseLines) == 0 {
		return popup
	}

	const marginTop = 2

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])

	leftPad := (baseWidth - popupWidth) / 2
	if leftPad < 0 {
		leftPad = 0
	}

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}

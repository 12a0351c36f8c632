package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"go.klb.dev/stepclip/internal/session"
)

// sideBySideMin is the terminal width below which the panels stack.
const sideBySideMin = 80

// View implements tea.Model.
func (m Model) View() string {
	left := m.renderInputPanel()
	right := m.renderCopyPanel()

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) renderInputPanel() string {
	count := session.ProcessedCount(m.input.Value())
	header := m.panelHeader("Input", fmt.Sprintf("%d units after processing", count))

	style := panelStyle
	if m.focus == focusInput {
		style = focusedPanelStyle
	}
	return style.Width(m.panelWidth()).Render(header + "\n" + m.input.View())
}

func (m Model) renderCopyPanel() string {
	snap := m.ctrl.Snapshot()

	style := panelStyle
	if m.focus == focusCopy {
		style = focusedPanelStyle
	}
	style = style.Width(m.panelWidth())

	if snap.State != session.Active {
		header := m.panelHeader("Copy", "")
		waiting := dimStyle.Render("Enter text on the left and press ctrl+s to start copying.")
		return style.Render(header + "\n\n" + waiting)
	}

	total := len(snap.Units)
	header := m.panelHeader("Copy", fmt.Sprintf("%d/%d units", snap.Cursor, total))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if total > 0 {
		b.WriteString(m.renderUnits(snap))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(float64(snap.Cursor) / float64(total)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderCopyButton(snap))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	return style.Render(b.String())
}

// renderUnits draws the window of units that keeps the cursor centred.
func (m Model) renderUnits(snap session.Snapshot) string {
	rows := m.unitRows()
	first, last := unitWindow(snap.Cursor, len(snap.Units), rows)
	textWidth := max(m.panelWidth()-10, 8)

	out := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		text := ansi.Truncate(snap.Units[i], textWidth, "…")
		line := fmt.Sprintf("%3d  %s", i+1, text)
		switch snap.Status(i) {
		case session.Completed:
			line = completedStyle.Render(line)
		case session.Current:
			line = currentStyle.Render(line)
		default:
			line = pendingStyle.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m Model) renderCopyButton(snap session.Snapshot) string {
	label := copyLabel(snap, m.copying)
	if snap.Complete() || m.copying {
		return disabledButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) renderFooter() string {
	line := m.help.View(m.keys)
	if m.opts.Backend != "" {
		line += dimStyle.Render("  • clipboard: " + m.opts.Backend)
	}
	return line
}

func (m Model) panelHeader(title, info string) string {
	if info == "" {
		return titleStyle.Render(title)
	}
	return titleStyle.Render(title) + "  " + infoStyle.Render(info)
}

// copyLabel is the text of the copy control: the 1-based position of the
// next unit, or Done once every unit is copied.
func copyLabel(snap session.Snapshot, copying bool) string {
	switch {
	case snap.Complete():
		return "✓ Done"
	case copying:
		return fmt.Sprintf("Copying %d/%d…", snap.Cursor+1, len(snap.Units))
	default:
		return fmt.Sprintf("Copy (%d/%d)", snap.Cursor+1, len(snap.Units))
	}
}

// unitWindow returns the half-open range of unit indexes to draw so that
// cursor sits in the middle of a window of at most rows entries.
func unitWindow(cursor, total, rows int) (first, last int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	first = cursor - rows/2
	first = max(first, 0)
	first = min(first, total-rows)
	return first, first + rows
}

func (m Model) wide() bool { return m.width >= sideBySideMin }

func (m Model) panelWidth() int {
	if m.wide() {
		return m.width/2 - 2
	}
	return m.width - 2
}

// bodyHeight is the height available to one panel's content.
func (m Model) bodyHeight() int {
	h := m.height - 4 // borders + footer
	if !m.wide() {
		h /= 2
	}
	return max(h, 5)
}

// unitRows is how many units fit between the copy header and the button.
func (m Model) unitRows() int {
	return max(m.bodyHeight()-6, 3)
}

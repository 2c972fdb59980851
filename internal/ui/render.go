package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/tailpane/internal/rangemodel"
)

// renderHeader renders the title bar with the auto-tail badge.
func (m Model) renderHeader() string {
	styles := m.styles()
	bg := lipgloss.Color(m.theme.Surface)

	badge := styles.WarningText.Background(bg).Render("○ PAUSED")
	if m.pane.Tracking() {
		badge = styles.SuccessText.Background(bg).Render("● TAIL")
	}
	if m.dragging {
		badge += styles.MutedText.Background(bg).Render(" · dragging")
	}
	title := styles.AccentText.Background(bg).Bold(true).Render("tailpane")
	sep := styles.MutedText.Background(bg).Render("  ")

	return styles.Header.Width(m.width).MaxHeight(1).Render(title + sep + badge)
}

// renderBody renders the visible rows and the scrollbar column.
func (m Model) renderBody() string {
	rows := m.bodyRows()
	if rows == 0 {
		return ""
	}
	styles := m.styles()
	width := m.bodyWidth()

	visible := m.pane.Visible()
	top, size := thumb(m.pane.Range().Snapshot(), rows)

	thumbStyle := styles.Thumb
	if m.dragging {
		thumbStyle = styles.ThumbActive
	}

	lines := make([]string, rows)
	level := ""
	for i := range lines {
		text := ""
		if i < len(visible) {
			text = visible[i]
			if l := rowLevel(text); l != "" {
				level = l
			}
		}
		text = truncate.String(text, uint(width))
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		bar := styles.Track.Render(" ")
		if i >= top && i < top+size {
			bar = thumbStyle.Render(" ")
		}
		lines[i] = styles.LevelStyle(level).Render(text) + bar
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders pane counters, truncated to the terminal width.
func (m Model) renderStatus() string {
	st := m.pane.Stats()
	policy := m.pane.Keeper().Policy()

	parts := []string{
		fmt.Sprintf("rows %d", st.Rows),
		fmt.Sprintf("height %d/%d", st.Height, policy.HeightLimit),
		fmt.Sprintf("trims %d", st.Trims),
		fmt.Sprintf("dropped %s", humanCount(st.RemovedRunes)),
		fmt.Sprintf("msgs %s", humanCount(st.Bridge.Published)),
	}
	if m.pacer != nil {
		parts = append(parts, "every "+m.pacer.Interval().String())
	}
	if m.heap > 0 {
		parts = append(parts, "heap "+humanBytes(m.heap))
	}
	if m.store != nil {
		if snap := m.store.Snapshot(); snap.IsStalled() && snap.LastError != nil {
			parts = append(parts, "source: "+snap.LastError.Error())
		}
	}
	if m.flash != "" {
		parts = append(parts, m.flash)
	}

	line := strings.Join(parts, " · ")
	line = truncate.StringWithTail(line, uint(max(m.width-2, 0)), "…")
	return m.styles().Footer.Width(m.width).MaxHeight(1).Render(line)
}

// renderHelp renders the full key list in place of the pane body.
func (m Model) renderHelp() string {
	rows := m.bodyRows()
	styles := m.styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %s  %s\n",
				styles.AccentText.Render(fmt.Sprintf("%-8s", h.Key)),
				styles.MutedText.Render(h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("  drag the scrollbar to the bottom to resume auto-tail"))
	return lipgloss.NewStyle().Width(m.width).Height(rows).MaxHeight(rows).Render(b.String())
}

// thumb returns the first track cell and the number of cells covered by the
// scrollbar knob.
func thumb(r rangemodel.Range, track int) (top, size int) {
	if track <= 0 {
		return 0, 0
	}
	span := r.Maximum - r.Minimum
	if span <= 0 || r.Extent >= span {
		return 0, track
	}
	size = min(max(r.Extent*track/span, 1), track)
	free := span - r.Extent
	top = (r.Value - r.Minimum) * (track - size) / free
	return min(max(top, 0), track-size), size
}

// valueAt maps a track cell to a range value. The first cell is the minimum
// and the last cell is the end of the range.
func valueAt(r rangemodel.Range, track, cell int) int {
	free := r.Maximum - r.Minimum - r.Extent
	if track <= 1 || free <= 0 {
		return r.Minimum
	}
	cell = min(max(cell, 0), track-1)
	return r.Minimum + cell*free/(track-1)
}

// rowLevel extracts the logrus level from a text-formatted row, if any.
func rowLevel(row string) string {
	i := strings.Index(row, "level=")
	if i < 0 {
		return ""
	}
	rest := row[i+len("level="):]
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

func humanCount(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

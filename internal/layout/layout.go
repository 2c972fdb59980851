// Package layout wraps buffer text into terminal rows and answers the
// point-to-offset queries a pane's keeper needs.
package layout

import (
	"github.com/mattn/go-runewidth"
)

// Row is a rendered row covering runes [Start, End) of the text. A row that
// ends a line includes its trailing newline.
type Row struct {
	Start int
	End   int
}

// Layout character-wraps text at a cell width. Heights are in host units:
// every row is RowHeight tall and row 0 starts TopInset below the top.
type Layout struct {
	RowHeight int
	TopInset  int

	width int
	text  []rune
	rows  []Row
}

// New returns an empty layout. rowHeight below 1 is treated as 1.
func New(rowHeight, topInset int) *Layout {
	if rowHeight < 1 {
		rowHeight = 1
	}
	if topInset < 0 {
		topInset = 0
	}
	return &Layout{RowHeight: rowHeight, TopInset: topInset}
}

// Width returns the wrap width in cells.
func (l *Layout) Width() int { return l.width }

// Rows returns the number of rendered rows.
func (l *Layout) Rows() int { return len(l.rows) }

// Height returns the rendered height in host units.
func (l *Layout) Height() int {
	return len(l.rows)*l.RowHeight + l.TopInset
}

// Reflow lays out text from scratch. text is retained until the next call and
// must not be modified by the caller in between.
func (l *Layout) Reflow(text []rune, width int) {
	l.text = text
	l.width = width
	l.rows = l.rows[:0]
	if width <= 0 {
		return
	}
	l.rows = wrap(l.rows, text, 0, width)
}

// Appended updates the layout after text grew at the end. Only the last,
// possibly unterminated, row is re-wrapped.
func (l *Layout) Appended(text []rune) {
	l.text = text
	if l.width <= 0 {
		return
	}
	from := 0
	if n := len(l.rows); n > 0 {
		last := l.rows[n-1]
		if last.End > 0 && last.End <= len(text) && text[last.End-1] == '\n' {
			from = last.End
		} else {
			from = last.Start
			l.rows = l.rows[:n-1]
		}
	}
	l.rows = wrap(l.rows, text, from, l.width)
}

// RemovedPrefix updates the layout after n runes were removed from the front.
// When n lands on a row boundary the remaining rows are shifted; otherwise
// everything is re-wrapped.
func (l *Layout) RemovedPrefix(text []rune, n int) {
	l.text = text
	if l.width <= 0 {
		return
	}
	drop := -1
	for i, row := range l.rows {
		if row.Start == n {
			drop = i
			break
		}
		if row.Start > n {
			break
		}
	}
	if drop < 0 {
		if n > 0 && len(text) == 0 {
			l.rows = l.rows[:0]
			return
		}
		l.Reflow(text, l.width)
		return
	}
	kept := copy(l.rows, l.rows[drop:])
	l.rows = l.rows[:kept]
	for i := range l.rows {
		l.rows[i].Start -= n
		l.rows[i].End -= n
	}
}

// RowAt returns the row index covering height y, clamped to existing rows.
func (l *Layout) RowAt(y int) (int, bool) {
	if len(l.rows) == 0 {
		return 0, false
	}
	idx := floorDiv(y-l.TopInset, l.RowHeight)
	return min(max(idx, 0), len(l.rows)-1), true
}

// RowAlignedOffsetFor returns the offset of the last rune of the row at
// height y. Points right of a row's text snap to its last rune; x is only
// checked for being inside the wrap width. ok is false before the first
// layout or while the text is empty.
func (l *Layout) RowAlignedOffsetFor(x, y int) (int, bool) {
	if l.width <= 0 || x < 0 {
		return -1, false
	}
	idx, ok := l.RowAt(y)
	if !ok {
		return -1, false
	}
	return l.rows[idx].End - 1, true
}

// Row returns row i.
func (l *Layout) Row(i int) Row {
	return l.rows[i]
}

// RowText returns the printable text of row i: no newline, tabs as spaces,
// other control characters dropped.
func (l *Layout) RowText(i int) string {
	if i < 0 || i >= len(l.rows) {
		return ""
	}
	row := l.rows[i]
	out := make([]rune, 0, row.End-row.Start)
	for _, r := range l.text[row.Start:row.End] {
		switch {
		case r == '\t':
			out = append(out, ' ')
		case r < 0x20 || r == 0x7f:
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func wrap(rows []Row, text []rune, from, width int) []Row {
	start, col := from, 0
	for i := from; i < len(text); i++ {
		r := text[i]
		if r == '\n' {
			rows = append(rows, Row{Start: start, End: i + 1})
			start, col = i+1, 0
			continue
		}
		w := cellWidth(r)
		if col > 0 && col+w > width {
			rows = append(rows, Row{Start: start, End: i})
			start, col = i, 0
		}
		col += w
	}
	if start < len(text) {
		rows = append(rows, Row{Start: start, End: len(text)})
	}
	return rows
}

func cellWidth(r rune) int {
	switch {
	case r == '\t':
		return 1
	case r < 0x20 || r == 0x7f:
		return 0
	}
	return runewidth.RuneWidth(r)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

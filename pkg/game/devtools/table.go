package devtools

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table lines up rows of cells by display width, so translated headers and
// room names with wide runes keep their columns
type table struct {
	rows [][]string
}

func newTable(header ...string) *table {
	return &table{rows: [][]string{header}}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) addf(format string, a ...any) {
	t.add(strings.Split(fmt.Sprintf(format, a...), "\t")...)
}

// write prints the table with two spaces between columns. Lines wider than
// maxWidth are cut short; 0 means no limit.
func (t *table) write(w io.Writer, indent string, maxWidth int) {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range t.rows {
		var b strings.Builder
		b.WriteString(indent)
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		line := b.String()
		if maxWidth > 0 {
			line = runewidth.Truncate(line, maxWidth, "…")
		}
		fmt.Fprintln(w, line)
	}
}

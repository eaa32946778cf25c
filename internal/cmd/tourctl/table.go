package tourctl

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 40

// table writes left-aligned columns sized by terminal display width, so emoji
// and wide runes line up.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) append(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.header))
	measure := func(row []string) {
		for idx, cell := range row {
			if idx >= len(widths) {
				break
			}
			widths[idx] = max(widths[idx], min(runewidth.StringWidth(cell), maxCellWidth))
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for idx := range widths {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			cell = runewidth.Truncate(cell, maxCellWidth, "…")
			if idx == len(widths)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[idx]))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}
	writeRow(t.header)
	for _, row := range t.rows {
		writeRow(row)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

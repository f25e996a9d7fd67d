package renderer

import "github.com/mattn/go-runewidth"

// cellWidth returns the number of cells r occupies at display column col.
func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	return runewidth.RuneWidth(r)
}

// DisplayColumn returns the display column of rune index idx in line.
func DisplayColumn(line []rune, idx, tabWidth int) int {
	idx = min(idx, len(line))
	col := 0
	for _, r := range line[:idx] {
		col += cellWidth(r, col, tabWidth)
	}
	return col
}

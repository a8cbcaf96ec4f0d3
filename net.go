package cuboid

import "strings"

// NetRows returns the puzzle layout filled with the colors of s. Blank
// cells are 0.
func (p Puzzle) NetRows(s State) [][]Color {
	rows := make([][]Color, len(p.Layout))
	for r, layoutRow := range p.Layout {
		rows[r] = make([]Color, len(layoutRow))
		for c, idx := range layoutRow {
			if idx >= 0 && idx < len(s) {
				rows[r][c] = s[idx]
			}
		}
	}
	return rows
}

// Net returns a text representation of s laid out as the unfolded puzzle.
//
//	      o o o
//	      o o o
//	      b b b
//	...
func (p Puzzle) Net(s State) string {
	var b strings.Builder
	for _, row := range p.NetRows(s) {
		line := make([]string, len(row))
		for i, c := range row {
			if c == 0 {
				line[i] = " "
			} else {
				line[i] = c.String()
			}
		}
		b.WriteString(strings.TrimRight(strings.Join(line, " "), " "))
		b.WriteString("\n")
	}
	return b.String()
}

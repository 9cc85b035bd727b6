package buffer

// expandTabs projects a line into its on-screen form. A tab advances the
// output to the next multiple of tabWidth; every other byte maps to one
// cell.
func expandTabs(line []byte, tabWidth int) []byte {
	if tabWidth < 1 {
		tabWidth = 1
	}
	out := make([]byte, 0, len(line))
	for _, c := range line {
		if c == '\t' {
			out = append(out, ' ')
			for len(out)%tabWidth != 0 {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// renderCol replays tab expansion over line[:x] to find the render column
// of the byte at offset x. Never cached: the prefix may have changed since
// the last call.
func renderCol(line []byte, x, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if x < 0 {
		x = 0
	}
	if x > len(line) {
		x = len(line)
	}
	col := 0
	for i := 0; i < x; i++ {
		if line[i] == '\t' {
			col += tabWidth - (col % tabWidth)
			continue
		}
		col++
	}
	return col
}

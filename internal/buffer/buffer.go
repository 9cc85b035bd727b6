package buffer

import (
	"bytes"
	"os"
	"strings"
)

// Buffer holds the lines of one open file together with their rendered
// projections. Line identity is positional; y == LineCount() addresses the
// virtual line past the end that is materialized on the first insert.
type Buffer struct {
	lines    [][]byte
	renders  [][]byte
	path     string
	tabWidth int
	dirty    bool
}

func New(tabWidth int) *Buffer {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return &Buffer{tabWidth: tabWidth}
}

// Load reads path into the buffer. A missing file leaves the buffer empty
// but bound to the path, so the first save creates it.
func (b *Buffer) Load(path string) error {
	b.path = path
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	b.lines = splitLines(data)
	b.renders = make([][]byte, len(b.lines))
	for i := range b.lines {
		b.renders[i] = expandTabs(b.lines[i], b.tabWidth)
	}
	b.dirty = false
	return nil
}

// Save writes the serialized buffer back to the bound path and reports how
// many bytes went out. Without a path it writes nothing.
func (b *Buffer) Save() (int, error) {
	if b.path == "" {
		return 0, nil
	}
	data := []byte(b.Text())
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return 0, err
	}
	b.dirty = false
	return len(data), nil
}

// Text serializes the buffer: every line followed by a single newline.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, line := range b.lines {
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InsertChar inserts c before byte offset x on line y and returns the new
// cursor position. On the virtual line a new empty line is appended first.
func (b *Buffer) InsertChar(y, x int, c byte) (int, int) {
	if y < 0 {
		y = 0
	}
	if y > len(b.lines) {
		y = len(b.lines)
	}
	if y == len(b.lines) {
		b.lines = append(b.lines, []byte{})
		b.renders = append(b.renders, []byte{})
	}
	line := b.lines[y]
	if x < 0 {
		x = 0
	}
	if x > len(line) {
		x = len(line)
	}
	line = append(line, 0)
	copy(line[x+1:], line[x:])
	line[x] = c
	b.lines[y] = line
	b.renders[y] = expandTabs(line, b.tabWidth)
	b.dirty = true
	return y, x + 1
}

// InsertNewline splits line y at offset x and returns the cursor position
// at the start of the new second half. Splitting the virtual line appends
// one empty line.
func (b *Buffer) InsertNewline(y, x int) (int, int) {
	if y < 0 {
		y = 0
	}
	if y > len(b.lines) {
		y = len(b.lines)
	}
	if y == len(b.lines) {
		b.lines = append(b.lines, []byte{})
		b.renders = append(b.renders, []byte{})
		b.dirty = true
		return y + 1, 0
	}
	line := b.lines[y]
	if x < 0 {
		x = 0
	}
	if x > len(line) {
		x = len(line)
	}
	left := append([]byte(nil), line[:x]...)
	right := append([]byte(nil), line[x:]...)

	lines := make([][]byte, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:y]...)
	lines = append(lines, left, right)
	lines = append(lines, b.lines[y+1:]...)
	b.lines = lines

	renders := make([][]byte, 0, len(b.renders)+1)
	renders = append(renders, b.renders[:y]...)
	renders = append(renders, expandTabs(left, b.tabWidth), expandTabs(right, b.tabWidth))
	renders = append(renders, b.renders[y+1:]...)
	b.renders = renders

	b.dirty = true
	return y + 1, 0
}

// DeleteChar removes the byte before offset x on line y and returns the new
// cursor position. At the start of a line it joins the line onto the one
// above. At the origin or on the virtual line it does nothing.
func (b *Buffer) DeleteChar(y, x int) (int, int) {
	if y < 0 {
		y = 0
	}
	if y >= len(b.lines) {
		return len(b.lines), 0
	}
	line := b.lines[y]
	if x < 0 {
		x = 0
	}
	if x > len(line) {
		x = len(line)
	}
	if x > 0 {
		b.lines[y] = append(line[:x-1], line[x:]...)
		b.renders[y] = expandTabs(b.lines[y], b.tabWidth)
		b.dirty = true
		return y, x - 1
	}
	if y == 0 {
		return 0, 0
	}
	prevLen := len(b.lines[y-1])
	b.lines[y-1] = append(b.lines[y-1], line...)
	b.lines = append(b.lines[:y], b.lines[y+1:]...)
	b.renders = append(b.renders[:y], b.renders[y+1:]...)
	b.renders[y-1] = expandTabs(b.lines[y-1], b.tabWidth)
	b.dirty = true
	return y - 1, prevLen
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func (b *Buffer) LineLen(y int) int {
	if y < 0 || y >= len(b.lines) {
		return 0
	}
	return len(b.lines[y])
}

func (b *Buffer) Line(y int) []byte {
	if y < 0 || y >= len(b.lines) {
		return nil
	}
	return b.lines[y]
}

// Render returns the tab-expanded projection of line y, kept in sync with
// the line across edits.
func (b *Buffer) Render(y int) []byte {
	if y < 0 || y >= len(b.renders) {
		return nil
	}
	return b.renders[y]
}

// RenderCol translates byte offset x on line y into its render column.
func (b *Buffer) RenderCol(y, x int) int {
	if y < 0 || y >= len(b.lines) {
		return 0
	}
	return renderCol(b.lines[y], x, b.tabWidth)
}

func (b *Buffer) Dirty() bool {
	return b.dirty
}

func (b *Buffer) Path() string {
	return b.path
}

func splitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	parts := bytes.Split(data, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = append([]byte(nil), bytes.TrimSuffix(p, []byte("\r"))...)
	}
	return lines
}

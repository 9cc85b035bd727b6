package editor

import (
	"fmt"
	"strings"
	"time"
)

// Frame composes the next screen as one string so the caller can flush it
// with a single write. The cursor is hidden for the duration of the paint
// and repositioned at the end.
func (e *Editor) Frame() string {
	e.Scroll()

	var b strings.Builder
	b.WriteString("\x1b[?25l")
	b.WriteString("\x1b[H")
	e.drawRows(&b)
	e.drawStatusBar(&b)
	e.drawMessageBar(&b)
	fmt.Fprintf(&b, "\x1b[%d;%dH", e.cursorY-e.rowOffset+1, e.renderX-e.colOffset+1)
	b.WriteString("\x1b[?25h")
	return b.String()
}

func (e *Editor) drawRows(b *strings.Builder) {
	for y := 0; y < e.screenRows; y++ {
		fileRow := y + e.rowOffset
		if fileRow >= e.buf.LineCount() {
			if e.buf.LineCount() == 0 && y == e.screenRows/3 {
				e.drawWelcome(b)
			} else {
				b.WriteByte('~')
			}
		} else {
			row := e.buf.Render(fileRow)
			if e.colOffset < len(row) {
				row = row[e.colOffset:]
			} else {
				row = nil
			}
			if len(row) > e.screenCols {
				row = row[:e.screenCols]
			}
			b.Write(row)
		}
		b.WriteString("\x1b[K")
		b.WriteString("\r\n")
	}
}

func (e *Editor) drawWelcome(b *strings.Builder) {
	welcome := "ked editor -- version " + Version
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		b.WriteByte(' ')
	}
	b.WriteString(welcome)
}

// drawStatusBar paints the inverted bar: name and line count on the left,
// cursor line on the right, padded to exactly the screen width.
func (e *Editor) drawStatusBar(b *strings.Builder) {
	b.WriteString("\x1b[7m")
	name := e.buf.Path()
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.buf.Dirty() {
		modified = " (modified)"
	}
	status := fmt.Sprintf("%.20s - %d lines%s", name, e.buf.LineCount(), modified)
	rstatus := fmt.Sprintf("%d/%d", e.cursorY+1, e.buf.LineCount())
	if len(status) > e.screenCols {
		status = status[:e.screenCols]
	}
	b.WriteString(status)
	for n := len(status); n < e.screenCols; n++ {
		if e.screenCols-n == len(rstatus) {
			b.WriteString(rstatus)
			break
		}
		b.WriteByte(' ')
	}
	b.WriteString("\x1b[m")
	b.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(b *strings.Builder) {
	b.WriteString("\x1b[K")
	msg := e.statusMsg
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	if msg != "" && time.Since(e.statusTime) < 5*time.Second {
		b.WriteString(msg)
	}
}

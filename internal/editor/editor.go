package editor

import (
	"fmt"
	"time"

	"ked/internal/buffer"
	"ked/internal/logger"
	"ked/internal/terminal"
)

const Version = "0.1.0"

// Editor owns the document, cursor, and viewport for one session. All
// state lives on the loop goroutine; nothing here is shared.
type Editor struct {
	buf        *buffer.Buffer
	cursorX    int
	cursorY    int
	renderX    int
	rowOffset  int
	colOffset  int
	screenRows int
	screenCols int
	statusMsg  string
	statusTime time.Time
}

// New sizes the session for a terminal of rows by cols cells. The two
// bottom rows are reserved for the status and message bars.
func New(buf *buffer.Buffer, rows, cols int) *Editor {
	screenRows := rows - 2
	if screenRows < 0 {
		screenRows = 0
	}
	return &Editor{
		buf:        buf,
		screenRows: screenRows,
		screenCols: cols,
	}
}

// SetStatusMessage shows a transient message in the bottom bar. It expires
// five seconds after being set.
func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// HandleKey dispatches one logical key and reports whether the session
// should end.
func (e *Editor) HandleKey(key terminal.Key) bool {
	if key != terminal.KeyNone {
		logger.Debug("key", "code", int(key))
	}
	switch key {
	case terminal.KeyNone:

	case terminal.KeyCtrlQ:
		return true

	case terminal.KeyCtrlS:
		e.save()

	case terminal.KeyEnter:
		e.cursorY, e.cursorX = e.buf.InsertNewline(e.cursorY, e.cursorX)

	case terminal.KeyBackspace, terminal.KeyCtrlH:
		e.cursorY, e.cursorX = e.buf.DeleteChar(e.cursorY, e.cursorX)

	case terminal.KeyDelete:
		e.move(terminal.KeyArrowRight)
		e.cursorY, e.cursorX = e.buf.DeleteChar(e.cursorY, e.cursorX)

	case terminal.KeyHome:
		e.cursorX = 0

	case terminal.KeyEnd:
		if e.cursorY < e.buf.LineCount() {
			e.cursorX = e.buf.LineLen(e.cursorY)
		}

	case terminal.KeyPageUp, terminal.KeyPageDown:
		e.page(key)

	case terminal.KeyArrowUp, terminal.KeyArrowDown, terminal.KeyArrowLeft, terminal.KeyArrowRight:
		e.move(key)

	case terminal.KeyEscape, terminal.KeyCtrlL:

	default:
		if b, ok := insertable(key); ok {
			e.cursorY, e.cursorX = e.buf.InsertChar(e.cursorY, e.cursorX, b)
		}
	}
	return false
}

// insertable reports whether a literal key event should go into the
// buffer. Tab does; unhandled control bytes do not.
func insertable(key terminal.Key) (byte, bool) {
	if key == '\t' {
		return '\t', true
	}
	if key >= 0x20 && key != 127 && key <= 0xff {
		return byte(key), true
	}
	return 0, false
}

func (e *Editor) save() {
	if e.buf.Path() == "" {
		logger.Warn("save requested without a path")
		return
	}
	n, err := e.buf.Save()
	if err != nil {
		logger.Error("save failed", "path", e.buf.Path(), "error", err)
		e.SetStatusMessage("can't save: %v", err)
		return
	}
	logger.Info("saved", "path", e.buf.Path(), "bytes", n)
	e.SetStatusMessage("%d bytes written to disk", n)
}

func (e *Editor) move(key terminal.Key) {
	switch key {
	case terminal.KeyArrowLeft:
		if e.cursorX > 0 {
			e.cursorX--
		} else if e.cursorY > 0 {
			e.cursorY--
			e.cursorX = e.buf.LineLen(e.cursorY)
		}
	case terminal.KeyArrowRight:
		if e.cursorX < e.buf.LineLen(e.cursorY) {
			e.cursorX++
		} else if e.cursorY < e.buf.LineCount() {
			e.cursorY++
			e.cursorX = 0
		}
	case terminal.KeyArrowUp:
		if e.cursorY > 0 {
			e.cursorY--
		}
	case terminal.KeyArrowDown:
		if e.cursorY < e.buf.LineCount() {
			e.cursorY++
		}
	}
	e.snapCursorX()
}

// page moves the cursor to the viewport edge, then walks a full screen of
// single steps so the motion inherits their clamping.
func (e *Editor) page(key terminal.Key) {
	if key == terminal.KeyPageUp {
		e.cursorY = e.rowOffset
	} else {
		e.cursorY = e.rowOffset + e.screenRows - 1
		if e.cursorY > e.buf.LineCount() {
			e.cursorY = e.buf.LineCount()
		}
		if e.cursorY < 0 {
			e.cursorY = 0
		}
	}
	arrow := terminal.KeyArrowUp
	if key == terminal.KeyPageDown {
		arrow = terminal.KeyArrowDown
	}
	for i := 0; i < e.screenRows; i++ {
		e.move(arrow)
	}
	e.snapCursorX()
}

// snapCursorX keeps the cursor from pointing past the end of its line
// after a vertical move.
func (e *Editor) snapCursorX() {
	if n := e.buf.LineLen(e.cursorY); e.cursorX > n {
		e.cursorX = n
	}
}

// Scroll reconciles the viewport with the cursor before a paint, moving
// each offset the minimum amount that keeps the cursor visible. Offsets
// never pass the cursor, so the painted coordinates stay 1-based even on
// a viewport with no usable rows or columns.
func (e *Editor) Scroll() {
	e.renderX = e.buf.RenderCol(e.cursorY, e.cursorX)
	if e.cursorY < e.rowOffset {
		e.rowOffset = e.cursorY
	}
	if e.screenRows > 0 && e.cursorY >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cursorY - e.screenRows + 1
	}
	if e.renderX < e.colOffset {
		e.colOffset = e.renderX
	}
	if e.screenCols > 0 && e.renderX >= e.colOffset+e.screenCols {
		e.colOffset = e.renderX - e.screenCols + 1
	}
}

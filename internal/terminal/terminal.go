package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Raw is the saved terminal state held while the editor owns the tty.
type Raw struct {
	fd    int
	state *term.State
}

// MakeRaw switches fd into raw mode with a bounded read: VMIN=0 VTIME=1
// makes every read return within about 100ms carrying at most one byte,
// which is what lets the key decoder tell a lone Escape press from the
// first byte of a sequence.
func MakeRaw(fd int) (*Raw, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("get termios: %w", err)
	}
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &Raw{fd: fd, state: state}, nil
}

// Restore puts the terminal back into the state captured by MakeRaw.
func (r *Raw) Restore() error {
	return term.Restore(r.fd, r.state)
}

// Size reports the terminal dimensions. When the ioctl path fails it falls
// back to parking the cursor in the bottom-right corner and asking the
// terminal where that landed. The fallback only works in raw mode.
func Size(in, out *os.File) (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(out.Fd()))
	if err == nil && rows > 0 && cols > 0 {
		return rows, cols, nil
	}
	return sizeFromCursor(in, out)
}

func sizeFromCursor(in, out *os.File) (int, int, error) {
	if _, err := out.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, err
	}
	if _, err := out.WriteString("\x1b[6n"); err != nil {
		return 0, 0, err
	}
	var reply [32]byte
	n := 0
	for n < len(reply)-1 {
		nr, err := in.Read(reply[n : n+1])
		if err != nil || nr != 1 {
			break
		}
		if reply[n] == 'R' {
			n++
			break
		}
		n++
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(reply[:n]), "\x1b[%d;%dR", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("parse cursor report %q: %w", reply[:n], err)
	}
	return rows, cols, nil
}

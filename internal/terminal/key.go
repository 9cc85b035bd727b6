package terminal

import "golang.org/x/sys/unix"

// Key is a decoded logical key. Values up to 0xff are the literal byte
// received; the named keys start above the byte range so they can never
// collide with input.
type Key int

// Ctrl maps a letter to the byte its control combination produces.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

const (
	KeyNone      Key = 0
	KeyEnter     Key = '\r'
	KeyEscape    Key = 0x1b
	KeyBackspace Key = 127

	KeyCtrlH = Key('h' & 0x1f)
	KeyCtrlL = Key('l' & 0x1f)
	KeyCtrlQ = Key('q' & 0x1f)
	KeyCtrlS = Key('s' & 0x1f)
)

const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

// ByteSource yields raw terminal bytes. ok is false when the bounded read
// expired with nothing to deliver.
type ByteSource interface {
	ReadByte() (b byte, ok bool, err error)
}

type fdSource struct {
	fd int
}

func (s fdSource) ReadByte() (byte, bool, error) {
	var buf [1]byte
	n, err := unix.Read(s.fd, buf[:])
	if err == unix.EAGAIN {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// Decoder turns the raw byte stream into logical keys.
type Decoder struct {
	src ByteSource
}

func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// Input decodes keys read from a terminal file descriptor in raw mode.
func Input(fd int) *Decoder {
	return NewDecoder(fdSource{fd: fd})
}

// ReadKey performs one bounded read, returning KeyNone when the stream is
// idle. Escape sequences that stall mid-way or do not parse collapse to a
// bare KeyEscape.
func (d *Decoder) ReadKey() (Key, error) {
	b, ok, err := d.src.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if !ok {
		return KeyNone, nil
	}
	if b != 0x1b {
		return Key(b), nil
	}
	return d.readEscape()
}

func (d *Decoder) readEscape() (Key, error) {
	b, ok, err := d.src.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if !ok {
		return KeyEscape, nil
	}
	switch b {
	case '[':
		return d.readCSI()
	case '0':
		// ESC 0 H and ESC 0 F, sent for Home and End by some terminals.
		c, ok, err := d.src.ReadByte()
		if err != nil {
			return KeyNone, err
		}
		if ok && c == 'H' {
			return KeyHome, nil
		}
		if ok && c == 'F' {
			return KeyEnd, nil
		}
		return KeyEscape, nil
	default:
		return KeyEscape, nil
	}
}

func (d *Decoder) readCSI() (Key, error) {
	b, ok, err := d.src.ReadByte()
	if err != nil {
		return KeyNone, err
	}
	if !ok {
		return KeyEscape, nil
	}
	if b >= '0' && b <= '9' {
		digits := []byte{b}
		for {
			c, ok, err := d.src.ReadByte()
			if err != nil {
				return KeyNone, err
			}
			if !ok {
				return KeyEscape, nil
			}
			if c >= '0' && c <= '9' {
				digits = append(digits, c)
				continue
			}
			if c != '~' || len(digits) != 1 {
				return KeyEscape, nil
			}
			switch digits[0] {
			case '1', '7':
				return KeyHome, nil
			case '3':
				return KeyDelete, nil
			case '4', '8':
				return KeyEnd, nil
			case '5':
				return KeyPageUp, nil
			case '6':
				return KeyPageDown, nil
			}
			return KeyEscape, nil
		}
	}
	switch b {
	case 'A':
		return KeyArrowUp, nil
	case 'B':
		return KeyArrowDown, nil
	case 'C':
		return KeyArrowRight, nil
	case 'D':
		return KeyArrowLeft, nil
	case 'H':
		return KeyHome, nil
	case 'F':
		return KeyEnd, nil
	}
	return KeyEscape, nil
}

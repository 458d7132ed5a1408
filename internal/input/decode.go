package input

import (
	"strconv"
	"strings"

	"github.com/tomz197/dodgefall/internal/loop"
)

const (
	esc   = 0x1b
	ctrlC = 0x03
)

// Decoder turns bytes into events. Terminals never report key releases, so
// the decoder infers the modifier from shifted keys: a shifted direction
// presses it, an unshifted direction releases it.
//
// The zero value is ready to use.
type Decoder struct {
	modifier bool
	pending  []byte // Unfinished escape sequence from the previous call
}

// Decode returns the events in buf. An escape sequence cut off at the end of
// buf is kept and completed by the next call.
func (d *Decoder) Decode(buf []byte) []Event {
	if len(d.pending) > 0 {
		buf = append(d.pending, buf...)
		d.pending = nil
	}

	var events []Event
	for i := 0; i < len(buf); {
		b := buf[i]
		if b == esc {
			n, complete := d.escape(buf[i:], &events)
			if !complete {
				d.pending = append([]byte(nil), buf[i:]...)
				break
			}
			i += n
			continue
		}
		d.single(b, &events)
		i++
	}
	return events
}

// Modifier reports whether the decoder currently considers the modifier held.
func (d *Decoder) Modifier() bool {
	return d.modifier
}

func (d *Decoder) single(b byte, events *[]Event) {
	switch b {
	case 'q', 'Q', ctrlC:
		*events = append(*events, Event{Kind: KindQuit})
	case 'm', 'M':
		*events = append(*events, Event{Kind: KindMute})
	case '+', '=':
		*events = append(*events, Event{Kind: KindVolumeUp})
	case '-', '_':
		*events = append(*events, Event{Kind: KindVolumeDown})
	case 'a', 'h':
		d.direction(loop.KeyLeft, false, events)
	case 'd', 'l':
		d.direction(loop.KeyRight, false, events)
	case 'A', 'H':
		d.direction(loop.KeyLeft, true, events)
	case 'D', 'L':
		d.direction(loop.KeyRight, true, events)
	default:
		*events = append(*events, down(loop.KeyOther))
	}
}

// direction emits a direction press. A shifted press always repeats the
// modifier down, since the press that starts a run is not applied to it.
func (d *Decoder) direction(k loop.Key, shifted bool, events *[]Event) {
	switch {
	case shifted:
		d.modifier = true
		*events = append(*events, down(loop.KeyModifier))
	case d.modifier:
		d.modifier = false
		*events = append(*events, up(loop.KeyModifier))
	}
	*events = append(*events, down(k))
}

// escape decodes a sequence starting with ESC. It returns the number of bytes
// consumed and false if buf ends before the sequence does.
func (d *Decoder) escape(buf []byte, events *[]Event) (int, bool) {
	if len(buf) == 1 {
		return 0, false
	}

	switch buf[1] {
	case '[':
		// CSI: ESC [ params final, final in 0x40-0x7e.
		for j := 2; j < len(buf); j++ {
			c := buf[j]
			if c >= 0x40 && c <= 0x7e {
				d.csi(string(buf[2:j]), c, events)
				return j + 1, true
			}
		}
		return 0, false
	case 'O':
		// SS3 cursor keys in application mode.
		if len(buf) < 3 {
			return 0, false
		}
		d.csi("", buf[2], events)
		return 3, true
	default:
		// Lone escape key followed by something else.
		*events = append(*events, down(loop.KeyOther))
		return 1, true
	}
}

func (d *Decoder) csi(params string, final byte, events *[]Event) {
	var k loop.Key
	switch final {
	case 'D':
		k = loop.KeyLeft
	case 'C':
		k = loop.KeyRight
	default:
		*events = append(*events, down(loop.KeyOther))
		return
	}
	d.direction(k, shiftParam(params), events)
}

// shiftParam reports whether an xterm modifier parameter ("1;2") includes Shift.
func shiftParam(params string) bool {
	_, mod, ok := strings.Cut(params, ";")
	if !ok {
		return false
	}
	m, err := strconv.Atoi(mod)
	if err != nil || m < 1 {
		return false
	}
	return (m-1)&1 == 1
}

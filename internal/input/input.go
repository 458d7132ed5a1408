// Package input turns raw terminal bytes into game and control events.
package input

import (
	"bufio"

	"github.com/tomz197/dodgefall/internal/loop"
)

// Kind classifies an Event.
type Kind int

const (
	KindKeyDown Kind = iota // Key carries the game key
	KindKeyUp               // Key carries the game key
	KindMute
	KindVolumeUp
	KindVolumeDown
	KindQuit
)

// Event is one decoded input event.
type Event struct {
	Kind Kind
	Key  loop.Key // Only for KindKeyDown and KindKeyUp
}

// IsGameKey reports whether e goes to the game state machine. Control events
// never start a run.
func (e Event) IsGameKey() bool {
	return e.Kind == KindKeyDown || e.Kind == KindKeyUp
}

func down(k loop.Key) Event { return Event{Kind: KindKeyDown, Key: k} }
func up(k loop.Key) Event   { return Event{Kind: KindKeyUp, Key: k} }

// Stream delivers input bytes via a channel and decodes them once per frame.
type Stream struct {
	ch      chan byte
	decoder Decoder
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r fails or reaches EOF.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them. A closed stream yields a quit event.
func ReadInput(s *Stream) []Event {
	if s.closed {
		return []Event{{Kind: KindQuit}}
	}

	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events := s.decoder.Decode(buf)
	if s.closed {
		events = append(events, Event{Kind: KindQuit})
	}
	return events
}

package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/dodgefall/internal/input"
	"github.com/tomz197/dodgefall/internal/loop"
)

var gameKeys = map[ebiten.Key]loop.Key{
	ebiten.KeyArrowLeft:  loop.KeyLeft,
	ebiten.KeyA:          loop.KeyLeft,
	ebiten.KeyH:          loop.KeyLeft,
	ebiten.KeyArrowRight: loop.KeyRight,
	ebiten.KeyD:          loop.KeyRight,
	ebiten.KeyL:          loop.KeyRight,
	ebiten.KeyShiftLeft:  loop.KeyModifier,
	ebiten.KeyShiftRight: loop.KeyModifier,
}

var controlKeys = map[ebiten.Key]input.Kind{
	ebiten.KeyM:              input.KindMute,
	ebiten.KeyEqual:          input.KindVolumeUp,
	ebiten.KeyNumpadAdd:      input.KindVolumeUp,
	ebiten.KeyMinus:          input.KindVolumeDown,
	ebiten.KeyNumpadSubtract: input.KindVolumeDown,
	ebiten.KeyQ:              input.KindQuit,
	ebiten.KeyEscape:         input.KindQuit,
}

// keyEvents translates the keys pressed and released this tick. Unmapped
// presses become KeyOther so any key starts a run; unmapped releases are dropped.
func keyEvents(pressed, released []ebiten.Key) []input.Event {
	var events []input.Event
	for _, k := range pressed {
		if kind, ok := controlKeys[k]; ok {
			events = append(events, input.Event{Kind: kind})
			continue
		}
		events = append(events, input.Event{Kind: input.KindKeyDown, Key: gameKeys[k]})
	}
	for _, k := range released {
		if gk, ok := gameKeys[k]; ok {
			events = append(events, input.Event{Kind: input.KindKeyUp, Key: gk})
		}
	}
	return events
}

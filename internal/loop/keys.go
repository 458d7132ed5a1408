package loop

// Key is a game key as seen by the state machine. Frontends translate their
// native key codes into these.
type Key int

const (
	KeyOther    Key = iota // Any key without a game meaning; still starts a run
	KeyLeft                // Left direction
	KeyRight               // Right direction
	KeyModifier            // Held for the larger movement step
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyModifier:
		return "modifier"
	default:
		return "other"
	}
}

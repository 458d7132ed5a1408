// Package highscore persists the best finished run as a single integer slot
// in a key-value store.
package highscore

import (
	"strconv"
	"strings"
	"sync"
)

// Key is the slot the high score lives under.
const Key = "highestScore"

// Board reads and raises the stored high score.
type Board struct {
	store KV
	key   string
	mu    sync.Mutex // serializes read-max-write in Save
}

// NewBoard returns a board over store using the default key.
func NewBoard(store KV) *Board {
	return &Board{store: store, key: Key}
}

// Get returns the stored high score, or 0 if it is missing, malformed,
// negative, or the store cannot be read.
func (b *Board) Get() int {
	raw, ok, err := b.store.Get(b.key)
	if err != nil || !ok {
		return 0
	}
	return Parse(raw)
}

// Save stores max(candidate, Get()). It never lowers the stored value.
func (b *Board) Save(candidate int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if candidate <= b.Get() {
		return nil
	}
	return b.store.Set(b.key, strconv.Itoa(candidate))
}

// Parse reads a leading base-10 integer the way a lenient browser parser
// would: surrounding whitespace is ignored, an optional sign is accepted and
// parsing stops at the first non-digit. Anything unreadable or negative is 0.
func Parse(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0 // overflow
	}
	return n
}

package highscore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"7", 7},
		{"  42 ", 42},
		{"+12", 12},
		{"15abc", 15},
		{"abc", 0},
		{"-3", 0},
		{"3.9", 3},
		{"NaN", 0},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBoardSaveIsMonotonic(t *testing.T) {
	b := NewBoard(NewMemoryStore())

	if got := b.Get(); got != 0 {
		t.Fatalf("empty board Get = %d, want 0", got)
	}

	steps := []struct {
		candidate int
		want      int
	}{
		{3, 3},
		{7, 7},
		{5, 7},
		{7, 7},
		{0, 7},
	}
	for _, s := range steps {
		if err := b.Save(s.candidate); err != nil {
			t.Fatalf("Save(%d): %v", s.candidate, err)
		}
		if got := b.Get(); got != s.want {
			t.Errorf("after Save(%d) Get = %d, want %d", s.candidate, got, s.want)
		}
	}
}

func TestBoardMalformedStoredValue(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set(Key, "garbage"); err != nil {
		t.Fatal(err)
	}
	b := NewBoard(store)

	if got := b.Get(); got != 0 {
		t.Errorf("Get = %d, want 0", got)
	}
	if err := b.Save(2); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := store.Get(Key); v != "2" {
		t.Errorf("stored %q, want \"2\"", v)
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStore) Set(string, string) error         { return errors.New("boom") }

func TestBoardStoreErrors(t *testing.T) {
	b := NewBoard(failingStore{})
	if got := b.Get(); got != 0 {
		t.Errorf("Get = %d, want 0", got)
	}
	if err := b.Save(1); err == nil {
		t.Error("expected Save to surface the store error")
	}
}

func TestBoardConcurrentSaves(t *testing.T) {
	b := NewBoard(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			b.Save(score)
		}(i)
	}
	wg.Wait()

	if got := b.Get(); got != 50 {
		t.Errorf("Get = %d, want 50", got)
	}
}

func TestEmptyKey(t *testing.T) {
	stores := map[string]KV{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "scores.json")),
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			if _, _, err := s.Get(""); !errors.Is(err, ErrEmptyKey) {
				t.Errorf("Get err = %v, want ErrEmptyKey", err)
			}
			if err := s.Set("", "1"); !errors.Is(err, ErrEmptyKey) {
				t.Errorf("Set err = %v, want ErrEmptyKey", err)
			}
		})
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	store := NewFileStore(path)

	if _, ok, err := store.Get(Key); err != nil || ok {
		t.Fatalf("Get on missing file = ok %v, err %v", ok, err)
	}

	b := NewBoard(store)
	if err := b.Save(7); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second store over the same path sees the value.
	reopened := NewBoard(NewFileStore(path))
	if got := reopened.Get(); got != 7 {
		t.Errorf("reopened Get = %d, want 7", got)
	}

	if err := store.Set("other", "x"); err != nil {
		t.Fatal(err)
	}
	if got := reopened.Get(); got != 7 {
		t.Errorf("unrelated key clobbered the score: Get = %d", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the score file, found %d entries", len(entries))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if _, _, err := store.Get(Key); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Get over corrupt file: err = %v, want ErrCorrupt", err)
	}
	board := NewBoard(store)
	if got := board.Get(); got != 0 {
		t.Errorf("Get over corrupt file = %d, want 0", got)
	}

	if err := board.Save(7); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	if got := board.Get(); got != 7 {
		t.Errorf("Get after Save(7) = %d, want 7", got)
	}
	if got := NewBoard(NewFileStore(path)).Get(); got != 7 {
		t.Errorf("fresh store Get = %d, want 7", got)
	}

	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(bak) != "{not json" {
		t.Errorf("backup = %q, want original bytes", bak)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if got := DefaultPath(); filepath.Base(got) != "scores.json" || filepath.Base(filepath.Dir(got)) != "dodgefall" {
		t.Errorf("DefaultPath = %q", got)
	}
}

package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/dodgefall/internal/physics"
)

func TestFillRectScales(t *testing.T) {
	// 100x100 logical onto 20 cols x 10 rows (20 sub-pixel rows).
	c := NewScaledCanvas(20, 10, 100, 100)
	c.FillRect(physics.Rect{X: 50, Y: 90, W: 5, H: 5}, ColorCyan)

	// x: 50*0.2=10 .. 55*0.2=11; y: 90*0.2=18 .. 95*0.2=19
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			want := ColorNone
			if x == 10 && y == 18 {
				want = ColorCyan
			}
			if got := c.At(x, y); got != want {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectClipsAndSkipsEmpty(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(physics.Rect{X: 85, Y: 85, W: 20, H: 20}, ColorRed)
	if c.At(9, 9) != ColorRed {
		t.Error("partially visible rect should be drawn up to the edge")
	}

	c.Clear()
	c.FillRect(physics.Rect{X: 10, Y: 10, W: 0, H: 5}, ColorRed)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.At(x, y) != ColorNone {
				t.Fatal("zero-width rect drew pixels")
			}
		}
	}
}

func TestCellAt(t *testing.T) {
	c := NewScaledCanvas(4, 1, 4, 2)
	c.setPixel(0, 0, ColorRed)
	c.setPixel(0, 1, ColorRed)
	c.setPixel(1, 0, ColorCyan)
	c.setPixel(2, 1, ColorGray)
	c.setPixel(3, 0, ColorCyan)
	c.setPixel(3, 1, ColorRed)

	tests := []struct {
		col  int
		want cell
	}{
		{0, cell{ch: BlockFull, fg: ColorRed}},
		{1, cell{ch: BlockUpperHalf, fg: ColorCyan}},
		{2, cell{ch: BlockLowerHalf, fg: ColorGray}},
		{3, cell{ch: BlockUpperHalf, fg: ColorCyan, bg: ColorRed}},
	}
	for _, tt := range tests {
		if got := c.cellAt(0, tt.col); got != tt.want {
			t.Errorf("cellAt(0,%d) = %+v, want %+v", tt.col, got, tt.want)
		}
	}
}

func TestRenderOnlyRepaintsChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	var out bytes.Buffer

	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 50 {
		t.Errorf("first render painted %d blank cells, want 50", got)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("unchanged canvas rendered %q", out.String())
	}

	c.SetFloat(0, 0, ColorWhite)
	out.Reset()
	c.Render(&out)
	want := "\033[1;1H" + fgCodes[ColorWhite] + string(BlockUpperHalf) + ColorReset
	if out.String() != want {
		t.Errorf("render = %q, want %q", out.String(), want)
	}

	c.Clear()
	out.Reset()
	c.Render(&out)
	if out.String() != "\033[1;1H " {
		t.Errorf("cleared pixel render = %q", out.String())
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)
	c.Render(&bytes.Buffer{})

	c.setPixel(1, 1, ColorGray)
	var out bytes.Buffer
	c.Render(&out)
	if !strings.HasPrefix(out.String(), "\033[5;5H") {
		t.Errorf("render = %q, want cursor at row 5 col 5", out.String())
	}
}

func TestForceRedrawAndMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(10, 2, 10, 4)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(3, 2, 4)
	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 4 {
		t.Errorf("dirty text repainted %d cells, want 4", got)
	}
	if !strings.HasPrefix(out.String(), "\033[2;3H") {
		t.Errorf("render = %q", out.String())
	}

	c.MarkTextDirty(8, 1, 10) // clipped at the right edge
	c.MarkTextDirty(1, 9, 3)  // outside, ignored
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 3 {
		t.Errorf("clipped dirty text repainted %d cells, want 3", got)
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 20 {
		t.Errorf("forced redraw painted %d cells, want 20", got)
	}
}

func TestResizeRepaints(t *testing.T) {
	c := NewScaledCanvas(4, 2, 100, 100)
	c.Render(&bytes.Buffer{})

	c.Resize(4, 2)
	var out bytes.Buffer
	c.Render(&out)
	if out.Len() != 0 {
		t.Error("same-size resize should not repaint")
	}

	c.Resize(6, 3)
	if c.TerminalWidth() != 6 || c.TerminalHeight() != 3 {
		t.Fatalf("size = %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
	c.Render(&out)
	if got := strings.Count(out.String(), " "); got != 18 {
		t.Errorf("resized render painted %d cells, want 18", got)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 2, 100, 100)

	var out bytes.Buffer
	c.RenderBorder(&out)
	if out.Len() != 0 {
		t.Errorf("no offset should draw no border, got %q", out.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&out)
	s := out.String()
	for _, part := range []string{"┌───┐", "└───┘", "\033[2;1H│", "\033[3;5H│"} {
		if !strings.Contains(s, part) {
			t.Errorf("border missing %q in %q", part, s)
		}
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(100, 50, 100, 100)
	col, row := c.LogicalToTerminal(50, 90)
	if col != 51 || row != 46 {
		t.Errorf("LogicalToTerminal = (%d, %d), want (51, 46)", col, row)
	}
}

func TestScreenText(t *testing.T) {
	c := NewScaledCanvas(10, 2, 10, 4)
	c.SetOffset(2, 3)
	c.Render(&bytes.Buffer{})

	var out bytes.Buffer
	s := NewScreen(&out, c)
	s.Text(1, 1, "hi")
	s.Colored(4, 2, ColorRed, "x")
	s.Link(5, 1, "u", "ab")
	s.Erase(8, 2, 2)
	if out.Len() != 0 {
		t.Fatal("Screen wrote before Flush")
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "\033[4;3Hhi" +
		"\033[5;6H" + fgCodes[ColorRed] + "x" + ColorReset +
		"\033[4;6H\033]8;;u\033\\ab\033]8;;\033\\"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	// Every written or erased cell is repainted by the next render.
	var render bytes.Buffer
	c.Render(&render)
	if got := strings.Count(render.String(), " "); got != 7 {
		t.Errorf("render repainted %d cells, want 7", got)
	}
}

func TestScreenCentered(t *testing.T) {
	c := NewScaledCanvas(20, 2, 20, 4)
	var out bytes.Buffer
	s := NewScreen(&out, c)

	s.Centered(10, 2, "abcd")
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "\033[2;8Habcd"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestScreenClearForcesRepaint(t *testing.T) {
	c := NewScaledCanvas(10, 2, 10, 4)
	c.Render(&bytes.Buffer{})

	var out bytes.Buffer
	s := NewScreen(&out, c)
	s.Clear()
	c.Render(s)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), clearSeq) {
		t.Errorf("output = %q, want leading clear", out.String())
	}
	if got := strings.Count(out.String(), " "); got != 20 {
		t.Errorf("repainted %d cells after clear, want 20", got)
	}
}

func TestScreenFlushChunks(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, NewScaledCanvas(1, 1, 1, 2))

	big := strings.Repeat("a", maxChunkSize*3+7)
	if _, err := s.Write([]byte(big)); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Error("chunked flush lost data")
	}
	if err := s.Flush(); err != nil || out.Len() != len(big) {
		t.Error("second flush should write nothing")
	}
}

func TestEnterAndLeaveScreen(t *testing.T) {
	var out bytes.Buffer
	EnterScreen(&out)
	if !strings.HasPrefix(out.String(), "\033[?25l") {
		t.Errorf("EnterScreen = %q", out.String())
	}
	out.Reset()
	LeaveScreen(&out)
	if !strings.HasPrefix(out.String(), ColorReset) || !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Errorf("LeaveScreen = %q", out.String())
	}
}

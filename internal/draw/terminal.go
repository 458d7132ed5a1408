package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Screen collects one refresh of terminal output: the canvas repaint plus the
// score, banner and notice text drawn over it. Text positions are 1-based
// canvas cells and follow the canvas offset. Every text write marks its cells
// on the canvas so they are repainted once the text is gone.
type Screen struct {
	canvas *Canvas
	buf    strings.Builder
	out    *bufio.Writer
	num    [20]byte
}

// NewScreen returns a Screen drawing over canvas and flushing to w.
func NewScreen(w io.Writer, canvas *Canvas) *Screen {
	return &Screen{
		canvas: canvas,
		out:    bufio.NewWriterSize(w, 8192),
	}
}

var _ io.Writer = (*Screen)(nil)

// Write appends raw bytes. Canvas.Render and RenderBorder write through it.
func (s *Screen) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Clear queues a full terminal clear and forces a canvas repaint, for
// switches between the title, game over and notice screens.
func (s *Screen) Clear() {
	s.buf.WriteString(clearSeq)
	s.canvas.ForceRedraw()
}

func (s *Screen) moveTo(col, row int) {
	s.buf.WriteString("\033[")
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(row+s.canvas.OffsetRow()), 10))
	s.buf.WriteByte(';')
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(col+s.canvas.OffsetCol()), 10))
	s.buf.WriteByte('H')
}

// Text writes str at a cell.
func (s *Screen) Text(col, row int, str string) {
	s.moveTo(col, row)
	s.buf.WriteString(str)
	s.canvas.MarkTextDirty(col, row, len(str))
}

// Colored writes str at a cell in a palette color.
func (s *Screen) Colored(col, row int, color Color, str string) {
	s.moveTo(col, row)
	s.buf.WriteString(fgCodes[color])
	s.buf.WriteString(str)
	s.buf.WriteString(ColorReset)
	s.canvas.MarkTextDirty(col, row, len(str))
}

// Centered writes str on row, centered on column centerX.
func (s *Screen) Centered(centerX, row int, str string) {
	s.Text(centerX-len(str)/2, row, str)
}

// Link writes label as an OSC 8 hyperlink to url, centered on centerX.
// Terminals without OSC 8 show the plain label.
func (s *Screen) Link(centerX, row int, url, label string) {
	col := centerX - len(label)/2
	s.moveTo(col, row)
	fmt.Fprintf(&s.buf, "\033]8;;%s\033\\%s\033]8;;\033\\", url, label)
	s.canvas.MarkTextDirty(col, row, len(label))
}

// Erase drops n cells of text starting at a cell. The canvas repaints them.
func (s *Screen) Erase(col, row, n int) {
	s.canvas.MarkTextDirty(col, row, n)
}

// Flush sends the refresh in chunks of at most maxChunkSize bytes.
func (s *Screen) Flush() error {
	data := s.buf.String()
	s.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := s.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return s.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

const clearSeq = "\033[H\033[2J"

// EnterScreen hides the cursor and clears the terminal before the first draw.
func EnterScreen(w io.Writer) {
	io.WriteString(w, "\033[?25l"+clearSeq)
}

// LeaveScreen restores colors, clears the game off the terminal and shows
// the cursor again.
func LeaveScreen(w io.Writer) {
	io.WriteString(w, ColorReset+clearSeq+"\033[?25h")
}

// ClearScreen clears the terminal immediately, outside of a Screen refresh.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearSeq)
}

// Package draw renders the play field to ANSI terminals using half-block
// characters, and buffers frame output for network-friendly writes.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomz197/dodgefall/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Color is a palette index for canvas pixels. ColorNone is an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorCyan
	ColorRed
	ColorYellow
)

// ANSI SGR sequences per palette entry.
var (
	fgCodes = [...]string{"", "\033[97m", "\033[90m", "\033[96m", "\033[91m", "\033[93m"}
	bgCodes = [...]string{"", "\033[107m", "\033[100m", "\033[106m", "\033[101m", "\033[103m"}
)

// ColorReset restores the default terminal colors.
const ColorReset = "\033[0m"

// cell is what one terminal cell shows.
type cell struct {
	ch     rune
	fg, bg Color
}

// staleCell never equals a real cell, forcing the next Render to repaint.
var staleCell = cell{ch: -1}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Render only repaints cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	shown          []cell  // What the terminal currently displays, per cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.allocate(termWidth, termHeight)
	return c
}

func (c *Canvas) allocate(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.shown = make([]cell, termHeight*termWidth)
	c.ForceRedraw()
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change repaints every cell on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.allocate(termWidth, termHeight)
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas. The terminal is untouched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = staleCell
	}
}

// MarkTextDirty marks n cells starting at the 1-based canvas position as
// overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.termHeight {
		return
	}
	start := (row-1)*c.termWidth + col - 1
	for i := 0; i < n; i++ {
		x := col - 1 + i
		if x < 0 {
			continue
		}
		if x >= c.termWidth {
			break
		}
		c.shown[start+i] = staleCell
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, color Color) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, color)
}

// FillRect fills a logical rectangle. Any rectangle with a positive size
// covers at least one pixel.
func (c *Canvas) FillRect(r physics.Rect, color Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0 := int(math.Round(r.X * c.scaleX))
	y0 := int(math.Round(r.Y * c.scaleY))
	x1 := max(int(math.Round(r.Right()*c.scaleX)), x0+1)
	y1 := max(int(math.Round(r.Bottom()*c.scaleY)), y0+1)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y, color)
		}
	}
}

// At returns the pixel color at terminal pixel coordinates.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// cellAt combines the two sub-pixels of a terminal cell.
func (c *Canvas) cellAt(row, col int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]

	switch {
	case top == ColorNone && bottom == ColorNone:
		return cell{ch: BlockEmpty}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	case bottom == ColorNone:
		return cell{ch: BlockUpperHalf, fg: top}
	case top == ColorNone:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// Render outputs the changed cells to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	cursorRow, cursorCol := -1, -1 // Where the terminal cursor sits after the last write
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := c.cellAt(row, col)
			if cur == c.shown[i] {
				continue
			}
			c.shown[i] = cur

			if row != cursorRow || col != cursorCol {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if cur.fg != ColorNone || cur.bg != ColorNone {
				c.renderBuf.WriteString(fgCodes[cur.fg])
				c.renderBuf.WriteString(bgCodes[cur.bg])
				c.renderBuf.WriteRune(cur.ch)
				c.renderBuf.WriteString(ColorReset)
			} else {
				c.renderBuf.WriteRune(cur.ch)
			}
			cursorRow, cursorCol = row, col+1
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Horizontal bars need a vertical offset, vertical bars a horizontal one,
// and corners need both.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	buf.WriteString(fgCodes[ColorGray])

	if hasV {
		for _, edge := range []struct {
			row        int
			start, end string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if hasH {
				buf.WriteString("\033[" + strconv.Itoa(edge.row) + ";" + strconv.Itoa(left) + "H")
				buf.WriteString(edge.start + bar + edge.end)
			} else {
				buf.WriteString("\033[" + strconv.Itoa(edge.row) + ";" + strconv.Itoa(c.offsetCol+1) + "H")
				buf.WriteString(bar)
			}
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│")
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}

	buf.WriteString(ColorReset)
	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

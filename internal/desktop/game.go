// Package desktop runs the game in an ebiten window. Unlike terminals, the
// window reports real key releases, so the boost modifier is exact.
package desktop

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/tomz197/dodgefall/internal/input"
	"github.com/tomz197/dodgefall/internal/loop"
	"github.com/tomz197/dodgefall/internal/loop/config"
	"github.com/tomz197/dodgefall/internal/physics"
)

// ScreenSize is the logical window size in pixels. The field is square.
const ScreenSize = 600

const scale = ScreenSize / physics.FieldSize

var (
	backgroundColor = colornames.Midnightblue
	pixelColor      = colornames.Lightsteelblue
	obstacleColor   = colornames.Orangered
	playerColor     = colornames.Cyan
	boostColor      = colornames.Gold
	textColor       = colornames.White
)

// Options configures a desktop Game.
type Options struct {
	Variant config.Variant
	Scores  loop.Scores
	Sound   loop.Sound
	Logger  *log.Logger
}

// Game implements ebiten.Game around one loop.Game.
type Game struct {
	game   *loop.Game
	frames *loop.FrameQueue
	logger *log.Logger
	face   *text.GoTextFace
	small  *text.GoTextFace
	quit   bool

	pressed  []ebiten.Key
	released []ebiten.Key
}

// New creates the window game and loads its font.
func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	frames := &loop.FrameQueue{}
	g := &Game{
		frames: frames,
		logger: logger,
		face:   &text.GoTextFace{Source: src, Size: 16},
		small:  &text.GoTextFace{Source: src, Size: 10},
	}
	g.game = loop.New(loop.Options{
		Variant:   opts.Variant,
		Scores:    opts.Scores,
		Sound:     opts.Sound,
		Scheduler: frames,
		Logger:    logger,
		OnRunEnd: func(r loop.RunResult) {
			logger.Info("run finished", "score", r.Score, "highScore", r.HighScore)
		},
	})
	return g, nil
}

// Update reads this tick's keys and runs the pending frame.
func (g *Game) Update() error {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	g.released = g.released[:0]
	for k := range gameKeys {
		if inpututil.IsKeyJustReleased(k) {
			g.released = append(g.released, k)
		}
	}
	return g.step(keyEvents(g.pressed, g.released))
}

// step runs one tick. The pending frame goes first, so a key that starts a
// run gets exactly one frame before the next Draw.
func (g *Game) step(events []input.Event) error {
	g.frames.Tick()
	g.dispatch(events)
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// dispatch routes events to the game. Control keys never start a run.
func (g *Game) dispatch(events []input.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case input.KindQuit:
			g.quit = true
		case input.KindMute:
			g.game.ToggleMute()
		case input.KindVolumeUp:
			g.game.AdjustVolume(config.VolumeStep)
		case input.KindVolumeDown:
			g.game.AdjustVolume(-config.VolumeStep)
		case input.KindKeyDown:
			g.game.KeyDown(ev.Key)
		case input.KindKeyUp:
			g.game.KeyUp(ev.Key)
		}
	}
}

// Draw paints the field and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	screen.Fill(backgroundColor)

	for _, p := range snap.Pixels {
		vector.DrawFilledRect(screen, float32(p.X*scale), float32(p.Y*scale), 2, 2, pixelColor, false)
	}
	if snap.ObstacleVisible {
		fillRect(screen, snap.Obstacle, obstacleColor)
	}
	player := playerColor
	if snap.ModifierHeld {
		player = boostColor
	}
	fillRect(screen, snap.Player, player)

	if snap.ScoreVisible {
		g.label(screen, fmt.Sprintf("Score: %d", snap.Score), g.face, 10, 10, text.AlignStart)
	}
	g.label(screen, fmt.Sprintf("Highest Score: %d", snap.HighScore), g.face, ScreenSize-10, 10, text.AlignEnd)
	g.label(screen, fmt.Sprintf("[M] %s  [+/-] Volume: %d%%", snap.MuteLabel, int(snap.Volume*100+0.5)),
		g.small, 10, ScreenSize-20, text.AlignStart)

	switch {
	case snap.ShowStart:
		g.label(screen, "DODGEFALL", g.face, ScreenSize/2, ScreenSize/2-40, text.AlignCenter)
		g.label(screen, "Press any key to start", g.small, ScreenSize/2, ScreenSize/2, text.AlignCenter)
		g.label(screen, "Left/Right move, Shift boosts", g.small, ScreenSize/2, ScreenSize/2+20, text.AlignCenter)
	case snap.ShowGameOver:
		g.label(screen, "GAME OVER", g.face, ScreenSize/2, ScreenSize/2-40, text.AlignCenter)
		g.label(screen, "Press any key to play again", g.small, ScreenSize/2, ScreenSize/2, text.AlignCenter)
	}
}

func (g *Game) label(screen *ebiten.Image, s string, face text.Face, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	op.PrimaryAlign = align
	text.Draw(screen, s, face, op)
}

// Layout fixes the logical screen size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenSize, ScreenSize
}

// Loop returns the underlying game.
func (g *Game) Loop() *loop.Game {
	return g.game
}

func fillRect(screen *ebiten.Image, r physics.Rect, clr color.Color) {
	x, y, w, h := toScreen(r)
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
}

// toScreen maps a field rect in percent to window pixels.
func toScreen(r physics.Rect) (x, y, w, h float32) {
	return float32(r.X * scale), float32(r.Y * scale), float32(r.W * scale), float32(r.H * scale)
}

// Run opens the window and blocks until it is closed or the quit key is pressed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(ScreenSize, ScreenSize)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(config.ClientTargetFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodgefall/internal/draw"
	"github.com/tomz197/dodgefall/internal/input"
	"github.com/tomz197/dodgefall/internal/loop"
	"github.com/tomz197/dodgefall/internal/loop/config"
	"github.com/tomz197/dodgefall/internal/loop/server"
	"github.com/tomz197/dodgefall/internal/object"
)

// leaderNoticeSeconds is how long a new-leader announcement stays on screen.
const leaderNoticeSeconds = 4.0

// Client handles rendering and input for a single connection. Each client
// owns an independent game.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	game         *loop.Game
	frames       *loop.FrameQueue
	state        *ClientState
	canvas       *draw.Canvas
	screen       *draw.Screen
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	idleWarn       time.Duration
	idleDisconnect time.Duration
	now            func() time.Time
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Variant      config.Variant
	Scores       loop.Scores // Shared high score; per-game memory when nil
	Sound        loop.Sound  // Silent when nil

	// IdleWarn and IdleDisconnect enable the inactivity timeout. Zero disables it.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration

	Logger *log.Logger

	// Random sources for the game. Time-seeded when nil.
	Rand      object.Rand
	PixelRand object.Rand
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		logger.Warn("terminal size", "err", err)
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		server:         gs,
		handle:         handle,
		frames:         &loop.FrameQueue{},
		state:          NewClientState(),
		canvas:         canvas,
		screen:         draw.NewScreen(w, canvas),
		writer:         w,
		inputStream:    input.StartStream(r),
		username:       handle.Username,
		termSizeFunc:   termSizeFunc,
		logger:         logger,
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
		now:            time.Now,
	}
	c.lastInput = c.now()

	c.game = loop.New(loop.Options{
		Variant:   opts.Variant,
		Scores:    opts.Scores,
		Sound:     opts.Sound,
		Scheduler: c.frames,
		Rand:      opts.Rand,
		PixelRand: opts.PixelRand,
		Logger:    logger,
		OnRunEnd:  c.reportRun,
	})
	c.state.prevPhase = c.game.Phase()

	return c
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterScreen(c.writer)
	defer draw.LeaveScreen(c.writer)

	lastTime := time.Now()
	var runErr error

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.step(); err != nil {
			runErr = fmt.Errorf("draw frame: %w", err)
			break
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	return runErr
}

// step runs one display refresh.
func (c *Client) step() error {
	return c.refresh(input.ReadInput(c.inputStream))
}

// refresh runs the pending frame before dispatching events, so a key that
// starts a run gets exactly one frame before the next draw.
func (c *Client) refresh(events []input.Event) error {
	c.frames.Tick()
	c.handleEvents(events)
	c.checkInactivity()
	c.processServerEvents()
	c.updateScreen()
	c.updateTimers()
	return c.drawFrame()
}

// Game returns the game this client drives.
func (c *Client) Game() *loop.Game {
	return c.game
}

// handleEvents dispatches decoded events. Control events never reach the
// game; the key that dismisses the inactivity warning is swallowed.
func (c *Client) handleEvents(events []input.Event) {
	if len(events) == 0 {
		return
	}
	c.lastInput = c.now()
	if c.state.isInactive {
		c.state.isInactive = false
		for _, ev := range events {
			if ev.Kind == input.KindQuit {
				c.state.Running = false
			}
		}
		return
	}

	for _, ev := range events {
		switch ev.Kind {
		case input.KindQuit:
			c.state.Running = false
		case input.KindMute:
			muted := c.game.ToggleMute()
			c.logger.Debug("mute toggled", "muted", muted)
		case input.KindVolumeUp:
			c.game.AdjustVolume(config.VolumeStep)
		case input.KindVolumeDown:
			c.game.AdjustVolume(-config.VolumeStep)
		case input.KindKeyDown:
			if !c.state.ShuttingDown {
				c.game.KeyDown(ev.Key)
			}
		case input.KindKeyUp:
			c.game.KeyUp(ev.Key)
		}
	}
}

// checkInactivity warns and then disconnects an idle session. A running
// game counts as activity.
func (c *Client) checkInactivity() {
	if c.idleDisconnect <= 0 {
		return
	}
	if c.game.Running() {
		c.lastInput = c.now()
		return
	}

	idle := c.now().Sub(c.lastInput)
	switch {
	case idle > c.idleDisconnect:
		c.logger.Info("disconnecting inactive client", "user", c.username, "idle", idle.Round(time.Second))
		c.state.Running = false
	case c.idleWarn > 0 && idle > c.idleWarn:
		c.state.isInactive = true
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.ShuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewLeader:
				c.state.leaderText = fmt.Sprintf("New leader: %s with %d", event.Entry.Name, event.Entry.Score)
				c.state.leaderTimer = leaderNoticeSeconds
			}
		default:
			return
		}
	}
}

// reportRun forwards a finished run to the server leaderboard.
func (c *Client) reportRun(result loop.RunResult) {
	c.server.ReportRun(c.handle.ID, result)
	c.logger.Info("run finished", "user", c.username, "score", result.Score, "highScore", result.HighScore)
}

// updateTimers advances the shutdown countdown and the announcement timer.
func (c *Client) updateTimers() {
	dt := c.state.delta.Seconds()

	if c.state.leaderTimer > 0 {
		c.state.leaderTimer -= dt
		if c.state.leaderTimer <= 0 {
			c.state.leaderTimer = 0
			c.state.leaderText = ""
		}
	}

	if c.state.ShuttingDown {
		c.state.shutdownTimer -= dt
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

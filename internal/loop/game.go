// Package loop drives one game: the Idle/Running state machine, the per-frame
// update and the key handlers that feed it.
//
// A Game is not safe for concurrent use. Input handlers and frame callbacks
// must run on the same goroutine, which is what every frontend does.
package loop

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodgefall/internal/loop/config"
	"github.com/tomz197/dodgefall/internal/object"
	"github.com/tomz197/dodgefall/internal/physics"
)

// Sound is the audio surface the game drives.
type Sound interface {
	StartAmbient()
	PlayCue()
	ToggleMute() bool
	Muted() bool
	SetVolume(level float64)
	Volume() float64
}

// Scores is the high score store.
type Scores interface {
	Get() int
	Save(candidate int) error
}

// Options configures a Game. Zero fields get working defaults.
type Options struct {
	Variant   config.Variant
	Scores    Scores
	Sound     Sound
	Scheduler Scheduler
	Rand      object.Rand // Obstacle lanes
	PixelRand object.Rand // Background pixels
	Logger    *log.Logger
	OnRunEnd  func(RunResult)
}

// Game is one player's game.
type Game struct {
	variant   config.Variant
	scores    Scores
	sound     Sound
	scheduler Scheduler
	rng       object.Rand
	logger    *log.Logger
	onRunEnd  func(RunResult)

	run      RunState
	player   *object.Player
	obstacle *object.Obstacle
	pixels   *object.PixelField
	detector physics.Detector

	highScore       int
	showStart       bool
	showGameOver    bool
	obstacleVisible bool
	scoreVisible    bool
	frames          int

	frameFn func()
}

// New creates an idle game showing the start banner and the stored high score.
func New(opts Options) *Game {
	v := opts.Variant
	if v.Name == "" {
		v = config.Default()
	}
	if opts.Scores == nil {
		opts.Scores = &memoryScores{}
	}
	if opts.Sound == nil {
		opts.Sound = &silentSound{volume: v.SoundtrackVolume}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = &FrameQueue{}
	}
	if opts.Rand == nil {
		opts.Rand = object.NewRand()
	}
	if opts.PixelRand == nil {
		opts.PixelRand = object.NewRand()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	move := object.Movement{
		Step:      config.MoveStep,
		BoostStep: config.BoostStep,
		Deadzone:  config.EdgeDeadzone,
		Smoothing: config.Smoothing,
	}

	g := &Game{
		variant:   v,
		scores:    opts.Scores,
		sound:     opts.Sound,
		scheduler: opts.Scheduler,
		rng:       opts.Rand,
		logger:    opts.Logger,
		onRunEnd:  opts.OnRunEnd,

		player:   object.NewPlayer(move, config.PlayerTop, config.PlayerWidth, config.PlayerHeight),
		obstacle: object.NewObstacle(config.ObstacleWidth, config.ObstacleHeight, config.LaneSpan),
		pixels:   object.NewPixelField(v.PixelChance, v.PixelMinSpeed, v.PixelMaxSpeed, opts.PixelRand),
		detector: v.Detector(),

		showStart: true,
	}
	g.run.Muted = g.sound.Muted()
	g.highScore = g.scores.Get()
	g.frameFn = g.frame
	return g
}

// KeyDown handles a key press. While idle any key starts a run and is not
// applied as movement.
func (g *Game) KeyDown(k Key) {
	if g.run.Phase == PhaseIdle {
		g.start()
		return
	}

	moved := false
	switch k {
	case KeyLeft:
		g.player.Nudge(object.Left)
		moved = true
	case KeyRight:
		g.player.Nudge(object.Right)
		moved = true
	case KeyModifier:
		g.player.ModifierHeld = true
	}

	if moved && g.variant.MoveCue && !g.run.Muted {
		g.sound.PlayCue()
	}
}

// KeyUp handles a key release. Only the modifier cares.
func (g *Game) KeyUp(k Key) {
	if k == KeyModifier {
		g.player.ModifierHeld = false
	}
}

// ToggleMute flips mute on the sound controller and returns the new state.
func (g *Game) ToggleMute() bool {
	g.run.Muted = g.sound.ToggleMute()
	return g.run.Muted
}

// SetVolume sets the soundtrack volume.
func (g *Game) SetVolume(level float64) {
	g.sound.SetVolume(level)
}

// AdjustVolume moves the soundtrack volume by delta.
func (g *Game) AdjustVolume(delta float64) {
	g.sound.SetVolume(physics.Clamp(g.sound.Volume()+delta, 0, 1))
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	return g.run.Phase
}

// Running reports whether a run is in progress.
func (g *Game) Running() bool {
	return g.run.Phase == PhaseRunning
}

// Variant returns the variant the game was built with.
func (g *Game) Variant() config.Variant {
	return g.variant
}

func (g *Game) start() {
	g.run.Phase = PhaseRunning
	g.run.Score = 0
	g.frames = 0
	g.obstacle.Reset(g.variant.InitialSpeed, g.rng)

	g.showStart = false
	g.showGameOver = false
	g.obstacleVisible = true
	g.scoreVisible = true

	if !g.run.Muted {
		g.sound.StartAmbient()
	}
	g.logger.Debug("run started", "variant", g.variant.Name, "speed", g.obstacle.Speed, "lane", g.obstacle.Lane)

	g.frame()
}

// frame is one display refresh of a running game.
func (g *Game) frame() {
	if g.run.Phase != PhaseRunning {
		return
	}
	g.frames++

	g.player.Smooth()

	if g.obstacle.Advance(g.variant.SpeedIncrement, g.rng) {
		g.run.Score++
	}

	if g.detector.Collides(g.player.Rect(), g.obstacle.Rect()) {
		g.end()
	}

	// Pixels still move on the frame that ends the run.
	g.pixels.Step()

	if g.run.Phase == PhaseRunning {
		g.scheduler.RequestFrame(g.frameFn)
	}
}

func (g *Game) end() {
	g.run.Phase = PhaseIdle
	g.showGameOver = true

	if err := g.scores.Save(g.run.Score); err != nil {
		g.logger.Warn("save high score", "err", err, "score", g.run.Score)
	}
	g.highScore = g.scores.Get()

	g.logger.Debug("run ended", "score", g.run.Score, "highScore", g.highScore, "frames", g.frames)

	if g.onRunEnd != nil {
		g.onRunEnd(RunResult{
			Score:     g.run.Score,
			HighScore: g.highScore,
			Frames:    g.frames,
			Variant:   g.variant.Name,
		})
	}
}

// Snapshot copies the drawable state.
func (g *Game) Snapshot() Snapshot {
	label := "Mute"
	if g.run.Muted {
		label = "Unmute"
	}
	return Snapshot{
		Phase:     g.run.Phase,
		Score:     g.run.Score,
		HighScore: g.highScore,

		Player:          g.player.Rect(),
		Obstacle:        g.obstacle.Rect(),
		ObstacleVisible: g.obstacleVisible,
		ScoreVisible:    g.scoreVisible,
		ShowStart:       g.showStart,
		ShowGameOver:    g.showGameOver,

		Pixels: append([]object.Pixel(nil), g.pixels.Pixels()...),

		Muted:        g.run.Muted,
		MuteLabel:    label,
		Volume:       g.sound.Volume(),
		Speed:        g.obstacle.Speed,
		ModifierHeld: g.player.ModifierHeld,
		Variant:      g.variant.Name,
	}
}

// memoryScores keeps the high score for the lifetime of the game only.
type memoryScores struct {
	best int
}

func (m *memoryScores) Get() int { return m.best }

func (m *memoryScores) Save(candidate int) error {
	if candidate > m.best {
		m.best = candidate
	}
	return nil
}

// silentSound tracks mute and volume without producing any output.
type silentSound struct {
	muted  bool
	volume float64
}

func (s *silentSound) StartAmbient()       {}
func (s *silentSound) PlayCue()            {}
func (s *silentSound) Muted() bool         { return s.muted }
func (s *silentSound) Volume() float64     { return s.volume }
func (s *silentSound) ToggleMute() bool    { s.muted = !s.muted; return s.muted }
func (s *silentSound) SetVolume(v float64) { s.volume = physics.Clamp(v, 0, 1) }

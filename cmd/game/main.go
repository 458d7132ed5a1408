package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/dodgefall/internal/audio"
	"github.com/tomz197/dodgefall/internal/config"
	"github.com/tomz197/dodgefall/internal/highscore"
	"github.com/tomz197/dodgefall/internal/loop/client"
	loopconfig "github.com/tomz197/dodgefall/internal/loop/config"
	"github.com/tomz197/dodgefall/internal/loop/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	variantName := flag.String("variant", config.GetEnv("DODGE_VARIANT", loopconfig.Classic), "game variant preset")
	configPath := flag.String("config", config.GetEnv("DODGE_CONFIG", ""), "YAML variant file")
	scoreFile := flag.String("scores", config.GetEnv("DODGE_SCORE_FILE", highscore.DefaultPath()), "high score file")
	muted := flag.Bool("mute", config.GetEnvBool("DODGE_MUTED", false), "start muted")
	volume := flag.Float64("volume", config.GetEnvFloat("DODGE_VOLUME", -1), "soundtrack volume 0-1 (variant default if negative)")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	variant, err := loopconfig.Resolve(*variantName, *configPath)
	if err != nil {
		return fmt.Errorf("variant: %w", err)
	}
	if *volume < 0 {
		*volume = variant.SoundtrackVolume
	}

	sound, closeAudio := openAudio(logger, variant, *muted, *volume)
	defer closeAudio()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	logger.Info("starting", "variant", variant.Name, "scores", *scoreFile)

	hub := server.NewHub(logger, loopconfig.LeaderboardSize)
	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(hub, reader, os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Variant:  variant,
		Scores:   highscore.NewBoard(highscore.NewFileStore(*scoreFile)),
		Sound:    sound,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

// openAudio starts the speaker. Without a working output device the game
// runs silently.
func openAudio(logger *log.Logger, v loopconfig.Variant, muted bool, volume float64) (*audio.Controller, func()) {
	opts := audio.Options{
		Muted:      muted,
		Volume:     volume,
		CueVolume:  v.CueVolume,
		CueEnabled: v.MoveCue,
	}

	backend := audio.NewBeepBackend(audio.DefaultSampleRate)
	if err := backend.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.NewController(nil, nil, opts), func() {}
	}
	ambient, cue, err := backend.Channels()
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		backend.Close()
		return audio.NewController(nil, nil, opts), func() {}
	}
	return audio.NewController(ambient, cue, opts), backend.Close
}

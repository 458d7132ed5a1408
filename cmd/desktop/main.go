package main

import (
	"flag"
	"os"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/tomz197/dodgefall/internal/audio"
	"github.com/tomz197/dodgefall/internal/config"
	"github.com/tomz197/dodgefall/internal/desktop"
	"github.com/tomz197/dodgefall/internal/highscore"
	loopconfig "github.com/tomz197/dodgefall/internal/loop/config"
)

func main() {
	variantName := flag.String("variant", config.GetEnv("DODGE_VARIANT", loopconfig.Classic), "game variant preset")
	configPath := flag.String("config", config.GetEnv("DODGE_CONFIG", ""), "YAML variant file")
	scoreFile := flag.String("scores", config.GetEnv("DODGE_SCORE_FILE", highscore.DefaultPath()), "high score file")
	muted := flag.Bool("mute", config.GetEnvBool("DODGE_MUTED", false), "start muted")
	volume := flag.Float64("volume", config.GetEnvFloat("DODGE_VOLUME", -1), "soundtrack volume 0-1 (variant default if negative)")
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "desktop")

	variant, err := loopconfig.Resolve(*variantName, *configPath)
	if err != nil {
		logger.Fatal("variant", "err", err)
	}
	if *volume < 0 {
		*volume = variant.SoundtrackVolume
	}

	ambient, cue, err := desktop.NewAudio(eaudio.NewContext(desktop.SampleRate))
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		ambient, cue = audio.Nop{}, audio.Nop{}
	}
	sound := audio.NewController(ambient, cue, audio.Options{
		Muted:      *muted,
		Volume:     *volume,
		CueVolume:  variant.CueVolume,
		CueEnabled: variant.MoveCue,
	})

	g, err := desktop.New(desktop.Options{
		Variant: variant,
		Scores:  highscore.NewBoard(highscore.NewFileStore(*scoreFile)),
		Sound:   sound,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("desktop", "err", err)
	}

	logger.Info("starting", "variant", variant.Name, "scores", *scoreFile)
	if err := desktop.Run(g, "dodgefall"); err != nil {
		logger.Fatal("game error", "err", err)
	}
}

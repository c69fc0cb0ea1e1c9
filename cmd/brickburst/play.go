package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickburst/internal/audio"
	"github.com/vovakirdan/brickburst/internal/breakout"
	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
	"github.com/vovakirdan/brickburst/internal/platform/tui"
	"github.com/vovakirdan/brickburst/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start a game in the local terminal.

Controls:
  Left/A/H, Right/D/L - Move paddle (the mouse works too)
  Space/Enter         - Start, next level
  P/Esc               - Pause
  R                   - Back to menu (after game over)
  Q/Ctrl+C            - Quit

Examples:
  brickburst play
  brickburst play --difficulty easy
  brickburst play --config ./my-breakout.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound cues")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	opts := tui.GameOptions{Config: cfg, Seed: seed()}

	// Scores are optional: play on without persistence if the database is unavailable
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("high score will not be saved", "db", flagDBPath, "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	sink, closeSink := newCueSink(cfg.Audio, logger)
	defer closeSink()
	opts.Sink = sink

	game := tui.NewGame(opts, runtime.ScreenW, runtime.ScreenH)
	if err := tui.Run(game, runtime, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if err := game.Flush(); err != nil {
		logger.Warn("high score store error", "error", err)
	}
	fmt.Printf("Score: %d  Best: %d\n", game.World().Score, game.HighScore())
	return nil
}

// newCueSink opens the speaker when audio is enabled, falling back to silence.
func newCueSink(cfg config.AudioConfig, logger *log.Logger) (breakout.CueSink, func()) {
	if flagMute || !cfg.Enabled {
		return audio.Nop{}, func() {}
	}
	emitter, err := audio.New(cfg)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return audio.Nop{}, func() {}
	}
	return emitter, emitter.Close
}

var _ breakout.HighScoreStore = (*storage.Store)(nil)

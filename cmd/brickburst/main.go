// brickburst is a Breakout game for the terminal, SSH and the browser.
//
// Usage:
//
//	brickburst play          - Play in the local terminal
//	brickburst serve         - Start SSH server for remote play
//	brickburst web           - Start the WebSocket bridge for browser clients
//	brickburst scores        - Show the persisted high score
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.brickburst/brickburst.db)
//	--config <path>       - Load a custom breakout YAML config
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
//
// Defaults for --db, --config and --log-level can be set with
// BRICKBURST_DB, BRICKBURST_CONFIG and BRICKBURST_LOG_LEVEL, also read from
// a .env file in the working directory.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brickburst",
		Short: "Brickburst - Breakout in your terminal",
		Long: `Brickburst is a Breakout game with combo scoring, particles and a
persisted high score. Play it locally, host it over SSH, or serve it to
browsers over WebSocket.

Examples:
  brickburst play
  brickburst play --difficulty hard --seed 42
  brickburst serve --ssh :2222
  brickburst web --addr :8080
  brickburst scores`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", envOr("BRICKBURST_DB", storage.DefaultPath), "Path to high score database")
	flags.StringVar(&flagConfig, "config", os.Getenv("BRICKBURST_CONFIG"), "Path to custom breakout config YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	flags.StringVar(&flagLogLevel, "log-level", envOr("BRICKBURST_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "brickburst",
	}), nil
}

// loadConfig reads the breakout config and applies the difficulty preset.
func loadConfig() (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.BreakoutConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// seed returns the --seed value, or a time-based one when unset.
func seed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return uint64(time.Now().UnixNano())
}

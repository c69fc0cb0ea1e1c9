package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickburst/internal/breakout"
	"github.com/vovakirdan/brickburst/internal/platform/web"
	"github.com/vovakirdan/brickburst/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket bridge for browser clients",
	Long: `Serve games to browser clients over WebSocket.

Clients connect to /ws and receive a frame after every tick. Frames are
JSON text by default; add ?codec=msgpack for binary MessagePack frames.
The initial canvas size can be set with ?w=<width>&h=<height>.

Client messages:
  {"type":"move","x":412}        - Center the paddle on x
  {"type":"start"}               - Start from the menu
  {"type":"pause"}               - Toggle pause
  {"type":"advance"}             - Next level
  {"type":"restart"}             - Back to menu after game over
  {"type":"resize","w":800,"h":600}

Examples:
  brickburst web
  brickburst web --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", web.DefaultConfig().Address, "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	server, err := web.NewServer(web.Config{Address: flagWebAddr, TickRate: flagFPS},
		func(w, h float64) *breakout.Game {
			return breakout.New(cfg, w, h, seed(), breakout.WithStore(store))
		}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}

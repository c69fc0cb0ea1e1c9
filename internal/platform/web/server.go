package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/brickburst/internal/breakout"
)

const (
	readLimit    = 1 << 20
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second

	defaultWidth  = 800.0
	defaultHeight = 600.0
	maxCanvasSize = 4096.0
	inboxSize     = 64
)

// GameFactory creates the game for one connection.
type GameFactory func(width, height float64) *breakout.Game

// Config configures the web bridge.
type Config struct {
	Address  string
	TickRate int
}

// DefaultConfig returns the default web bridge configuration.
func DefaultConfig() Config {
	return Config{Address: ":8080", TickRate: 60}
}

// Server serves the game over WebSocket at /ws.
type Server struct {
	cfg      Config
	newGame  GameFactory
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a web bridge. A nil logger discards output.
func NewServer(cfg Config, newGame GameFactory, logger *log.Logger) (*Server, error) {
	if newGame == nil {
		return nil, errors.New("web: game factory is required")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultConfig().TickRate
	}
	if cfg.Address == "" {
		cfg.Address = DefaultConfig().Address
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		cfg:     cfg,
		newGame: newGame,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the HTTP routes of the bridge.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web bridge", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("stopping web bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	codec, err := CodecFor(q.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	width := queryFloat(q.Get("w"), defaultWidth)
	height := queryFloat(q.Get("h"), defaultHeight)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("remote", r.RemoteAddr, "codec", codec.Name())
	logger.Info("client connected")
	start := time.Now()

	sess := &session{
		conn:   conn,
		codec:  codec,
		game:   s.newGame(width, height),
		logger: logger,
		rate:   s.cfg.TickRate,
	}
	sess.run(r.Context())
	logger.Info("client disconnected", "duration", time.Since(start))
}

// session owns one connection. Only run's goroutine touches the game
// and writes to the socket.
type session struct {
	conn   *websocket.Conn
	codec  Codec
	game   *breakout.Game
	logger *log.Logger
	rate   int
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := s.game.Flush(); err != nil {
			s.logger.Warn("high score not persisted", "error", err)
		}
	}()

	inbox := make(chan Message, inboxSize)
	go s.readLoop(ctx, cancel, inbox)

	tick := time.NewTicker(time.Second / time.Duration(s.rate))
	defer tick.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	last := time.Now()
	var lastErr error
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-inbox:
			s.apply(m)
		case <-ping.C:
			deadline := time.Now().Add(writeWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case now := <-tick.C:
			dt := now.Sub(last).Seconds()
			last = now
			events := s.game.Step(dt)
			if err := s.game.StoreErr(); err != nil && err != lastErr {
				s.logger.Warn("high score store error", "error", err)
				lastErr = err
			}
			if err := s.writeFrame(events); err != nil {
				s.logger.Debug("write failed", "error", err)
				return
			}
		}
	}
}

func (s *session) apply(m Message) {
	if m.Type == MsgResize {
		w, ok := canvasDim(m.W)
		h, okH := canvasDim(m.H)
		if !ok || !okH {
			s.logger.Debug("ignoring resize", "w", m.W, "h", m.H)
			return
		}
		s.game.Resize(w, h)
		return
	}
	if in, ok := m.Intent(); ok {
		s.game.Submit(in)
		return
	}
	s.logger.Debug("ignoring message", "type", m.Type)
}

func (s *session) writeFrame(events []breakout.Event) error {
	if events == nil {
		events = []breakout.Event{}
	}
	data, err := s.codec.EncodeFrame(Frame{Snapshot: s.game.Snapshot(), Events: events})
	if err != nil {
		return fmt.Errorf("web: encode frame: %w", err)
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(s.codec.MessageType(), data)
}

func (s *session) readLoop(ctx context.Context, cancel context.CancelFunc, inbox chan<- Message) {
	defer cancel()

	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read failed", "error", err)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		m, err := s.codec.DecodeMessage(data)
		if err != nil {
			s.logger.Debug("dropping malformed message", "error", err)
			continue
		}
		select {
		case inbox <- m:
		case <-ctx.Done():
			return
		}
	}
}

// canvasDim validates a client-supplied canvas dimension and caps it at
// maxCanvasSize. NaN, infinities and non-positive values are rejected.
func canvasDim(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return math.Min(v, maxCanvasSize), true
}

func queryFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	if d, ok := canvasDim(v); ok {
		return d
	}
	return fallback
}

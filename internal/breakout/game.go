package breakout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	TrailChar    = '·'
	ParticleChar = '*'
	BlockChar    = '█'
)

// seedMix decorrelates the two PCG streams derived from a single seed.
const seedMix = 0x9E3779B97F4A7C15

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
}

// Option configures a Game.
type Option func(*Game)

// WithStore persists the high score through s.
func WithStore(s HighScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// WithCueSink forwards every emitted event to sink.
func WithCueSink(sink CueSink) Option {
	return func(g *Game) { g.sink = sink }
}

// Game is the simulation authority. Input is submitted as intents and applied
// in arrival order at the start of the next Step. A Game is not safe for
// concurrent use; shells drive it from a single goroutine.
type Game struct {
	world     World
	rng       *rand.Rand
	queue     []Intent
	store     HighScoreStore
	sink      CueSink
	highScore int
	saved     int // best value known to be in the store
	storeErr  error
}

// New creates a game in the menu state on a canvas of the given size.
// The high score is loaded from the store when one is configured.
func New(cfg config.BreakoutConfig, width, height float64, seed uint64, opts ...Option) *Game {
	g := &Game{
		world: NewWorld(cfg, width, height),
		rng:   rand.New(rand.NewPCG(seed, seed^seedMix)), //#nosec G404 -- gameplay randomness
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store != nil {
		best, err := g.store.HighScore()
		if err != nil {
			g.storeErr = fmt.Errorf("breakout: load high score: %w", err)
		} else {
			g.highScore = best
			g.saved = best
		}
	}
	return g
}

// Submit queues an intent for the next Step.
func (g *Game) Submit(in Intent) {
	g.queue = append(g.queue, in)
}

// Step applies queued intents, advances the simulation by dt seconds and
// returns the events emitted. A new best is tracked in memory and written to
// the store only when a level or game ends, so playing ticks never block on I/O.
func (g *Game) Step(dt float64) []Event {
	var events []Event
	w := g.world
	prev := w.Status

	for _, in := range g.queue {
		var evs []Event
		w, evs = ApplyIntent(w, in)
		events = append(events, evs...)
	}
	g.queue = g.queue[:0]

	w, tickEvents := Tick(w, dt, g.rng)
	events = append(events, tickEvents...)
	g.world = w

	if g.sink != nil {
		for _, ev := range events {
			g.sink.Cue(ev)
		}
	}

	if w.Score > g.highScore {
		g.highScore = w.Score
	}
	if w.Status != prev && (w.Status == StatusLevelComplete || w.Status == StatusGameOver) {
		_ = g.Flush()
	}
	return events
}

// Flush writes the in-memory best to the store if it has not been saved yet.
// Shells call it when a session ends mid-game.
func (g *Game) Flush() error {
	if g.store == nil || g.highScore <= g.saved {
		return nil
	}
	if err := g.store.SaveHighScore(g.highScore); err != nil {
		g.storeErr = fmt.Errorf("breakout: save high score: %w", err)
		return g.storeErr
	}
	g.saved = g.highScore
	return nil
}

// Resize changes the canvas size.
func (g *Game) Resize(width, height float64) {
	g.world = Resize(g.world, width, height)
}

// World returns the current world value.
func (g *Game) World() World {
	return g.world
}

// Status returns the current game status.
func (g *Game) Status() Status {
	return g.world.Status
}

// HighScore returns the best score seen, including the current game.
func (g *Game) HighScore() int {
	return g.highScore
}

// StoreErr returns the most recent high score persistence error, if any.
func (g *Game) StoreErr() error {
	return g.storeErr
}

// Snapshot returns a serializable copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return SnapshotOf(g.world, g.highScore)
}

// Render draws the current state into dst, scaling the canvas to the screen.
// Row 0 is the HUD; the playfield occupies the remaining rows.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 {
		return
	}

	g.renderHUD(dst)

	v := newViewport(g.world, dst.Width(), dst.Height()-1)
	g.renderBlocks(dst, v)
	g.renderParticles(dst, v)
	g.renderPaddle(dst, v)
	g.renderBall(dst, v)
	g.renderOverlay(dst)
}

// viewport maps canvas units to screen cells below the HUD row.
type viewport struct {
	sx, sy float64
	cols   int
	rows   int
}

func newViewport(w World, cols, rows int) viewport {
	v := viewport{cols: cols, rows: rows}
	if w.Width > 0 {
		v.sx = float64(cols) / w.Width
	}
	if w.Height > 0 {
		v.sy = float64(rows) / w.Height
	}
	return v
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * v.sx)), int(math.Floor(p.Y*v.sy)) + 1
}

func (v viewport) span(r core.Rect) (x, y, w, h int) {
	x, y = v.cell(core.V(r.X, r.Y))
	x2, y2 := v.cell(core.V(r.Right(), r.Bottom()))
	return x, y, max(1, x2-x), max(1, y2-y)
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	left := fmt.Sprintf("Score: %d  Best: %d", w.Score, g.highScore)
	dst.DrawText(1, 0, left)

	lives := "Lives: " + strings.Repeat("♥", w.Lives)
	x := (dst.Width() - len([]rune(lives))) / 2
	dst.DrawText(x, 0, "Lives: ")
	dst.DrawTextColored(x+len("Lives: "), 0, strings.Repeat("♥", w.Lives), core.ColorBrightRed)

	right := fmt.Sprintf("x%.1f  Level: %d", w.Combo, w.Level)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

func (g *Game) renderBlocks(dst *core.Screen, v viewport) {
	for _, b := range g.world.Blocks {
		if b.Destroyed {
			continue
		}
		x, y, w, h := v.span(b.Rect())
		// Leave a one-cell gap between neighbours when there is room
		if w > 2 {
			w--
		}
		dst.FillRect(x, y, w, h, BlockChar, b.Color)
	}
}

func (g *Game) renderParticles(dst *core.Screen, v viewport) {
	for _, p := range g.world.Particles {
		x, y := v.cell(p.Pos)
		c := p.Color
		if p.MaxLife > 0 && p.Life/p.MaxLife < 0.4 {
			c = core.ColorGray
		}
		dst.SetColored(x, y, ParticleChar, c)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	x, y, w, _ := v.span(g.world.Paddle.Rect())
	for i := range w {
		dst.SetColored(x+i, y, PaddleChar, core.ColorBrightCyan)
	}
}

func (g *Game) renderBall(dst *core.Screen, v viewport) {
	if g.world.Status == StatusMenu {
		return
	}
	for _, p := range g.world.Ball.Trail {
		x, y := v.cell(p)
		dst.SetColored(x, y, TrailChar, core.ColorGray)
	}
	x, y := v.cell(g.world.Ball.Pos)
	dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
}

func (g *Game) renderOverlay(dst *core.Screen) {
	w := g.world
	switch w.Status {
	case StatusMenu:
		g.drawCenteredBox(dst, "BRICKBURST", "Press SPACE to start")
	case StatusPaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StatusLevelComplete:
		g.drawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEAR", w.Level), "Press SPACE for next level")
	case StatusGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R for menu", w.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))

	boxW := max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}

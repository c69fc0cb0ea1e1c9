// Package breakout implements the Brickburst simulation: ball and paddle
// physics, block layout, particle effects, the combo multiplier and the
// level/life state machine.
//
// The simulation is a pure transition function. Tick and ApplyIntent take a
// World by value and return the next World plus the events it emitted; all
// randomness comes from an injected *rand.Rand. Game wraps this with an intent
// queue, high score persistence and rendering.
package breakout

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

// Status is the game mode. StatusMenu is initial.
type Status string

const (
	StatusMenu          Status = "menu"
	StatusPlaying       Status = "playing"
	StatusPaused        Status = "paused"
	StatusLevelComplete Status = "levelComplete"
	StatusGameOver      Status = "gameOver"
)

// World is the complete simulation state. Slices are never mutated in place by
// Tick or ApplyIntent, so a World value can be kept as a snapshot.
type World struct {
	Width, Height float64 // Canvas size in playfield units

	Status    Status
	Score     int
	Level     int
	Lives     int
	Combo     float64 // Score multiplier in [1, combo.max]
	Ball      Ball
	Paddle    Paddle
	Blocks    []Block
	Particles []Particle

	prevPaddleX    float64
	nextParticleID int
	cfg            config.BreakoutConfig
}

// NewWorld returns a world in the menu state for the given canvas size.
func NewWorld(cfg config.BreakoutConfig, width, height float64) World {
	w := World{
		Width:  width,
		Height: height,
		Status: StatusMenu,
		Level:  cfg.Gameplay.StartLevel,
		Lives:  cfg.Gameplay.Lives,
		Combo:  1,
		Blocks: []Block{},
		cfg:    cfg,
	}
	w.Paddle = newPaddle(cfg, width, height)
	w.prevPaddleX = w.Paddle.Pos.X
	w.Ball = newBall(cfg, w.Paddle, width, w.Level)
	return w
}

// Config returns the configuration the world was built with.
func (w World) Config() config.BreakoutConfig {
	return w.cfg
}

// BlocksRemaining counts blocks not yet destroyed.
func (w World) BlocksRemaining() int {
	n := 0
	for _, b := range w.Blocks {
		if !b.Destroyed {
			n++
		}
	}
	return n
}

// LevelSpeed returns the launch speed for a level.
func LevelSpeed(cfg config.BreakoutConfig, level int) float64 {
	return cfg.Physics.BaseSpeed + float64(level)*cfg.Physics.SpeedIncrement
}

func paddleWidth(cfg config.BreakoutConfig, canvasW float64) float64 {
	if canvasW < cfg.Layout.MobileThreshold {
		return cfg.Paddle.MobileWidth
	}
	return cfg.Paddle.Width
}

// newPaddle centers a fresh paddle near the bottom edge.
func newPaddle(cfg config.BreakoutConfig, canvasW, canvasH float64) Paddle {
	width := paddleWidth(cfg, canvasW)
	return Paddle{
		Pos:    core.V(math.Max(0, (canvasW-width)/2), canvasH-cfg.Paddle.BottomOffset),
		Width:  width,
		Height: cfg.Paddle.Height,
	}
}

// newBall places a fresh ball above the paddle, launched at the level speed.
func newBall(cfg config.BreakoutConfig, p Paddle, canvasW float64, level int) Ball {
	dir := core.V(cfg.Physics.LaunchX, cfg.Physics.LaunchY)
	if l := dir.Len(); l > 0 {
		dir = dir.Scale(1 / l)
	}
	return Ball{
		Pos:    core.V(canvasW/2, p.Pos.Y-cfg.Physics.SpawnGap),
		Vel:    dir.Scale(LevelSpeed(cfg, level)),
		Radius: cfg.Physics.BallRadius,
	}
}

// enterPlaying starts the current level: fresh blocks, ball and paddle,
// combo reset and particles cleared.
func enterPlaying(w World) (World, []Event) {
	w.Blocks = LayoutBlocks(w.cfg.Layout, w.Width, w.Level)
	w.Paddle = newPaddle(w.cfg, w.Width, w.Height)
	w.prevPaddleX = w.Paddle.Pos.X
	w.Ball = newBall(w.cfg, w.Paddle, w.Width, w.Level)
	w.Combo = 1
	w.Particles = nil
	w.Status = StatusPlaying
	return w, []Event{{Cue: CueGameStart}}
}

// Resize changes the canvas size. The paddle is re-anchored to the bottom and
// re-clamped horizontally; blocks keep their positions until the next level.
func Resize(w World, width, height float64) World {
	if !validSize(width) || !validSize(height) {
		return w
	}
	w.Width = width
	w.Height = height
	w.Paddle.Pos.Y = height - w.cfg.Paddle.BottomOffset
	w.Paddle.Pos.X = core.ClampF(w.Paddle.Pos.X, 0, width-w.Paddle.Width)
	w.prevPaddleX = w.Paddle.Pos.X
	if w.Status == StatusMenu {
		w.Paddle = newPaddle(w.cfg, width, height)
		w.prevPaddleX = w.Paddle.Pos.X
		w.Ball = newBall(w.cfg, w.Paddle, width, w.Level)
	}
	return w
}

// validSize reports whether v is a usable canvas dimension.
func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Tick advances the world by dt seconds. It only runs while playing; in any
// other status the world is returned unchanged. dt is capped at the configured
// maximum step.
func Tick(w World, dt float64, rng *rand.Rand) (World, []Event) {
	if w.Status != StatusPlaying || dt <= 0 {
		return w, nil
	}
	dt = math.Min(dt, w.cfg.Physics.MaxStep)

	var events []Event

	// Paddle velocity from displacement since the last tick
	w.Paddle.Vel = core.V((w.Paddle.Pos.X-w.prevPaddleX)/dt, 0)
	w.prevPaddleX = w.Paddle.Pos.X

	ball, bounced := IntegrateBall(w.Ball, w.Width, dt)
	if bounced {
		events = append(events, Event{Cue: CueWallBounce})
	}

	movingDown := ball.Vel.Y > 0
	ball, deflected := PaddleDeflect(ball, w.Paddle)
	if deflected && movingDown {
		events = append(events, Event{Cue: CuePaddleHit})
	}

	var (
		blocks   []Block
		spawned  []Particle
		hits     int
		gained   int
		nextPart = w.nextParticleID
	)
	for i, b := range w.Blocks {
		if b.Destroyed {
			continue
		}
		rect := b.Rect()
		if !CircleRectOverlap(ball.Pos, ball.Radius, rect) {
			continue
		}
		if blocks == nil {
			blocks = make([]Block, len(w.Blocks))
			copy(blocks, w.Blocks)
		}
		ball.Vel = reflect(ball.Vel, ImpactSide(ball.Pos, ball.Radius, rect))
		blocks[i].Destroyed = true
		hits++

		center := rect.Center()
		burst := BurstParticles(center, b.Color, w.cfg.Particles, rng, nextPart)
		nextPart += len(burst)
		spawned = append(spawned, burst...)

		gained += ScoreFor(b.Points, w.Combo)
		events = append(events, Event{Cue: CueBlockHit, Frequency: blockHitFrequency(center.Y, w.Height)})
	}
	if blocks != nil {
		w.Blocks = blocks
	}
	w.Ball = ball
	w.Score += gained
	w.nextParticleID = nextPart

	if hits > 0 {
		w.Combo = math.Min(w.Combo+w.cfg.Combo.Step, w.cfg.Combo.Max)
	} else {
		w.Combo = math.Max(w.Combo-dt*w.cfg.Combo.DecayRate, 1)
	}

	pool := make([]Particle, 0, len(w.Particles)+len(spawned))
	pool = append(pool, w.Particles...)
	pool = append(pool, spawned...)
	w.Particles = AdvanceParticles(pool, dt, w.cfg.Particles)

	if w.BlocksRemaining() == 0 {
		w.Status = StatusLevelComplete
		events = append(events, Event{Cue: CueLevelComplete})
		return w, events
	}

	if w.Ball.Pos.Y > w.Height {
		w.Lives--
		if w.Lives <= 0 {
			w.Lives = 0
			w.Status = StatusGameOver
			events = append(events, Event{Cue: CueGameOver})
			return w, events
		}
		w.Ball = newBall(w.cfg, w.Paddle, w.Width, w.Level)
		events = append(events, Event{Cue: CueLifeLost})
	}

	return w, events
}

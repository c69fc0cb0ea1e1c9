package breakout

import (
	"math"

	"github.com/vovakirdan/brickburst/internal/core"
)

// Snapshot is a read-only, serializable copy of the game state handed to
// presentation layers after each step.
type Snapshot struct {
	Status          Status  `json:"status" msgpack:"status"`
	Score           int     `json:"score" msgpack:"score"`
	HighScore       int     `json:"highScore" msgpack:"highScore"`
	Level           int     `json:"level" msgpack:"level"`
	Lives           int     `json:"lives" msgpack:"lives"`
	Combo           float64 `json:"combo" msgpack:"combo"`
	BlocksRemaining int     `json:"blocksRemaining" msgpack:"blocksRemaining"`
	Width           float64 `json:"width" msgpack:"width"`
	Height          float64 `json:"height" msgpack:"height"`

	Ball      BallState       `json:"ball" msgpack:"ball"`
	Paddle    PaddleState     `json:"paddle" msgpack:"paddle"`
	Blocks    []BlockState    `json:"blocks" msgpack:"blocks"`
	Particles []ParticleState `json:"particles" msgpack:"particles"`
}

// BallState is the serializable form of Ball.
type BallState struct {
	Pos    core.Vec2   `json:"pos" msgpack:"pos"`
	Vel    core.Vec2   `json:"vel" msgpack:"vel"`
	Radius float64     `json:"radius" msgpack:"radius"`
	Trail  []core.Vec2 `json:"trail" msgpack:"trail"`
}

// PaddleState is the serializable form of Paddle.
type PaddleState struct {
	Pos    core.Vec2 `json:"pos" msgpack:"pos"`
	Width  float64   `json:"width" msgpack:"width"`
	Height float64   `json:"height" msgpack:"height"`
	Vel    core.Vec2 `json:"vel" msgpack:"vel"`
}

// BlockState is the serializable form of Block. Color is a hex string.
type BlockState struct {
	ID        int       `json:"id" msgpack:"id"`
	Pos       core.Vec2 `json:"pos" msgpack:"pos"`
	Width     float64   `json:"width" msgpack:"width"`
	Height    float64   `json:"height" msgpack:"height"`
	Color     string    `json:"color" msgpack:"color"`
	Destroyed bool      `json:"destroyed" msgpack:"destroyed"`
	Points    int       `json:"points" msgpack:"points"`
}

// ParticleState is the serializable form of Particle.
type ParticleState struct {
	ID      int       `json:"id" msgpack:"id"`
	Pos     core.Vec2 `json:"pos" msgpack:"pos"`
	Life    float64   `json:"life" msgpack:"life"`
	MaxLife float64   `json:"maxLife" msgpack:"maxLife"`
	Color   string    `json:"color" msgpack:"color"`
	Size    float64   `json:"size" msgpack:"size"`
}

// SnapshotOf copies the world into a Snapshot.
func SnapshotOf(w World, highScore int) Snapshot {
	snap := Snapshot{
		Status:          w.Status,
		Score:           w.Score,
		HighScore:       highScore,
		Level:           w.Level,
		Lives:           w.Lives,
		Combo:           w.Combo,
		BlocksRemaining: w.BlocksRemaining(),
		Width:           w.Width,
		Height:          w.Height,
		Ball: BallState{
			Pos:    w.Ball.Pos,
			Vel:    w.Ball.Vel,
			Radius: w.Ball.Radius,
			Trail:  append([]core.Vec2(nil), w.Ball.Trail...),
		},
		Paddle: PaddleState{
			Pos:    w.Paddle.Pos,
			Width:  w.Paddle.Width,
			Height: w.Paddle.Height,
			Vel:    w.Paddle.Vel,
		},
		Blocks:    make([]BlockState, len(w.Blocks)),
		Particles: make([]ParticleState, len(w.Particles)),
	}

	for i, b := range w.Blocks {
		snap.Blocks[i] = BlockState{
			ID:        b.ID,
			Pos:       b.Pos,
			Width:     b.Width,
			Height:    b.Height,
			Color:     b.Color.Hex(),
			Destroyed: b.Destroyed,
			Points:    b.Points,
		}
	}
	for i, p := range w.Particles {
		snap.Particles[i] = ParticleState{
			ID:      p.ID,
			Pos:     p.Pos,
			Life:    p.Life,
			MaxLife: p.MaxLife,
			Color:   p.Color.Hex(),
			Size:    p.Size,
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(len(snap.Status))
	for _, r := range snap.Status {
		h = h*31 + uint64(r)
	}
	ints := []int{snap.Score, snap.HighScore, snap.Level, snap.Lives, snap.BlocksRemaining}
	for _, v := range ints {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	mix := func(f float64) { h = h*31 + math.Float64bits(f) }
	mixVec := func(v core.Vec2) { mix(v.X); mix(v.Y) }

	mix(snap.Combo)
	mixVec(snap.Ball.Pos)
	mixVec(snap.Ball.Vel)
	mixVec(snap.Paddle.Pos)

	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.ID) //#nosec G115 -- hash computation
		if b.Destroyed {
			h = h*31 + 1
		}
	}
	for _, p := range snap.Particles {
		h = h*31 + uint64(p.ID) //#nosec G115 -- hash computation
		mixVec(p.Pos)
		mix(p.Life)
	}
	return h
}

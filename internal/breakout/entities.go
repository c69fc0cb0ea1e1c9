package breakout

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

// Palette is the block color cycle, indexed by (row + col) mod len(Palette).
var Palette = []core.Color{
	core.ColorBrightRed,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
}

// Block is a destructible brick. Only Destroyed ever changes after creation.
type Block struct {
	ID        int
	Pos       core.Vec2 // Top-left corner
	Width     float64
	Height    float64
	Color     core.Color
	Destroyed bool
	Points    int
}

// Rect returns the block bounds.
func (b Block) Rect() core.Rect {
	return core.NewRect(b.Pos.X, b.Pos.Y, b.Width, b.Height)
}

// Particle is a cosmetic debris fragment.
type Particle struct {
	ID      int
	Pos     core.Vec2
	Vel     core.Vec2
	Life    float64
	MaxLife float64
	Color   core.Color
	Size    float64
}

// blockSize picks the desktop or mobile size class for a canvas width.
func blockSize(layout config.LayoutConfig, canvasW float64) config.BlockSize {
	if canvasW < layout.MobileThreshold {
		return layout.Mobile
	}
	return layout.Desktop
}

// RowsForLevel returns the number of block rows generated for a level.
func RowsForLevel(layout config.LayoutConfig, level int) int {
	rows := layout.BaseRows + (level-1)*layout.RowsPerLevel
	return core.Clamp(rows, 0, layout.MaxRows)
}

// LayoutBlocks generates the block grid for a level, centered horizontally.
// A canvas too narrow for a single column yields no blocks.
func LayoutBlocks(layout config.LayoutConfig, canvasW float64, level int) []Block {
	size := blockSize(layout, canvasW)
	rows := RowsForLevel(layout, level)

	stride := size.Width + size.Padding
	usable := canvasW - 2*layout.SideMargin + size.Padding
	cols := 0
	if stride > 0 && usable > 0 {
		cols = int(math.Floor(usable / stride))
	}
	if rows <= 0 || cols <= 0 {
		return []Block{}
	}

	gridW := float64(cols)*size.Width + float64(cols-1)*size.Padding
	startX := (canvasW - gridW) / 2

	blocks := make([]Block, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			blocks = append(blocks, Block{
				ID: row*cols + col,
				Pos: core.V(
					startX+float64(col)*stride,
					layout.TopOffset+float64(row)*(size.Height+size.Padding),
				),
				Width:  size.Width,
				Height: size.Height,
				Color:  Palette[(row+col)%len(Palette)],
				Points: (rows - row) * 10,
			})
		}
	}
	return blocks
}

// BurstParticles emits a jittered radial burst of particles at origin.
// IDs are assigned sequentially starting at firstID.
func BurstParticles(origin core.Vec2, color core.Color, cfg config.ParticlesConfig, rng *rand.Rand, firstID int) []Particle {
	count := cfg.BurstCount
	if count <= 0 {
		return nil
	}

	out := make([]Particle, count)
	for i := range count {
		angle := 2*math.Pi*float64(i)/float64(count) + (rng.Float64()*2-1)*cfg.Jitter
		speed := cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
		size := cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
		out[i] = Particle{
			ID:      firstID + i,
			Pos:     origin,
			Vel:     core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Life:    1,
			MaxLife: 1,
			Color:   color,
			Size:    size,
		}
	}
	return out
}

// AdvanceParticles integrates drag, gravity and life decay over dt and drops
// particles whose life reaches zero. The input slice is not modified.
func AdvanceParticles(particles []Particle, dt float64, cfg config.ParticlesConfig) []Particle {
	out := make([]Particle, 0, len(particles))
	for _, p := range particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel.X *= cfg.Drag
		p.Vel.Y = p.Vel.Y*cfg.Drag + cfg.Gravity*dt
		p.Life -= cfg.DecayRate * dt
		if p.Life <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ScoreFor returns the points awarded for a block under the given multiplier.
func ScoreFor(points int, multiplier float64) int {
	return int(math.Floor(float64(points) * multiplier))
}

package breakout

import (
	"math"

	"github.com/vovakirdan/brickburst/internal/core"
)

// trailLength is the number of positions kept in Ball.Trail (leading + 8 history).
const trailLength = 9

// deflectSpread is the full paddle deflection range in radians (±54° from vertical).
const deflectSpread = 0.6 * math.Pi

// Side identifies which face of a rectangle a circle struck.
type Side uint8

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the side is left or right.
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Ball is the single ball in play. Trail holds recent positions, newest first.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Trail  []core.Vec2
}

// Paddle is the player's paddle. Pos is the top-left corner.
type Paddle struct {
	Pos    core.Vec2
	Width  float64
	Height float64
	Vel    core.Vec2
}

// Rect returns the paddle bounds.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.Pos.X, p.Pos.Y, p.Width, p.Height)
}

// CircleRectOverlap reports whether a circle touches or intersects a rectangle,
// using the closest point of the rectangle to the circle center.
func CircleRectOverlap(center core.Vec2, radius float64, rect core.Rect) bool {
	closest := rect.ClosestPoint(center)
	return center.Sub(closest).LenSq() <= radius*radius
}

// ImpactSide classifies which side of rect a circle hit. The center offset is
// normalized per axis by half-extent plus radius; the larger magnitude wins and
// equal magnitudes resolve to the horizontal axis.
func ImpactSide(center core.Vec2, radius float64, rect core.Rect) Side {
	c := rect.Center()
	nx := (center.X - c.X) / (rect.W/2 + radius)
	ny := (center.Y - c.Y) / (rect.H/2 + radius)

	if math.Abs(ny) > math.Abs(nx) {
		if ny < 0 {
			return SideTop
		}
		return SideBottom
	}
	if nx < 0 {
		return SideLeft
	}
	return SideRight
}

// IntegrateBall advances the ball by dt and reflects it off the left, right and
// top walls. The bottom edge is open, so the playfield height is not needed. The returned bool is true when a wall
// reversed the ball's velocity during this step.
func IntegrateBall(b Ball, width, dt float64) (Ball, bool) {
	prev := b.Pos
	next := b
	next.Pos = b.Pos.Add(b.Vel.Scale(dt))
	bounced := false

	if next.Pos.X-b.Radius < 0 {
		next.Pos.X = b.Radius
		if next.Vel.X < 0 {
			bounced = true
		}
		next.Vel.X = math.Abs(next.Vel.X)
	} else if next.Pos.X+b.Radius > width {
		next.Pos.X = width - b.Radius
		if next.Vel.X > 0 {
			bounced = true
		}
		next.Vel.X = -math.Abs(next.Vel.X)
	}

	if next.Pos.Y-b.Radius < 0 {
		next.Pos.Y = b.Radius
		if next.Vel.Y < 0 {
			bounced = true
		}
		next.Vel.Y = math.Abs(next.Vel.Y)
	}

	trail := make([]core.Vec2, 0, trailLength)
	trail = append(trail, prev)
	for _, p := range b.Trail {
		if len(trail) == trailLength {
			break
		}
		trail = append(trail, p)
	}
	next.Trail = trail

	return next, bounced
}

// PaddleDeflect bounces the ball off the paddle when they overlap. The outgoing
// angle depends only on where the ball struck across the paddle width; speed is
// preserved and the ball always leaves upward, placed just above the paddle.
// The returned bool is true when a deflection happened.
func PaddleDeflect(b Ball, p Paddle) (Ball, bool) {
	if !CircleRectOverlap(b.Pos, b.Radius, p.Rect()) {
		return b, false
	}

	u := 0.5
	if p.Width > 0 {
		u = core.ClampF((b.Pos.X-p.Pos.X)/p.Width, 0, 1)
	}
	theta := (u - 0.5) * deflectSpread
	speed := b.Vel.Len()

	b.Vel = core.V(speed*math.Sin(theta), -math.Abs(speed*math.Cos(theta)))
	b.Pos.Y = p.Pos.Y - b.Radius - 1
	return b, true
}

// reflect flips the velocity component crossing the given side.
func reflect(vel core.Vec2, side Side) core.Vec2 {
	if side.Horizontal() {
		vel.X = -vel.X
	} else {
		vel.Y = -vel.Y
	}
	return vel
}

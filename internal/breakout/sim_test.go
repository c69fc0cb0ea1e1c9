package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

const frame = 1.0 / 60

// playingWorld returns an 800x600 world that has just started level 1.
func playingWorld(t *testing.T) World {
	t.Helper()
	w, events := ApplyIntent(NewWorld(config.DefaultBreakoutConfig(), 800, 600), Intent{Kind: IntentStart})
	if w.Status != StatusPlaying {
		t.Fatalf("status = %v after start, expected playing", w.Status)
	}
	if !hasCue(events, CueGameStart) {
		t.Fatalf("start did not emit %s", CueGameStart)
	}
	return w
}

// blockAt returns a 50x20 block centered on p.
func blockAt(id int, p core.Vec2, points int) Block {
	return Block{ID: id, Pos: core.V(p.X-25, p.Y-10), Width: 50, Height: 20, Color: core.ColorRed, Points: points}
}

func hasCue(events []Event, cue Cue) bool {
	return countCue(events, cue) > 0
}

func countCue(events []Event, cue Cue) int {
	n := 0
	for _, ev := range events {
		if ev.Cue == cue {
			n++
		}
	}
	return n
}

func TestNewWorldStartsInMenu(t *testing.T) {
	w := NewWorld(config.DefaultBreakoutConfig(), 800, 600)

	if w.Status != StatusMenu {
		t.Errorf("status = %v, expected menu", w.Status)
	}
	if w.Lives != 3 || w.Level != 1 || w.Score != 0 {
		t.Errorf("lives/level/score = %d/%d/%d, expected 3/1/0", w.Lives, w.Level, w.Score)
	}
	if w.Combo != 1 {
		t.Errorf("combo = %v, expected 1", w.Combo)
	}
}

func TestStartEntersPlaying(t *testing.T) {
	w := playingWorld(t)

	if len(w.Blocks) != 30 {
		t.Errorf("blocks = %d, expected 30", len(w.Blocks))
	}
	if w.Paddle.Pos != core.V(350, 560) {
		t.Errorf("paddle at %v, expected (350,560)", w.Paddle.Pos)
	}
	if w.Ball.Pos != core.V(400, 520) {
		t.Errorf("ball at %v, expected (400,520)", w.Ball.Pos)
	}
	if speed := w.Ball.Vel.Len(); math.Abs(speed-330) > 1e-6 {
		t.Errorf("ball speed = %v, expected 330", speed)
	}
	if w.Ball.Vel.Y >= 0 {
		t.Errorf("ball should launch upward, vel = %v", w.Ball.Vel)
	}
}

func TestIntentsIgnoredInWrongStatus(t *testing.T) {
	base := NewWorld(config.DefaultBreakoutConfig(), 800, 600)

	tests := []struct {
		name   string
		status Status
		intent Intent
	}{
		{"move in menu", StatusMenu, MoveTo(100)},
		{"move in game over", StatusGameOver, MoveTo(100)},
		{"move while paused", StatusPaused, MoveTo(100)},
		{"start while playing", StatusPlaying, Intent{Kind: IntentStart}},
		{"pause in menu", StatusMenu, Intent{Kind: IntentTogglePause}},
		{"pause in game over", StatusGameOver, Intent{Kind: IntentTogglePause}},
		{"advance while playing", StatusPlaying, Intent{Kind: IntentAdvanceLevel}},
		{"restart while playing", StatusPlaying, Intent{Kind: IntentRestartToMenu}},
		{"restart in level complete", StatusLevelComplete, Intent{Kind: IntentRestartToMenu}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := base
			w.Status = tt.status
			w.Score = 120

			got, events := ApplyIntent(w, tt.intent)
			if got.Status != tt.status {
				t.Errorf("status changed to %v", got.Status)
			}
			if got.Paddle.Pos != w.Paddle.Pos {
				t.Errorf("paddle moved to %v", got.Paddle.Pos)
			}
			if got.Score != 120 || len(events) != 0 {
				t.Errorf("score=%d events=%v, expected no effect", got.Score, events)
			}
		})
	}
}

func TestTogglePause(t *testing.T) {
	w := playingWorld(t)

	w, _ = ApplyIntent(w, Intent{Kind: IntentTogglePause})
	if w.Status != StatusPaused {
		t.Fatalf("status = %v, expected paused", w.Status)
	}

	before := w.Ball.Pos
	w, events := Tick(w, frame, testRNG(1))
	if w.Ball.Pos != before || len(events) != 0 {
		t.Error("tick ran while paused")
	}

	w, _ = ApplyIntent(w, Intent{Kind: IntentTogglePause})
	if w.Status != StatusPlaying {
		t.Errorf("status = %v, expected playing", w.Status)
	}
}

func TestMovePaddleClamped(t *testing.T) {
	w := playingWorld(t)

	tests := []struct {
		x     float64
		left  float64
		label string
	}{
		{400, 350, "centered on pointer"},
		{-100, 0, "clamped left"},
		{10000, 700, "clamped right"},
	}

	for _, tt := range tests {
		got, _ := ApplyIntent(w, MoveTo(tt.x))
		if got.Paddle.Pos.X != tt.left {
			t.Errorf("%s: paddle x = %v, expected %v", tt.label, got.Paddle.Pos.X, tt.left)
		}
	}
}

func TestPaddleVelocityFromDisplacement(t *testing.T) {
	w := playingWorld(t)
	w, _ = ApplyIntent(w, MoveTo(500)) // left edge 350 -> 450

	w, _ = Tick(w, frame, testRNG(1))
	if math.Abs(w.Paddle.Vel.X-100/frame) > 1e-6 {
		t.Errorf("paddle vel = %v, expected %v", w.Paddle.Vel.X, 100/frame)
	}

	w, _ = Tick(w, frame, testRNG(1))
	if w.Paddle.Vel.X != 0 {
		t.Errorf("paddle vel = %v after standing still, expected 0", w.Paddle.Vel.X)
	}
}

func TestTickClampsDt(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(400, 300), Vel: core.V(0, -300), Radius: 8}

	w, _ = Tick(w, 2.0, testRNG(1))
	if math.Abs(w.Ball.Pos.Y-290) > 1e-6 {
		t.Errorf("ball y = %v, expected 290 after a clamped 1/30 s step", w.Ball.Pos.Y)
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(400, 300), Vel: core.V(0, -60), Radius: 8}
	w.Blocks = []Block{blockAt(0, core.V(400, 300), 10), blockAt(1, core.V(700, 100), 10)}

	next, _ := Tick(w, frame, testRNG(1))
	if !next.Blocks[0].Destroyed {
		t.Fatal("expected block 0 destroyed")
	}
	if w.Blocks[0].Destroyed {
		t.Error("tick mutated the previous world's blocks")
	}
}

func TestBlockHit(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(400, 300), Vel: core.V(0, -60), Radius: 8}
	w.Blocks = []Block{blockAt(0, core.V(400, 300), 30), blockAt(1, core.V(700, 100), 10)}

	w, events := Tick(w, frame, testRNG(1))

	if w.Score != 30 {
		t.Errorf("score = %d, expected 30", w.Score)
	}
	if w.Ball.Vel.Y != 60 {
		t.Errorf("vel.y = %v, expected flip to 60", w.Ball.Vel.Y)
	}
	if len(w.Particles) != 8 {
		t.Errorf("particles = %d, expected 8", len(w.Particles))
	}
	if countCue(events, CueBlockHit) != 1 {
		t.Fatalf("events = %v, expected one block hit", events)
	}
	for _, ev := range events {
		if ev.Cue == CueBlockHit && math.Abs(ev.Frequency-500) > eps {
			t.Errorf("frequency = %v, expected 500 for a block centered at y=300", ev.Frequency)
		}
	}
	if math.Abs(w.Combo-1.1) > eps {
		t.Errorf("combo = %v, expected 1.1", w.Combo)
	}
}

func TestDestroyAllBlocksCompletesLevel(t *testing.T) {
	w := playingWorld(t)
	next := w.Ball.Pos.Add(w.Ball.Vel.Scale(frame))
	w.Blocks = []Block{blockAt(0, next, 10), blockAt(1, next, 10)}

	w, events := Tick(w, frame, testRNG(1))

	if w.Status != StatusLevelComplete {
		t.Fatalf("status = %v, expected levelComplete", w.Status)
	}
	if w.BlocksRemaining() != 0 {
		t.Errorf("blocks remaining = %d, expected 0", w.BlocksRemaining())
	}
	if countCue(events, CueBlockHit) != 2 {
		t.Errorf("expected both overlapping blocks hit in one tick, events = %v", events)
	}
	if !hasCue(events, CueLevelComplete) {
		t.Error("missing level-complete cue")
	}
	if w.Score != 20 {
		t.Errorf("score = %d, expected 20", w.Score)
	}
}

func TestEmptyLayoutClearsImmediately(t *testing.T) {
	w, _ := ApplyIntent(NewWorld(config.DefaultBreakoutConfig(), 20, 600), Intent{Kind: IntentStart})
	if len(w.Blocks) != 0 {
		t.Fatalf("expected no blocks on a 20 wide canvas, got %d", len(w.Blocks))
	}

	w, events := Tick(w, frame, testRNG(1))
	if w.Status != StatusLevelComplete {
		t.Errorf("status = %v, expected levelComplete", w.Status)
	}
	if !hasCue(events, CueLevelComplete) {
		t.Error("missing level-complete cue")
	}
}

func TestAdvanceLevel(t *testing.T) {
	w := playingWorld(t)
	w.Status = StatusLevelComplete
	w.Score = 90

	w, events := ApplyIntent(w, Intent{Kind: IntentAdvanceLevel})

	if w.Status != StatusPlaying || w.Level != 2 {
		t.Fatalf("status/level = %v/%d, expected playing/2", w.Status, w.Level)
	}
	if len(w.Blocks) != 40 {
		t.Errorf("blocks = %d, expected 40 for level 2", len(w.Blocks))
	}
	if speed := w.Ball.Vel.Len(); math.Abs(speed-360) > 1e-6 {
		t.Errorf("ball speed = %v, expected 360", speed)
	}
	if w.Score != 90 {
		t.Errorf("score = %d, expected to carry over 90", w.Score)
	}
	if !hasCue(events, CueGameStart) {
		t.Error("missing game-start cue")
	}
}

func TestThreeMissesEndGame(t *testing.T) {
	w := playingWorld(t)

	for i := range 3 {
		w.Ball = Ball{Pos: core.V(400, 650), Vel: core.V(0, 300), Radius: 8}

		var events []Event
		w, events = Tick(w, frame, testRNG(1))

		if i < 2 {
			if w.Status != StatusPlaying {
				t.Fatalf("miss %d: status = %v, expected playing", i+1, w.Status)
			}
			if w.Lives != 2-i {
				t.Errorf("miss %d: lives = %d, expected %d", i+1, w.Lives, 2-i)
			}
			if !hasCue(events, CueLifeLost) {
				t.Errorf("miss %d: missing life-lost cue", i+1)
			}
			if w.Ball.Pos != core.V(400, 520) {
				t.Errorf("miss %d: ball respawned at %v", i+1, w.Ball.Pos)
			}
		}
	}

	if w.Status != StatusGameOver {
		t.Fatalf("status = %v, expected gameOver", w.Status)
	}
	if w.Lives != 0 {
		t.Errorf("lives = %d, expected 0", w.Lives)
	}
}

func TestGameOverCue(t *testing.T) {
	w := playingWorld(t)
	w.Lives = 1
	w.Ball = Ball{Pos: core.V(400, 650), Vel: core.V(0, 300), Radius: 8}

	w, events := Tick(w, frame, testRNG(1))
	if w.Status != StatusGameOver || !hasCue(events, CueGameOver) {
		t.Errorf("status = %v events = %v, expected gameOver with cue", w.Status, events)
	}
	if hasCue(events, CueLifeLost) {
		t.Error("final miss should emit game-over only")
	}
}

func TestLevelCompleteBeatsLifeLoss(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(400, 650), Vel: core.V(0, 60), Radius: 8}
	w.Blocks = []Block{blockAt(0, core.V(400, 651), 10)}

	w, events := Tick(w, frame, testRNG(1))

	if w.Status != StatusLevelComplete {
		t.Errorf("status = %v, expected levelComplete", w.Status)
	}
	if w.Lives != 3 {
		t.Errorf("lives = %d, expected 3", w.Lives)
	}
	if hasCue(events, CueLifeLost) {
		t.Error("life lost alongside level complete")
	}
}

func TestRestartToMenu(t *testing.T) {
	w := playingWorld(t)
	w.Status = StatusGameOver
	w.Score, w.Level, w.Lives = 870, 4, 0

	w, _ = ApplyIntent(w, Intent{Kind: IntentRestartToMenu})

	if w.Status != StatusMenu {
		t.Errorf("status = %v, expected menu", w.Status)
	}
	if w.Score != 0 || w.Level != 1 || w.Lives != 3 {
		t.Errorf("score/level/lives = %d/%d/%d, expected 0/1/3", w.Score, w.Level, w.Lives)
	}
}

func TestComboRisesAndDecays(t *testing.T) {
	w := playingWorld(t)
	far := blockAt(99, core.V(700, 100), 10)
	prev := w.Combo

	for i := range 30 {
		w.Blocks = []Block{blockAt(i, w.Ball.Pos, 10), far}
		w, _ = Tick(w, frame, testRNG(uint64(i)))

		if w.Combo < prev {
			t.Fatalf("tick %d: combo fell from %v to %v during hits", i, prev, w.Combo)
		}
		if w.Combo > 3 {
			t.Fatalf("tick %d: combo %v above 3", i, w.Combo)
		}
		if i == 4 && math.Abs(w.Combo-1.5) > 1e-9 {
			t.Errorf("combo after five hits = %v, expected 1.5", w.Combo)
		}
		prev = w.Combo
	}
	if w.Combo != 3 {
		t.Errorf("combo = %v, expected cap of 3", w.Combo)
	}

	// Park the ball away from blocks and let the multiplier decay
	w.Ball = Ball{Pos: core.V(400, 300), Radius: 8}
	w.Blocks = []Block{far}
	for i := range 300 {
		w, _ = Tick(w, frame, testRNG(1))
		if w.Combo > prev {
			t.Fatalf("tick %d: combo rose from %v to %v while idle", i, prev, w.Combo)
		}
		if w.Combo < 1 {
			t.Fatalf("tick %d: combo %v below 1", i, w.Combo)
		}
		prev = w.Combo
	}
	if w.Combo != 1 {
		t.Errorf("combo = %v, expected decay to 1", w.Combo)
	}
}

func TestWallBounceCue(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(795, 300), Vel: core.V(300, 0), Radius: 8}

	w, events := Tick(w, frame, testRNG(1))
	if !hasCue(events, CueWallBounce) {
		t.Errorf("events = %v, expected wall bounce", events)
	}
	if w.Ball.Vel.X >= 0 {
		t.Errorf("vel.x = %v, expected leftward", w.Ball.Vel.X)
	}
}

func TestPaddleHitCue(t *testing.T) {
	w := playingWorld(t)
	w.Ball = Ball{Pos: core.V(400, 550), Vel: core.V(0, 300), Radius: 8}

	w, events := Tick(w, frame, testRNG(1))
	if !hasCue(events, CuePaddleHit) {
		t.Errorf("events = %v, expected paddle hit", events)
	}
	if w.Ball.Vel.Y >= 0 || w.Ball.Vel.X != 0 {
		t.Errorf("vel = %v, expected straight up", w.Ball.Vel)
	}
}

func TestResizeReanchorsPaddle(t *testing.T) {
	w := playingWorld(t)
	w, _ = ApplyIntent(w, MoveTo(800))

	w = Resize(w, 500, 400)
	if w.Paddle.Pos.Y != 360 {
		t.Errorf("paddle y = %v, expected 360", w.Paddle.Pos.Y)
	}
	if w.Paddle.Pos.X != 400 {
		t.Errorf("paddle x = %v, expected clamp to 400", w.Paddle.Pos.X)
	}
	if len(w.Blocks) != 30 {
		t.Errorf("blocks regenerated on resize: %d", len(w.Blocks))
	}
}

func TestResizeIgnoresUnusableSizes(t *testing.T) {
	sizes := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 400},
		{"negative height", 500, -1},
		{"nan width", math.NaN(), 400},
		{"nan both", math.NaN(), math.NaN()},
		{"inf width", math.Inf(1), 400},
		{"inf height", 500, math.Inf(1)},
	}
	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			w := Resize(playingWorld(t), tt.w, tt.h)
			if w.Width != 800 || w.Height != 600 {
				t.Errorf("canvas = %vx%v, expected 800x600 unchanged", w.Width, w.Height)
			}
		})
	}
}

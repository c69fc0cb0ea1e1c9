package breakout

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/brickburst/internal/config"
	"github.com/vovakirdan/brickburst/internal/core"
)

type fakeStore struct {
	best    int
	saved   []int
	loadErr error
	saveErr error
}

func (s *fakeStore) HighScore() (int, error) {
	return s.best, s.loadErr
}

func (s *fakeStore) SaveHighScore(score int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, score)
	s.best = score
	return nil
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) Cue(ev Event) {
	r.events = append(r.events, ev)
}

func newTestGame(opts ...Option) *Game {
	return New(config.DefaultBreakoutConfig(), 800, 600, 12345, opts...)
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame()
		g.Submit(Intent{Kind: IntentStart})
		for i := range 900 {
			// Track the ball with the paddle, slightly offset so hits vary
			w := g.World()
			g.Submit(MoveTo(w.Ball.Pos.X + float64(i%7-3)*4))
			g.Step(frame)
			if g.Status() != StatusPlaying {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}

func TestGameIntentOrder(t *testing.T) {
	g := newTestGame()
	g.Submit(Intent{Kind: IntentTogglePause}) // ignored in menu
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)
	if g.Status() != StatusPlaying {
		t.Fatalf("status = %v, expected playing", g.Status())
	}

	g.Submit(Intent{Kind: IntentTogglePause})
	g.Submit(MoveTo(100)) // ignored once paused
	before := g.World().Paddle.Pos
	g.Step(frame)
	if g.Status() != StatusPaused {
		t.Errorf("status = %v, expected paused", g.Status())
	}
	if g.World().Paddle.Pos != before {
		t.Error("paddle moved while paused")
	}
}

func TestGameLoadsHighScore(t *testing.T) {
	g := newTestGame(WithStore(&fakeStore{best: 120}))

	if g.HighScore() != 120 {
		t.Errorf("high score = %d, expected 120", g.HighScore())
	}
	if g.Snapshot().HighScore != 120 {
		t.Errorf("snapshot high score = %d, expected 120", g.Snapshot().HighScore)
	}
}

func TestGameLoadErrorKeepsPlaying(t *testing.T) {
	g := newTestGame(WithStore(&fakeStore{loadErr: errors.New("disk gone")}))

	if g.StoreErr() == nil {
		t.Fatal("expected load error to be reported")
	}
	if g.HighScore() != 0 {
		t.Errorf("high score = %d, expected 0", g.HighScore())
	}

	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)
	if g.Status() != StatusPlaying {
		t.Errorf("status = %v, expected playing", g.Status())
	}
}

func TestGameDefersSaveWhilePlaying(t *testing.T) {
	store := &fakeStore{best: 15}
	g := newTestGame(WithStore(store))
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)

	// Two blocks in the ball's path, one far away so the level continues
	w := g.World()
	next := w.Ball.Pos.Add(w.Ball.Vel.Scale(frame))
	g.world.Blocks = []Block{blockAt(0, next, 10), blockAt(1, next, 10), blockAt(2, core.V(700, 100), 10)}
	g.Step(frame)

	if g.HighScore() != 20 {
		t.Errorf("high score = %d, expected 20", g.HighScore())
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved = %v while playing, expected no writes", store.saved)
	}

	if err := g.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := g.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(store.saved) != 1 || store.saved[0] != 20 {
		t.Errorf("saved = %v, expected a single save of 20", store.saved)
	}
}

func TestGameSavesOnLevelComplete(t *testing.T) {
	store := &fakeStore{best: 15}
	g := newTestGame(WithStore(store))
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)

	w := g.World()
	next := w.Ball.Pos.Add(w.Ball.Vel.Scale(frame))
	g.world.Blocks = []Block{blockAt(0, next, 10), blockAt(1, next, 10)}
	g.Step(frame)

	if g.Status() != StatusLevelComplete {
		t.Fatalf("status = %v, expected levelComplete", g.Status())
	}
	if len(store.saved) != 1 || store.saved[0] != 20 {
		t.Fatalf("saved = %v, expected a single save of 20", store.saved)
	}

	g.Step(frame)
	if len(store.saved) != 1 {
		t.Errorf("saved again without a new best: %v", store.saved)
	}
}

func TestGameSavesOnGameOver(t *testing.T) {
	store := &fakeStore{}
	g := newTestGame(WithStore(store))
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)

	g.world.Lives = 1
	g.world.Score = 50
	g.world.Ball.Pos = core.V(10, 599)
	g.world.Ball.Vel = core.V(0, 300)
	g.Step(frame)

	if g.Status() != StatusGameOver {
		t.Fatalf("status = %v, expected gameOver", g.Status())
	}
	if len(store.saved) != 1 || store.saved[0] != 50 {
		t.Errorf("saved = %v, expected a single save of 50", store.saved)
	}
}

func TestGameSaveError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("read-only")}
	g := newTestGame(WithStore(store))
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)

	w := g.World()
	next := w.Ball.Pos.Add(w.Ball.Vel.Scale(frame))
	g.world.Blocks = []Block{blockAt(0, next, 10)}
	g.Step(frame)

	if !errors.Is(g.StoreErr(), store.saveErr) {
		t.Errorf("StoreErr() = %v, expected wrapped save error", g.StoreErr())
	}
	if g.HighScore() != 10 {
		t.Errorf("in-memory high score = %d, expected 10", g.HighScore())
	}
	if err := g.Flush(); !errors.Is(err, store.saveErr) {
		t.Errorf("Flush() = %v, expected wrapped save error", err)
	}
}

func TestGameCueSink(t *testing.T) {
	sink := &recordingSink{}
	g := newTestGame(WithCueSink(sink))

	g.Submit(Intent{Kind: IntentStart})
	events := g.Step(frame)

	if len(sink.events) != len(events) {
		t.Fatalf("sink got %d events, step returned %d", len(sink.events), len(events))
	}
	if !hasCue(sink.events, CueGameStart) {
		t.Errorf("sink events = %v, expected game start", sink.events)
	}
}

func TestGameResize(t *testing.T) {
	g := newTestGame()
	g.Resize(400, 300)

	w := g.World()
	if w.Width != 400 || w.Height != 300 {
		t.Errorf("canvas = %vx%v, expected 400x300", w.Width, w.Height)
	}
	if w.Paddle.Width != 80 {
		t.Errorf("paddle width = %v, expected mobile 80 after resizing in menu", w.Paddle.Width)
	}

	g.Resize(0, 300)
	if g.World().Width != 400 {
		t.Error("non-positive resize should be ignored")
	}
}

func TestGameSnapshot(t *testing.T) {
	g := newTestGame()
	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)

	snap := g.Snapshot()
	if snap.Status != StatusPlaying {
		t.Errorf("status = %v, expected playing", snap.Status)
	}
	if snap.BlocksRemaining != 30 || len(snap.Blocks) != 30 {
		t.Errorf("blocks = %d/%d, expected 30", snap.BlocksRemaining, len(snap.Blocks))
	}
	if !strings.HasPrefix(snap.Blocks[0].Color, "#") {
		t.Errorf("block color = %q, expected hex", snap.Blocks[0].Color)
	}
	if len(snap.Ball.Trail) != 1 {
		t.Errorf("trail = %d, expected 1 after one tick", len(snap.Ball.Trail))
	}

	// Snapshot data is detached from the world
	snap.Ball.Trail[0] = core.V(-1, -1)
	if g.World().Ball.Trail[0] == core.V(-1, -1) {
		t.Error("snapshot shares trail storage with the world")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(WithStore(&fakeStore{best: 250}))
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "BRICKBURST") {
		t.Errorf("menu render missing title:\n%s", out)
	}
	if !strings.Contains(screen.Row(0), "Best: 250") {
		t.Errorf("HUD = %q, expected best score", screen.Row(0))
	}

	g.Submit(Intent{Kind: IntentStart})
	g.Step(frame)
	g.Render(screen)
	out = screen.String()

	if !strings.ContainsRune(out, BlockChar) {
		t.Error("render missing blocks")
	}
	if !strings.ContainsRune(out, PaddleChar) {
		t.Error("render missing paddle")
	}
	if !strings.ContainsRune(out, BallChar) {
		t.Error("render missing ball")
	}
	if strings.Contains(out, "BRICKBURST") {
		t.Error("menu overlay still drawn while playing")
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(1, 1)
	g.Render(screen) // must not panic
}

func TestGameRenderLivesColored(t *testing.T) {
	g := newTestGame()
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	row := []rune(screen.Row(0))
	hearts := 0
	for x, r := range row {
		if r != '♥' {
			continue
		}
		hearts++
		if c := screen.GetCell(x, 0).Color; c != core.ColorBrightRed {
			t.Errorf("heart at %d has color %v, expected bright red", x, c)
		}
	}
	if hearts != 3 {
		t.Errorf("HUD shows %d hearts, expected 3: %q", hearts, screen.Row(0))
	}
}

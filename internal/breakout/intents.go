package breakout

import "github.com/vovakirdan/brickburst/internal/core"

// IntentKind identifies an input submitted to the simulation.
type IntentKind uint8

const (
	IntentMovePaddle    IntentKind = iota // X is the pointer position in canvas units
	IntentStart                           // menu -> playing
	IntentTogglePause                     // playing <-> paused
	IntentAdvanceLevel                    // levelComplete -> playing (next level)
	IntentRestartToMenu                   // gameOver -> menu
)

// String returns the intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentMovePaddle:
		return "move"
	case IntentStart:
		return "start"
	case IntentTogglePause:
		return "pause"
	case IntentAdvanceLevel:
		return "advance"
	case IntentRestartToMenu:
		return "restart"
	default:
		return "unknown"
	}
}

// Intent is an input event. X is used only by IntentMovePaddle.
type Intent struct {
	Kind IntentKind
	X    float64
}

// MoveTo returns an intent centering the paddle on x.
func MoveTo(x float64) Intent {
	return Intent{Kind: IntentMovePaddle, X: x}
}

// ApplyIntent applies a single intent to the world. Intents that the current
// status does not accept are ignored and the world is returned unchanged.
func ApplyIntent(w World, in Intent) (World, []Event) {
	switch in.Kind {
	case IntentMovePaddle:
		if w.Status != StatusPlaying {
			return w, nil
		}
		w.Paddle.Pos.X = core.ClampF(in.X-w.Paddle.Width/2, 0, w.Width-w.Paddle.Width)
		return w, nil

	case IntentStart:
		if w.Status != StatusMenu {
			return w, nil
		}
		return enterPlaying(w)

	case IntentTogglePause:
		switch w.Status {
		case StatusPlaying:
			w.Status = StatusPaused
		case StatusPaused:
			w.Status = StatusPlaying
		}
		return w, nil

	case IntentAdvanceLevel:
		if w.Status != StatusLevelComplete {
			return w, nil
		}
		w.Level++
		return enterPlaying(w)

	case IntentRestartToMenu:
		if w.Status != StatusGameOver {
			return w, nil
		}
		w.Score = 0
		w.Level = w.cfg.Gameplay.StartLevel
		w.Lives = w.cfg.Gameplay.Lives
		w.Status = StatusMenu
		return w, nil
	}
	return w, nil
}

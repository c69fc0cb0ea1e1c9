package breakout

// Cue names a simulation event the audio and presentation layers react to.
type Cue string

const (
	CueBlockHit      Cue = "block-hit"
	CuePaddleHit     Cue = "paddle-hit"
	CueWallBounce    Cue = "wall-bounce"
	CueLifeLost      Cue = "life-lost"
	CueLevelComplete Cue = "level-complete"
	CueGameOver      Cue = "game-over"
	CueGameStart     Cue = "game-start"
)

// Event is a single cue emitted by a tick or an intent.
// Frequency is set only for CueBlockHit.
type Event struct {
	Cue       Cue     `json:"cue" msgpack:"cue"`
	Frequency float64 `json:"frequency,omitempty" msgpack:"frequency,omitempty"`
}

// CueSink receives events after each step. Implementations must not block.
type CueSink interface {
	Cue(ev Event)
}

// blockHitFrequency maps a block's vertical center to a tone frequency:
// 200 Hz at the top of the playfield rising to 800 Hz at the bottom.
func blockHitFrequency(centerY, canvasH float64) float64 {
	if canvasH <= 0 {
		return 200
	}
	return 200 + 600*(centerY/canvasH)
}

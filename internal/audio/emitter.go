// Package audio turns simulation cues into short synthesized tones.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/brickburst/internal/breakout"
	"github.com/vovakirdan/brickburst/internal/config"
)

// Tone is a fixed-pitch beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

// tones maps each cue to its tone. Block hits take their pitch from the event.
var tones = map[breakout.Cue]Tone{
	breakout.CueBlockHit:      {Freq: 0, Duration: 50 * time.Millisecond},
	breakout.CuePaddleHit:     {Freq: 440, Duration: 60 * time.Millisecond},
	breakout.CueWallBounce:    {Freq: 300, Duration: 40 * time.Millisecond},
	breakout.CueLifeLost:      {Freq: 150, Duration: 300 * time.Millisecond},
	breakout.CueLevelComplete: {Freq: 880, Duration: 250 * time.Millisecond},
	breakout.CueGameOver:      {Freq: 110, Duration: 500 * time.Millisecond},
	breakout.CueGameStart:     {Freq: 660, Duration: 120 * time.Millisecond},
}

// ToneFor returns the tone for an event, or false for unknown cues.
func ToneFor(ev breakout.Event) (Tone, bool) {
	t, ok := tones[ev.Cue]
	if !ok {
		return Tone{}, false
	}
	if ev.Cue == breakout.CueBlockHit {
		t.Freq = ev.Frequency
	}
	return t, t.Freq > 0
}

// Player accepts finite streamers and plays them without blocking.
type Player interface {
	Play(s beep.Streamer)
}

// mixerPlayer adds streamers to a mixer that the speaker is draining.
type mixerPlayer struct {
	mixer *beep.Mixer
}

func (p mixerPlayer) Play(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Emitter is a breakout.CueSink that plays a tone per event.
type Emitter struct {
	rate   beep.SampleRate
	volume float64
	player Player
}

// New initializes the speaker and returns an emitter playing through it.
func New(cfg config.AudioConfig) (*Emitter, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", cfg.SampleRate)
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return NewWithPlayer(rate, cfg.Volume, mixerPlayer{mixer: mixer}), nil
}

// NewWithPlayer returns an emitter that hands tones to p.
func NewWithPlayer(rate beep.SampleRate, volume float64, p Player) *Emitter {
	return &Emitter{rate: rate, volume: volume, player: p}
}

// Cue implements breakout.CueSink. Cues that cannot be synthesized are dropped.
func (e *Emitter) Cue(ev breakout.Event) {
	tone, ok := ToneFor(ev)
	if !ok {
		return
	}
	s, err := e.stream(tone)
	if err != nil {
		return
	}
	e.player.Play(s)
}

// stream builds a finite, volume-scaled sine streamer for tone.
func (e *Emitter) stream(tone Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(e.rate, tone.Freq)
	if err != nil {
		return nil, err
	}
	s := beep.Take(e.rate.N(tone.Duration), sine)
	if e.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}, nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(e.volume, 1))}, nil
}

// Close silences the emitter's speaker output.
func (e *Emitter) Close() {
	if _, ok := e.player.(mixerPlayer); ok {
		speaker.Clear()
	}
}

// Nop is a CueSink that discards every event.
type Nop struct{}

// Cue implements breakout.CueSink.
func (Nop) Cue(breakout.Event) {}

var (
	_ breakout.CueSink = (*Emitter)(nil)
	_ breakout.CueSink = Nop{}
)

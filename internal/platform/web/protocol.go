// Package web bridges browser clients to Brickburst over WebSocket.
// Each connection plays its own game; clients send intent messages and
// receive a frame with the snapshot and cue events after every tick.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/brickburst/internal/breakout"
)

// Message types accepted from clients.
const (
	MsgMove    = "move"
	MsgStart   = "start"
	MsgPause   = "pause"
	MsgRestart = "restart"
	MsgAdvance = "advance"
	MsgResize  = "resize"
)

// Message is a client input. X is used by move; W and H by resize.
type Message struct {
	Type string  `json:"type" msgpack:"type"`
	X    float64 `json:"x,omitempty" msgpack:"x,omitempty"`
	W    float64 `json:"w,omitempty" msgpack:"w,omitempty"`
	H    float64 `json:"h,omitempty" msgpack:"h,omitempty"`
}

// Intent converts a message into a simulation intent.
// Resize and unknown messages return false.
func (m Message) Intent() (breakout.Intent, bool) {
	switch m.Type {
	case MsgMove:
		return breakout.MoveTo(m.X), true
	case MsgStart:
		return breakout.Intent{Kind: breakout.IntentStart}, true
	case MsgPause:
		return breakout.Intent{Kind: breakout.IntentTogglePause}, true
	case MsgRestart:
		return breakout.Intent{Kind: breakout.IntentRestartToMenu}, true
	case MsgAdvance:
		return breakout.Intent{Kind: breakout.IntentAdvanceLevel}, true
	}
	return breakout.Intent{}, false
}

// Frame is sent to the client after every tick.
type Frame struct {
	Snapshot breakout.Snapshot `json:"snapshot" msgpack:"snapshot"`
	Events   []breakout.Event  `json:"events" msgpack:"events"`
}

// Codec encodes frames and decodes messages for one wire format.
type Codec interface {
	Name() string
	MessageType() int // websocket.TextMessage or websocket.BinaryMessage
	EncodeFrame(f Frame) ([]byte, error)
	DecodeMessage(data []byte) (Message, error)
}

// CodecFor returns the codec for a query value. Empty selects JSON.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("web: unknown codec %q", name)
}

type jsonCodec struct{}

func (jsonCodec) Name() string     { return "json" }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

func (jsonCodec) EncodeFrame(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

func (jsonCodec) DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("web: decode json message: %w", err)
	}
	return m, nil
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string     { return "msgpack" }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) EncodeFrame(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

// DecodeMessage accepts msgpack, and JSON text so browsers can send either.
func (msgpackCodec) DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		if jsonErr := json.Unmarshal(data, &m); jsonErr != nil {
			return Message{}, fmt.Errorf("web: decode msgpack message: %w", err)
		}
	}
	return m, nil
}

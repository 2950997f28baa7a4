package net

import (
	"encoding/json"
	"fmt"

	"localsketch/internal/state"
)

// Message types carried on the mirror stream.
const (
	// TypePoint carries one newly recorded point.
	TypePoint = "point"
	// TypeClear tells viewers to empty their mirror.
	TypeClear = "clear"
	// TypeSnapshot carries the whole buffer, sent once on join.
	TypeSnapshot = "snapshot"
)

// Message is one frame of the mirror stream. The host sends, viewers
// only receive.
type Message struct {
	Type   string        `json:"type"`
	X      float32       `json:"x"`
	Y      float32       `json:"y"`
	Drag   bool          `json:"drag"`
	Points []state.Point `json:"points,omitempty"`
}

// PointMessage wraps a single recorded point.
func PointMessage(p state.Point) Message {
	return Message{Type: TypePoint, X: p.X, Y: p.Y, Drag: p.Drag}
}

// ClearMessage tells viewers to empty their mirror.
func ClearMessage() Message {
	return Message{Type: TypeClear}
}

// SnapshotMessage wraps the whole buffer for a newly joined viewer.
func SnapshotMessage(points []state.Point) Message {
	return Message{Type: TypeSnapshot, Points: points}
}

// Point returns the point carried by a TypePoint message.
func (m Message) Point() state.Point {
	return state.Point{X: m.X, Y: m.Y, Drag: m.Drag}
}

func (m Message) encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s message: %w", m.Type, err)
	}
	return data, nil
}

func decodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("could not decode message: %w", err)
	}
	return m, nil
}

package net

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"localsketch/internal/state"
)

// Viewer connects to a shared sketch session and mirrors its contents.
// Callbacks fire on a background goroutine; wire them through fyne.Do
// when they touch the UI.
type Viewer struct {
	// OnSnapshot delivers the full sketch contents, sent once when the
	// connection is established.
	OnSnapshot func(points []state.Point)
	// OnPoint delivers each point the host records.
	OnPoint func(p state.Point)
	// OnClear fires when the host empties the sketch.
	OnClear func()
	// OnClose fires once when the connection ends, with the read error
	// that ended it.
	OnClose func(err error)

	conn *websocket.Conn
	once sync.Once
}

// Connect dials the host at addr, either "host:port" or a full ws://
// URL. It returns once the connection is established; updates are then
// delivered in the background.
func (v *Viewer) Connect(addr string) error {
	u := addr
	if !strings.Contains(u, "://") {
		u = "ws://" + addr + sharePath
	}

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	v.conn = conn

	log.Printf("[view] connected to %s", addr)
	go v.readLoop()
	return nil
}

// Close disconnects from the host. Safe to call more than once.
func (v *Viewer) Close() {
	if v.conn != nil {
		v.conn.Close()
	}
}

func (v *Viewer) readLoop() {
	for {
		_, data, err := v.conn.ReadMessage()
		if err != nil {
			v.closed(err)
			return
		}
		if err := v.handle(data); err != nil {
			log.Printf("[view] %v", err)
		}
	}
}

// handle dispatches one wire message to the matching callback.
func (v *Viewer) handle(data []byte) error {
	msg, err := decodeMessage(data)
	if err != nil {
		return err
	}

	switch msg.Type {
	case TypeSnapshot:
		if v.OnSnapshot != nil {
			v.OnSnapshot(msg.Points)
		}
	case TypePoint:
		if v.OnPoint != nil {
			v.OnPoint(msg.Point())
		}
	case TypeClear:
		if v.OnClear != nil {
			v.OnClear()
		}
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (v *Viewer) closed(err error) {
	v.once.Do(func() {
		v.conn.Close()
		log.Printf("[view] disconnected: %v", err)
		if v.OnClose != nil {
			v.OnClose(err)
		}
	})
}

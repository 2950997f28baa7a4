package net

import (
	"errors"
	"sync"
	"testing"
	"time"

	"localsketch/internal/state"
)

// fakeConn records writes in place of a real websocket connection.
type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("write failed")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	c.messages = append(c.messages, cp)
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received(t *testing.T) []Message {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]Message, 0, len(c.messages))
	for _, data := range c.messages {
		msg, err := decodeMessage(data)
		if err != nil {
			t.Fatalf("decode recorded message: %v", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestBroadcastReachesAllViewers(t *testing.T) {
	pm := NewPeerManager()
	conns := []*fakeConn{{}, {}, {}}
	for i, c := range conns {
		if err := pm.add(string(rune('a'+i)), c, nil); err != nil {
			t.Fatalf("add viewer %d: %v", i, err)
		}
	}

	pm.BroadcastPoint(state.Point{X: 3, Y: 4, Drag: true})

	for i, c := range conns {
		msgs := c.received(t)
		if len(msgs) != 1 {
			t.Fatalf("viewer %d received %d messages, expected 1", i, len(msgs))
		}
		got := msgs[0]
		if got.Type != TypePoint {
			t.Errorf("viewer %d got type %q, expected %q", i, got.Type, TypePoint)
		}
		if p := got.Point(); p.X != 3 || p.Y != 4 || !p.Drag {
			t.Errorf("viewer %d got point %+v, expected {3 4 true}", i, p)
		}
	}
}

func TestSnapshotDeliveredBeforeRegistration(t *testing.T) {
	pm := NewPeerManager()
	conn := &fakeConn{}

	points := []state.Point{{X: 1, Y: 2}, {X: 3, Y: 4, Drag: true}}
	initial, err := SnapshotMessage(points).encode()
	if err != nil {
		t.Fatalf("encode snapshot: %v", err)
	}
	if err := pm.add("v1", conn, initial); err != nil {
		t.Fatalf("add: %v", err)
	}
	pm.BroadcastClear()

	msgs := conn.received(t)
	if len(msgs) != 2 {
		t.Fatalf("received %d messages, expected snapshot then clear", len(msgs))
	}
	if msgs[0].Type != TypeSnapshot {
		t.Errorf("first message type %q, expected %q", msgs[0].Type, TypeSnapshot)
	}
	if len(msgs[0].Points) != 2 {
		t.Errorf("snapshot carried %d points, expected 2", len(msgs[0].Points))
	}
	if msgs[1].Type != TypeClear {
		t.Errorf("second message type %q, expected %q", msgs[1].Type, TypeClear)
	}
}

func TestAddFailsWhenSnapshotWriteFails(t *testing.T) {
	pm := NewPeerManager()
	conn := &fakeConn{fail: true}

	initial, err := SnapshotMessage(nil).encode()
	if err != nil {
		t.Fatalf("encode snapshot: %v", err)
	}
	if err := pm.add("v1", conn, initial); err == nil {
		t.Fatal("add succeeded despite failed snapshot write")
	}
	if pm.Count() != 0 {
		t.Errorf("count = %d after failed add, expected 0", pm.Count())
	}
}

func TestBroadcastDropsDeadViewers(t *testing.T) {
	pm := NewPeerManager()
	var counts []int
	pm.OnChange = func(n int) { counts = append(counts, n) }

	live := &fakeConn{}
	dead := &fakeConn{fail: true}
	if err := pm.add("live", live, nil); err != nil {
		t.Fatalf("add live: %v", err)
	}
	if err := pm.add("dead", dead, nil); err != nil {
		t.Fatalf("add dead: %v", err)
	}

	pm.BroadcastClear()

	if pm.Count() != 1 {
		t.Errorf("count = %d after broadcast, expected 1", pm.Count())
	}
	if !dead.closed {
		t.Error("dead viewer connection was not closed")
	}
	if live.closed {
		t.Error("live viewer connection was closed")
	}
	if len(counts) == 0 || counts[len(counts)-1] != 1 {
		t.Errorf("OnChange calls = %v, expected final count 1", counts)
	}
}

func TestRemoveClosesConnection(t *testing.T) {
	pm := NewPeerManager()
	conn := &fakeConn{}
	if err := pm.add("v1", conn, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	pm.remove("v1")

	if !conn.closed {
		t.Error("connection not closed on remove")
	}
	if pm.Count() != 0 {
		t.Errorf("count = %d after remove, expected 0", pm.Count())
	}

	// Removing an unknown viewer is a no-op.
	pm.remove("v1")
}

func TestCloseAllDisconnectsEveryViewer(t *testing.T) {
	pm := NewPeerManager()
	var last int
	pm.OnChange = func(n int) { last = n }

	conns := []*fakeConn{{}, {}}
	for i, c := range conns {
		if err := pm.add(string(rune('a'+i)), c, nil); err != nil {
			t.Fatalf("add viewer %d: %v", i, err)
		}
	}

	pm.closeAll()

	if pm.Count() != 0 {
		t.Errorf("count = %d after closeAll, expected 0", pm.Count())
	}
	for i, c := range conns {
		if !c.closed {
			t.Errorf("viewer %d connection left open", i)
		}
	}
	if last != 0 {
		t.Errorf("OnChange final count = %d, expected 0", last)
	}
}

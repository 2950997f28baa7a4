package net

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"localsketch/internal/state"
)

// writeWait bounds how long a single viewer write may block before the
// peer is considered dead.
const writeWait = 5 * time.Second

// peerConn is the subset of *websocket.Conn the manager needs.
type peerConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// PeerManager tracks connected viewers and fans sketch updates out to
// them. Writes to a websocket connection must not interleave, so all
// sends happen under the manager lock.
type PeerManager struct {
	mu    sync.RWMutex
	peers map[string]peerConn

	// OnChange, if set, is called with the viewer count after every
	// connect and disconnect. It runs outside the manager lock.
	OnChange func(count int)
}

func NewPeerManager() *PeerManager {
	return &PeerManager{peers: make(map[string]peerConn)}
}

// add registers a viewer after sending it the initial snapshot payload.
// Sending under the lock guarantees no broadcast lands between the
// snapshot and the first live update.
func (pm *PeerManager) add(id string, conn peerConn, initial []byte) error {
	pm.mu.Lock()
	if initial != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
			pm.mu.Unlock()
			return err
		}
	}
	pm.peers[id] = conn
	count := len(pm.peers)
	pm.mu.Unlock()

	log.Printf("[share] viewer %s connected (%d total)", id, count)
	pm.notify(count)
	return nil
}

// remove drops a viewer and closes its connection.
func (pm *PeerManager) remove(id string) {
	pm.mu.Lock()
	conn, ok := pm.peers[id]
	if ok {
		delete(pm.peers, id)
	}
	count := len(pm.peers)
	pm.mu.Unlock()

	if !ok {
		return
	}
	conn.Close()
	log.Printf("[share] viewer %s disconnected (%d total)", id, count)
	pm.notify(count)
}

// Count reports how many viewers are connected.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// BroadcastPoint sends a recorded point to every viewer.
func (pm *PeerManager) BroadcastPoint(p state.Point) {
	pm.broadcast(PointMessage(p))
}

// BroadcastClear tells every viewer to empty its sketch.
func (pm *PeerManager) BroadcastClear() {
	pm.broadcast(ClearMessage())
}

func (pm *PeerManager) broadcast(msg Message) {
	data, err := msg.encode()
	if err != nil {
		log.Printf("[share] encode %s: %v", msg.Type, err)
		return
	}

	var dead []string
	pm.mu.Lock()
	for id, conn := range pm.peers {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[share] dropping viewer %s: %v", id, err)
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		if conn, ok := pm.peers[id]; ok {
			conn.Close()
			delete(pm.peers, id)
		}
	}
	count := len(pm.peers)
	pm.mu.Unlock()

	if len(dead) > 0 {
		pm.notify(count)
	}
}

// closeAll disconnects every viewer, typically on shutdown.
func (pm *PeerManager) closeAll() {
	pm.mu.Lock()
	had := len(pm.peers) > 0
	for id, conn := range pm.peers {
		conn.Close()
		delete(pm.peers, id)
	}
	pm.mu.Unlock()

	if had {
		pm.notify(0)
	}
}

func (pm *PeerManager) notify(count int) {
	if pm.OnChange != nil {
		pm.OnChange(count)
	}
}

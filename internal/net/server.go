package net

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"localsketch/internal/state"
)

// sharePath is the websocket endpoint viewers connect to.
const sharePath = "/sketch"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Viewers dial in from other machines on the LAN, so the default
	// same-origin check would reject all of them.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server accepts websocket viewers for a shared sketch session. Each
// viewer receives a snapshot of the sketch on join, then live updates
// through the PeerManager.
type Server struct {
	pm       *PeerManager
	snapshot func() []state.Point
	httpSrv  *http.Server
}

// NewServer creates a share server. snapshot is called once per joining
// viewer to capture the current sketch contents.
func NewServer(pm *PeerManager, snapshot func() []state.Point) *Server {
	return &Server{pm: pm, snapshot: snapshot}
}

// Start begins listening on the given port. It returns once the
// listener is bound; connections are served in the background.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc(sharePath, s.handleViewer)

	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[share] server stopped: %v", err)
		}
	}()

	log.Printf("[share] listening on port %d", port)
	return nil
}

// Stop shuts the listener down and disconnects every viewer.
func (s *Server) Stop() {
	if s.httpSrv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.httpSrv.Shutdown(ctx)
	s.pm.closeAll()
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[share] upgrade from %s: %v", r.RemoteAddr, err)
		return
	}

	id := uuid.NewString()
	initial, err := SnapshotMessage(s.snapshot()).encode()
	if err != nil {
		log.Printf("[share] snapshot for %s: %v", id, err)
		conn.Close()
		return
	}
	if err := s.pm.add(id, conn, initial); err != nil {
		log.Printf("[share] send snapshot to %s: %v", id, err)
		conn.Close()
		return
	}

	// Viewers never send sketch data, but the connection still has to
	// be read so closes and pings are noticed.
	go s.reapOnClose(id, conn)
}

func (s *Server) reapOnClose(id string, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.pm.remove(id)
			return
		}
	}
}

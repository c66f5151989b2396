package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"SignPad/internal/geometry"
	"SignPad/internal/logging"
	"SignPad/internal/pad"
)

// PadPath is the websocket endpoint served by the host.
const PadPath = "/pad"

// Server bridges remote tablets to a local pad. Events read from a tablet
// are applied to the pad, and every pad snapshot is pushed to all tablets.
type Server struct {
	surface  pad.Surface
	upgrader websocket.Upgrader
	peers    *PeerManager
	cancel   func()
}

// NewServer starts forwarding snapshots of surface to connected tablets.
func NewServer(surface pad.Surface) *Server {
	s := &Server{
		surface: surface,
		upgrader: websocket.Upgrader{CheckOrigin: sameOrigin},
		peers: NewPeerManager(),
	}
	s.cancel = surface.Subscribe(s.broadcast)
	return s
}

// sameOrigin admits native tablets, which send no Origin, and pages served
// by the host itself. Other web pages cannot drive the pad.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// Peers returns the number of connected tablets.
func (s *Server) Peers() int {
	return s.peers.Len()
}

func (s *Server) broadcast(snap *pad.Snapshot) {
	if s.peers.Len() == 0 {
		return
	}
	data, err := snapshotMessage(snap)
	if err != nil {
		logging.Logger().Error("encode snapshot", "err", err)
		return
	}
	s.peers.Broadcast(data)
}

func snapshotMessage(snap *pad.Snapshot) ([]byte, error) {
	return json.Marshal(Message{Type: TypeSnapshot, Snapshot: encodeSnapshot(snap)})
}

// ServeHTTP upgrades the request to a websocket and serves one tablet until
// it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	peer := newPeer(conn)
	s.peers.Add(peer)
	defer s.peers.Remove(peer)

	if data, err := snapshotMessage(s.surface.Snapshot()); err == nil {
		peer.offer(data)
	}

	defer s.release(peer)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Logger().Debug("peer read ended", "peer", peer.addr(), "err", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Logger().Warn("malformed message", "peer", peer.addr(), "err", err)
			continue
		}
		s.dispatch(peer, msg)
	}
}

func (s *Server) dispatch(peer *Peer, msg Message) {
	switch msg.Type {
	case TypeDown:
		peer.drawing = true
		s.surface.PointerDown(geometry.Pt(msg.X, msg.Y))
	case TypeMove:
		s.surface.PointerMove(geometry.Pt(msg.X, msg.Y))
	case TypeUp:
		peer.drawing = false
		s.surface.PointerUp()
	case TypeHold:
		peer.holding = true
		s.surface.HoldPress()
	case TypeUnhold:
		peer.holding = false
		s.surface.HoldRelease()
	case TypeErase:
		s.surface.Erase()
	case TypeUndo:
		s.surface.Undo()
	case TypePlay:
		s.surface.Play()
	case TypeStop:
		s.surface.Stop()
	default:
		logging.Logger().Warn("unknown message type", "peer", peer.addr(), "type", msg.Type)
	}
}

// release ends any stroke or hold a departing tablet left open.
func (s *Server) release(peer *Peer) {
	if peer.drawing {
		s.surface.PointerUp()
	}
	if peer.holding {
		s.surface.HoldRelease()
	}
}

// Close disconnects all tablets and stops forwarding snapshots.
func (s *Server) Close() {
	s.cancel()
	s.peers.CloseAll()
}

// ListenAndServe serves the pad endpoint on port until ctx is cancelled.
// Port 0 picks a free port; ready receives the bound port once listening.
func (s *Server) ListenAndServe(ctx context.Context, port int, ready func(port int)) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", port, err)
	}
	mux := http.NewServeMux()
	mux.Handle(PadPath, s)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	if ready != nil {
		ready(ln.Addr().(*net.TCPAddr).Port)
	}
	logging.Logger().Info("pad host listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.peers.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

package net

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SignPad/internal/logging"
)

const writeWait = 5 * time.Second

// Peer is one connected remote tablet. Snapshots are full state, so a slow
// peer only ever needs the latest one; older pending frames are replaced.
type Peer struct {
	conn *websocket.Conn

	mu      sync.Mutex
	pending []byte
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once

	// owned by the read loop
	drawing bool
	holding bool
}

func newPeer(conn *websocket.Conn) *Peer {
	return &Peer{
		conn: conn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (p *Peer) addr() string {
	return p.conn.RemoteAddr().String()
}

// offer queues data as the next frame to write.
func (p *Peer) offer(data []byte) {
	p.mu.Lock()
	p.pending = data
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Peer) writeLoop() {
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}
		p.mu.Lock()
		data := p.pending
		p.pending = nil
		p.mu.Unlock()
		if data == nil {
			continue
		}
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logging.Logger().Warn("write to peer failed", "peer", p.addr(), "err", err)
			p.close()
			return
		}
	}
}

func (p *Peer) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// PeerManager is used by the host to manage all active remote tablets.
type PeerManager struct {
	peers map[*Peer]struct{}
	mu    sync.RWMutex
}

// NewPeerManager creates a new manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[*Peer]struct{}),
	}
}

// Add registers a peer and starts its writer.
func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	pm.peers[peer] = struct{}{}
	pm.mu.Unlock()
	go peer.writeLoop()
	logging.Logger().Info("remote tablet connected", "peer", peer.addr())
}

// Remove closes a peer and forgets it.
func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	_, ok := pm.peers[peer]
	delete(pm.peers, peer)
	pm.mu.Unlock()
	peer.close()
	if ok {
		logging.Logger().Info("remote tablet disconnected", "peer", peer.addr())
	}
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast queues data for every peer.
func (pm *PeerManager) Broadcast(data []byte) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	for p := range pm.peers {
		p.offer(data)
	}
}

// CloseAll disconnects every peer.
func (pm *PeerManager) CloseAll() {
	pm.mu.Lock()
	peers := pm.peers
	pm.peers = make(map[*Peer]struct{})
	pm.mu.Unlock()
	for p := range peers {
		p.close()
	}
}

package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"SignPad/internal/geometry"
	"SignPad/internal/logging"
	"SignPad/internal/pad"
)

// ErrClosed is returned when sending on a closed client.
var ErrClosed = errors.New("remote pad closed")

// Client drives a pad hosted elsewhere. It implements pad.Surface, so a UI
// can render a remote pad exactly like a local one.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	snap    atomic.Pointer[pad.Snapshot]

	mu     sync.Mutex
	subs   map[int]func(*pad.Snapshot)
	nextID int

	closing   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

var _ pad.Surface = (*Client)(nil)

// Dial connects to the host named by a share link.
func Dial(ctx context.Context, link string) (*Client, error) {
	addr, err := ParseLink(link)
	if err != nil {
		return nil, err
	}
	url := "ws://" + addr + PadPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{
		conn: conn,
		subs: make(map[int]func(*pad.Snapshot)),
		done: make(chan struct{}),
	}
	c.snap.Store(&pad.Snapshot{})
	go c.readLoop()
	logging.Logger().Info("connected to pad host", "addr", addr)
	return c, nil
}

func (c *Client) readLoop() {
	defer c.shutdown(nil)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !c.closing.Load() {
				c.shutdown(fmt.Errorf("read from host: %w", err))
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Logger().Warn("malformed message from host", "err", err)
			continue
		}
		if msg.Type != TypeSnapshot || msg.Snapshot == nil {
			logging.Logger().Warn("unexpected message from host", "type", msg.Type)
			continue
		}
		c.publish(msg.Snapshot.decode())
	}
}

func (c *Client) publish(s *pad.Snapshot) {
	c.snap.Store(s)
	c.mu.Lock()
	subs := make([]func(*pad.Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(s)
	}
}

// Snapshot returns the latest state received from the host.
func (c *Client) Snapshot() *pad.Snapshot {
	return c.snap.Load()
}

// Subscribe calls fn on the reader goroutine for every received snapshot.
func (c *Client) Subscribe(fn func(*pad.Snapshot)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) PointerDown(p geometry.Point) { c.post(Message{Type: TypeDown, X: p.X, Y: p.Y}) }
func (c *Client) PointerMove(p geometry.Point) { c.post(Message{Type: TypeMove, X: p.X, Y: p.Y}) }
func (c *Client) PointerUp()                   { c.post(Message{Type: TypeUp}) }
func (c *Client) HoldPress()                   { c.post(Message{Type: TypeHold}) }
func (c *Client) HoldRelease()                 { c.post(Message{Type: TypeUnhold}) }
func (c *Client) Erase()                       { c.post(Message{Type: TypeErase}) }
func (c *Client) Undo()                        { c.post(Message{Type: TypeUndo}) }
func (c *Client) Play()                        { c.post(Message{Type: TypePlay}) }
func (c *Client) Stop()                        { c.post(Message{Type: TypeStop}) }

func (c *Client) post(msg Message) {
	if err := c.Send(msg); err != nil {
		logging.Logger().Debug("remote event dropped", "type", msg.Type, "err", err)
	}
}

// Send writes one message to the host.
func (c *Client) Send(msg Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// Done is closed once the connection has ended.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err reports why the connection ended, or nil after a clean Close.
func (c *Client) Err() error {
	<-c.done
	return c.err
}

// Close says goodbye to the host and drops the connection.
func (c *Client) Close() error {
	c.closing.Store(true)
	c.writeMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	c.shutdown(nil)
	return nil
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.err = err
		close(c.done)
		c.conn.Close()
		if err != nil {
			logging.Logger().Warn("pad host connection lost", "err", err)
		}
	})
}

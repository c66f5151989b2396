package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignPad/internal/anim"
	"SignPad/internal/geometry"
	"SignPad/internal/loop"
	"SignPad/internal/pad"
)

type host struct {
	runner *loop.Runner
	server *Server
	link   string
}

func newHost(t *testing.T) *host {
	t.Helper()
	timing := anim.DefaultTiming()
	timing.PerUnit = 100 * time.Microsecond
	r := loop.New(pad.NewController(timing), loop.Options{FrameRate: 240})
	s := NewServer(r)
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		s.Close()
		ts.Close()
		r.Close()
	})
	return &host{
		runner: r,
		server: s,
		link:   LinkScheme + strings.TrimPrefix(ts.URL, "http://"),
	}
}

func dial(t *testing.T, h *host) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, h.link)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLinks(t *testing.T) {
	link := ShareLink("192.168.1.20", 8888)
	assert.Equal(t, "signpad://192.168.1.20:8888", link)

	addr, err := ParseLink(link)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:8888", addr)

	addr, err = ParseLink("10.0.0.1:9000/")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:9000", addr)

	for _, bad := range []string{"", "signpad://", "signpad://host", "signpad://:80", "signpad://h:0", "signpad://h:x"} {
		_, err := ParseLink(bad)
		assert.Error(t, err, bad)
	}
}

func TestSnapshotWireConversion(t *testing.T) {
	in := &pad.Snapshot{
		Seq:      7,
		Revision: 3,
		Strokes: []pad.StrokeView{{
			ID:     "a",
			Points: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(3, 4)},
			Length: 5,
			Style:  anim.Style{Reveal: 0.5, Opacity: 1, DashArray: 5, DashOffset: 2.5},
		}},
		Current:      []geometry.Point{geometry.Pt(1, 1)},
		TotalLength:  5,
		Progress:     0.5,
		Fill:         0.5,
		Pressing:     true,
		GhostOpacity: anim.GhostOpacity,
	}
	out := encodeSnapshot(in).decode()
	assert.Equal(t, in, out)
}

func TestRemoteDrawingReachesHost(t *testing.T) {
	h := newHost(t)
	c := dial(t, h)

	c.PointerDown(geometry.Pt(0, 0))
	c.PointerMove(geometry.Pt(60, 80))
	c.PointerUp()

	require.Eventually(t, func() bool {
		return h.runner.Snapshot().TotalLength == 100
	}, 2*time.Second, 5*time.Millisecond)

	// and the host's state comes back to the tablet
	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return s.HasInk() && len(s.Strokes) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, h.server.Peers())
}

func TestRemoteHoldSigns(t *testing.T) {
	h := newHost(t)
	c := dial(t, h)

	c.PointerDown(geometry.Pt(0, 0))
	c.PointerMove(geometry.Pt(100, 0))
	c.PointerUp()
	c.HoldPress()

	require.Eventually(t, func() bool {
		return c.Snapshot().Signed
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, pad.LabelSigned, c.Snapshot().Label())

	c.Erase()
	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return !s.HasInk() && !s.Signed
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDisconnectReleasesHold(t *testing.T) {
	h := newHost(t)
	c := dial(t, h)

	c.PointerDown(geometry.Pt(0, 0))
	c.PointerMove(geometry.Pt(100000, 0)) // far too long to finish filling
	c.PointerUp()
	c.HoldPress()
	require.Eventually(t, func() bool {
		return h.runner.Snapshot().Pressing
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	require.Eventually(t, func() bool {
		s := h.runner.Snapshot()
		return !s.Pressing && !s.Signed
	}, 2*time.Second, 5*time.Millisecond)
	assert.NoError(t, c.Err())
	assert.ErrorIs(t, c.Send(Message{Type: TypeUndo}), ErrClosed)
}

func TestMalformedMessagesAreSkipped(t *testing.T) {
	h := newHost(t)
	url := "ws://" + strings.TrimPrefix(h.link, LinkScheme) + PadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, TypeSnapshot, first.Type)
	require.NotNil(t, first.Snapshot)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(Message{Type: "teleport"}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeDown}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeMove, X: 30, Y: 40}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeUp}))

	require.Eventually(t, func() bool {
		return h.runner.Snapshot().TotalLength == 50
	}, 2*time.Second, 5*time.Millisecond)
}

func TestClientClosesWhenHostGoesAway(t *testing.T) {
	h := newHost(t)
	c := dial(t, h)

	h.server.Close()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client did not notice the host closing")
	}
	assert.Error(t, c.Err())
}

func TestForeignOriginIsRejected(t *testing.T) {
	h := newHost(t)
	addr := strings.TrimPrefix(h.link, LinkScheme)
	url := "ws://" + addr + PadPath

	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, conn)

	conn, _, err = websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://" + addr}})
	require.NoError(t, err)
	conn.Close()
}

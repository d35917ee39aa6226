package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upgradeServer upgrades every request and hands the server-side conn back
// through the channel.
func upgradeServer(t *testing.T) (*httptest.Server, chan *websocket.Conn) {
	upgraded := make(chan *websocket.Conn, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		upgraded <- conn
	}))
	return srv, upgraded
}

func dialTest(t *testing.T, srv *httptest.Server) *websocket.Conn {
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

// One connection, many writers. Every frame must arrive intact; gorilla
// panics on an unserialized concurrent write.
func TestStreamClientSerializesWrites(t *testing.T) {
	srv, upgraded := upgradeServer(t)
	defer srv.Close()

	reader := dialTest(t, srv)
	defer reader.Close()

	client := &streamClient{conn: <-upgraded}
	defer client.conn.Close()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				if err := client.send(metricsEvent{Event: "metrics"}); err != nil {
					t.Errorf("send failed: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < writers*perWriter; i++ {
		var msg metricsEvent
		require.NoError(t, reader.ReadJSON(&msg))
		assert.Equal(t, "metrics", msg.Event)
	}
	wg.Wait()
}

func TestStreamHandlerRegisterUnregister(t *testing.T) {
	srv, upgraded := upgradeServer(t)
	defer srv.Close()

	h := NewStreamHandler(nil)

	peerA := dialTest(t, srv)
	defer peerA.Close()
	peerB := dialTest(t, srv)
	defer peerB.Close()

	a := &streamClient{conn: <-upgraded}
	b := &streamClient{conn: <-upgraded}
	h.register(7, a)
	h.register(7, b)
	assert.Len(t, h.clients[7], 2)

	h.unregister(7, a)
	assert.Len(t, h.clients[7], 1)

	// Unregistering the last client drops the user entry entirely
	h.unregister(7, b)
	_, ok := h.clients[7]
	assert.False(t, ok)
}

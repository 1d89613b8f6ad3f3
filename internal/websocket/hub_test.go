package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindpulse/internal/config"
)

func testWSConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		PingPeriod:      30 * time.Second,
		PongWait:        60 * time.Second,
	}
}

func dialTestServer(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	upgrader := NewUpgrader(hub, testWSConfig(), []string{"*"}, nil)
	server := httptest.NewServer(http.HandlerFunc(upgrader.ServeHTTP))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubConnectionLifecycle(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	conn := dialTestServer(t, hub)

	msg := readMessage(t, conn)
	assert.Equal(t, TypeConnection, msg.Type)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastDataUpdate(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	conn := dialTestServer(t, hub)
	readMessage(t, conn) // connection message

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.BroadcastDataUpdate(map[string]string{"action": "refresh"})

	msg := readMessage(t, conn)
	assert.Equal(t, TypeDataUpdate, msg.Type)
	detail, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "refresh", detail["action"])
}

func TestHubStopDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()

	conn := dialTestServer(t, hub)
	readMessage(t, conn)

	hub.Stop()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return // closed as expected
		}
	}
}

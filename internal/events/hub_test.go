package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: TypeRecordChanged, Module: "tasks", Action: "create", ProjectID: "p1"})

	ev := readEvent(t, conn)
	assert.Equal(t, TypeRecordChanged, ev.Type)
	assert.Equal(t, "tasks", ev.Module)
	assert.Equal(t, "p1", ev.ProjectID)
}

func TestHub_ProjectSubscriptionFilters(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "?project_id=p2")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: TypeRecordChanged, Module: "tasks", Action: "create", ProjectID: "p1"})
	hub.Publish(Event{Type: TypeRecordChanged, Module: "budget", Action: "update", ProjectID: "p2"})

	ev := readEvent(t, conn)
	assert.Equal(t, "budget", ev.Module)
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

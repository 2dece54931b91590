package httpserver

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestWSReload(t *testing.T) {
	s, repo := buildServer(t)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/reload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return repo.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	repo.Notify("index")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev reloadEvent
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, reloadEvent{Type: "reload", Page: "index"}, ev)
}

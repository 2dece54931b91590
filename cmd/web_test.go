package cmd

import (
	"testing"

	"github.com/OliveiraNt/xgserver/internal/config"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	cfg := config.Default()

	t.Setenv("XGSERVER_HTTP_PORT", "")
	require.Equal(t, ":8080", ListenAddr(cfg))

	t.Setenv("XGSERVER_HTTP_PORT", "9000")
	require.Equal(t, ":9000", ListenAddr(cfg))

	t.Setenv("XGSERVER_HTTP_PORT", "127.0.0.1:9001")
	require.Equal(t, "127.0.0.1:9001", ListenAddr(cfg))
}

package utils

import (
	"testing"

	chlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_IdempotentAndDefaultLevel(t *testing.T) {
	t.Setenv("XGSERVER_LOG_LEVEL", "")
	Logger = nil
	InitLogger()
	first := Logger
	require.NotNil(t, first)
	require.Equal(t, chlog.InfoLevel, first.GetLevel())

	// second call should not recreate
	InitLogger()
	require.Equal(t, first, Logger)
}

func TestInitLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("XGSERVER_LOG_LEVEL", " DEBUG ")
	Logger = nil
	InitLogger()
	require.Equal(t, chlog.DebugLevel, Logger.GetLevel())
}

func TestSetLogLevel(t *testing.T) {
	Logger = nil
	InitLogger()

	SetLogLevel("warn")
	require.Equal(t, chlog.WarnLevel, Logger.GetLevel())
	SetLogLevel("error")
	require.Equal(t, chlog.ErrorLevel, Logger.GetLevel())
	SetLogLevel("bogus")
	require.Equal(t, chlog.InfoLevel, Logger.GetLevel())
}

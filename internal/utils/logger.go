package utils

import (
	"os"
	"strings"

	chlog "github.com/charmbracelet/log"
)

// Logger is the application-wide structured logger.
var Logger *chlog.Logger

const (
	debugLevel = "debug"
	infoLevel  = "info"
	warnLevel  = "warn"
	errorLevel = "error"
)

// InitLogger initializes the global logger with level from XGSERVER_LOG_LEVEL.
// Valid levels: debug, info, warn, error.
func InitLogger() {
	if Logger != nil {
		return
	}
	l := chlog.NewWithOptions(os.Stdout, chlog.Options{
		Prefix:          "xgserver",
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
	})
	l.SetLevel(parseLevel(os.Getenv("XGSERVER_LOG_LEVEL")))
	Logger = l
}

// SetLogLevel allows changing level at runtime.
func SetLogLevel(level string) {
	if Logger == nil {
		InitLogger()
	}
	Logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) chlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case debugLevel:
		return chlog.DebugLevel
	case warnLevel:
		return chlog.WarnLevel
	case errorLevel:
		return chlog.ErrorLevel
	case infoLevel:
		return chlog.InfoLevel
	default:
		return chlog.InfoLevel
	}
}

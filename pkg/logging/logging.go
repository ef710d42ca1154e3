// Package logging holds the process-wide zap logger.
package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.Mutex
	sharedLogger *zap.SugaredLogger
)

// Init builds the shared logger at level (an unparseable level falls back to
// info) writing to w, or to stdout when w is nil. Calling Init again replaces
// the logger.
func Init(level string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	lvl := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)

	mu.Lock()
	defer mu.Unlock()
	sharedLogger = zap.New(core).Sugar()
}

// Get returns the shared logger, initialising it from LOG_LEVEL if Init has
// not run.
func Get() *zap.SugaredLogger {
	mu.Lock()
	l := sharedLogger
	mu.Unlock()
	if l == nil {
		Init(os.Getenv("LOG_LEVEL"), nil)
		return Get()
	}
	return l
}

func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if sharedLogger != nil {
		_ = sharedLogger.Sync()
	}
}

package fetch

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout means the selector did not match before the deadline.
	ErrTimeout = errors.New("timed out waiting for page to render")
	// ErrNoMatch means the page loaded but the selector matched nothing.
	ErrNoMatch = errors.New("selector matched nothing in page")
)

// Fetcher returns the markup of the page at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

var (
	_ Fetcher = (*Chrome)(nil)
	_ Fetcher = (*Static)(nil)
)

// Logger is the subset of zap's SugaredLogger the fetchers use.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...interface{}) {}
func (nopLogger) Warnw(string, ...interface{})  {}

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

const defaultTimeout = 30 * time.Second

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}

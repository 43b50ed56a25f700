//go:build !tinygo

package hal

import (
	"sync"

	"github.com/rs/zerolog"
)

// hostLogger forwards OS log lines to zerolog.
//
// Lines are emitted at info level with a "src" field so they can be told apart from
// host runner logs.
type hostLogger struct {
	mu  sync.Mutex
	log zerolog.Logger
}

func newHostLogger(l zerolog.Logger) *hostLogger {
	return &hostLogger{log: l.With().Str("src", "os").Logger()}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

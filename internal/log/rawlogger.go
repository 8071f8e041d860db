package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// RawLogger dumps emitted output units with optional file output.
type RawLogger interface {
	Log(path string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes a one-line banner with timestamp, path and size, followed by
// the unit content.
func (r *rawLogger) Log(path string, data []byte) {
	if r.w == nil {
		return
	}

	banner := fmt.Sprintf("%s unit %s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"),
		path,
		len(data))

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.w, banner)
	if len(data) == 0 {
		return
	}
	_, _ = r.w.Write(data)
	if data[len(data)-1] != '\n' {
		_, _ = io.WriteString(r.w, "\n")
	}
}

// OpenRaw picks the raw unit sink: file when set, otherwise stdout at trace
// level, otherwise nothing. The returned closer is nil unless a file was opened.
func OpenRaw(file, level string, stdout io.Writer) (RawLogger, io.Closer, error) {
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return NewRaw(nil), nil, err
		}
		return NewRaw(f), f, nil
	}
	if ParseLevel(level) <= LevelTrace {
		return NewRaw(stdout), nil, nil
	}
	return NewRaw(nil), nil, nil
}

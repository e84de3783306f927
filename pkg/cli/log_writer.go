package cli

import (
	"strings"
	"sync"
)

// LogWriter is an io.Writer that keeps the last maxLines lines for a
// monitor section and signals arrivals on a channel. Safe for concurrent
// writers (slog handlers log from multiple goroutines).
type LogWriter struct {
	mu    sync.Mutex
	lines []string
	start int
	count int
	ch    chan string
}

// NewLogWriter creates a log writer retaining maxLines lines.
func NewLogWriter(maxLines int) *LogWriter {
	if maxLines <= 0 {
		maxLines = 100
	}
	return &LogWriter{
		lines: make([]string, maxLines),
		ch:    make(chan string, 100),
	}
}

// Write splits p on newlines and records each line.
func (w *LogWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	w.mu.Lock()
	for _, line := range strings.Split(text, "\n") {
		w.add(line)
		select {
		case w.ch <- line:
		default:
		}
	}
	w.mu.Unlock()
	return len(p), nil
}

func (w *LogWriter) add(line string) {
	idx := (w.start + w.count) % len(w.lines)
	w.lines[idx] = line
	if w.count < len(w.lines) {
		w.count++
	} else {
		w.start = (w.start + 1) % len(w.lines)
	}
}

// Lines returns the retained lines, oldest first.
func (w *LogWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.lines[(w.start+i)%len(w.lines)]
	}
	return out
}

// Channel delivers new lines; sends are dropped when the channel is full.
func (w *LogWriter) Channel() <-chan string {
	return w.ch
}

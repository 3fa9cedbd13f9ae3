package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferCapacity is the number of entries kept by a [CircularBuffer]
// created with a non-positive capacity.
const DefaultBufferCapacity = 100

// CircularBuffer is a thread-safe [io.Writer] that keeps the most recent
// entries. It holds log output while the terminal UI owns the screen.
type CircularBuffer struct {
	entries [][]byte
	start   int
	dropped int
	mu      sync.Mutex
}

// NewCircularBuffer creates a [CircularBuffer] holding up to capacity entries.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &CircularBuffer{entries: make([][]byte, 0, capacity)}
}

// Write stores a copy of p as one entry, evicting the oldest entry when full.
func (cb *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	entry := append([]byte(nil), p...)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if len(cb.entries) < cap(cb.entries) {
		cb.entries = append(cb.entries, entry)
		return len(p), nil
	}

	cb.entries[cb.start] = entry
	cb.start = (cb.start + 1) % len(cb.entries)
	cb.dropped++

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (cb *CircularBuffer) Entries() [][]byte {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.snapshot()
}

func (cb *CircularBuffer) snapshot() [][]byte {
	if len(cb.entries) == 0 {
		return nil
	}

	out := make([][]byte, 0, len(cb.entries))
	for i := range cb.entries {
		e := cb.entries[(cb.start+i)%len(cb.entries)]
		out = append(out, append([]byte(nil), e...))
	}

	return out
}

// Size returns the number of stored entries.
func (cb *CircularBuffer) Size() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return len(cb.entries)
}

// Capacity returns the maximum number of entries.
func (cb *CircularBuffer) Capacity() int {
	return cap(cb.entries)
}

// Dropped returns the number of entries evicted since the last [CircularBuffer.Clear].
func (cb *CircularBuffer) Dropped() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.dropped
}

// Clear removes all entries.
func (cb *CircularBuffer) Clear() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.entries = cb.entries[:0]
	cb.start = 0
	cb.dropped = 0
}

// WriteTo writes the stored entries to w, oldest first.
func (cb *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, entry := range cb.Entries() {
		n, err := w.Write(entry)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write entry: %w", err)
		}
	}

	return total, nil
}

// Flush writes the stored entries to w and clears the buffer. When entries
// were evicted, a note with their count is written first.
func (cb *CircularBuffer) Flush(w io.Writer) error {
	cb.mu.Lock()
	entries, dropped := cb.snapshot(), cb.dropped
	cb.entries = cb.entries[:0]
	cb.start = 0
	cb.dropped = 0
	cb.mu.Unlock()

	if dropped > 0 {
		_, err := fmt.Fprintf(w, "... %d earlier log entries dropped\n", dropped)
		if err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}

	for _, entry := range entries {
		_, err := w.Write(entry)
		if err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}

	return nil
}

// ABOUTME: In-memory audio sink for tests and examples
// ABOUTME: Records enqueued blocks and simulates device queue consumption
package output

import (
	"fmt"
	"sync"

	"github.com/foureyes/marconio-go/pkg/audio"
)

// Memory is a Sink that records everything enqueued instead of playing it.
// By default blocks count as consumed the moment they arrive; Hold keeps
// them queued so callers can exercise backpressure.
type Memory struct {
	mu      sync.Mutex
	format  audio.Format
	opened  bool
	stopped bool
	hold    bool
	queued  int
	blocks  [][]float32
}

// NewMemory creates an in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Hold makes enqueued blocks stay queued until Drain is called. Call it
// before streaming starts.
func (m *Memory) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hold = true
}

// Open records the requested format and accepts it unchanged.
func (m *Memory) Open(format audio.Format) (audio.Format, error) {
	if !format.Valid() {
		return audio.Format{}, fmt.Errorf("invalid output format: %s", format)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.format = format
	m.opened = true
	return format, nil
}

// Enqueue records one block.
func (m *Memory) Enqueue(samples []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.stopped:
		return fmt.Errorf("output stopped")
	case !m.opened:
		return fmt.Errorf("output not initialized")
	}
	m.blocks = append(m.blocks, samples)
	if m.hold {
		m.queued++
	}
	return nil
}

// Queued reports the number of blocks still waiting to be consumed.
func (m *Memory) Queued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queued
}

// Drain marks up to n queued blocks as consumed.
func (m *Memory) Drain(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued -= n
	if m.queued < 0 {
		m.queued = 0
	}
}

// Stop discards the queue and refuses further blocks. Recorded samples
// stay readable.
func (m *Memory) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.queued = 0
	return nil
}

// Stopped reports whether Stop has been called.
func (m *Memory) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Format returns the format the sink was opened with.
func (m *Memory) Format() audio.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.format
}

// Blocks returns how many blocks have been enqueued.
func (m *Memory) Blocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blocks)
}

// Samples returns a copy of everything enqueued, in arrival order.
func (m *Memory) Samples() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []float32
	for _, b := range m.blocks {
		out = append(out, b...)
	}
	return out
}

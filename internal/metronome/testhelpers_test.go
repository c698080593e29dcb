package metronome

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu    sync.Mutex
	now   float64
	notes []Note
}

func (c *fakeClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Schedule(n Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, n)
}

func (c *fakeClock) Advance(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

func (c *fakeClock) Notes() []Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

type beatRecorder struct {
	mu    sync.Mutex
	beats []int
}

func (r *beatRecorder) record(beat int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beats = append(r.beats, beat)
}

func (r *beatRecorder) Beats() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.beats))
	copy(out, r.beats)
	return out
}

func (r *beatRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beats = nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newManualScheduler builds a scheduler whose polling is driven by the test.
func newManualScheduler(t *testing.T, clock Clock, rec *beatRecorder, opts ...Option) *Scheduler {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithBeatHandler(rec.record)}, opts...)
	s, err := New(clock, opts...)
	require.NoError(t, err)
	s.autoPoll = false
	return s
}

// runUntil advances the clock in small steps, polling each time, until
// the clock holds at least n notes.
func runUntil(t *testing.T, s *Scheduler, clock *fakeClock, n int) []Note {
	t.Helper()
	for i := 0; len(clock.Notes()) < n; i++ {
		if i > 1_000_000 {
			t.Fatalf("gave up waiting for %d notes", n)
		}
		clock.Advance(0.025)
		s.Poll()
	}
	return clock.Notes()
}

// Package audio plays metronome notes through the system speaker. The
// Timeline counts every sample it streams, which makes it the clock notes
// are scheduled against: a note starts on the exact sample its instant maps
// to, however late the scheduler got around to queueing it.
package audio

import (
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dimfu/metronome/internal/metronome"
)

const DefaultSampleRate = beep.SampleRate(44100)

// DefaultBufferLatency is how much audio the speaker renders ahead. It has
// to stay below the scheduler's look-ahead window.
const DefaultBufferLatency = 25 * time.Millisecond

var _ metronome.Clock = (*Timeline)(nil)

type voice struct {
	start    int64 // sample index on the timeline
	streamer beep.Streamer
}

// Timeline is a beep.Streamer mixing scheduled voices at sample accuracy.
type Timeline struct {
	mu      sync.Mutex
	format  beep.Format
	pos     int64
	pending []voice
	mixer   beep.Mixer
	late    int

	log logrus.FieldLogger
}

// NewTimeline creates a silent timeline at the given sample rate.
func NewTimeline(sr beep.SampleRate, log logrus.FieldLogger) *Timeline {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Timeline{
		format: beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2},
		log:    log,
	}
}

// Start opens the speaker and begins streaming the timeline through it.
func (t *Timeline) Start(latency time.Duration) error {
	if latency <= 0 {
		latency = DefaultBufferLatency
	}
	size := t.format.SampleRate.N(latency)
	if err := speaker.Init(t.format.SampleRate, size); err != nil {
		return errors.Wrap(err, "error while initializing speaker")
	}
	speaker.Play(t)
	t.log.WithFields(logrus.Fields{
		"sample_rate": int(t.format.SampleRate),
		"buffer":      size,
	}).Debug("speaker initialized")
	return nil
}

// Close detaches the timeline from the speaker.
func (t *Timeline) Close() {
	speaker.Clear()
}

// Now returns the number of seconds streamed so far.
func (t *Timeline) Now() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(t.pos) / float64(t.format.SampleRate)
}

// Schedule renders n and queues it to start on the sample at n.At.
func (t *Timeline) Schedule(n metronome.Note) {
	v := voice{
		start:    int64(math.Round(n.At * float64(t.format.SampleRate))),
		streamer: renderTone(t.format, n),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := sort.Search(len(t.pending), func(i int) bool {
		return t.pending[i].start > v.start
	})
	t.pending = append(t.pending, voice{})
	copy(t.pending[i+1:], t.pending[i:])
	t.pending[i] = v
}

// Late returns how many voices started after their scheduled sample.
func (t *Timeline) Late() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.late
}

// Stream implements beep.Streamer. It never drains; with nothing to play
// it produces silence.
func (t *Timeline) Stream(samples [][2]float64) (n int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for n < len(samples) {
		end := len(samples)
		for len(t.pending) > 0 {
			offset := t.pending[0].start - t.pos
			if offset > 0 {
				if offset < int64(end-n) {
					end = n + int(offset)
				}
				break
			}
			if offset < 0 {
				t.late++
			}
			t.mixer.Add(t.pending[0].streamer)
			t.pending = t.pending[1:]
		}
		sn, _ := t.mixer.Stream(samples[n:end])
		if sn == 0 {
			break
		}
		t.pos += int64(sn)
		n += sn
	}
	return len(samples), true
}

func (t *Timeline) Err() error {
	return nil
}

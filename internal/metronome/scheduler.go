// Package metronome schedules metronome clicks ahead of time on an audio
// clock. A low frequency polling loop keeps a short window of future time
// filled with notes whose start instants are exact on the clock's timeline,
// so playback accuracy depends on the clock and not on timer wake-ups.
package metronome

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	MinTempo = 40
	MaxTempo = 500
)

// ClampTempo bounds bpm to [MinTempo, MaxTempo].
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// Scheduler is a look-ahead metronome. All methods are safe for concurrent
// use; the beat handler is called with the scheduler locked.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	log   logrus.FieldLogger

	lookAhead    float64 // seconds
	pollInterval time.Duration
	autoPoll     bool

	running bool
	bpm     int
	sig     TimeSignature
	sound   SoundProfile
	beat    int

	// The cursor is anchor + n*interval. Re-anchoring whenever the
	// interval changes keeps it free of accumulated addition error.
	anchor   float64
	n        int64
	interval float64

	onBeat func(int)
	stop   chan struct{}
	done   chan struct{}
}

// New creates a stopped Scheduler reading time from clock.
func New(clock Clock, opts ...Option) (*Scheduler, error) {
	if clock == nil {
		return nil, ErrNilClock
	}
	sig, _ := LookupSignature(DefaultSignature)
	sound, _ := LookupSound(DefaultSound)
	s := &Scheduler{
		clock:        clock,
		log:          logrus.StandardLogger(),
		lookAhead:    DefaultLookAhead.Seconds(),
		pollInterval: DefaultPollInterval,
		autoPoll:     true,
		bpm:          DefaultTempo,
		sig:          sig,
		sound:        sound,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, errors.Wrap(err, "metronome: invalid option")
		}
	}
	if s.pollInterval <= 0 || s.pollInterval.Seconds() >= s.lookAhead {
		return nil, errors.Wrapf(ErrPollInterval, "poll %s, look-ahead %.3fs", s.pollInterval, s.lookAhead)
	}
	s.interval = s.sig.Interval(s.bpm)
	return s, nil
}

// Start begins scheduling from the clock's current instant. It does nothing
// if the scheduler is already running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.beat = 0
	s.anchor = s.clock.Now()
	s.n = 0
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.log.WithFields(logrus.Fields{
		"tempo":     s.bpm,
		"signature": s.sig.ID,
		"sound":     s.sound.ID,
		"at":        s.anchor,
	}).Debug("metronome started")
	s.mu.Unlock()

	if !s.autoPoll {
		close(done)
		return
	}
	go s.loop(stop, done)
}

// Stop cancels the polling loop and resets the beat to 0, notifying the
// beat handler once. Notes already handed to the clock still play.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.beat = 0
	s.notify(0)
	done := s.done
	s.log.Debug("metronome stopped")
	s.mu.Unlock()

	<-done
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.Poll()
	for {
		select {
		case <-ticker.C:
			s.Poll()
		case <-stop:
			return
		}
	}
}

// Poll schedules every note that starts before now + look-ahead. It is a
// no-op while stopped.
func (s *Scheduler) Poll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	now := s.clock.Now()
	if behind := now - s.cursor(); behind > s.lookAhead {
		s.log.WithField("behind", behind).Warn("scheduler fell behind the clock, skipping missed beats")
		s.rebase(now)
	}

	horizon := now + s.lookAhead
	for {
		at := s.cursor()
		if at >= horizon {
			return
		}
		s.clock.Schedule(newNote(at, s.beat, s.sig.Accent(s.beat), s.sound))
		s.notify(s.beat)
		s.n++
		s.beat = (s.beat + 1) % s.sig.Beats
	}
}

// SetTempo stores bpm clamped to [MinTempo, MaxTempo]. Notes already
// scheduled keep their instants; the new interval applies from the next
// unscheduled note on.
func (s *Scheduler) SetTempo(bpm int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bpm = ClampTempo(bpm)
	if bpm == s.bpm {
		return
	}
	s.rebase(s.cursor())
	s.bpm = bpm
	s.interval = s.sig.Interval(bpm)
	s.log.WithField("tempo", bpm).Debug("tempo changed")
}

// SetTimeSignature switches to the signature registered under id and resets
// the beat to 0. Unknown ids leave the scheduler untouched and return
// ErrUnknownSignature.
func (s *Scheduler) SetTimeSignature(id string) error {
	ts, ok := LookupSignature(id)
	if !ok {
		return errors.Wrapf(ErrUnknownSignature, "%q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebase(s.cursor())
	s.sig = ts
	s.interval = ts.Interval(s.bpm)
	s.beat = 0
	s.notify(0)
	s.log.WithField("signature", id).Debug("time signature changed")
	return nil
}

// SetSoundProfile switches the sound used for notes scheduled from now on.
// Unknown ids leave the scheduler untouched and return ErrUnknownSound.
func (s *Scheduler) SetSoundProfile(id string) error {
	sp, ok := LookupSound(id)
	if !ok {
		return errors.Wrapf(ErrUnknownSound, "%q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sound = sp
	s.log.WithField("sound", id).Debug("sound profile changed")
	return nil
}

func (s *Scheduler) Tempo() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bpm
}

func (s *Scheduler) TimeSignature() TimeSignature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sig
}

func (s *Scheduler) SoundProfile() SoundProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sound
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Beat returns the index of the next beat to be scheduled.
func (s *Scheduler) Beat() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beat
}

// NextNoteTime returns the instant of the next unscheduled note.
func (s *Scheduler) NextNoteTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor()
}

// Interval returns the current beat length in seconds.
func (s *Scheduler) Interval() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) cursor() float64 {
	return s.anchor + float64(s.n)*s.interval
}

func (s *Scheduler) rebase(at float64) {
	s.anchor = at
	s.n = 0
}

func (s *Scheduler) notify(beat int) {
	if s.onBeat != nil {
		s.onBeat(beat)
	}
}

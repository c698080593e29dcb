package metronome

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTempo        = 120
	DefaultSignature    = "4/4"
	DefaultSound        = "beep"
	DefaultLookAhead    = 100 * time.Millisecond
	DefaultPollInterval = 25 * time.Millisecond
)

// Option configures a Scheduler at construction time.
type Option func(*Scheduler) error

// WithLookAhead sets how much future time each poll keeps filled.
func WithLookAhead(d time.Duration) Option {
	return func(s *Scheduler) error {
		s.lookAhead = d.Seconds()
		return nil
	}
}

// WithPollInterval sets how often the background loop polls.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) error {
		s.pollInterval = d
		return nil
	}
}

// WithTempo sets the initial tempo, clamped like SetTempo.
func WithTempo(bpm int) Option {
	return func(s *Scheduler) error {
		s.bpm = ClampTempo(bpm)
		return nil
	}
}

func WithTimeSignature(id string) Option {
	return func(s *Scheduler) error {
		ts, ok := LookupSignature(id)
		if !ok {
			return errors.Wrapf(ErrUnknownSignature, "%q", id)
		}
		s.sig = ts
		return nil
	}
}

func WithSoundProfile(id string) Option {
	return func(s *Scheduler) error {
		sp, ok := LookupSound(id)
		if !ok {
			return errors.Wrapf(ErrUnknownSound, "%q", id)
		}
		s.sound = sp
		return nil
	}
}

// WithBeatHandler registers the callback invoked for every scheduled beat.
// It runs on the polling goroutine with the scheduler locked, so it must be
// cheap and must not call back into the Scheduler.
func WithBeatHandler(fn func(beat int)) Option {
	return func(s *Scheduler) error {
		s.onBeat = fn
		return nil
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scheduler) error {
		s.log = l
		return nil
	}
}

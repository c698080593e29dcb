package metronome

import "github.com/pkg/errors"

var (
	ErrNilClock         = errors.New("metronome: clock source is nil")
	ErrPollInterval     = errors.New("metronome: poll interval must be positive and shorter than the look-ahead window")
	ErrUnknownSignature = errors.New("metronome: unknown time signature")
	ErrUnknownSound     = errors.New("metronome: unknown sound profile")
)

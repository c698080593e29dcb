package metronome

// Clock is the audio timeline notes are scheduled against. Now must never
// go backwards and Schedule must return without waiting for playback.
type Clock interface {
	Now() float64
	Schedule(n Note)
}

// Note is a single metronome click with its sound already resolved.
type Note struct {
	At        float64 // seconds on the clock's timeline
	Beat      int
	Accent    bool
	Frequency float64
	Volume    float64
	Decay     float64
}

func newNote(at float64, beat int, accent bool, sp SoundProfile) Note {
	n := Note{
		At:        at,
		Beat:      beat,
		Accent:    accent,
		Frequency: sp.NormalFrequency,
		Volume:    sp.NormalVolume,
		Decay:     sp.Decay,
	}
	if accent {
		n.Frequency = sp.AccentFrequency
		n.Volume = sp.AccentVolume
	}
	return n
}

package metronome

// TimeSignature describes how many beats make up a measure, which note
// value gets one beat and which beats are accented.
type TimeSignature struct {
	ID        string
	Beats     int // number of beats per measure
	NoteValue int // note that represents one beat: 4, 8 or 12

	accents []bool
}

// Accent reports whether beat i of the measure is accented.
func (ts TimeSignature) Accent(i int) bool {
	if i < 0 || i >= len(ts.accents) {
		return false
	}
	return ts.accents[i]
}

// Accents returns a copy of the accent pattern.
func (ts TimeSignature) Accents() []bool {
	out := make([]bool, len(ts.accents))
	copy(out, ts.accents)
	return out
}

// Interval returns the length of one beat in seconds at the given tempo.
// The quarter note duration is scaled by the note value, so 6/8 at 120 BPM
// yields 0.25s beats.
func (ts TimeSignature) Interval(bpm int) float64 {
	return 60.0 / float64(bpm) / (float64(ts.NoteValue) / 4.0)
}

// SoundProfile holds the tone parameters for accented and normal beats.
type SoundProfile struct {
	ID              string
	AccentFrequency float64 // Hz
	NormalFrequency float64 // Hz
	AccentVolume    float64 // gain, 0..1
	NormalVolume    float64 // gain, 0..1
	Decay           float64 // seconds
}

func signature(id string, noteValue int, pattern ...int) TimeSignature {
	accents := make([]bool, len(pattern))
	for i, p := range pattern {
		accents[i] = p == 1
	}
	return TimeSignature{
		ID:        id,
		Beats:     len(pattern),
		NoteValue: noteValue,
		accents:   accents,
	}
}

var signatures = []TimeSignature{
	signature("2/4", 4, 1, 0),
	signature("3/4", 4, 1, 0, 0),
	signature("4/4", 4, 1, 0, 0, 0),
	signature("5/4", 4, 1, 0, 0, 1, 0),
	signature("6/4", 4, 1, 0, 0, 1, 0, 0),
	signature("3/8", 8, 1, 0, 0),
	signature("6/8", 8, 1, 0, 0, 1, 0, 0),
	signature("7/8", 8, 1, 0, 1, 0, 1, 0, 0),
	signature("9/8", 8, 1, 0, 0, 1, 0, 0, 1, 0, 0),
	signature("12/8", 8, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0),
	signature("3/12", 12, 1, 0, 0),
}

var sounds = []SoundProfile{
	{ID: "beep", AccentFrequency: 1000, NormalFrequency: 800, AccentVolume: 1.0, NormalVolume: 0.6, Decay: 0.05},
	{ID: "click", AccentFrequency: 2000, NormalFrequency: 1500, AccentVolume: 0.9, NormalVolume: 0.5, Decay: 0.02},
	{ID: "wood", AccentFrequency: 900, NormalFrequency: 650, AccentVolume: 0.8, NormalVolume: 0.5, Decay: 0.08},
	{ID: "digital", AccentFrequency: 1760, NormalFrequency: 880, AccentVolume: 0.7, NormalVolume: 0.4, Decay: 0.04},
	{ID: "soft", AccentFrequency: 660, NormalFrequency: 440, AccentVolume: 0.5, NormalVolume: 0.3, Decay: 0.12},
}

var (
	signatureByID = make(map[string]TimeSignature, len(signatures))
	soundByID     = make(map[string]SoundProfile, len(sounds))
)

func init() {
	for _, ts := range signatures {
		signatureByID[ts.ID] = ts
	}
	for _, sp := range sounds {
		soundByID[sp.ID] = sp
	}
}

// LookupSignature returns the time signature registered under id.
func LookupSignature(id string) (TimeSignature, bool) {
	ts, ok := signatureByID[id]
	return ts, ok
}

// LookupSound returns the sound profile registered under id.
func LookupSound(id string) (SoundProfile, bool) {
	sp, ok := soundByID[id]
	return sp, ok
}

// Signatures lists every known time signature in display order.
func Signatures() []TimeSignature {
	out := make([]TimeSignature, len(signatures))
	copy(out, signatures)
	return out
}

// SoundProfiles lists every known sound profile in display order.
func SoundProfiles() []SoundProfile {
	out := make([]SoundProfile, len(sounds))
	copy(out, sounds)
	return out
}

package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/dimfu/metronome/internal/metronome"
)

// decayFloor is the envelope level a tone fades to by the end of its decay.
const decayFloor = 0.001

// renderTone pre-renders a decaying sine for n into a buffer, so the voice
// carries the sound parameters that were active when it was scheduled.
func renderTone(format beep.Format, n metronome.Note) beep.Streamer {
	length := format.SampleRate.N(time.Duration(n.Decay * float64(time.Second)))
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(length, decayingSine(format.SampleRate, n.Frequency, n.Decay)))

	return &effects.Gain{
		Streamer: buf.Streamer(0, buf.Len()),
		Gain:     n.Volume - 1,
	}
}

func decayingSine(sr beep.SampleRate, freq, decay float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	total := decay * float64(sr)
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for k := range samples {
			env := math.Pow(decayFloor, float64(i)/total)
			v := env * math.Sin(step*float64(i))
			samples[k] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

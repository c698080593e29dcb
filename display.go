package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"

	"github.com/dimfu/metronome/internal/metronome"
)

// status is the read side of the scheduler the display renders.
type status interface {
	Tempo() int
	TimeSignature() metronome.TimeSignature
	SoundProfile() metronome.SoundProfile
	Running() bool
}

// Display renders a one line beat indicator that is rewritten in place.
type Display struct {
	w     *uilive.Writer
	beats chan int
	src   status
}

func NewDisplay(out io.Writer) *Display {
	w := uilive.New()
	w.Out = out
	return &Display{
		w:     w,
		beats: make(chan int, BEAT_BACKLOG),
	}
}

// Notify hands a beat to the display without blocking the scheduler. Beats
// arrive in scheduling order; when the backlog is full the beat is dropped.
func (d *Display) Notify(beat int) {
	select {
	case d.beats <- beat:
	default:
	}
}

// Attach sets the scheduler state shown next to the beat marks.
func (d *Display) Attach(src status) {
	d.src = src
}

// Run redraws on every beat and on a slow refresh until done is closed.
func (d *Display) Run(done <-chan struct{}) {
	d.w.Start()
	defer d.w.Stop()

	refresh := time.NewTicker(200 * time.Millisecond)
	defer refresh.Stop()

	beat := 0
	d.draw(beat)
	for {
		select {
		case beat = <-d.beats:
			d.draw(beat)
		case <-refresh.C:
			d.draw(beat)
		case <-done:
			return
		}
	}
}

func (d *Display) draw(beat int) {
	if d.src == nil {
		return
	}
	fmt.Fprintln(d.w, renderLine(d.src.TimeSignature(), beat, d.src.Tempo(), d.src.SoundProfile().ID, d.src.Running()))
	fmt.Fprintln(d.w, helpLine)
}

// renderLine formats the status line, e.g. "120 BPM  4/4   beep     X . . .  playing".
// Accented beats show as o, the current beat as X (accent) or x.
func renderLine(sig metronome.TimeSignature, beat, tempo int, sound string, running bool) string {
	marks := make([]string, sig.Beats)
	for i := range marks {
		switch {
		case running && i == beat && sig.Accent(i):
			marks[i] = "X"
		case running && i == beat:
			marks[i] = "x"
		case sig.Accent(i):
			marks[i] = "o"
		default:
			marks[i] = "."
		}
	}
	state := "stopped"
	if running {
		state = "playing"
	}
	return fmt.Sprintf("%3d BPM  %-5s %-8s %s  %s", tempo, sig.ID, sound, strings.Join(marks, " "), state)
}

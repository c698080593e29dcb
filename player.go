package main

import (
	"time"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dimfu/metronome/internal/audio"
	"github.com/dimfu/metronome/internal/metronome"
)

// Settings is everything needed to build a Player.
type Settings struct {
	Tempo      int
	Timesig    string
	Sound      string
	LookAhead  time.Duration
	Poll       time.Duration
	Latency    time.Duration
	SampleRate int
}

// clock is the part of the audio timeline the player owns the lifetime of.
type clock interface {
	metronome.Clock
	Start(latency time.Duration) error
	Close()
}

// Player ties the speaker timeline to a scheduler and exposes the controls
// the terminal front end needs.
type Player struct {
	clock     clock
	scheduler *metronome.Scheduler
	latency   time.Duration
	log       logrus.FieldLogger
}

func NewPlayer(s Settings, onBeat func(int), log logrus.FieldLogger) (*Player, error) {
	tl := audio.NewTimeline(beep.SampleRate(s.SampleRate), log)
	return newPlayer(tl, s, onBeat, log)
}

func newPlayer(c clock, s Settings, onBeat func(int), log logrus.FieldLogger) (*Player, error) {
	if s.Latency >= s.LookAhead {
		return nil, errors.Errorf("speaker latency %s must be shorter than the look-ahead %s", s.Latency, s.LookAhead)
	}
	sched, err := metronome.New(c,
		metronome.WithTempo(s.Tempo),
		metronome.WithTimeSignature(s.Timesig),
		metronome.WithSoundProfile(s.Sound),
		metronome.WithLookAhead(s.LookAhead),
		metronome.WithPollInterval(s.Poll),
		metronome.WithBeatHandler(onBeat),
		metronome.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &Player{
		clock:     c,
		scheduler: sched,
		latency:   s.Latency,
		log:       log,
	}, nil
}

// Open starts streaming the timeline to the speaker.
func (p *Player) Open() error {
	return p.clock.Start(p.latency)
}

func (p *Player) Close() {
	p.scheduler.Stop()
	p.clock.Close()
}

func (p *Player) Toggle() {
	if p.scheduler.Running() {
		p.scheduler.Stop()
		return
	}
	p.scheduler.Start()
}

func (p *Player) NudgeTempo(delta int) {
	p.scheduler.SetTempo(p.scheduler.Tempo() + delta)
}

// CycleSignature switches to the signature after the active one.
func (p *Player) CycleSignature() {
	sigs := metronome.Signatures()
	ids := make([]string, len(sigs))
	for i, ts := range sigs {
		ids[i] = ts.ID
	}
	p.set(p.scheduler.SetTimeSignature, nextID(ids, p.scheduler.TimeSignature().ID))
}

// CycleSound switches to the sound profile after the active one.
func (p *Player) CycleSound() {
	sounds := metronome.SoundProfiles()
	ids := make([]string, len(sounds))
	for i, sp := range sounds {
		ids[i] = sp.ID
	}
	p.set(p.scheduler.SetSoundProfile, nextID(ids, p.scheduler.SoundProfile().ID))
}

func (p *Player) set(apply func(string) error, id string) {
	if err := apply(id); err != nil {
		p.log.WithError(err).Warn("ignored")
	}
}

func (p *Player) Scheduler() *metronome.Scheduler {
	return p.scheduler
}

func nextID(ids []string, current string) string {
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

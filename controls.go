package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type controls interface {
	Toggle()
	NudgeTempo(delta int)
	CycleSignature()
	CycleSound()
}

// handleKey applies one key press and reports whether the user asked to quit.
func handleKey(c controls, ch rune, key keyboard.Key) bool {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return true
	case keyboard.KeySpace:
		c.Toggle()
		return false
	case keyboard.KeyArrowUp, keyboard.KeyArrowRight:
		c.NudgeTempo(TEMPO_STEP)
		return false
	case keyboard.KeyArrowDown, keyboard.KeyArrowLeft:
		c.NudgeTempo(-TEMPO_STEP)
		return false
	}

	switch ch {
	case 'q', 'Q':
		return true
	case ' ':
		c.Toggle()
	case '+', '=':
		c.NudgeTempo(TEMPO_STEP)
	case '-', '_':
		c.NudgeTempo(-TEMPO_STEP)
	case ']':
		c.NudgeTempo(TEMPO_BIG_STEP)
	case '[':
		c.NudgeTempo(-TEMPO_BIG_STEP)
	case 's', 'S':
		c.CycleSignature()
	case 't', 'T':
		c.CycleSound()
	}
	return false
}

// runInteractive drives the player from the keyboard while the display
// shows the beat, until the user quits or a signal arrives.
func runInteractive(p *Player, d *Display, log logrus.FieldLogger) error {
	keysEvents, err := keyboard.GetKeys(10)
	if err != nil {
		return errors.Wrap(err, "error while opening keyboard")
	}
	defer keyboard.Close()

	if err := ClearTerminal(); err != nil {
		log.WithError(err).Debug("could not clear terminal")
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		d.Run(done)
		close(stopped)
	}()
	defer func() {
		close(done)
		<-stopped
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	p.Scheduler().Start()
	for {
		select {
		case ev, ok := <-keysEvents:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return errors.Wrap(ev.Err, "error while reading keyboard")
			}
			if handleKey(p, ev.Rune, ev.Key) {
				return nil
			}
		case <-sig:
			return nil
		}
	}
}

// runPlain plays until a signal arrives, logging every scheduled beat.
func runPlain(p *Player, beats <-chan int, log logrus.FieldLogger) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	p.Scheduler().Start()
	for {
		select {
		case beat := <-beats:
			log.WithField("beat", beat).Debug("tick")
		case <-sig:
			return nil
		}
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/dimfu/metronome/internal/metronome"
)

var runFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "tempo, t",
		Value: metronome.DefaultTempo,
		Usage: fmt.Sprintf("beats per minute, clamped to %d-%d", metronome.MinTempo, metronome.MaxTempo),
	},
	cli.StringFlag{
		Name:  "timesig, s",
		Value: metronome.DefaultSignature,
		Usage: "time signature, see `clack list`",
	},
	cli.StringFlag{
		Name:  "sound",
		Value: metronome.DefaultSound,
		Usage: "sound profile, see `clack list`",
	},
	cli.StringFlag{
		Name:  "preset, p",
		Usage: "load tempo, time signature and sound from a saved preset",
	},
	cli.StringFlag{
		Name:  "config",
		Usage: "presets file (default ~/.clack.json)",
	},
	cli.DurationFlag{
		Name:  "lookahead",
		Value: DEFAULT_LOOKAHD,
		Usage: "how far ahead notes are scheduled",
	},
	cli.DurationFlag{
		Name:  "poll",
		Value: DEFAULT_POLL,
		Usage: "how often the scheduler wakes up, must be below --lookahead",
	},
	cli.DurationFlag{
		Name:  "latency",
		Value: DEFAULT_LATENCY,
		Usage: "speaker buffer length, must be below --lookahead",
	},
	cli.IntFlag{
		Name:  "sample-rate",
		Value: DEFAULT_RATE,
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: DEFAULT_LOGLVL,
		Usage: "debug, info, warn or error",
	},
}

// Execute runs the command line application.
func Execute(args []string) error {
	app := cli.App{
		Name:      "clack",
		HelpName:  "clack",
		Usage:     "a drift-free terminal metronome",
		UsageText: "clack [options] | clack list",
		Flags:     runFlags,
		Action:    play,
		Commands: []cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list time signatures and sound profiles",
				Action: func(c *cli.Context) error {
					return list(c.App.Writer)
				},
			},
		},
	}
	return app.Run(args)
}

// flagSource is the subset of *cli.Context settings are read from.
type flagSource interface {
	IsSet(name string) bool
	Int(name string) int
	String(name string) string
	Duration(name string) time.Duration
}

// resolveSettings layers explicitly set flags over the selected preset over
// the flag defaults.
func resolveSettings(fs flagSource, log logrus.FieldLogger) (Settings, error) {
	s := Settings{
		Tempo:      fs.Int("tempo"),
		Timesig:    fs.String("timesig"),
		Sound:      fs.String("sound"),
		LookAhead:  fs.Duration("lookahead"),
		Poll:       fs.Duration("poll"),
		Latency:    fs.Duration("latency"),
		SampleRate: fs.Int("sample-rate"),
	}

	if key := fs.String("preset"); key != "" {
		preset, err := loadPreset(fs.String("config"), key)
		if err != nil {
			return s, err
		}
		if preset.Tempo != 0 && !fs.IsSet("tempo") {
			s.Tempo = preset.Tempo
		}
		if preset.Timesig != "" && !fs.IsSet("timesig") {
			s.Timesig = preset.Timesig
		}
		if preset.Sound != "" && !fs.IsSet("sound") {
			s.Sound = preset.Sound
		}
	}

	if clamped := metronome.ClampTempo(s.Tempo); clamped != s.Tempo {
		log.WithFields(logrus.Fields{"requested": s.Tempo, "tempo": clamped}).Warn("tempo out of range, clamped")
		s.Tempo = clamped
	}
	if _, ok := metronome.LookupSignature(s.Timesig); !ok {
		return s, errors.Wrapf(metronome.ErrUnknownSignature, "%q", s.Timesig)
	}
	if _, ok := metronome.LookupSound(s.Sound); !ok {
		return s, errors.Wrapf(metronome.ErrUnknownSound, "%q", s.Sound)
	}
	if s.SampleRate <= 0 {
		return s, errors.Errorf("invalid sample rate %d", s.SampleRate)
	}
	return s, nil
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --log-level")
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

func play(c *cli.Context) error {
	log, err := newLogger(c.String("log-level"), os.Stderr)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(c, log)
	if err != nil {
		return err
	}

	interactive := isInteractive()
	var (
		display *Display
		beats   chan int
		onBeat  func(int)
	)
	if interactive {
		display = NewDisplay(os.Stdout)
		onBeat = display.Notify
		// log lines would tear the live display apart
		if log.GetLevel() > logrus.WarnLevel {
			log.SetLevel(logrus.WarnLevel)
		}
	} else {
		beats = make(chan int, BEAT_BACKLOG)
		onBeat = func(beat int) {
			select {
			case beats <- beat:
			default:
			}
		}
	}

	p, err := NewPlayer(settings, onBeat, log)
	if err != nil {
		return err
	}
	if err := p.Open(); err != nil {
		return err
	}
	defer p.Close()

	log.WithFields(logrus.Fields{
		"tempo":     settings.Tempo,
		"signature": settings.Timesig,
		"sound":     settings.Sound,
	}).Info("metronome ready")

	if interactive {
		display.Attach(p.Scheduler())
		return runInteractive(p, display, log)
	}
	return runPlain(p, beats, log)
}

func list(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNATURE\tBEATS\tNOTE\tACCENTS")
	for _, ts := range metronome.Signatures() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", ts.ID, ts.Beats, ts.NoteValue, accentString(ts))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SOUND\tACCENT\tNORMAL\tDECAY")
	for _, sp := range metronome.SoundProfiles() {
		fmt.Fprintf(tw, "%s\t%.0f Hz @ %.1f\t%.0f Hz @ %.1f\t%s\n",
			sp.ID, sp.AccentFrequency, sp.AccentVolume, sp.NormalFrequency, sp.NormalVolume,
			time.Duration(sp.Decay*float64(time.Second)))
	}
	return tw.Flush()
}

func accentString(ts metronome.TimeSignature) string {
	var b strings.Builder
	for i, a := range ts.Accents() {
		if i > 0 {
			b.WriteByte(' ')
		}
		if a {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

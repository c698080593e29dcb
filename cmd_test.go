package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimfu/metronome/internal/metronome"
)

type fakeFlags struct {
	ints      map[string]int
	strings   map[string]string
	durations map[string]time.Duration
	set       map[string]bool
}

func defaultFlags() *fakeFlags {
	return &fakeFlags{
		ints: map[string]int{
			"tempo":       metronome.DefaultTempo,
			"sample-rate": DEFAULT_RATE,
		},
		strings: map[string]string{
			"timesig": metronome.DefaultSignature,
			"sound":   metronome.DefaultSound,
		},
		durations: map[string]time.Duration{
			"lookahead": DEFAULT_LOOKAHD,
			"poll":      DEFAULT_POLL,
			"latency":   DEFAULT_LATENCY,
		},
		set: map[string]bool{},
	}
}

func (f *fakeFlags) IsSet(name string) bool             { return f.set[name] }
func (f *fakeFlags) Int(name string) int                { return f.ints[name] }
func (f *fakeFlags) String(name string) string          { return f.strings[name] }
func (f *fakeFlags) Duration(name string) time.Duration { return f.durations[name] }

func (f *fakeFlags) setInt(name string, v int) {
	f.ints[name] = v
	f.set[name] = true
}

func (f *fakeFlags) setString(name string, v string) {
	f.strings[name] = v
	f.set[name] = true
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestResolveSettingsDefaults(t *testing.T) {
	s, err := resolveSettings(defaultFlags(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Tempo:      120,
		Timesig:    "4/4",
		Sound:      "beep",
		LookAhead:  DEFAULT_LOOKAHD,
		Poll:       DEFAULT_POLL,
		Latency:    DEFAULT_LATENCY,
		SampleRate: DEFAULT_RATE,
	}, s)
}

func TestResolveSettingsClampsTempo(t *testing.T) {
	f := defaultFlags()
	f.setInt("tempo", 900)
	s, err := resolveSettings(f, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, metronome.MaxTempo, s.Tempo)
}

func TestResolveSettingsRejectsUnknownIDs(t *testing.T) {
	f := defaultFlags()
	f.setString("timesig", "4/5")
	_, err := resolveSettings(f, discardLogger())
	assert.ErrorIs(t, err, metronome.ErrUnknownSignature)

	f = defaultFlags()
	f.setString("sound", "cowbell")
	_, err = resolveSettings(f, discardLogger())
	assert.ErrorIs(t, err, metronome.ErrUnknownSound)
}

func TestResolveSettingsPresetUnderFlags(t *testing.T) {
	path := writePresets(t, `[{"key":"slow","tempo":60,"timesig":"3/4","sound":"wood"}]`)

	f := defaultFlags()
	f.strings["config"] = path
	f.strings["preset"] = "slow"
	s, err := resolveSettings(f, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 60, s.Tempo)
	assert.Equal(t, "3/4", s.Timesig)
	assert.Equal(t, "wood", s.Sound)

	f.setInt("tempo", 90)
	s, err = resolveSettings(f, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 90, s.Tempo)
	assert.Equal(t, "3/4", s.Timesig)
}

func TestResolveSettingsMissingPreset(t *testing.T) {
	f := defaultFlags()
	f.strings["config"] = writePresets(t, `[]`)
	f.strings["preset"] = "slow"
	_, err := resolveSettings(f, discardLogger())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger("warn", &buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger("loud", &buf)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, list(&buf))
	out := buf.String()
	for _, ts := range metronome.Signatures() {
		assert.Contains(t, out, ts.ID)
	}
	for _, sp := range metronome.SoundProfiles() {
		assert.Contains(t, out, sp.ID)
	}
	assert.Contains(t, out, "1 0 0 1 0 0")
}

func TestListCommand(t *testing.T) {
	assert.NoError(t, Execute([]string{"clack", "list"}))
}

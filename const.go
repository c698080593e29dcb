package main

import "time"

const (
	TEMPO_STEP      = 1
	TEMPO_BIG_STEP  = 10
	DEFAULT_LOOKAHD = 100 * time.Millisecond
	DEFAULT_POLL    = 25 * time.Millisecond
	DEFAULT_LATENCY = 25 * time.Millisecond
	DEFAULT_RATE    = 44100
	DEFAULT_LOGLVL  = "info"

	// beats buffered between the scheduler and the display
	BEAT_BACKLOG = 64
)

const helpLine = "space start/stop  +/- tempo  [/] tempo x10  s signature  t sound  q quit"

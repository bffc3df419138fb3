package main

import (
	"math"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

const toneRate = beep.SampleRate(44100)

// ToneSystem stands in for wav playback in the terminal: every cue becomes a
// short sine tone whose pitch depends on what kind of cue it is.
type ToneSystem struct {
	enabled bool
	// Played records cue names in order, for tests and the status line.
	Played []string
	Muted  bool
}

// NewToneSystem opens the speaker. A missing audio device is not fatal; the
// system keeps consuming cues silently.
func NewToneSystem(mute bool) (*ToneSystem, error) {
	t := &ToneSystem{Muted: mute}
	if mute {
		return t, nil
	}
	if err := speaker.Init(toneRate, toneRate.N(time.Second/10)); err != nil {
		return t, err
	}
	t.enabled = true
	return t, nil
}

func (t *ToneSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, a *component.Audio) {
		for i := range a.Play {
			if !a.Play[i] || i >= len(a.Names) {
				continue
			}
			vol := 1.0
			if i < len(a.Volume) {
				vol = a.Volume[i]
			}
			t.Cue(a.Names[i], vol)
			a.Play[i] = false
		}
		for i := range a.Stop {
			a.Stop[i] = false
		}
	})
}

// Cue plays the tone for name.
func (t *ToneSystem) Cue(name string, vol float64) {
	if name == "" {
		return
	}
	t.Played = append(t.Played, name)
	if len(t.Played) > 32 {
		t.Played = t.Played[len(t.Played)-32:]
	}
	if !t.enabled || t.Muted || vol <= 0 {
		return
	}
	freq, dur := toneFor(name)
	sine, err := generators.SineTone(toneRate, freq)
	if err != nil {
		return
	}
	speaker.Play(&effects.Volume{Streamer: beep.Take(toneRate.N(dur), sine), Base: 2, Volume: math.Log2(vol)})
}

func (t *ToneSystem) Close() {
	if t.enabled {
		speaker.Close()
		t.enabled = false
	}
}

// toneFor picks pitch and length from the cue's suffix.
func toneFor(name string) (float64, time.Duration) {
	switch {
	case strings.HasSuffix(name, "_death"):
		return 220, 180 * time.Millisecond
	case strings.HasSuffix(name, "_hit"):
		return 440, 60 * time.Millisecond
	case strings.HasSuffix(name, "_cast"):
		return 990, 120 * time.Millisecond
	case strings.HasSuffix(name, "_attack"), strings.HasSuffix(name, "_release"):
		return 660, 50 * time.Millisecond
	case name == "pickup":
		return 1320, 80 * time.Millisecond
	}
	return 880, 50 * time.Millisecond
}

package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/cryptfall/assets"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// AudioSystem consumes the play and stop flags raised by the simulation and
// drives one ebiten player per cue name. Cues without a wav stay silent.
type AudioSystem struct {
	players map[string]*audio.Player
	Muted   bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{players: make(map[string]*audio.Player)}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Names)
		if len(audioComp.Play) < count {
			count = len(audioComp.Play)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			volume := 1.0
			if i < len(audioComp.Volume) {
				volume = audioComp.Volume[i]
			}
			a.play(audioComp.Names[i], volume)
			audioComp.Play[i] = false
		}

		for i := 0; i < count && i < len(audioComp.Stop); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			if player := a.players[audioComp.Names[i]]; player != nil && player.IsPlaying() {
				player.Pause()
			}
			audioComp.Stop[i] = false
		}
	})
}

// PlayCue plays a host-level cue such as the player being hit.
func (a *AudioSystem) PlayCue(name string) {
	a.play(name, 1)
}

func (a *AudioSystem) play(name string, volume float64) {
	if a.Muted {
		return
	}
	player, ok := a.players[name]
	if !ok {
		player = a.load(name)
		a.players[name] = player
	}
	if player == nil {
		return
	}
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", name, err)
		return
	}
	player.Play()
}

func (a *AudioSystem) load(name string) *audio.Player {
	if !assets.HasSound(name) {
		return nil
	}
	player, err := assets.LoadAudioPlayer(assets.SoundPath(name))
	if err != nil {
		log.Printf("audio: load %s: %v", name, err)
		return nil
	}
	return player
}

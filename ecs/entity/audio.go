package entity

import "github.com/milk9111/cryptfall/ecs/component"

// buildAudioComponent collects the distinct cue names a species can raise.
// Playback backends are attached by the host.
func buildAudioComponent(sounds component.SpeciesSounds) *component.Audio {
	names := make([]string, 0, 4)
	seen := make(map[string]bool, 4)
	for _, name := range []string{sounds.Attack, sounds.Cast, sounds.Hit, sounds.Death} {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	n := len(names)
	volume := make([]float64, n)
	for i := range volume {
		volume[i] = 1
	}
	return &component.Audio{
		Names:  names,
		Volume: volume,
		Play:   make([]bool, n),
		Stop:   make([]bool, n),
	}
}

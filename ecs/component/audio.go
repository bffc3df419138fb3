package component

// Audio holds named sound cues. Systems raise Play/Stop flags and the host
// audio system consumes them, so no playback backend leaks into the core.
type Audio struct {
	Names  []string
	Volume []float64
	Play   []bool
	Stop   []bool
}

// Trigger raises the play flag for name. Unknown names are ignored.
func (a *Audio) Trigger(name string) bool {
	if a == nil || name == "" {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

// Pending reports whether name is waiting to be played.
func (a *Audio) Pending(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			return a.Play[i]
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()

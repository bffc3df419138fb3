package component

const (
	CycleWalk   = "walk"
	CycleAttack = "attack"
	CycleCast   = "cast"
	CycleDeath  = "death"
	CycleIdle   = "idle"
)

// AnimationCycle is one independent playback cursor.
type AnimationCycle struct {
	Name    string
	Frames  int
	SpeedMS int64
	FrameW  float64
	FrameH  float64
	Loop    bool

	Frame     int
	LastTick  int64
	FirstDone bool
	Frozen    bool
}

// Reset rewinds the cycle to frame 0.
func (c *AnimationCycle) Reset(now int64) {
	c.Frame = 0
	c.LastTick = now
	c.FirstDone = false
	c.Frozen = false
}

// LastFrame reports whether the cursor sits on the final frame.
func (c *AnimationCycle) LastFrame() bool {
	return c.Frame >= c.Frames-1
}

// Advance steps one frame once SpeedMS has elapsed. It returns true when the
// cycle wrapped (or, for non-looping cycles, first reached its end).
func (c *AnimationCycle) Advance(now int64) bool {
	if c == nil || c.Frozen || c.Frames <= 0 {
		return false
	}
	if now-c.LastTick < c.SpeedMS {
		return false
	}
	c.LastTick = now
	if c.Frame+1 < c.Frames {
		c.Frame++
		if !c.Loop && c.Frame == c.Frames-1 && !c.FirstDone {
			c.FirstDone = true
			return true
		}
		return false
	}
	if c.Loop {
		c.Frame = 0
		c.FirstDone = true
		return true
	}
	if !c.FirstDone {
		c.FirstDone = true
		return true
	}
	return false
}

// Animation selects one active cycle out of several.
type Animation struct {
	Cycles  map[string]*AnimationCycle
	Current string
}

// Active returns the selected cycle, or nil.
func (a *Animation) Active() *AnimationCycle {
	if a == nil || a.Cycles == nil {
		return nil
	}
	return a.Cycles[a.Current]
}

// Play switches to name. It restarts the cycle only when switching.
func (a *Animation) Play(name string, now int64) *AnimationCycle {
	if a == nil {
		return nil
	}
	c, ok := a.Cycles[name]
	if !ok {
		return a.Active()
	}
	if a.Current != name {
		a.Current = name
		c.Reset(now)
	}
	return c
}

// Size returns the frame size of the active cycle.
func (a *Animation) Size() (float64, float64, bool) {
	c := a.Active()
	if c == nil || c.FrameW <= 0 || c.FrameH <= 0 {
		return 0, 0, false
	}
	return c.FrameW, c.FrameH, true
}

var AnimationComponent = NewComponent[Animation]()

// FrameRef is the presentation selector read by renderers.
type FrameRef struct {
	Cycle string
	Frame int
	FlipX bool
}

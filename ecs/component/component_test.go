package component

import "testing"

func TestAnimationCycleAdvance(t *testing.T) {
	t.Run("loop", func(t *testing.T) {
		c := &AnimationCycle{Frames: 3, SpeedMS: 10, Loop: true}
		var wraps []int64
		for now := int64(10); now <= 60; now += 10 {
			if c.Advance(now) {
				wraps = append(wraps, now)
			}
		}
		if len(wraps) != 2 || wraps[0] != 30 || wraps[1] != 60 {
			t.Fatalf("wraps at %v", wraps)
		}
		if c.Frame != 0 || !c.FirstDone {
			t.Fatalf("frame=%d firstDone=%v", c.Frame, c.FirstDone)
		}
	})

	t.Run("once", func(t *testing.T) {
		c := &AnimationCycle{Frames: 3, SpeedMS: 10}
		if c.Advance(10) {
			t.Fatalf("frame 1 is not the end")
		}
		if !c.Advance(20) || !c.FirstDone || !c.LastFrame() {
			t.Fatalf("reaching the last frame should report done")
		}
		if c.Advance(30) || c.Frame != 2 {
			t.Fatalf("a finished cycle holds its last frame")
		}
	})

	t.Run("timing and freeze", func(t *testing.T) {
		c := &AnimationCycle{Frames: 4, SpeedMS: 100, Loop: true}
		c.Advance(99)
		if c.Frame != 0 {
			t.Fatalf("advanced before SpeedMS elapsed")
		}
		c.Frozen = true
		c.Advance(500)
		if c.Frame != 0 {
			t.Fatalf("frozen cycle advanced")
		}
		c.Reset(500)
		if c.Frozen || c.LastTick != 500 {
			t.Fatalf("Reset should unfreeze and restamp")
		}
	})
}

func TestAnimationPlay(t *testing.T) {
	a := &Animation{
		Current: CycleWalk,
		Cycles: map[string]*AnimationCycle{
			CycleWalk:   {Frames: 4, SpeedMS: 10, FrameW: 64, FrameH: 64, Loop: true},
			CycleAttack: {Frames: 4, SpeedMS: 10, FrameW: 96, FrameH: 64, Loop: true},
		},
	}
	a.Cycles[CycleWalk].Frame = 3
	a.Play(CycleWalk, 100)
	if a.Cycles[CycleWalk].Frame != 3 {
		t.Fatalf("replaying the current cycle should not reset it")
	}

	a.Cycles[CycleAttack].Frame = 2
	a.Play(CycleAttack, 100)
	if a.Current != CycleAttack || a.Active().Frame != 0 {
		t.Fatalf("switching should restart the cycle")
	}
	if w, h, ok := a.Size(); !ok || w != 96 || h != 64 {
		t.Fatalf("Size = %v %v %v", w, h, ok)
	}

	a.Play("missing", 100)
	if a.Current != CycleAttack {
		t.Fatalf("unknown cycles are ignored")
	}
}

func TestAudioTrigger(t *testing.T) {
	a := &Audio{Names: []string{"hit", "death"}, Play: make([]bool, 2)}
	if !a.Trigger("death") || !a.Pending("death") || a.Pending("hit") {
		t.Fatalf("trigger flags = %v", a.Play)
	}
	if a.Trigger("unknown") || a.Trigger("") {
		t.Fatalf("unknown names should be ignored")
	}
	var none *Audio
	if none.Trigger("hit") || none.Pending("hit") {
		t.Fatalf("nil audio should be inert")
	}
}

func TestMonsterScoreAndFacing(t *testing.T) {
	m := &Monster{Direction: 1}
	if m.ConsumeScore() {
		t.Fatalf("nothing to claim yet")
	}
	m.MarkScore()
	if !m.ConsumeScore() || m.ConsumeScore() {
		t.Fatalf("score should be claimable exactly once")
	}

	m.Flip()
	if !m.Turned() {
		t.Fatalf("flipped monster should face left")
	}
	if MonsterStateDying.Alive() || MonsterStateDead.Alive() || !MonsterStateStunned.Alive() {
		t.Fatalf("Alive() mismatch")
	}
	if MonsterState(99).String() != "MonsterState(99)" {
		t.Fatalf("String() = %q", MonsterState(99).String())
	}
}

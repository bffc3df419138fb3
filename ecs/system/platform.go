package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// PlatformSystem steps moving platforms and carries whatever stands on
// them: the player and grounded monsters.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem {
	return &PlatformSystem{}
}

func (s *PlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := frameInput(w).Now

	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, t *component.Transform) {
		mp.DX, mp.DY = 0, 0
		if now-mp.LastMove < mp.IntervalMS {
			return
		}
		mp.LastMove = now

		step := mp.Speed * mp.Direction
		before := t.Rect
		if mp.Vertical {
			mp.DY = step
		} else {
			mp.DX = step
		}
		t.Rect = t.Rect.Offset(mp.DX, mp.DY)
		mp.Moved += mp.Speed
		if mp.Moved >= mp.Distance {
			mp.Moved = 0
			mp.Direction = -mp.Direction
		}

		carryRiders(w, before, mp.DX, mp.DY)
	})
}

// carryRiders shifts every grounded body whose feet rest on top.
func carryRiders(w *ecs.World, top common.Rect, dx, dy float64) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		if !body.OnGround {
			return
		}
		if !standsOn(t.Rect, top) {
			return
		}
		t.Rect = t.Rect.Offset(dx, dy)
	})
}

func standsOn(r, platform common.Rect) bool {
	const slack = 1
	if r.Right() <= platform.Left() || r.Left() >= platform.Right() {
		return false
	}
	gap := platform.Top() - r.Bottom()
	return gap >= -slack && gap <= slack
}

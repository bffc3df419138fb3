package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// frameInput returns the host's per-frame input, or a zero value when the
// singleton is missing.
func frameInput(w *ecs.World) *component.FrameInput {
	if e, ok := ecs.First(w, component.FrameInputComponent.Kind()); ok {
		if in, ok := ecs.Get(w, e, component.FrameInputComponent.Kind()); ok {
			return in
		}
	}
	return &component.FrameInput{}
}

// playerView is the read-only snapshot of the player that AI decisions use.
type playerView struct {
	entity ecs.Entity
	rect   common.Rect
	velY   float64
	ok     bool
}

func (p playerView) grounded() bool {
	return p.ok && p.velY == 0
}

// position is the center-x / bottom point monsters aim at.
func (p playerView) position() common.Vec2 {
	return common.Vec2{X: p.rect.CenterX(), Y: p.rect.Bottom()}
}

func lookupPlayer(w *ecs.World) playerView {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return playerView{}
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return playerView{}
	}
	view := playerView{entity: e, rect: t.Rect, ok: true}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		view.velY = body.VelY
	}
	return view
}

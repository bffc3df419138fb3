package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// CameraSystem keeps the player inside the scroll thresholds. Whatever the
// player oversteps becomes the frame's scroll delta: the player is pulled
// back and ScrollSystem shifts the rest of the world by the same amount.
type CameraSystem struct {
	settings common.Settings
}

func NewCameraSystem(settings common.Settings) *CameraSystem {
	return &CameraSystem{settings: settings}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := frameInput(w)
	in.HScroll, in.VScroll = 0, 0

	player := lookupPlayer(w)
	if !player.ok {
		return
	}
	t, ok := ecs.Get(w, player.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	in.HScroll = overstep(t.Rect.Left(), t.Rect.Right(), s.settings.HScrollThreshold, float64(s.settings.ScreenWidth)-s.settings.HScrollThreshold)
	in.VScroll = overstep(t.Rect.Top(), t.Rect.Bottom(), s.settings.VScrollThreshold, float64(s.settings.ScreenHeight)-s.settings.VScrollThreshold)
	t.Rect = t.Rect.Offset(-in.HScroll, -in.VScroll)
}

// overstep returns how far [lo, hi] pokes out of [min, max]. Negative means
// past min.
func overstep(lo, hi, min, max float64) float64 {
	switch {
	case hi > max:
		return hi - max
	case lo < min:
		return lo - min
	}
	return 0
}

// ScrollSystem applies the frame scroll to every scroll-tagged entity.
type ScrollSystem struct{}

func NewScrollSystem() *ScrollSystem {
	return &ScrollSystem{}
}

func (s *ScrollSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := frameInput(w)
	if in.HScroll == 0 && in.VScroll == 0 {
		return
	}
	ecs.ForEach2(w, component.ScrollTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.ScrollTag, t *component.Transform) {
		t.Rect = t.Rect.Offset(-in.HScroll, -in.VScroll)
	})
	// cast targets and death spots are world points too
	ecs.ForEach(w, component.MonsterComponent.Kind(), func(e ecs.Entity, m *component.Monster) {
		m.CastTargetX -= in.HScroll
		m.CastTargetY -= in.VScroll
		m.DeathSpot.X -= in.HScroll
		m.DeathSpot.Y -= in.VScroll
	})
}

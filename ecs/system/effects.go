package system

import (
	"math"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// ProjectileSystem moves projectiles horizontally and destroys them on the
// first obstacle they overlap, solid or not, or once they are a full screen
// away from the player.
type ProjectileSystem struct {
	settings common.Settings
}

func NewProjectileSystem(settings common.Settings) *ProjectileSystem {
	return &ProjectileSystem{settings: settings}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	player := lookupPlayer(w)

	var dead []ecs.Entity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		t.Rect = t.Rect.Offset(p.Speed*p.Direction, 0)
		if pw != nil && len(pw.Query(t.Rect)) > 0 {
			dead = append(dead, e)
			return
		}
		if player.ok && math.Abs(t.Rect.CenterX()-player.rect.CenterX()) > float64(s.settings.ScreenWidth) {
			dead = append(dead, e)
		}
	})
	for _, e := range dead {
		ecs.DestroyEntity(w, e)
	}
}

// SpellSystem plays each spell's single cycle and removes the spell once
// the cycle has been shown through to its last frame.
type SpellSystem struct{}

func NewSpellSystem() *SpellSystem {
	return &SpellSystem{}
}

func (s *SpellSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := frameInput(w).Now

	var dead []ecs.Entity
	ecs.ForEach2(w, component.SpellComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, _ *component.Spell, anim *component.Animation) {
		c := anim.Active()
		if c == nil || c.FirstDone {
			dead = append(dead, e)
			return
		}
		c.Advance(now)
	})
	for _, e := range dead {
		ecs.DestroyEntity(w, e)
	}
}

// DropSystem loops drop animations. Drops leave the world only through
// pickup.
type DropSystem struct{}

func NewDropSystem() *DropSystem {
	return &DropSystem{}
}

func (s *DropSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := frameInput(w).Now
	ecs.ForEach2(w, component.DropComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, _ *component.Drop, anim *component.Animation) {
		anim.Active().Advance(now)
	})
}

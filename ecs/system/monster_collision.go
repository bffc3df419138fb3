package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

type collisionResult struct {
	dy      float64
	blocked bool
}

// resolveCollisions lands falling monsters on solid obstacles and turns
// them around at ledges and walls. Dying and dead monsters never land and
// never turn, so corpses fall through the floor.
func (s *MonsterSystem) resolveCollisions(ctx *monsterContext, dy float64) collisionResult {
	res := collisionResult{dy: dy}
	m, body := ctx.m, ctx.body
	pw := ctx.w.PhysicsWorld()
	if pw == nil || !m.State.Alive() {
		body.OnGround = false
		return res
	}

	hb := m.Hitbox
	body.OnGround = false
	projected := hb.Offset(0, dy)
	for _, ob := range pw.Query(projected) {
		if !ob.Solid {
			continue
		}
		if body.VelY > 0 && hb.Bottom() <= ob.Rect.CenterY() {
			body.VelY = 0
			body.OnGround = true
			// rest exactly on top instead of stopping wherever the step ended
			res.dy = ob.Rect.Top() - hb.Bottom()
			break
		}
	}
	// the hitbox is pinned to the rect, so snapping shifts both
	landed := hb.Offset(0, res.dy)

	step := s.probeStep(ctx)
	turned := false

	if body.OnGround && !ctx.species().Jumper {
		footY := landed.Bottom() + s.settings.FootDepth
		footX := landed.Right() + step
		if m.Direction < 0 {
			footX = landed.Left() - step
		}
		if !pw.SolidAt(footX, footY) {
			m.Flip()
			turned = true
			s.debugf("entity=%v ledge, now facing %v", ctx.e, m.Direction)
		}
	}

	if !turned {
		probe := landed.Inset(0, s.settings.WallShrink).Offset(step*m.Direction, 0)
		if hitsSolid(pw, probe) {
			m.Flip()
			ctx.t.Rect = ctx.t.Rect.Offset(s.settings.WallNudge*m.Direction, 0)
			body.VelX = 0
			res.blocked = true
			s.debugf("entity=%v wall, now facing %v", ctx.e, m.Direction)
		}
	}

	return res
}

// probeStep is how far ahead the probes look: the distance the monster may
// cover this frame, and never less than one pixel.
func (s *MonsterSystem) probeStep(ctx *monsterContext) float64 {
	sp := ctx.species()
	var speed float64
	switch ctx.m.State {
	case component.MonsterStateWalking:
		speed = sp.SpeedWalking
	case component.MonsterStateAttacking:
		speed = sp.SpeedAttacking
	case component.MonsterStateStunned:
		speed = ctx.body.VelX
		if speed < 0 {
			speed = -speed
		}
	}
	return common.MaxFloat(speed, 1)
}

func hitsSolid(pw *ecs.PhysicsWorld, r common.Rect) bool {
	for _, ob := range pw.Query(r) {
		if ob.Solid {
			return true
		}
	}
	return false
}

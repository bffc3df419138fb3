package system

import (
	"math"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// PlayerSystem applies input, gravity and obstacle collision to the player
// and keeps the attack swing rect up to date.
type PlayerSystem struct {
	settings common.Settings
}

func NewPlayerSystem(settings common.Settings) *PlayerSystem {
	return &PlayerSystem{settings: settings}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := frameInput(w).Now
	pw := w.PhysicsWorld()

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.PlayerInputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.PlayerInput, t *component.Transform, body *component.PhysicsBody) {
			moveX := 0.0
			if in.Left {
				moveX--
			}
			if in.Right {
				moveX++
			}
			if moveX != 0 {
				p.Direction = moveX
			}
			body.VelX = moveX * s.settings.PlayerSpeed

			if in.Jump && body.OnGround {
				body.VelY = -s.settings.PlayerJump
			}
			body.VelY = math.Min(body.VelY+s.settings.Gravity, s.settings.MaxFallSpeed)

			t.Rect = slideX(pw, t.Rect, body)
			t.Rect = slideY(pw, t.Rect, body)

			if in.Attack && !p.Attacking(now) {
				p.AttackUntil = now + s.settings.PlayerAttackMS
				p.StruckThisSwing = make(map[uint64]bool)
			}
			if p.Attacking(now) {
				x := t.Rect.CenterX()
				if p.Direction < 0 {
					x -= s.settings.PlayerAttackRange
				}
				p.AttackRect = common.NewRect(x, t.Rect.Y, s.settings.PlayerAttackRange, t.Rect.H)
			} else {
				p.AttackRect = common.Rect{}
			}
		})
}

// slideX moves r horizontally by VelX and stops it flush against walls.
func slideX(pw *ecs.PhysicsWorld, r common.Rect, body *component.PhysicsBody) common.Rect {
	if body.VelX == 0 {
		return r
	}
	next := r.Offset(body.VelX, 0)
	for _, ob := range pw.Query(next) {
		if !ob.Solid {
			continue
		}
		if body.VelX > 0 {
			next.X = ob.Rect.Left() - next.W
		} else {
			next.X = ob.Rect.Right()
		}
		body.VelX = 0
	}
	return next
}

// slideY moves r vertically by VelY, landing on floors and bumping ceilings.
func slideY(pw *ecs.PhysicsWorld, r common.Rect, body *component.PhysicsBody) common.Rect {
	body.OnGround = false
	next := r.Offset(0, body.VelY)
	for _, ob := range pw.Query(next) {
		if !ob.Solid {
			continue
		}
		if body.VelY > 0 {
			next.Y = ob.Rect.Top() - next.H
			body.OnGround = true
		} else if body.VelY < 0 {
			next.Y = ob.Rect.Bottom()
		}
		body.VelY = 0
	}
	return next
}

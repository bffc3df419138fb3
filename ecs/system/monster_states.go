package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// StateChangedEvent is pushed on the world event queue after a transition.
type StateChangedEvent struct {
	Entity ecs.Entity
	From   component.MonsterState
	To     component.MonsterState
}

// MonsterDiedEvent is pushed once a monster reaches DEAD.
type MonsterDiedEvent struct {
	Entity  ecs.Entity
	Species string
	Reward  int
}

// stateChange is the single transition entry point. Re-entering the current
// state does nothing: no animation reset and no sound.
func (s *MonsterSystem) stateChange(ctx *monsterContext, next component.MonsterState, attackType string, playerPos common.Vec2, deadly bool) bool {
	m, sp, anim := ctx.m, ctx.species(), ctx.anim
	if next == m.State {
		return false
	}
	prev := m.State

	if prev == component.MonsterStateStunned {
		if c := anim.Active(); c != nil {
			c.Frozen = false
		}
		ctx.body.VelX = 0
	}

	switch next {
	case component.MonsterStateAttacking:
		m.State = next
		if ctx.ready() {
			s.strike(ctx)
		} else {
			s.playCycle(ctx, component.CycleWalk)
		}
	case component.MonsterStateWalking:
		m.State = next
		s.playCycle(ctx, component.CycleWalk)
		m.Attack = common.Rect{}
	case component.MonsterStateCasting:
		m.State = next
		s.playCycle(ctx, component.CycleCast)
		m.CurrentlyCasting = attackType
		m.CastTargetX, m.CastTargetY = playerPos.X, playerPos.Y
		m.LastCast = ctx.now
		m.Attack = common.Rect{}
		if sp.Caster {
			ctx.audio.Trigger(sp.Sounds.Cast)
		}
	case component.MonsterStateStunned:
		m.State = next
		ctx.audio.Trigger(sp.Sounds.Hit)
		m.StunStart = ctx.now
		m.Invulnerable = true
		m.DieAfterStun = deadly
		m.CurrentlyCasting = ""
		if playerPos.X < ctx.t.Rect.CenterX() {
			m.Direction = -1
		} else {
			m.Direction = 1
		}
		if !deadly {
			// dx is facing-relative, so a negative speed pushes away from the attacker
			ctx.body.VelX = -s.settings.Knockback
		}
		if c := anim.Active(); c != nil {
			c.Frozen = true
		}
		m.Attack, m.Detect = common.Rect{}, common.Rect{}
	case component.MonsterStateDying:
		m.State = next
		m.DeathSpot = common.Vec2{X: ctx.t.Rect.CenterX(), Y: ctx.t.Rect.Bottom()}
		s.playCycle(ctx, component.CycleDeath)
		if c := anim.Active(); c != nil {
			c.Reset(ctx.now)
		}
		ctx.audio.Trigger(sp.Sounds.Death)
		m.Hitbox, m.Attack, m.Detect = common.Rect{}, common.Rect{}, common.Rect{}
	case component.MonsterStateDead:
		m.State = next
		m.MarkScore()
		ctx.w.Events().Push(ecs.Event{Type: ecs.EventMonsterDied, Data: MonsterDiedEvent{Entity: ctx.e, Species: sp.ID, Reward: sp.Reward}})
	default:
		fatalf("monster: entity %v asked for unknown state %v", ctx.e, next)
		return false
	}

	if w, h, ok := anim.Size(); ok {
		ctx.t.Rect = ctx.t.Rect.Resized(w, h)
	}

	ctx.w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Data: StateChangedEvent{Entity: ctx.e, From: prev, To: next}})
	s.debugf("entity=%v %v -> %v", ctx.e, prev, next)
	return true
}

// playCycle selects a cycle and unfreezes it. Switching restarts it.
func (s *MonsterSystem) playCycle(ctx *monsterContext, name string) {
	if c := ctx.anim.Play(name, ctx.now); c != nil {
		c.Frozen = false
	}
}

// strike starts one attack: attack cycle, cooldown stamp and sound.
func (s *MonsterSystem) strike(ctx *monsterContext) {
	m := ctx.m
	s.playCycle(ctx, component.CycleAttack)
	if c := ctx.anim.Active(); c != nil && ctx.anim.Current == component.CycleAttack {
		c.Reset(ctx.now)
	}
	m.LastAttack = ctx.now
	m.ProjectileFired = false
	ctx.audio.Trigger(ctx.species().Sounds.Attack)
	if w, h, ok := ctx.anim.Size(); ok {
		ctx.t.Rect = ctx.t.Rect.Resized(w, h)
	}
}

// attackCycleDone runs when the attack cycle wraps: keep pursuing while
// the player is still detected, otherwise fall back to walking.
func (s *MonsterSystem) attackCycleDone(ctx *monsterContext) {
	if ctx.playerDetected() {
		s.playCycle(ctx, component.CycleWalk)
		if w, h, ok := ctx.anim.Size(); ok {
			ctx.t.Rect = ctx.t.Rect.Resized(w, h)
		}
		return
	}
	s.stateChange(ctx, component.MonsterStateWalking, "", common.Vec2{}, false)
}

func (s *MonsterSystem) walkStep(ctx *monsterContext) float64 {
	m, sp := ctx.m, ctx.species()
	if ctx.playerDetected() {
		s.stateChange(ctx, component.MonsterStateAttacking, "", ctx.player.position(), false)
		return s.attackSpeed(ctx)
	}
	if ctx.body.OnGround && sp.RandomTurns > 0 && s.rng.Float64() < sp.RandomTurns/100 {
		m.Flip()
	}
	return sp.SpeedWalking
}

func (s *MonsterSystem) attackStep(ctx *monsterContext) float64 {
	m, sp := ctx.m, ctx.species()
	if ctx.anim.Current != component.CycleAttack {
		// pursuing between strikes: no wrap will come to end the state
		if !ctx.playerDetected() {
			s.stateChange(ctx, component.MonsterStateWalking, "", common.Vec2{}, false)
			return sp.SpeedWalking
		}
		if ctx.ready() {
			s.strike(ctx)
		}
	}
	s.jumpCheck(ctx)

	if !sp.InstantDamage && ctx.anim.Current == component.CycleAttack && !m.ProjectileFired {
		if c := ctx.anim.Active(); c != nil && c.Frame >= sp.AttackFrame {
			m.ProjectileFired = true
			m.PendingProjectiles = append(m.PendingProjectiles, component.ProjectileSpawn{
				Name:      sp.Projectile,
				X:         m.Hitbox.CenterX() + m.Direction*m.Hitbox.W/2,
				Y:         m.Hitbox.CenterY(),
				Direction: m.Direction,
				Damage:    sp.AttackDamage,
			})
		}
	}
	return s.attackSpeed(ctx)
}

func (s *MonsterSystem) attackSpeed(ctx *monsterContext) float64 {
	return ctx.species().SpeedAttacking
}

// jumpCheck gives jumpers a small chance per frame to leap toward a player
// standing a little above them.
func (s *MonsterSystem) jumpCheck(ctx *monsterContext) {
	sp, body := ctx.species(), ctx.body
	if !sp.Jumper || body.VelY != 0 || !ctx.player.ok {
		return
	}
	rise := ctx.m.Hitbox.Bottom() - ctx.player.rect.Bottom()
	if rise <= 0 || rise >= s.settings.JumpThreshold {
		return
	}
	if s.rng.Float64() < s.settings.JumpChance {
		body.VelY = -s.settings.JumpImpulse
		body.OnGround = false
	}
}

func (s *MonsterSystem) stunStep(ctx *monsterContext) float64 {
	m, body := ctx.m, ctx.body
	if body.OnGround {
		body.VelX = common.Approach(body.VelX, s.settings.Friction)
	}
	dx := body.VelX
	if ctx.now-m.StunStart > ctx.species().StunTime {
		m.Invulnerable = false
		if m.DieAfterStun {
			s.stateChange(ctx, component.MonsterStateDying, "", common.Vec2{}, false)
		} else {
			s.stateChange(ctx, component.MonsterStateAttacking, "", ctx.player.position(), false)
		}
	}
	return dx
}

func (s *MonsterSystem) dyingStep(ctx *monsterContext) {
	c := ctx.anim.Cycles[component.CycleDeath]
	if c == nil || (ctx.anim.Current == component.CycleDeath && c.LastFrame()) {
		s.stateChange(ctx, component.MonsterStateDead, "", common.Vec2{}, false)
	}
}

// castStep waits for the cast cycle's last frame, then queues the spell fan
// aimed at the snapshot taken when casting began.
func (s *MonsterSystem) castStep(ctx *monsterContext) float64 {
	m := ctx.m
	c := ctx.anim.Active()
	if ctx.anim.Current != component.CycleCast || c == nil || !c.LastFrame() {
		return 0
	}
	if s.spells != nil && m.CurrentlyCasting != "" {
		spawns, err := s.spells.Fan(m.CurrentlyCasting, m.CastTargetX, m.CastTargetY)
		if err != nil {
			fatalf("monster: cast %q: %v", m.CurrentlyCasting, err)
			return 0
		}
		m.PendingSpells = append(m.PendingSpells, spawns...)
	}
	m.CurrentlyCasting = ""
	s.stateChange(ctx, component.MonsterStateWalking, "", common.Vec2{}, false)
	return 0
}

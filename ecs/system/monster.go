package system

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// fatalf reports configuration errors (unknown state or boss). Tests swap it
// out to observe the failure without exiting.
var fatalf = log.Fatalf

// MonsterSystem runs the monster state machine, collision and boss
// routines once per frame.
type MonsterSystem struct {
	settings common.Settings
	rng      *rand.Rand
	spells   *SpellCaster
	Debug    bool
}

func NewMonsterSystem(settings common.Settings, rng *rand.Rand, spells *SpellCaster) *MonsterSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &MonsterSystem{settings: settings, rng: rng, spells: spells}
}

// monsterContext bundles one monster's components for a single update.
type monsterContext struct {
	w      *ecs.World
	e      ecs.Entity
	m      *component.Monster
	t      *component.Transform
	body   *component.PhysicsBody
	anim   *component.Animation
	audio  *component.Audio
	now    int64
	player playerView
}

func (ctx *monsterContext) species() *component.Species {
	return ctx.m.Species
}

// playerDetected reports whether the player overlaps the detection band.
func (ctx *monsterContext) playerDetected() bool {
	return ctx.player.ok && ctx.m.Detect.Intersects(ctx.player.rect)
}

func (ctx *monsterContext) ready() bool {
	return ctx.now-ctx.m.LastAttack > ctx.species().AttackDelay
}

func (s *MonsterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame := frameInput(w)
	player := lookupPlayer(w)

	var window common.Rect
	if player.ok {
		window = common.RectFromCenter(player.rect.CenterX(), player.rect.CenterY(), float64(s.settings.ScreenWidth), float64(s.settings.ScreenHeight))
	}

	ecs.ForEach4(w,
		component.MonsterComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.AnimationComponent.Kind(),
		func(e ecs.Entity, m *component.Monster, t *component.Transform, body *component.PhysicsBody, anim *component.Animation) {
			if m.Species == nil {
				return
			}
			if player.ok && !window.Intersects(t.Rect) {
				m.Active = false
				return
			}
			m.Active = true

			audio, _ := ecs.Get(w, e, component.AudioComponent.Kind())
			s.updateMonster(&monsterContext{
				w:      w,
				e:      e,
				m:      m,
				t:      t,
				body:   body,
				anim:   anim,
				audio:  audio,
				now:    frame.Now,
				player: player,
			})
		})
}

// StateChange is the external entry point for transitions, used by combat
// to stun monsters. It is a no-op when the monster is already in state.
func (s *MonsterSystem) StateChange(w *ecs.World, e ecs.Entity, state component.MonsterState, attackType string, playerPos common.Vec2, deadly bool) bool {
	ctx, ok := s.context(w, e)
	if !ok {
		return false
	}
	return s.stateChange(ctx, state, attackType, playerPos, deadly)
}

func (s *MonsterSystem) context(w *ecs.World, e ecs.Entity) (*monsterContext, bool) {
	m, ok := ecs.Get(w, e, component.MonsterComponent.Kind())
	if !ok || m.Species == nil {
		return nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, false
	}
	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		return nil, false
	}
	audio, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	return &monsterContext{
		w:      w,
		e:      e,
		m:      m,
		t:      t,
		body:   body,
		anim:   anim,
		audio:  audio,
		now:    frameInput(w).Now,
		player: lookupPlayer(w),
	}, true
}

func (s *MonsterSystem) updateMonster(ctx *monsterContext) {
	m, body := ctx.m, ctx.body

	body.VelY += s.settings.Gravity
	dy := body.VelY

	s.refreshBoxes(ctx)

	col := s.resolveCollisions(ctx, dy)
	dy = col.dy

	var dx, extraDY float64
	if ctx.species().Boss {
		routine, ok := bossRoutines[ctx.species().ID]
		if !ok {
			fatalf("monster: no boss routine for species %q", ctx.species().ID)
			return
		}
		dx, extraDY = routine(s, ctx)
	} else {
		dx = s.genericStep(ctx)
	}
	if col.blocked {
		dx = 0
	}

	ctx.t.Rect = ctx.t.Rect.Offset(dx*m.Direction, dy+extraDY)

	m.ReadyToAttack = ctx.ready()

	s.advanceAnimation(ctx)
	s.refreshBoxes(ctx)
}

// genericStep returns the per-state horizontal delta for ordinary monsters.
func (s *MonsterSystem) genericStep(ctx *monsterContext) float64 {
	switch ctx.m.State {
	case component.MonsterStateWalking:
		return s.walkStep(ctx)
	case component.MonsterStateAttacking:
		return s.attackStep(ctx)
	case component.MonsterStateCasting:
		return s.castStep(ctx)
	case component.MonsterStateStunned:
		return s.stunStep(ctx)
	case component.MonsterStateDying:
		s.dyingStep(ctx)
		return 0
	case component.MonsterStateDead:
		return 0
	}
	fatalf("monster: entity %v has unknown state %v", ctx.e, ctx.m.State)
	return 0
}

// refreshBoxes derives hitbox, detection and attack rects from the current
// rect center and the species dimensions.
func (s *MonsterSystem) refreshBoxes(ctx *monsterContext) {
	m, sp := ctx.m, ctx.species()
	if !m.State.Alive() {
		m.Hitbox, m.Detect, m.Attack = common.Rect{}, common.Rect{}, common.Rect{}
		return
	}

	r := ctx.t.Rect
	hb := common.RectFromMidBottom(r.CenterX(), r.Bottom(), sp.HitboxW, sp.HitboxH)
	m.Hitbox = hb

	if m.State == component.MonsterStateStunned {
		m.Detect, m.Attack = common.Rect{}, common.Rect{}
		return
	}

	height := sp.DetectionRange
	if !sp.DetectionRangeHigh {
		height /= 2
	}
	m.Detect = common.NewRect(facingOrigin(hb.CenterX(), sp.DetectionRange, m.Direction), hb.Bottom()-height, sp.DetectionRange, height)

	if m.State == component.MonsterStateAttacking && ctx.anim.Current == component.CycleAttack {
		m.Attack = common.NewRect(facingOrigin(hb.CenterX(), sp.AttackRange, m.Direction), hb.Y, sp.AttackRange, hb.H)
	} else {
		m.Attack = common.Rect{}
	}
}

// facingOrigin returns the left edge of a band of width w that starts at x
// and extends in the facing direction.
func facingOrigin(x, w, dir float64) float64 {
	if dir < 0 {
		return x - w
	}
	return x
}

// advanceAnimation steps the active cycle and handles the attack cycle
// ending. Dead monsters keep their last death frame.
func (s *MonsterSystem) advanceAnimation(ctx *monsterContext) {
	m, anim := ctx.m, ctx.anim
	cycle := anim.Active()
	if cycle != nil && m.State != component.MonsterStateDead {
		wrapped := cycle.Advance(ctx.now)
		if wrapped && m.State == component.MonsterStateAttacking && anim.Current == component.CycleAttack {
			s.attackCycleDone(ctx)
		}
	}

	cycle = anim.Active()
	if cycle == nil {
		return
	}
	m.Frame = component.FrameRef{Cycle: anim.Current, Frame: cycle.Frame, FlipX: m.Turned()}
}

func (s *MonsterSystem) debugf(format string, args ...any) {
	if s.Debug {
		fmt.Printf("monster: "+format+"\n", args...)
	}
}

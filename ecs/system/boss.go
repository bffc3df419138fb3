package system

import "github.com/milk9111/cryptfall/ecs/component"

// bossRoutine replaces the per-state step for one boss species and returns
// the frame's horizontal delta plus any extra vertical delta.
type bossRoutine func(s *MonsterSystem, ctx *monsterContext) (dx, dy float64)

var bossRoutines = map[string]bossRoutine{
	"skeleton-boss": skeletonBoss,
}

func skeletonBoss(s *MonsterSystem, ctx *monsterContext) (float64, float64) {
	m, sp := ctx.m, ctx.species()
	switch m.State {
	case component.MonsterStateWalking:
		return s.walkStep(ctx), 0
	case component.MonsterStateAttacking:
		if ctx.player.grounded() && ctx.now-m.LastCast > sp.CastDelay {
			for _, atk := range sp.BossAttacks {
				if s.rng.Float64() < atk.Probability {
					s.stateChange(ctx, component.MonsterStateCasting, atk.Name, ctx.player.position(), false)
					return 0, 0
				}
			}
		}
		return s.attackStep(ctx), 0
	case component.MonsterStateCasting:
		return s.castStep(ctx), 0
	case component.MonsterStateStunned:
		return s.stunStep(ctx), 0
	case component.MonsterStateDying:
		s.dyingStep(ctx)
		return 0, 0
	case component.MonsterStateDead:
		return 0, 0
	}
	fatalf("boss: %s entity %v has unknown state %v", sp.ID, ctx.e, m.State)
	return 0, 0
}

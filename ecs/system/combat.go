package system

import (
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/prefabs"
)

// PlayerHitEvent is pushed whenever the player takes damage.
type PlayerHitEvent struct {
	Source ecs.Entity
	Damage int
	Health int
}

// PickupEvent is pushed when the player collects a drop.
type PickupEvent struct {
	Item string
}

// CombatSystem resolves every overlap between the player and the monster
// side: swings against hitboxes, attack rects, projectiles and spells
// against the player, drop pickups and score.
type CombatSystem struct {
	settings common.Settings
	monsters *MonsterSystem
	drops    prefabs.DropTable
}

func NewCombatSystem(settings common.Settings, monsters *MonsterSystem, drops prefabs.DropTable) *CombatSystem {
	return &CombatSystem{settings: settings, monsters: monsters, drops: drops}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	view := lookupPlayer(w)
	if !view.ok {
		return
	}
	p, ok := ecs.Get(w, view.entity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	now := frameInput(w).Now

	s.playerStrikes(w, p, view, now)
	s.monsterStrikes(w, p, view, now)
	s.pickups(w, p, view)

	ecs.ForEach(w, component.MonsterComponent.Kind(), func(e ecs.Entity, m *component.Monster) {
		if m.ConsumeScore() && m.Species != nil {
			p.Score += m.Species.Reward
		}
	})
}

// playerStrikes lands the current swing on each monster at most once. The
// blow that takes the last hit point is deadly: the monster stays down
// after its stun.
func (s *CombatSystem) playerStrikes(w *ecs.World, p *component.Player, view playerView, now int64) {
	if !p.Attacking(now) || p.AttackRect.IsZero() || s.monsters == nil {
		return
	}
	var struck []ecs.Entity
	ecs.ForEach(w, component.MonsterComponent.Kind(), func(e ecs.Entity, m *component.Monster) {
		if !m.State.Alive() || m.Invulnerable || !m.Active {
			return
		}
		if p.StruckThisSwing[uint64(e)] || !m.Hitbox.Intersects(p.AttackRect) {
			return
		}
		struck = append(struck, e)
	})
	for _, e := range struck {
		m, _ := ecs.Get(w, e, component.MonsterComponent.Kind())
		if p.StruckThisSwing == nil {
			p.StruckThisSwing = make(map[uint64]bool)
		}
		p.StruckThisSwing[uint64(e)] = true
		m.HP--
		s.monsters.StateChange(w, e, component.MonsterStateStunned, "", view.position(), m.HP <= 0)
	}
}

// monsterStrikes applies melee attack rects, projectiles and spells to the
// player. Projectiles are spent on contact even during invulnerability.
func (s *CombatSystem) monsterStrikes(w *ecs.World, p *component.Player, view playerView, now int64) {
	ecs.ForEach(w, component.MonsterComponent.Kind(), func(e ecs.Entity, m *component.Monster) {
		if m.Species == nil || !m.Species.InstantDamage || !m.State.Alive() {
			return
		}
		if m.Attack.Intersects(view.rect) {
			s.hurt(w, p, e, m.Species.AttackDamage, now)
		}
	})

	var spent []ecs.Entity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pr *component.Projectile, t *component.Transform) {
		if !t.Rect.Intersects(view.rect) {
			return
		}
		s.hurt(w, p, e, pr.Damage, now)
		spent = append(spent, e)
	})
	for _, e := range spent {
		ecs.DestroyEntity(w, e)
	}

	ecs.ForEach2(w, component.SpellComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spell, t *component.Transform) {
		if sp.HitPlayer || !t.Rect.Intersects(view.rect) {
			return
		}
		if s.hurt(w, p, e, sp.Damage, now) {
			sp.HitPlayer = true
		}
	})
}

// hurt applies damage unless the player is still invulnerable.
func (s *CombatSystem) hurt(w *ecs.World, p *component.Player, source ecs.Entity, damage int, now int64) bool {
	if damage <= 0 || now < p.InvulnerableUntil {
		return false
	}
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	p.InvulnerableUntil = now + s.settings.PlayerInvulnMS
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerHit, Data: PlayerHitEvent{Source: source, Damage: damage, Health: p.Health}})
	return true
}

func (s *CombatSystem) pickups(w *ecs.World, p *component.Player, view playerView) {
	var taken []ecs.Entity
	ecs.ForEach2(w, component.DropComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.Drop, t *component.Transform) {
		if !t.Rect.Intersects(view.rect) {
			return
		}
		spec := s.drops[d.Item]
		p.Health += spec.Heal
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
		p.Keys += spec.Keys
		taken = append(taken, e)
		w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: PickupEvent{Item: d.Item}})
	})
	for _, e := range taken {
		ecs.DestroyEntity(w, e)
	}
}

package system

import (
	"log"

	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/ecs/entity"
)

// SpawnSystem drains the monsters' pending spell and projectile queues,
// places item drops once a monster is dead, and removes dead monsters after
// their corpse has left the update window.
type SpawnSystem struct {
	catalog *entity.Catalog
}

func NewSpawnSystem(catalog *entity.Catalog) *SpawnSystem {
	return &SpawnSystem{catalog: catalog}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil || s.catalog == nil {
		return
	}
	now := frameInput(w).Now

	var gone []ecs.Entity
	ecs.ForEach(w, component.MonsterComponent.Kind(), func(e ecs.Entity, m *component.Monster) {
		for _, spawn := range m.PendingSpells {
			spec, ok := s.catalog.Spells[spawn.Name]
			if !ok {
				log.Printf("spawn: unknown spell %q", spawn.Name)
				continue
			}
			if _, err := entity.NewSpell(w, spawn, spec, now); err != nil {
				log.Printf("spawn: spell %q: %v", spawn.Name, err)
			}
		}
		m.PendingSpells = m.PendingSpells[:0]

		for _, spawn := range m.PendingProjectiles {
			spec, ok := s.catalog.Projectiles[spawn.Name]
			if !ok {
				log.Printf("spawn: unknown projectile %q", spawn.Name)
				continue
			}
			if _, err := entity.NewProjectile(w, spawn, spec); err != nil {
				log.Printf("spawn: projectile %q: %v", spawn.Name, err)
			}
		}
		m.PendingProjectiles = m.PendingProjectiles[:0]

		if m.State != component.MonsterStateDead {
			return
		}
		if !m.DropsSpawned {
			m.DropsSpawned = true
			s.spawnDrops(w, m, now)
		}
		if !m.Active {
			gone = append(gone, e)
		}
	})

	for _, e := range gone {
		ecs.DestroyEntity(w, e)
	}
}

// spawnDrops lines the species' items up side by side on the death spot.
func (s *SpawnSystem) spawnDrops(w *ecs.World, m *component.Monster, now int64) {
	if m.Species == nil || len(m.Species.ItemDrop) == 0 {
		return
	}
	var total float64
	for _, item := range m.Species.ItemDrop {
		total += s.catalog.Drops[item].Animation.Width
	}
	x := m.DeathSpot.X - total/2
	for _, item := range m.Species.ItemDrop {
		spec, ok := s.catalog.Drops[item]
		if !ok {
			log.Printf("spawn: unknown drop %q", item)
			continue
		}
		if _, err := entity.NewDrop(w, item, spec, x+spec.Animation.Width/2, m.DeathSpot.Y, now); err != nil {
			log.Printf("spawn: drop %q: %v", item, err)
		}
		x += spec.Animation.Width
	}
}

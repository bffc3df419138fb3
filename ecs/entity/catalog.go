package entity

import (
	"fmt"

	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/prefabs"
)

// Catalog is the resolved content the builders draw from.
type Catalog struct {
	Species     map[prefabs.SpeciesID]*component.Species
	Spells      prefabs.SpellTable
	Projectiles prefabs.ProjectileTable
	Drops       prefabs.DropTable
}

// LoadCatalog reads every content table from prefabs.
func LoadCatalog() (*Catalog, error) {
	table, err := prefabs.LoadSpecies()
	if err != nil {
		return nil, err
	}
	spells, err := prefabs.LoadSpells()
	if err != nil {
		return nil, err
	}
	projectiles, err := prefabs.LoadProjectiles()
	if err != nil {
		return nil, err
	}
	drops, err := prefabs.LoadDrops()
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Species:     make(map[prefabs.SpeciesID]*component.Species, len(table)),
		Spells:      spells,
		Projectiles: projectiles,
		Drops:       drops,
	}
	for id, spec := range table {
		c.Species[id] = SpeciesFromSpec(id, spec)
	}
	return c, nil
}

// Lookup resolves a species id string. Unknown ids wrap
// prefabs.ErrUnknownSpecies.
func (c *Catalog) Lookup(id string) (*component.Species, error) {
	sid, err := prefabs.ParseSpeciesID(id)
	if err != nil {
		return nil, err
	}
	sp, ok := c.Species[sid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", prefabs.ErrMissingSpecies, sid)
	}
	return sp, nil
}

// ReloadSpecies overwrites the shared species records in place, so live
// monsters pick up new numbers on their next update.
func (c *Catalog) ReloadSpecies(table prefabs.SpeciesTable) {
	for id, spec := range table {
		fresh := SpeciesFromSpec(id, spec)
		if sp, ok := c.Species[id]; ok {
			*sp = *fresh
			continue
		}
		c.Species[id] = fresh
	}
}

// SpeciesFromSpec converts the YAML record into the component form.
func SpeciesFromSpec(id prefabs.SpeciesID, spec prefabs.SpeciesSpec) *component.Species {
	sp := &component.Species{
		ID:                 string(id),
		Boss:               spec.Boss,
		HP:                 spec.HP,
		SpeedWalking:       spec.SpeedWalking,
		SpeedAttacking:     spec.SpeedAttacking,
		DetectionRange:     spec.DetectionRange,
		DetectionRangeHigh: spec.DetectionRangeHigh,
		AttackRange:        spec.AttackRange,
		AttackDelay:        spec.AttackDelay,
		AttackDamage:       spec.AttackDamage,
		InstantDamage:      spec.InstantDamage,
		AttackFrame:        spec.AttackFrame,
		Projectile:         spec.Projectile,
		Jumper:             spec.Jumper,
		RandomTurns:        spec.RandomTurns,
		HitboxW:            spec.HitboxWidth,
		HitboxH:            spec.HitboxHeight,
		Reward:             spec.Reward,
		ItemDrop:           append([]string(nil), spec.ItemDrop...),
		StunTime:           spec.StunTime,
		Caster:             spec.Caster,
		CastDelay:          spec.CastDelay,
		Cycles:             make(map[string]component.CycleDef, len(spec.Animations)),
		Sounds: component.SpeciesSounds{
			Attack: spec.Sounds.Attack,
			Cast:   spec.Sounds.Cast,
			Hit:    spec.Sounds.Hit,
			Death:  spec.Sounds.Death,
		},
		BloodColor: spec.BloodColor.RGBA8(),
	}
	for _, atk := range spec.BossAttacks {
		sp.BossAttacks = append(sp.BossAttacks, component.BossAttack{Name: atk.Name, Probability: atk.Probability})
	}
	for name, c := range spec.Animations {
		sp.Cycles[name] = cycleDef(c)
	}
	return sp
}

func cycleDef(c prefabs.CycleSpec) component.CycleDef {
	return component.CycleDef{Frames: c.Frames, SpeedMS: c.SpeedMS, FrameW: c.Width, FrameH: c.Height}
}

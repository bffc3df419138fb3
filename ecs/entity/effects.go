package entity

import (
	"fmt"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/prefabs"
)

// NewProjectile spawns a projectile centered on the spawn point.
func NewProjectile(w *ecs.World, spawn component.ProjectileSpawn, spec prefabs.ProjectileSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Rect: common.RectFromCenter(spawn.X, spawn.Y, spec.Width, spec.Height),
	}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Name:      spawn.Name,
		Speed:     spec.Speed,
		Damage:    spawn.Damage,
		Direction: spawn.Direction,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile: %w", err)
	}
	if err := ecs.Add(w, e, component.ScrollTagComponent.Kind(), &component.ScrollTag{}); err != nil {
		return 0, fmt.Errorf("projectile: add scroll tag: %w", err)
	}
	return e, nil
}

// NewSpell spawns one spell effect standing on (x, bottom).
func NewSpell(w *ecs.World, spawn component.SpellSpawn, spec prefabs.SpellSpec, now int64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Rect: common.RectFromMidBottom(spawn.X, spawn.Y, spec.Animation.Width, spec.Animation.Height),
	}); err != nil {
		return 0, fmt.Errorf("spell: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpellComponent.Kind(), &component.Spell{
		Name:      spawn.Name,
		Damage:    spec.Damage,
		Direction: 1,
	}); err != nil {
		return 0, fmt.Errorf("spell: add spell: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), singleCycle(spawn.Name, spec.Animation, false, now)); err != nil {
		return 0, fmt.Errorf("spell: add animation: %w", err)
	}
	if err := ecs.Add(w, e, component.ScrollTagComponent.Kind(), &component.ScrollTag{}); err != nil {
		return 0, fmt.Errorf("spell: add scroll tag: %w", err)
	}
	return e, nil
}

// NewDrop spawns a looping pickup standing on (x, bottom).
func NewDrop(w *ecs.World, item string, spec prefabs.DropSpec, x, bottom float64, now int64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Rect: common.RectFromMidBottom(x, bottom, spec.Animation.Width, spec.Animation.Height),
	}); err != nil {
		return 0, fmt.Errorf("drop: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.DropComponent.Kind(), &component.Drop{Item: item}); err != nil {
		return 0, fmt.Errorf("drop: add drop: %w", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), singleCycle(item, spec.Animation, true, now)); err != nil {
		return 0, fmt.Errorf("drop: add animation: %w", err)
	}
	if err := ecs.Add(w, e, component.ScrollTagComponent.Kind(), &component.ScrollTag{}); err != nil {
		return 0, fmt.Errorf("drop: add scroll tag: %w", err)
	}
	return e, nil
}

func singleCycle(name string, spec prefabs.CycleSpec, loop bool, now int64) *component.Animation {
	return &component.Animation{
		Current: name,
		Cycles: map[string]*component.AnimationCycle{
			name: {
				Name:     name,
				Frames:   spec.Frames,
				SpeedMS:  spec.SpeedMS,
				FrameW:   spec.Width,
				FrameH:   spec.Height,
				Loop:     loop,
				LastTick: now,
			},
		},
	}
}

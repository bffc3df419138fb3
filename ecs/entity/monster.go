package entity

import (
	"fmt"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// NewMonster places a monster of species sp with its feet centered on
// (x, bottom), facing dir.
func NewMonster(w *ecs.World, sp *component.Species, x, bottom, dir float64) (ecs.Entity, error) {
	if sp == nil {
		return 0, fmt.Errorf("monster: nil species")
	}
	walk, ok := sp.Cycles[component.CycleWalk]
	if !ok {
		return 0, fmt.Errorf("monster: %s has no walk cycle", sp.ID)
	}
	if dir == 0 {
		dir = 1
	}

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.MonsterComponent.Kind(), &component.Monster{
		Species:    sp,
		State:      component.MonsterStateWalking,
		Direction:  dir,
		HP:         sp.HP,
		LastAttack: component.NeverMS,
		StunStart:  component.NeverMS,
		LastCast:   component.NeverMS,
	}); err != nil {
		return 0, fmt.Errorf("monster: add monster: %w", err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Rect: common.RectFromMidBottom(x, bottom, walk.FrameW, walk.FrameH),
	}); err != nil {
		return 0, fmt.Errorf("monster: add transform: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return 0, fmt.Errorf("monster: add physics body: %w", err)
	}

	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), monsterAnimation(sp)); err != nil {
		return 0, fmt.Errorf("monster: add animation: %w", err)
	}

	if err := ecs.Add(w, e, component.AudioComponent.Kind(), buildAudioComponent(sp.Sounds)); err != nil {
		return 0, fmt.Errorf("monster: add audio: %w", err)
	}

	if err := ecs.Add(w, e, component.ScrollTagComponent.Kind(), &component.ScrollTag{}); err != nil {
		return 0, fmt.Errorf("monster: add scroll tag: %w", err)
	}

	return e, nil
}

func monsterAnimation(sp *component.Species) *component.Animation {
	anim := &component.Animation{
		Cycles:  make(map[string]*component.AnimationCycle, len(sp.Cycles)),
		Current: component.CycleWalk,
	}
	for name, def := range sp.Cycles {
		anim.Cycles[name] = &component.AnimationCycle{
			Name:    name,
			Frames:  def.Frames,
			SpeedMS: def.SpeedMS,
			FrameW:  def.FrameW,
			FrameH:  def.FrameH,
			// walk and attack repeat; cast and death play through once
			Loop: name == component.CycleWalk || name == component.CycleAttack,
		}
	}
	return anim
}

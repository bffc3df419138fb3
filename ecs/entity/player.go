package entity

import (
	"fmt"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// NewPlayerAt creates the player with its feet centered on (x, bottom).
// The player is not scroll-tagged: the camera keeps it inside the
// scroll thresholds and shifts the world instead.
func NewPlayerAt(w *ecs.World, settings common.Settings, x, bottom float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Health:    settings.PlayerHealth,
		MaxHealth: settings.PlayerHealth,
		Direction: 1,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Rect: common.RectFromMidBottom(x, bottom, settings.PlayerWidth, settings.PlayerHeight),
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	return e, nil
}

// NewFrameInput creates the singleton holding per-frame host input.
func NewFrameInput(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.FrameInputComponent.Kind(), &component.FrameInput{}); err != nil {
		return 0, fmt.Errorf("frame input: add: %w", err)
	}
	return e, nil
}

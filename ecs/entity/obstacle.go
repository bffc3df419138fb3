package entity

import (
	"fmt"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// NewObstacle adds a static block of level geometry and indexes it in the
// world's physics index when one is attached.
func NewObstacle(w *ecs.World, r common.Rect, solid bool) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Rect: r}); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{Solid: solid}); err != nil {
		return 0, fmt.Errorf("obstacle: add obstacle: %w", err)
	}
	if err := ecs.Add(w, e, component.ScrollTagComponent.Kind(), &component.ScrollTag{}); err != nil {
		return 0, fmt.Errorf("obstacle: add scroll tag: %w", err)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.SetObstacle(e, r, solid)
	}
	return e, nil
}

// NewMovingPlatform adds a solid obstacle that oscillates over distance px.
func NewMovingPlatform(w *ecs.World, r common.Rect, mp component.MovingPlatform) (ecs.Entity, error) {
	e, err := NewObstacle(w, r, true)
	if err != nil {
		return 0, err
	}
	if mp.Direction == 0 {
		mp.Direction = 1
	}
	if mp.IntervalMS <= 0 {
		mp.IntervalMS = 30
	}
	if err := ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &mp); err != nil {
		return 0, fmt.Errorf("moving platform: add platform: %w", err)
	}
	return e, nil
}

package system

import (
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
)

// PhysicsSyncSystem mirrors obstacle transforms into the world's physics
// index after scrolling and platform motion, and drops entries whose
// entity has been destroyed.
type PhysicsSyncSystem struct{}

func NewPhysicsSyncSystem() *PhysicsSyncSystem {
	return &PhysicsSyncSystem{}
}

func (s *PhysicsSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ob *component.Obstacle, t *component.Transform) {
		seen[e] = struct{}{}
		pw.SetObstacle(e, t.Rect, ob.Solid)
	})

	for _, e := range pw.Entities() {
		if _, ok := seen[e]; !ok {
			pw.RemoveObstacle(e)
		}
	}
}

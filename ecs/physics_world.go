package ecs

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/cryptfall/common"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePassable
)

// Obstacle is one indexed rectangle as seen by queries.
type Obstacle struct {
	Entity Entity
	Rect   common.Rect
	Solid  bool
}

type obstacleBody struct {
	body  *cp.Body
	shape *cp.Shape
	rect  common.Rect
	solid bool
}

// PhysicsWorld owns the Chipmunk space used as a spatial index for level
// geometry. Every obstacle is a kinematic body with one box shape; the space
// is never stepped. Queries use the space's bounding-box tree as a broad
// phase and then an exact rect test.
type PhysicsWorld struct {
	space *cp.Space

	obstacles     map[Entity]*obstacleBody
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an empty obstacle index.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:         cp.NewSpace(),
		obstacles:     make(map[Entity]*obstacleBody),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Len returns the number of indexed obstacles.
func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.obstacles)
}

// SetObstacle inserts or moves the obstacle owned by e. Any change of rect
// rebuilds the body and shape: the space is never stepped, so a moved
// kinematic shape would keep its stale box in the tree.
func (pw *PhysicsWorld) SetObstacle(e Entity, r common.Rect, solid bool) {
	if pw == nil || r.IsZero() {
		return
	}
	ob, ok := pw.obstacles[e]
	if ok && ob.rect != r {
		pw.RemoveObstacle(e)
		ok = false
	}
	if !ok {
		body := cp.NewKinematicBody()
		body.SetPosition(cp.Vector{X: r.CenterX(), Y: r.CenterY()})
		pw.space.AddBody(body)
		shape := cp.NewBox(body, r.W, r.H, 0)
		pw.space.AddShape(shape)
		ob = &obstacleBody{body: body, shape: shape}
		pw.obstacles[e] = ob
		pw.shapeToEntity[shape] = e
	}
	ob.rect = r
	ob.solid = solid
	if solid {
		ob.shape.SetCollisionType(collisionTypeSolid)
	} else {
		ob.shape.SetCollisionType(collisionTypePassable)
	}
}

// RemoveObstacle drops e from the index.
func (pw *PhysicsWorld) RemoveObstacle(e Entity) {
	if pw == nil {
		return
	}
	ob, ok := pw.obstacles[e]
	if !ok {
		return
	}
	delete(pw.shapeToEntity, ob.shape)
	pw.space.RemoveShape(ob.shape)
	pw.space.RemoveBody(ob.body)
	delete(pw.obstacles, e)
}

// Has reports whether e is indexed.
func (pw *PhysicsWorld) Has(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.obstacles[e]
	return ok
}

// Query returns obstacles strictly overlapping r, ordered by entity.
func (pw *PhysicsWorld) Query(r common.Rect) []Obstacle {
	if pw == nil || r.IsZero() {
		return nil
	}
	var out []Obstacle
	pw.broadPhase(r.X, r.Y, r.Right(), r.Bottom(), func(ob *obstacleBody, e Entity) {
		if ob.rect.Intersects(r) {
			out = append(out, Obstacle{Entity: e, Rect: ob.rect, Solid: ob.solid})
		}
	})
	return out
}

// QueryPoint returns obstacles containing (x, y), edges included.
func (pw *PhysicsWorld) QueryPoint(x, y float64) []Obstacle {
	if pw == nil {
		return nil
	}
	var out []Obstacle
	pw.broadPhase(x, y, x, y, func(ob *obstacleBody, e Entity) {
		if ob.rect.ContainsPoint(x, y) {
			out = append(out, Obstacle{Entity: e, Rect: ob.rect, Solid: ob.solid})
		}
	})
	return out
}

// SolidAt reports whether any solid obstacle contains (x, y).
func (pw *PhysicsWorld) SolidAt(x, y float64) bool {
	for _, ob := range pw.QueryPoint(x, y) {
		if ob.Solid {
			return true
		}
	}
	return false
}

func (pw *PhysicsWorld) broadPhase(l, t, r, b float64, fn func(*obstacleBody, Entity)) {
	hits := make(map[Entity]*obstacleBody)
	// cp boxes are y-up by convention; with y-down screen space B is the top edge.
	bb := cp.BB{L: l, B: t, R: r, T: b}
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok {
			return
		}
		hits[e] = pw.obstacles[e]
	}, nil)

	keys := make([]Entity, 0, len(hits))
	for e := range hits {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, e := range keys {
		fn(hits[e], e)
	}
}

// Entities returns the owners of every indexed obstacle, ordered.
func (pw *PhysicsWorld) Entities() []Entity {
	if pw == nil {
		return nil
	}
	out := make([]Entity, 0, len(pw.obstacles))
	for e := range pw.obstacles {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package component

import "github.com/milk9111/cryptfall/common"

// Transform is the world-space bounding rect of an entity.
type Transform struct {
	Rect common.Rect
}

var TransformComponent = NewComponent[Transform]()

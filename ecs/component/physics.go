package component

// PhysicsBody is the kinematic state integrated by the game systems.
type PhysicsBody struct {
	VelX     float64
	VelY     float64
	OnGround bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

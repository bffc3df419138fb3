package component

// Obstacle is level geometry. Non-solid obstacles are decorative and ignored
// by collision.
type Obstacle struct {
	Solid bool
}

var ObstacleComponent = NewComponent[Obstacle]()

// MovingPlatform oscillates an obstacle between two endpoints. Every
// IntervalMS it steps Speed px along its axis and reverses once Moved
// reaches Distance.
type MovingPlatform struct {
	Speed      float64
	Distance   float64
	Direction  float64
	Vertical   bool
	IntervalMS int64

	Moved    float64
	LastMove int64
	// DX and DY hold the last frame's displacement so riders can follow.
	DX float64
	DY float64
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()

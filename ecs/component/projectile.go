package component

// Projectile travels horizontally until it touches an obstacle.
type Projectile struct {
	Name      string
	Speed     float64
	Damage    int
	Direction float64
}

var ProjectileComponent = NewComponent[Projectile]()

// Spell lives for exactly one cycle of its animation.
type Spell struct {
	Name      string
	Damage    int
	Direction float64
	// HitPlayer stops a spell from damaging the player more than once.
	HitPlayer bool
}

var SpellComponent = NewComponent[Spell]()

// Drop loops its animation until picked up.
type Drop struct {
	Item string
}

var DropComponent = NewComponent[Drop]()

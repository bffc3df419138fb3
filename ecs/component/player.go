package component

import "github.com/milk9111/cryptfall/common"

// PlayerInput is written by the host every frame.
type PlayerInput struct {
	Left   bool
	Right  bool
	Jump   bool
	Attack bool
}

var PlayerInputComponent = NewComponent[PlayerInput]()

type Player struct {
	Health    int
	MaxHealth int
	Score     int
	Keys      int
	Direction float64

	AttackUntil       int64
	InvulnerableUntil int64
	AttackRect        common.Rect
	// StruckThisSwing keeps one swing from hitting the same monster twice.
	StruckThisSwing map[uint64]bool
}

// Attacking reports whether a swing is active at now.
func (p *Player) Attacking(now int64) bool {
	return now < p.AttackUntil
}

var PlayerComponent = NewComponent[Player]()

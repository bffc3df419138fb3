package component

import (
	"fmt"

	"github.com/milk9111/cryptfall/common"
)

// NeverMS is a timestamp far enough in the past that every cooldown has
// elapsed.
const NeverMS int64 = -1 << 60

type MonsterState int

const (
	MonsterStateWalking MonsterState = iota + 1
	MonsterStateAttacking
	MonsterStateCasting
	MonsterStateStunned
	MonsterStateDying
	MonsterStateDead
)

func (s MonsterState) String() string {
	switch s {
	case MonsterStateWalking:
		return "walking"
	case MonsterStateAttacking:
		return "attacking"
	case MonsterStateCasting:
		return "casting"
	case MonsterStateStunned:
		return "stunned"
	case MonsterStateDying:
		return "dying"
	case MonsterStateDead:
		return "dead"
	}
	return fmt.Sprintf("MonsterState(%d)", int(s))
}

// Alive reports whether the state still reacts to terrain and the player.
func (s MonsterState) Alive() bool {
	return s != MonsterStateDying && s != MonsterStateDead
}

// SpellSpawn asks the host to create a spell effect at X, with its bottom at Y.
type SpellSpawn struct {
	Name string
	X    float64
	Y    float64
}

// ProjectileSpawn asks the host to create a projectile centered on X, Y.
type ProjectileSpawn struct {
	Name      string
	X         float64
	Y         float64
	Direction float64
	Damage    int
}

type Monster struct {
	Species *Species
	State   MonsterState
	// Direction is +1 facing right, -1 facing left.
	Direction float64
	HP        int

	Hitbox common.Rect
	Detect common.Rect
	Attack common.Rect

	LastAttack int64
	StunStart  int64
	LastCast   int64

	Invulnerable  bool
	DieAfterStun  bool
	ReadyToAttack bool
	// Active is false while the monster is culled outside the update window.
	Active bool

	CurrentlyCasting string
	CastTargetX      float64
	CastTargetY      float64

	// ProjectileFired guards the once-per-strike projectile release.
	ProjectileFired bool
	DropsSpawned    bool
	// DeathSpot is the center-x / bottom point where dying began. Corpses
	// fall through the floor, so drops are placed here instead.
	DeathSpot common.Vec2

	PendingSpells      []SpellSpawn
	PendingProjectiles []ProjectileSpawn

	Frame FrameRef

	scoreFlag bool
}

// Turned reports facing left.
func (m *Monster) Turned() bool {
	return m.Direction < 0
}

// Flip reverses the facing direction.
func (m *Monster) Flip() {
	m.Direction = -m.Direction
}

// MarkScore makes the reward claimable once.
func (m *Monster) MarkScore() {
	m.scoreFlag = true
}

// ConsumeScore returns true exactly once after the monster died.
func (m *Monster) ConsumeScore() bool {
	if m == nil || !m.scoreFlag {
		return false
	}
	m.scoreFlag = false
	return true
}

var MonsterComponent = NewComponent[Monster]()

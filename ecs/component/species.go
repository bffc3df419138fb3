package component

import "image/color"

// BossAttack is one scripted boss attack and its per-frame roll chance.
type BossAttack struct {
	Name        string
	Probability float64
}

// CycleDef describes one animation cycle of a species.
type CycleDef struct {
	Frames  int
	SpeedMS int64
	FrameW  float64
	FrameH  float64
}

// SpeciesSounds maps state cues to audio names.
type SpeciesSounds struct {
	Attack string
	Cast   string
	Hit    string
	Death  string
}

// Species holds immutable per-species parameters. Monsters share one
// pointer per species.
type Species struct {
	ID   string
	Boss bool

	HP             int
	SpeedWalking   float64
	SpeedAttacking float64

	DetectionRange     float64
	DetectionRangeHigh bool
	AttackRange        float64
	AttackDelay        int64
	AttackDamage       int
	InstantDamage      bool
	// AttackFrame is the attack cycle frame that releases a projectile for
	// species without instant damage.
	AttackFrame int
	Projectile  string

	Jumper      bool
	RandomTurns float64
	HitboxW     float64
	HitboxH     float64
	Reward      int
	ItemDrop    []string
	StunTime    int64

	Caster      bool
	BossAttacks []BossAttack
	CastDelay   int64

	Cycles     map[string]CycleDef
	Sounds     SpeciesSounds
	BloodColor color.RGBA
}

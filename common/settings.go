package common

// Settings holds the tuning values shared by the simulation. It is loaded
// once at startup and passed by value; nothing mutates it afterwards.
type Settings struct {
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
	TileSize     int `yaml:"tile_size"`
	// FrameMS is the fixed tick length the hosts advance the clock by.
	FrameMS int64 `yaml:"frame_ms"`

	Gravity          float64 `yaml:"gravity"`
	HScrollThreshold float64 `yaml:"h_scroll_threshold"`
	VScrollThreshold float64 `yaml:"v_scroll_threshold"`

	// monster tuning
	JumpImpulse   float64 `yaml:"jump_impulse"`
	JumpThreshold float64 `yaml:"jump_threshold"`
	JumpChance    float64 `yaml:"jump_chance"`
	Knockback     float64 `yaml:"knockback"`
	Friction      float64 `yaml:"friction"`
	WallNudge     float64 `yaml:"wall_nudge"`
	WallShrink    float64 `yaml:"wall_shrink"`
	FootDepth     float64 `yaml:"foot_depth"`

	// player tuning
	PlayerSpeed       float64 `yaml:"player_speed"`
	PlayerJump        float64 `yaml:"player_jump"`
	PlayerHealth      int     `yaml:"player_health"`
	PlayerAttackMS    int64   `yaml:"player_attack_ms"`
	PlayerAttackRange float64 `yaml:"player_attack_range"`
	PlayerInvulnMS    int64   `yaml:"player_invuln_ms"`
	PlayerWidth       float64 `yaml:"player_width"`
	PlayerHeight      float64 `yaml:"player_height"`
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`
}

// DefaultSettings mirrors prefabs/settings.yaml so tests and tools can run
// without touching the filesystem.
func DefaultSettings() Settings {
	return Settings{
		ScreenWidth:      1920,
		ScreenHeight:     960,
		TileSize:         32,
		FrameMS:          16,
		Gravity:          1,
		HScrollThreshold: 400,
		VScrollThreshold: 200,

		JumpImpulse:   20,
		JumpThreshold: 200,
		JumpChance:    0.01,
		Knockback:     8,
		Friction:      0.5,
		WallNudge:     4,
		WallShrink:    10,
		FootDepth:     2,

		PlayerSpeed:       6,
		PlayerJump:        20,
		PlayerHealth:      10,
		PlayerAttackMS:    250,
		PlayerAttackRange: 60,
		PlayerInvulnMS:    1000,
		PlayerWidth:       40,
		PlayerHeight:      90,
		MaxFallSpeed:      24,
	}
}

package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/cryptfall/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSettings overlays settings.yaml on the built-in defaults.
func LoadSettings() (common.Settings, error) {
	settings := common.DefaultSettings()
	data, err := Load("settings.yaml")
	if err != nil {
		return settings, fmt.Errorf("prefabs: load settings.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return common.DefaultSettings(), fmt.Errorf("prefabs: unmarshal settings.yaml: %w", err)
	}
	return settings, nil
}

type CycleSpec struct {
	Frames  int     `yaml:"frames"`
	SpeedMS int64   `yaml:"speed_ms"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

type SoundsSpec struct {
	Attack string `yaml:"attack"`
	Cast   string `yaml:"cast"`
	Hit    string `yaml:"hit"`
	Death  string `yaml:"death"`
}

type BossAttackSpec struct {
	Name        string  `yaml:"name"`
	Probability float64 `yaml:"probability"`
}

type SpeciesSpec struct {
	Boss               bool                 `yaml:"boss"`
	Caster             bool                 `yaml:"caster"`
	HP                 int                  `yaml:"hp"`
	SpeedWalking       float64              `yaml:"speed_walking"`
	SpeedAttacking     float64              `yaml:"speed_attacking"`
	DetectionRange     float64              `yaml:"detection_range"`
	DetectionRangeHigh bool                 `yaml:"detection_range_high"`
	AttackRange        float64              `yaml:"attack_range"`
	AttackDelay        int64                `yaml:"attack_delay"`
	AttackDamage       int                  `yaml:"attack_damage"`
	InstantDamage      bool                 `yaml:"instant_damage"`
	AttackFrame        int                  `yaml:"attack_frame"`
	Projectile         string               `yaml:"projectile"`
	Jumper             bool                 `yaml:"jumper"`
	RandomTurns        float64              `yaml:"random_turns"`
	HitboxWidth        float64              `yaml:"hitbox_width"`
	HitboxHeight       float64              `yaml:"hitbox_height"`
	Reward             int                  `yaml:"reward"`
	ItemDrop           []string             `yaml:"item_drop"`
	StunTime           int64                `yaml:"stun_time"`
	BossAttacks        []BossAttackSpec     `yaml:"boss_attacks"`
	CastDelay          int64                `yaml:"cast_delay"`
	Animations         map[string]CycleSpec `yaml:"animations"`
	Sounds             SoundsSpec           `yaml:"sounds"`
	BloodColor         *YAMLColor           `yaml:"blood_color"`
}

type SpellSpec struct {
	Damage    int       `yaml:"damage"`
	Count     int       `yaml:"count"`
	Spacing   float64   `yaml:"spacing"`
	Script    string    `yaml:"script"`
	Animation CycleSpec `yaml:"animation"`
}

type ProjectileSpec struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type DropSpec struct {
	Heal      int       `yaml:"heal"`
	Keys      int       `yaml:"keys"`
	Animation CycleSpec `yaml:"animation"`
}

type SpellTable map[string]SpellSpec
type ProjectileTable map[string]ProjectileSpec
type DropTable map[string]DropSpec

func LoadSpells() (SpellTable, error) {
	return LoadSpec[SpellTable]("spells.yaml")
}

func LoadProjectiles() (ProjectileTable, error) {
	return LoadSpec[ProjectileTable]("projectiles.yaml")
}

func LoadDrops() (DropTable, error) {
	return LoadSpec[DropTable]("drops.yaml")
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as color.RGBA, or opaque black when unset.
func (c *YAMLColor) RGBA8() color.RGBA {
	if c == nil || c.Color == nil {
		return color.RGBA{A: 255}
	}
	r, g, b, a := c.Color.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

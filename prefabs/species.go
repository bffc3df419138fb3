package prefabs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpeciesID is the closed set of monster species the game knows about.
type SpeciesID string

const (
	SpeciesMinotaur     SpeciesID = "minotaur"
	SpeciesOgreArcher   SpeciesID = "ogre-archer"
	SpeciesSkeletonBoss SpeciesID = "skeleton-boss"
	SpeciesElvenCaster  SpeciesID = "elven-caster"
	SpeciesBeholder     SpeciesID = "beholder"
)

var (
	ErrUnknownSpecies = errors.New("prefabs: unknown species")
	ErrMissingSpecies = errors.New("prefabs: species missing from table")
	ErrInvalidSpecies = errors.New("prefabs: invalid species")
)

// AllSpecies lists every known id in a stable order.
func AllSpecies() []SpeciesID {
	return []SpeciesID{
		SpeciesMinotaur,
		SpeciesOgreArcher,
		SpeciesSkeletonBoss,
		SpeciesElvenCaster,
		SpeciesBeholder,
	}
}

// ParseSpeciesID validates a level or config string.
func ParseSpeciesID(s string) (SpeciesID, error) {
	id := SpeciesID(strings.TrimSpace(s))
	for _, known := range AllSpecies() {
		if id == known {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
}

// SpeciesTable is the validated species data keyed by id.
type SpeciesTable map[SpeciesID]SpeciesSpec

// Lookup returns the spec for id or ErrUnknownSpecies.
func (t SpeciesTable) Lookup(id string) (SpeciesSpec, error) {
	sid, err := ParseSpeciesID(id)
	if err != nil {
		return SpeciesSpec{}, err
	}
	spec, ok := t[sid]
	if !ok {
		return SpeciesSpec{}, fmt.Errorf("%w: %s", ErrMissingSpecies, sid)
	}
	return spec, nil
}

// LoadSpecies reads species.yaml and validates it.
func LoadSpecies() (SpeciesTable, error) {
	data, err := Load("species.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load species.yaml: %w", err)
	}
	return ParseSpecies(data)
}

// ParseSpecies decodes a species table and checks it against the known id
// set in both directions.
func ParseSpecies(data []byte) (SpeciesTable, error) {
	var raw map[string]SpeciesSpec
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal species: %w", err)
	}

	table := make(SpeciesTable, len(raw))
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		id, err := ParseSpeciesID(name)
		if err != nil {
			return nil, err
		}
		spec := raw[name]
		if err := validateSpecies(id, spec); err != nil {
			return nil, err
		}
		table[id] = spec
	}
	for _, id := range AllSpecies() {
		if _, ok := table[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSpecies, id)
		}
	}
	return table, nil
}

func validateSpecies(id SpeciesID, spec SpeciesSpec) error {
	switch {
	case spec.HP <= 0:
		return fmt.Errorf("%w: %s: hp must be positive", ErrInvalidSpecies, id)
	case spec.HitboxWidth <= 0 || spec.HitboxHeight <= 0:
		return fmt.Errorf("%w: %s: hitbox must have area", ErrInvalidSpecies, id)
	case spec.StunTime <= 0:
		return fmt.Errorf("%w: %s: stun_time must be positive", ErrInvalidSpecies, id)
	case spec.RandomTurns < 0 || spec.RandomTurns > 100:
		return fmt.Errorf("%w: %s: random_turns out of range", ErrInvalidSpecies, id)
	case !spec.InstantDamage && spec.Projectile == "":
		return fmt.Errorf("%w: %s: ranged species needs a projectile", ErrInvalidSpecies, id)
	}
	for _, name := range []string{"walk", "attack", "death"} {
		c, ok := spec.Animations[name]
		if !ok || c.Frames <= 0 || c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("%w: %s: animation %q missing or empty", ErrInvalidSpecies, id, name)
		}
	}
	if spec.Caster || spec.Boss {
		if c, ok := spec.Animations["cast"]; !ok || c.Frames <= 0 {
			return fmt.Errorf("%w: %s: casters need a cast animation", ErrInvalidSpecies, id)
		}
	}
	for _, atk := range spec.BossAttacks {
		if atk.Probability < 0 || atk.Probability > 1 {
			return fmt.Errorf("%w: %s: boss attack %q probability out of range", ErrInvalidSpecies, id, atk.Name)
		}
	}
	return nil
}

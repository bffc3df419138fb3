package system

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/ecs/entity"
)

func testSpecies() *component.Species {
	return &component.Species{
		ID:             "minotaur",
		HP:             3,
		SpeedWalking:   3,
		SpeedAttacking: 4,
		DetectionRange: 200,
		AttackRange:    50,
		AttackDelay:    500,
		AttackDamage:   1,
		InstantDamage:  true,
		HitboxW:        40,
		HitboxH:        60,
		Reward:         100,
		StunTime:       300,
		Sounds:         component.SpeciesSounds{Attack: "swing", Cast: "chant", Hit: "hit", Death: "death"},
		Cycles: map[string]component.CycleDef{
			component.CycleWalk:   {Frames: 4, SpeedMS: 100, FrameW: 64, FrameH: 64},
			component.CycleAttack: {Frames: 4, SpeedMS: 16, FrameW: 96, FrameH: 64},
			component.CycleCast:   {Frames: 3, SpeedMS: 16, FrameW: 80, FrameH: 80},
			component.CycleDeath:  {Frames: 6, SpeedMS: 16, FrameW: 80, FrameH: 48},
		},
	}
}

func bossSpecies() *component.Species {
	sp := testSpecies()
	sp.ID = "skeleton-boss"
	sp.Boss = true
	sp.Caster = true
	sp.BossAttacks = []component.BossAttack{{Name: "firewalker", Probability: 1}}
	sp.CastDelay = 2000
	return sp
}

// newTestWorld returns a world with an empty physics index and the frame
// input singleton.
func newTestWorld(t *testing.T) (*ecs.World, *component.FrameInput) {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	e, err := entity.NewFrameInput(w)
	if err != nil {
		t.Fatalf("frame input: %v", err)
	}
	in, ok := ecs.Get(w, e, component.FrameInputComponent.Kind())
	if !ok {
		t.Fatalf("frame input missing")
	}
	return w, in
}

func newTestMonsterSystem(settings common.Settings) *MonsterSystem {
	return NewMonsterSystem(settings, rand.New(rand.NewSource(7)), nil)
}

func spawnMonster(t *testing.T, w *ecs.World, sp *component.Species, x, bottom, dir float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewMonster(w, sp, x, bottom, dir)
	if err != nil {
		t.Fatalf("NewMonster: %v", err)
	}
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, settings common.Settings, x, bottom float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerAt(w, settings, x, bottom)
	if err != nil {
		t.Fatalf("NewPlayerAt: %v", err)
	}
	return e
}

func spawnObstacle(t *testing.T, w *ecs.World, r common.Rect) ecs.Entity {
	t.Helper()
	e, err := entity.NewObstacle(w, r, true)
	if err != nil {
		t.Fatalf("NewObstacle: %v", err)
	}
	return e
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v missing component", e)
	}
	return v
}

// catchFatal swaps fatalf for a recorder for the rest of the test.
func catchFatal(t *testing.T) *[]string {
	t.Helper()
	prev := fatalf
	var msgs []string
	fatalf = func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
	}
	t.Cleanup(func() { fatalf = prev })
	return &msgs
}

func count[T any](w *ecs.World, kind component.ComponentKind[T]) int {
	n := 0
	ecs.ForEach(w, kind, func(ecs.Entity, *T) { n++ })
	return n
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

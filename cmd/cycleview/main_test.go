package main

import (
	"testing"

	"github.com/milk9111/cryptfall/ecs/component"
)

func TestPreviewAdvancesEveryCycle(t *testing.T) {
	sp := &component.Species{
		ID: "minotaur",
		Cycles: map[string]component.CycleDef{
			"walk":   {Frames: 4, SpeedMS: 100, FrameW: 64, FrameH: 64},
			"attack": {Frames: 3, SpeedMS: 50, FrameW: 96, FrameH: 64},
		},
	}
	g := newPreview(sp)
	if len(g.cycles) != 2 || g.cycles[0].Name != "attack" || g.cycles[1].Name != "walk" {
		t.Fatalf("expected cycles sorted by name, got %+v", g.cycles)
	}

	// 12 ticks at 60 tps is 200ms
	for i := 0; i < 12; i++ {
		if err := g.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if g.now() != 200 {
		t.Fatalf("expected 200ms, got %d", g.now())
	}
	if g.cycles[1].Frame != 2 {
		t.Fatalf("expected walk on frame 2, got %d", g.cycles[1].Frame)
	}
	if !g.cycles[0].FirstDone {
		t.Fatal("expected attack to have wrapped at least once")
	}
}

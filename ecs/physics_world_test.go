package ecs

import (
	"testing"

	"github.com/milk9111/cryptfall/common"
)

func TestPhysicsWorldQuery(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	floor := CreateEntity(w)
	ledge := CreateEntity(w)
	ghost := CreateEntity(w)
	pw.SetObstacle(floor, common.NewRect(0, 200, 400, 32), true)
	pw.SetObstacle(ledge, common.NewRect(500, 100, 64, 32), true)
	pw.SetObstacle(ghost, common.NewRect(0, 0, 64, 64), false)

	tests := []struct {
		name string
		rect common.Rect
		want []Entity
	}{
		{"overlap_floor", common.NewRect(10, 190, 20, 20), []Entity{floor}},
		{"touching_edge_is_not_overlap", common.NewRect(10, 168, 20, 32), nil},
		{"spans_two", common.NewRect(350, 110, 200, 100), []Entity{floor, ledge}},
		{"non_solid_reported", common.NewRect(10, 10, 5, 5), []Entity{ghost}},
		{"empty_space", common.NewRect(700, 700, 10, 10), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pw.Query(tc.rect)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d hits, got %v", len(tc.want), got)
			}
			for i := range got {
				if got[i].Entity != tc.want[i] {
					t.Fatalf("hit %d: expected %v, got %v", i, tc.want[i], got[i].Entity)
				}
			}
		})
	}
}

func TestPhysicsWorldPointAndMove(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	pw.SetObstacle(e, common.NewRect(0, 100, 100, 20), true)

	if !pw.SolidAt(100, 100) {
		t.Fatal("corner point should count as inside")
	}
	if pw.SolidAt(101, 100) {
		t.Fatal("point past the edge should be outside")
	}

	pw.SetObstacle(e, common.NewRect(200, 100, 100, 20), true)
	if pw.SolidAt(50, 110) {
		t.Fatal("old position should be empty after move")
	}
	if !pw.SolidAt(250, 110) {
		t.Fatal("new position should be solid after move")
	}

	pw.SetObstacle(e, common.NewRect(200, 100, 300, 20), true)
	if !pw.SolidAt(450, 110) || pw.Len() != 1 {
		t.Fatal("resize should rebuild the shape in place")
	}

	pw.RemoveObstacle(e)
	if pw.Has(e) || pw.SolidAt(250, 110) {
		t.Fatal("expected obstacle removed")
	}
}

func TestPhysicsWorldFollowsScroll(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	floor := common.NewRect(0, 400, 400, 20)
	pw.SetObstacle(e, floor, true)

	for i := 0; i < 35; i++ {
		floor.X -= 10
		pw.SetObstacle(e, floor, true)
	}

	tests := []struct {
		name string
		r    common.Rect
		want int
	}{
		{"shifted floor", common.NewRect(0, 390, 40, 20), 1},
		{"past new right edge", common.NewRect(60, 390, 40, 20), 0},
		{"left of origin", common.NewRect(-340, 390, 10, 20), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(pw.Query(tc.r)); got != tc.want {
				t.Fatalf("Query(%+v) = %d hits, want %d", tc.r, got, tc.want)
			}
		})
	}
	if pw.Len() != 1 {
		t.Fatalf("expected a single indexed obstacle, got %d", pw.Len())
	}
}

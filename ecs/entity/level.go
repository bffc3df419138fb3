package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/levels"
)

// LoadLevelToWorld builds obstacles from every physics layer and creates the
// placed entities. An unknown species aborts the load with an error that
// wraps prefabs.ErrUnknownSpecies.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, catalog *Catalog, settings common.Settings) error {
	if lvl == nil {
		return fmt.Errorf("level: nil level")
	}
	tileSize := float64(lvl.TileSize)
	if tileSize <= 0 {
		tileSize = float64(settings.TileSize)
	}

	for layerIdx, layer := range lvl.Layers {
		if err := addMergedTileObstacles(world, layer, lvl.Width, lvl.Height, tileSize, lvl.PhysicsLayer(layerIdx)); err != nil {
			return err
		}
	}

	for i, ent := range lvl.Entities {
		x, y := float64(ent.X), float64(ent.Y)
		switch strings.ToLower(ent.Type) {
		case "player":
			if _, err := NewPlayerAt(world, settings, x, y); err != nil {
				return err
			}
		case "monster":
			sp, err := catalog.Lookup(ent.PropString("species", ""))
			if err != nil {
				return fmt.Errorf("level: entity %d: %w", i, err)
			}
			if _, err := NewMonster(world, sp, x, y, ent.PropFloat("direction", 1)); err != nil {
				return err
			}
		case "platform", "moving_platform":
			w := ent.PropFloat("width", tileSize*4)
			h := ent.PropFloat("height", tileSize/2)
			r := common.RectFromMidBottom(x, y, w, h)
			if ent.Type == "platform" {
				if _, err := NewObstacle(world, r, true); err != nil {
					return err
				}
				continue
			}
			if _, err := NewMovingPlatform(world, r, component.MovingPlatform{
				Speed:      ent.PropFloat("speed", 2),
				Distance:   ent.PropFloat("distance", tileSize*4),
				Vertical:   ent.PropBool("vertical", false),
				IntervalMS: int64(ent.PropFloat("interval_ms", 30)),
			}); err != nil {
				return err
			}
		default:
			// Unknown entity type; ignore for now.
		}
	}

	return nil
}

// addMergedTileObstacles greedily merges filled tiles into rectangles, row
// runs first and then downward, so a floor becomes one obstacle instead of
// hundreds.
func addMergedTileObstacles(world *ecs.World, layer []int, width, height int, tileSize float64, solid bool) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	filled := func(idx int) bool { return idx < len(layer) && !visited[idx] && layer[idx] > 0 }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(index(x, y)) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && filled(index(x2, y)); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !filled(index(x2, y2)) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			r := common.NewRect(float64(x)*tileSize, float64(y)*tileSize, float64(maxW)*tileSize, float64(maxH)*tileSize)
			if _, err := NewObstacle(world, r, solid); err != nil {
				return err
			}
		}
	}
	return nil
}

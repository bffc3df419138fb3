// Command cycleview previews a species' animation cycles at their configured
// speed, one box per cycle sized to its frame dimensions.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/ecs/entity"
	"golang.org/x/image/colornames"
)

const (
	viewW = 1024
	viewH = 512
	tps   = 60
)

type previewGame struct {
	species *component.Species
	cycles  []*component.AnimationCycle
	tick    int64
}

// newPreview builds one looping cursor per cycle, sorted by name.
func newPreview(sp *component.Species) *previewGame {
	g := &previewGame{species: sp}
	names := make([]string, 0, len(sp.Cycles))
	for name := range sp.Cycles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := sp.Cycles[name]
		g.cycles = append(g.cycles, &component.AnimationCycle{
			Name:    name,
			Frames:  def.Frames,
			SpeedMS: def.SpeedMS,
			FrameW:  def.FrameW,
			FrameH:  def.FrameH,
			Loop:    true,
		})
	}
	return g
}

func (g *previewGame) now() int64 {
	return g.tick * 1000 / tps
}

func (g *previewGame) Update() error {
	g.tick++
	now := g.now()
	for _, c := range g.cycles {
		c.Advance(now)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s   t=%dms", g.species.ID, g.now()))

	x := 16.0
	for _, c := range g.cycles {
		y := float64(viewH)/2 - c.FrameH/2
		vector.StrokeRect(screen, float32(x), float32(y), float32(c.FrameW), float32(c.FrameH), 1, colornames.Gray, false)

		// one tick mark per frame, the current one filled
		for i := 0; i < c.Frames; i++ {
			clr := colornames.Dimgray
			if i == c.Frame {
				clr = g.species.BloodColor
			}
			vector.FillRect(screen, float32(x+float64(i)*8), float32(y+c.FrameH+8), 6, 6, clr, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d/%d", c.Name, c.Frame+1, c.Frames), int(x), int(y)-18)
		x += c.FrameW + 24
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewW, viewH
}

func main() {
	speciesID := flag.String("species", "minotaur", "species id from prefabs/species.yaml")
	flag.Parse()

	catalog, err := entity.LoadCatalog()
	if err != nil {
		log.Fatal(err)
	}
	sp, err := catalog.Lookup(*speciesID)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewW, viewH)
	ebiten.SetWindowTitle("cycleview: " + sp.ID)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(newPreview(sp)); err != nil {
		log.Fatal(err)
	}
}

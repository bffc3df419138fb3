package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/render"
	"github.com/milk9111/cryptfall/prefabs"
	"github.com/milk9111/cryptfall/session"
	"golang.org/x/image/colornames"
)

type Game struct {
	session  *session.Session
	renderer *render.Renderer
	audio    *AudioSystem
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI

	paused bool
	quit   bool
}

// NewGame builds the session and host systems. Content errors are fatal:
// a broken species table or level leaves nothing to run.
func NewGame(levelName string, debug, watch, mute bool, seed int64) *Game {
	g := &Game{audio: NewAudioSystem()}
	g.audio.Muted = mute

	s, err := session.New(session.Options{
		Level: levelName,
		Seed:  seed,
		Debug: debug,
		Hosts: []ecs.System{g.audio},
		Sink:  g.onEvent,
	})
	if err != nil {
		log.Fatalf("game: %v", err)
	}
	g.session = s

	r, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("game: %v", err)
	}
	r.Debug = debug
	g.renderer = r

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) onEvent(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventPlayerHit:
		g.audio.PlayCue("player_hit")
	case ecs.EventPickup:
		g.audio.PlayCue("pickup")
	}
}

func (g *Game) Update() error {
	if g.quit {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.audio.Muted = !g.audio.Muted
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.session.Poll(g.watcher)

	if g.session.Dead() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			if err := g.session.Restart(); err != nil {
				return err
			}
		}
		return nil
	}

	g.session.Step(readInput())
	return nil
}

// reloadAll re-reads every content table, as if each file had changed.
func (g *Game) reloadAll() {
	for _, name := range []string{"species.yaml", "spells.yaml", "projectiles.yaml", "drops.yaml"} {
		if err := g.session.Reload(name); err != nil {
			log.Printf("game: reload %s: %v", name, err)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.renderer.Draw(screen, g.session.World)
	g.renderer.DrawHUD(screen, g.session.World)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.session.Settings.ScreenWidth, g.session.Settings.ScreenHeight
}

package session

import (
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/ecs/entity"
	"github.com/milk9111/cryptfall/ecs/system"
	"github.com/milk9111/cryptfall/levels"
	"github.com/milk9111/cryptfall/prefabs"
)

// Options configures a session. Hosts run after combat and before events are
// handed to Sink, so they see the frame's audio flags.
type Options struct {
	Level string
	Seed  int64
	Debug bool
	Hosts []ecs.System
	Sink  func(ecs.Event)
}

// Session owns one running level: the world, its content and the systems
// that drive it. Both the window and the terminal host step it.
type Session struct {
	Settings common.Settings
	World    *ecs.World
	Catalog  *entity.Catalog
	Spells   *system.SpellCaster
	Monsters *system.MonsterSystem

	opts  Options
	frame ecs.Entity
	input component.PlayerInput
}

func New(opts Options) (*Session, error) {
	settings, err := prefabs.LoadSettings()
	if err != nil {
		return nil, err
	}
	catalog, err := entity.LoadCatalog()
	if err != nil {
		return nil, err
	}
	s := &Session{Settings: settings, Catalog: catalog, opts: opts}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	lvl, err := levels.LoadLevelFromFS(s.opts.Level)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())

	frame, err := entity.NewFrameInput(w)
	if err != nil {
		return err
	}
	if err := entity.LoadLevelToWorld(w, lvl, s.Catalog, s.Settings); err != nil {
		return err
	}
	if _, ok := ecs.First(w, component.PlayerComponent.Kind()); !ok {
		return fmt.Errorf("session: level %q places no player", s.opts.Level)
	}

	s.Spells = system.NewSpellCaster(s.Catalog.Spells)
	s.Monsters = system.NewMonsterSystem(s.Settings, rand.New(rand.NewSource(s.opts.Seed)), s.Spells)
	s.Monsters.Debug = s.opts.Debug

	w.AddSystem(system.NewPlayerSystem(s.Settings))
	w.AddSystem(system.NewCameraSystem(s.Settings))
	w.AddSystem(system.NewScrollSystem())
	w.AddSystem(system.NewPlatformSystem())
	w.AddSystem(system.NewPhysicsSyncSystem())
	w.AddSystem(s.Monsters)
	w.AddSystem(system.NewSpawnSystem(s.Catalog))
	w.AddSystem(system.NewProjectileSystem(s.Settings))
	w.AddSystem(system.NewSpellSystem())
	w.AddSystem(system.NewDropSystem())
	w.AddSystem(system.NewCombatSystem(s.Settings, s.Monsters, s.Catalog.Drops))
	for _, h := range s.opts.Hosts {
		w.AddSystem(h)
	}
	events := system.NewEventSystem(s.opts.Sink)
	events.Debug = s.opts.Debug
	w.AddSystem(events)

	// obstacles must be indexed before the first monster update
	system.NewPhysicsSyncSystem().Update(w)

	s.World = w
	s.frame = frame
	return nil
}

// Restart rebuilds the level from scratch with freshly loaded settings.
func (s *Session) Restart() error {
	settings, err := prefabs.LoadSettings()
	if err != nil {
		log.Printf("session: keeping settings: %v", err)
	} else {
		s.Settings = settings
	}
	return s.build()
}

// Step applies input, advances the clock by one tick and runs every system.
func (s *Session) Step(in component.PlayerInput) {
	if e, ok := ecs.First(s.World, component.PlayerInputComponent.Kind()); ok {
		if pi, ok := ecs.Get(s.World, e, component.PlayerInputComponent.Kind()); ok {
			*pi = in
		}
	}
	if fi, ok := ecs.Get(s.World, s.frame, component.FrameInputComponent.Kind()); ok {
		fi.Now += s.Settings.FrameMS
		fi.Frame++
	}
	s.World.Update()
}

// Now is the session clock in milliseconds.
func (s *Session) Now() int64 {
	if fi, ok := ecs.Get(s.World, s.frame, component.FrameInputComponent.Kind()); ok {
		return fi.Now
	}
	return 0
}

// Player returns the player state, if the player exists.
func (s *Session) Player() (*component.Player, *component.Transform, bool) {
	e, ok := ecs.First(s.World, component.PlayerComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	p, _ := ecs.Get(s.World, e, component.PlayerComponent.Kind())
	t, ok := ecs.Get(s.World, e, component.TransformComponent.Kind())
	return p, t, ok
}

// Dead reports whether the player has run out of health.
func (s *Session) Dead() bool {
	p, _, ok := s.Player()
	return ok && p.Health <= 0
}

// Reload applies one changed prefab file. Species are overwritten in place so
// live monsters keep their records. Settings only apply on Restart.
func (s *Session) Reload(path string) error {
	switch base := filepath.Base(path); {
	case prefabs.IsSpecies(path):
		table, err := prefabs.LoadSpecies()
		if err != nil {
			return err
		}
		s.Catalog.ReloadSpecies(table)
	case base == "spells.yaml", filepath.Ext(base) == ".tengo":
		spells, err := prefabs.LoadSpells()
		if err != nil {
			return err
		}
		s.Catalog.Spells = spells
		s.Spells.Reload(spells)
	case base == "projectiles.yaml":
		projectiles, err := prefabs.LoadProjectiles()
		if err != nil {
			return err
		}
		s.Catalog.Projectiles = projectiles
	case base == "drops.yaml":
		drops, err := prefabs.LoadDrops()
		if err != nil {
			return err
		}
		s.Catalog.Drops = drops
	case base == "settings.yaml":
		log.Printf("session: %s changed, restart to apply", base)
	default:
		return nil
	}
	if s.opts.Debug {
		log.Printf("session: reloaded %s", path)
	}
	return nil
}

// Poll applies every change the watcher has queued without blocking. Bad
// edits are logged and the previous content stays live.
func (s *Session) Poll(w *prefabs.Watcher) {
	if w == nil {
		return
	}
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if err := s.Reload(path); err != nil {
				log.Printf("session: reload %s: %v", path, err)
			}
		case err, ok := <-w.Errors:
			if ok {
				log.Printf("session: watch: %v", err)
			}
		default:
			return
		}
	}
}

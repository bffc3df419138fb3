// Command termview runs a level in the terminal. Monsters are drawn as their
// species initial, the player as '@', and sound cues become beeps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/session"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	seed := flag.Int64("seed", 1, "seed for monster randomness")
	mute := flag.Bool("mute", false, "disable beeps")
	flag.Parse()

	tones, err := NewToneSystem(*mute)
	if err != nil {
		// non-fatal, the viewer runs without sound
		log.Printf("audio initialization failed: %v", err)
	}
	defer tones.Close()

	s, err := session.New(session.Options{
		Level: *levelName,
		Seed:  *seed,
		Hosts: []ecs.System{tones},
		Sink: func(evt ecs.Event) {
			switch evt.Type {
			case ecs.EventPlayerHit:
				tones.Cue("player_hit", 1)
			case ecs.EventPickup:
				tones.Cue("pickup", 1)
			}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(NewViewer(screen, s, tones), time.Duration(s.Settings.FrameMS)*time.Millisecond)
}

func run(v *Viewer, frame time.Duration) {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev, time.Now()) {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case now := <-ticker.C:
			v.Tick(now)
			v.Draw()
		}
	}
}

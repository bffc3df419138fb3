package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw detection and attack boxes and log state changes")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	watch := flag.Bool("watch", false, "hot reload prefabs/ while running")
	seed := flag.Int64("seed", 1, "seed for monster randomness")
	mute := flag.Bool("mute", false, "start with audio muted")
	flag.Parse()

	game := NewGame(*levelName, *debug, *watch, *mute, *seed)

	settings := game.session.Settings
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.ScreenWidth/2, settings.ScreenHeight/2)
	ebiten.SetWindowTitle("cryptfall")
	if settings.FrameMS > 0 {
		ebiten.SetTPS(int(1000 / settings.FrameMS))
	}

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

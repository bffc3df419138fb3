package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/session"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(96, 49)

	tones := &ToneSystem{Muted: true}
	s, err := session.New(session.Options{Seed: 1, Hosts: []ecs.System{tones}})
	if err != nil {
		t.Fatal(err)
	}
	return NewViewer(screen, s, tones), screen
}

func TestHeldKeysDecay(t *testing.T) {
	v, _ := newTestViewer(t)
	now := time.Unix(100, 0)

	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), now)
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), now)

	in := v.Input(now.Add(50 * time.Millisecond))
	if !in.Right || in.Left || !in.Attack {
		t.Fatalf("expected right and attack, got %+v", in)
	}
	in = v.Input(now.Add(60 * time.Millisecond))
	if in.Attack {
		t.Fatal("attack must be consumed after one frame")
	}
	if in = v.Input(now.Add(holdFor + time.Millisecond)); in.Right {
		t.Fatal("right should have expired")
	}

	v.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)
	if in = v.Input(now); !in.Left || in.Right {
		t.Fatalf("left must cancel right, got %+v", in)
	}
}

func TestQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	tests := []struct {
		name string
		ev   *tcell.EventKey
		keep bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"jump", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true},
		{"pause", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.HandleKey(tc.ev, time.Now()); got != tc.keep {
				t.Fatalf("HandleKey = %v, want %v", got, tc.keep)
			}
		})
	}
}

func TestPausedViewerDoesNotStep(t *testing.T) {
	v, _ := newTestViewer(t)
	v.paused = true
	v.Tick(time.Now())
	if v.session.Now() != 0 {
		t.Fatalf("paused viewer advanced the clock to %d", v.session.Now())
	}
	v.paused = false
	v.Tick(time.Now())
	if v.session.Now() != v.session.Settings.FrameMS {
		t.Fatalf("expected one tick, clock at %d", v.session.Now())
	}
}

func TestCellMapper(t *testing.T) {
	settings := common.DefaultSettings()
	m := newCellMapper(settings, 96, 49)

	tests := []struct {
		name           string
		r              common.Rect
		c0, r0, c1, r1 int
		ok             bool
	}{
		{"origin tile", common.NewRect(0, 0, 20, 20), 0, 1, 0, 1, true},
		{"wide", common.NewRect(0, 940, 1920, 20), 0, 48, 95, 48, true},
		{"off screen left", common.NewRect(-100, 0, 50, 50), 0, 0, 0, 0, false},
		{"empty", common.Rect{}, 0, 0, 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c0, r0, c1, r1, ok := m.cells(tc.r)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (c0 != tc.c0 || r0 != tc.r0 || c1 != tc.c1 || r1 != tc.r1) {
				t.Fatalf("cells = %d,%d..%d,%d want %d,%d..%d,%d", c0, r0, c1, r1, tc.c0, tc.r0, tc.c1, tc.r1)
			}
		})
	}
}

func TestDrawShowsPlayerAndStatus(t *testing.T) {
	v, screen := newTestViewer(t)
	v.Tick(time.Now())
	v.Draw()

	cols, rows := screen.Size()
	var status strings.Builder
	for x := 0; x < cols; x++ {
		ch, _, _, _ := screen.GetContent(x, 0)
		status.WriteRune(ch)
	}
	if !strings.Contains(status.String(), "HP 10/10") {
		t.Fatalf("unexpected status line %q", status.String())
	}

	found := map[rune]bool{}
	for y := 1; y < rows; y++ {
		for x := 0; x < cols; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			found[ch] = true
		}
	}
	for _, want := range []rune{'@', '#'} {
		if !found[want] {
			t.Errorf("expected %q on screen", want)
		}
	}
}

func TestToneSystemConsumesCues(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	a := &component.Audio{
		Names:  []string{"ogre_hit", "ogre_death"},
		Volume: []float64{1, 1},
		Play:   []bool{true, false},
		Stop:   []bool{false, true},
	}
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), a); err != nil {
		t.Fatal(err)
	}

	tones := &ToneSystem{Muted: true}
	tones.Update(w)

	if a.Play[0] || a.Stop[1] {
		t.Fatalf("flags not cleared: %+v", a)
	}
	if len(tones.Played) != 1 || tones.Played[0] != "ogre_hit" {
		t.Fatalf("unexpected cues %v", tones.Played)
	}
}

func TestToneFor(t *testing.T) {
	tests := []struct {
		cue  string
		freq float64
	}{
		{"ogre_death", 220},
		{"player_hit", 440},
		{"skeleton_cast", 990},
		{"bow_release", 660},
		{"minotaur_attack", 660},
		{"pickup", 1320},
		{"other", 880},
	}
	for _, tc := range tests {
		t.Run(tc.cue, func(t *testing.T) {
			freq, dur := toneFor(tc.cue)
			if freq != tc.freq || dur <= 0 {
				t.Fatalf("toneFor(%q) = %v, %v", tc.cue, freq, dur)
			}
		})
	}
}

func TestMonsterGlyph(t *testing.T) {
	sp := &component.Species{ID: "ogre-archer"}
	m := &component.Monster{Species: sp, State: component.MonsterStateWalking}
	if got := monsterGlyph(m); got != 'o' {
		t.Fatalf("walking glyph = %q", got)
	}
	m.State = component.MonsterStateAttacking
	if got := monsterGlyph(m); got != 'O' {
		t.Fatalf("attacking glyph = %q", got)
	}
}

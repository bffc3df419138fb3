package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/session"
)

// holdFor is how long a movement key counts as held after its last press.
// Terminals report repeats, never releases.
const holdFor = 150 * time.Millisecond

var (
	wallStyle     = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	platformStyle = tcell.StyleDefault.Foreground(tcell.ColorPeru)
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorCrimson).Bold(true)
	swingStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	effectStyle   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	dropStyle     = tcell.StyleDefault.Foreground(tcell.ColorGold)
	deadStyle     = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

type Viewer struct {
	screen  tcell.Screen
	session *session.Session
	tones   *ToneSystem

	leftUntil  time.Time
	rightUntil time.Time
	jump       bool
	attack     bool
	paused     bool
}

func NewViewer(screen tcell.Screen, s *session.Session, tones *ToneSystem) *Viewer {
	return &Viewer{screen: screen, session: s, tones: tones}
}

// HandleKey records one key event. It returns false when the viewer should
// quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.leftUntil, v.rightUntil = now.Add(holdFor), time.Time{}
	case tcell.KeyRight:
		v.rightUntil, v.leftUntil = now.Add(holdFor), time.Time{}
	case tcell.KeyUp:
		v.jump = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			v.leftUntil, v.rightUntil = now.Add(holdFor), time.Time{}
		case 'd':
			v.rightUntil, v.leftUntil = now.Add(holdFor), time.Time{}
		case 'w', ' ':
			v.jump = true
		case 'j', 'x':
			v.attack = true
		case 'p':
			v.paused = !v.paused
		case 'm':
			v.tones.Muted = !v.tones.Muted
		case 'r':
			if v.session.Dead() {
				if err := v.session.Restart(); err != nil {
					return false
				}
			}
		}
	}
	return true
}

// Input turns the held keys into this frame's input. One-shot keys are
// consumed.
func (v *Viewer) Input(now time.Time) component.PlayerInput {
	in := component.PlayerInput{
		Left:   now.Before(v.leftUntil),
		Right:  now.Before(v.rightUntil),
		Jump:   v.jump,
		Attack: v.attack,
	}
	v.jump, v.attack = false, false
	return in
}

// Tick steps the session unless paused or dead.
func (v *Viewer) Tick(now time.Time) {
	if v.paused || v.session.Dead() {
		return
	}
	v.session.Step(v.Input(now))
}

// cellMapper scales pixel space onto the terminal grid. The top row is
// reserved for the status line.
type cellMapper struct {
	cols, rows int
	sx, sy     float64
}

func newCellMapper(settings common.Settings, cols, rows int) cellMapper {
	m := cellMapper{cols: cols, rows: rows - 1}
	if settings.ScreenWidth > 0 {
		m.sx = float64(cols) / float64(settings.ScreenWidth)
	}
	if settings.ScreenHeight > 0 {
		m.sy = float64(m.rows) / float64(settings.ScreenHeight)
	}
	return m
}

// cells returns the cell range [c0, c1] x [r0, r1] covered by r, clipped to
// the grid. ok is false when nothing is visible.
func (m cellMapper) cells(r common.Rect) (c0, r0, c1, r1 int, ok bool) {
	if r.IsZero() || m.cols <= 0 || m.rows <= 0 {
		return 0, 0, 0, 0, false
	}
	c0 = int(r.Left() * m.sx)
	c1 = int((r.Right() - 1) * m.sx)
	r0 = int(r.Top()*m.sy) + 1
	r1 = int((r.Bottom()-1)*m.sy) + 1
	c0, c1 = max(c0, 0), min(c1, m.cols-1)
	r0, r1 = max(r0, 1), min(r1, m.rows)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}

func (v *Viewer) fill(m cellMapper, r common.Rect, ch rune, style tcell.Style) {
	c0, r0, c1, r1, ok := m.cells(r)
	if !ok {
		return
	}
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// Draw renders one frame. Later layers overwrite earlier ones.
func (v *Viewer) Draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	w := v.session.World
	m := newCellMapper(v.session.Settings, cols, rows)

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ob *component.Obstacle, t *component.Transform) {
		switch {
		case ecs.Has(w, e, component.MovingPlatformComponent.Kind()):
			v.fill(m, t.Rect, '=', platformStyle)
		case ob.Solid:
			v.fill(m, t.Rect, '#', wallStyle)
		}
	})
	ecs.ForEach2(w, component.DropComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Drop, t *component.Transform) {
		v.fill(m, t.Rect, '$', dropStyle)
	})
	ecs.ForEach2(w, component.SpellComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Spell, t *component.Transform) {
		v.fill(m, t.Rect, '*', effectStyle)
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Projectile, t *component.Transform) {
		v.fill(m, t.Rect, '-', effectStyle)
	})
	ecs.ForEach2(w, component.MonsterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, mon *component.Monster, t *component.Transform) {
		if mon.Species == nil {
			return
		}
		if !mon.State.Alive() {
			v.fill(m, t.Rect, 'x', deadStyle)
			return
		}
		v.fill(m, mon.Hitbox, monsterGlyph(mon), monsterStyle(mon))
	})
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		v.fill(m, p.AttackRect, '/', swingStyle)
		v.fill(m, t.Rect, '@', playerStyle)
	})

	v.status(cols)
	v.screen.Show()
}

func (v *Viewer) status(cols int) {
	line := "cryptfall"
	if p, _, ok := v.session.Player(); ok {
		line = fmt.Sprintf(" HP %d/%d  score %d  keys %d", p.Health, p.MaxHealth, p.Score, p.Keys)
		if p.Health <= 0 {
			line += "  dead: r restarts"
		}
	}
	if v.paused {
		line += "  [paused]"
	}
	if v.tones.Muted {
		line += "  [muted]"
	}
	line += "  q quits"
	for x, ch := range []rune(line) {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, 0, ch, nil, hudStyle)
	}
}

// monsterGlyph is the species initial, upper case while attacking.
func monsterGlyph(m *component.Monster) rune {
	id := m.Species.ID
	if id == "" {
		return 'm'
	}
	ch := rune(id[0])
	if m.State == component.MonsterStateAttacking || m.State == component.MonsterStateCasting {
		return []rune(strings.ToUpper(string(ch)))[0]
	}
	return ch
}

func monsterStyle(m *component.Monster) tcell.Style {
	if m.State == component.MonsterStateStunned {
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	return tcell.StyleDefault.Foreground(rgb(m.Species.BloodColor))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	obstacleColor   = colornames.Slategray
	decorColor      = colornames.Darkslategray
	platformColor   = colornames.Peru
	projectileColor = colornames.Orange
	spellColor      = colornames.Orangered
	dropColor       = colornames.Gold
	detectColor     = color.RGBA{R: 255, G: 255, B: 0, A: 96}
	attackColor     = color.RGBA{R: 255, G: 0, B: 0, A: 48}
	deadColor       = colornames.Dimgray
)

// Renderer draws the world as boxes. Entity rects are already in screen
// space because scrolling shifts the world, not a camera.
type Renderer struct {
	face  text.Face
	Debug bool
}

func NewRenderer() (*Renderer, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return &Renderer{face: &text.GoTextFace{Source: s, Size: 14}}, nil
}

// Draw renders level geometry first, then effects, monsters and the player.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	if screen == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ob *component.Obstacle, t *component.Transform) {
		switch {
		case ecs.Has(w, e, component.MovingPlatformComponent.Kind()):
			fillRect(screen, t.Rect, platformColor)
		case ob.Solid:
			fillRect(screen, t.Rect, obstacleColor)
		default:
			strokeRect(screen, t.Rect, 1, decorColor)
		}
	})

	ecs.ForEach2(w, component.DropComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Drop, t *component.Transform) {
		fillRect(screen, t.Rect, dropColor)
	})
	ecs.ForEach2(w, component.SpellComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Spell, t *component.Transform) {
		strokeRect(screen, t.Rect, 2, spellColor)
	})
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Projectile, t *component.Transform) {
		fillRect(screen, t.Rect, projectileColor)
	})

	ecs.ForEach2(w, component.MonsterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, m *component.Monster, t *component.Transform) {
		r.drawMonster(screen, m, t)
	})

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Player, t *component.Transform) {
		clr := color.Color(colornames.Crimson)
		if now := frameNow(w); now < p.InvulnerableUntil && (now/100)%2 == 0 {
			clr = colornames.Pink
		}
		fillRect(screen, t.Rect, clr)
		if !p.AttackRect.IsZero() {
			strokeRect(screen, p.AttackRect, 2, colornames.White)
		}
	})
}

func (r *Renderer) drawMonster(screen *ebiten.Image, m *component.Monster, t *component.Transform) {
	if m.Species == nil {
		return
	}
	if !m.State.Alive() {
		strokeRect(screen, t.Rect, 1, deadColor)
		return
	}

	clr := color.Color(m.Species.BloodColor)
	if m.State == component.MonsterStateStunned {
		clr = colornames.White
	}
	strokeRect(screen, t.Rect, 1, colornames.Gray)
	fillRect(screen, m.Hitbox, clr)

	// facing marker on the leading edge
	hb := m.Hitbox
	x := hb.Right()
	if m.Direction < 0 {
		x = hb.Left()
	}
	vector.StrokeLine(screen, float32(hb.CenterX()), float32(hb.Y+6), float32(x), float32(hb.Y+6), 2, colornames.Black, false)

	if !r.Debug {
		return
	}
	if !m.Detect.IsZero() {
		fillRect(screen, m.Detect, detectColor)
	}
	if !m.Attack.IsZero() {
		fillRect(screen, m.Attack, attackColor)
	}
	label := fmt.Sprintf("%s %d", m.State, m.HP)
	r.label(screen, label, t.Rect.X, t.Rect.Y-18, colornames.White)
}

// DrawHUD shows health, score and keys in the top-left corner.
func (r *Renderer) DrawHUD(screen *ebiten.Image, w *ecs.World) {
	if screen == nil || w == nil {
		return
	}
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())

	const heart = 14.0
	for i := 0; i < p.MaxHealth; i++ {
		slot := common.NewRect(12+float64(i)*(heart+4), 12, heart, heart)
		if i < p.Health {
			fillRect(screen, slot, colornames.Crimson)
		} else {
			strokeRect(screen, slot, 1, colornames.Crimson)
		}
	}

	r.label(screen, fmt.Sprintf("score %d   keys %d", p.Score, p.Keys), 12, 34, colornames.White)
	if p.Health <= 0 {
		r.label(screen, "you died - press R to restart", 12, 56, colornames.Crimson)
	}
	if r.Debug {
		r.label(screen, fmt.Sprintf("entities %d", len(ecs.Entities(w))), 12, 78, colornames.Lightgrey)
	}
}

func (r *Renderer) label(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	if r.face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func fillRect(screen *ebiten.Image, rect common.Rect, clr color.Color) {
	if rect.IsZero() {
		return
	}
	vector.FillRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), clr, false)
}

func strokeRect(screen *ebiten.Image, rect common.Rect, width float32, clr color.Color) {
	if rect.IsZero() {
		return
	}
	vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), width, clr, false)
}

func frameNow(w *ecs.World) int64 {
	e, ok := ecs.First(w, component.FrameInputComponent.Kind())
	if !ok {
		return 0
	}
	in, _ := ecs.Get(w, e, component.FrameInputComponent.Kind())
	return in.Now
}

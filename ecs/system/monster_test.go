package system

import (
	"testing"

	"github.com/milk9111/cryptfall/common"
	"github.com/milk9111/cryptfall/ecs"
	"github.com/milk9111/cryptfall/ecs/component"
	"github.com/milk9111/cryptfall/prefabs"
)

func TestStateChangeToCurrentStateIsNoOp(t *testing.T) {
	w, in := newTestWorld(t)
	in.Now = 500
	s := newTestMonsterSystem(common.DefaultSettings())
	e := spawnMonster(t, w, testSpecies(), 100, 200, 1)

	anim := mustGet(t, w, e, component.AnimationComponent.Kind())
	anim.Active().Frame = 2
	anim.Active().LastTick = 400

	if s.StateChange(w, e, component.MonsterStateWalking, "", common.Vec2{}, false) {
		t.Fatalf("expected no transition")
	}
	if anim.Current != component.CycleWalk || anim.Active().Frame != 2 || anim.Active().LastTick != 400 {
		t.Fatalf("animation was touched: %+v", *anim.Active())
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected no events, got %d", w.Events().Len())
	}
	audio := mustGet(t, w, e, component.AudioComponent.Kind())
	for _, name := range audio.Names {
		if audio.Pending(name) {
			t.Fatalf("sound %q triggered", name)
		}
	}
}

func TestStateChangePreservesCenter(t *testing.T) {
	cases := []struct {
		name  string
		state component.MonsterState
		size  [2]float64
	}{
		{"attacking", component.MonsterStateAttacking, [2]float64{96, 64}},
		{"casting", component.MonsterStateCasting, [2]float64{80, 80}},
		{"stunned", component.MonsterStateStunned, [2]float64{64, 64}},
		{"dying", component.MonsterStateDying, [2]float64{80, 48}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, in := newTestWorld(t)
			in.Now = 1000
			s := newTestMonsterSystem(common.DefaultSettings())
			e := spawnMonster(t, w, testSpecies(), 100, 132, 1)
			tr := mustGet(t, w, e, component.TransformComponent.Kind())
			cx, cy := tr.Rect.Center()

			if !s.StateChange(w, e, tc.state, "firewalker", common.Vec2{X: 50, Y: 132}, false) {
				t.Fatalf("expected a transition")
			}
			gx, gy := tr.Rect.Center()
			if !near(gx, cx) || !near(gy, cy) {
				t.Fatalf("center moved from (%v,%v) to (%v,%v)", cx, cy, gx, gy)
			}
			if tr.Rect.W != tc.size[0] || tr.Rect.H != tc.size[1] {
				t.Fatalf("size = %vx%v, want %vx%v", tr.Rect.W, tr.Rect.H, tc.size[0], tc.size[1])
			}
		})
	}
}

func TestWalkingFiftyFrames(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	spawnObstacle(t, w, common.NewRect(0, 132, 1000, 32))
	// walk frames are 64 high, so a bottom of 132 centers the rect on (100, 100)
	e := spawnMonster(t, w, testSpecies(), 100, 132, 1)

	for i := 1; i <= 50; i++ {
		in.Now = int64(i * 16)
		s.Update(w)
	}

	m := mustGet(t, w, e, component.MonsterComponent.Kind())
	tr := mustGet(t, w, e, component.TransformComponent.Kind())
	if !near(tr.Rect.CenterX(), 250) {
		t.Fatalf("centerx = %v, want 250", tr.Rect.CenterX())
	}
	if m.State != component.MonsterStateWalking {
		t.Fatalf("state = %v, want walking", m.State)
	}
	if !mustGet(t, w, e, component.PhysicsBodyComponent.Kind()).OnGround {
		t.Fatalf("monster should be standing on the floor")
	}
}

func TestWalkerStaysOnPlatform(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	spawnObstacle(t, w, common.NewRect(0, 400, 320, 32))
	e := spawnMonster(t, w, testSpecies(), 160, 400, 1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	flips := 0
	dir := m.Direction
	for i := 1; i <= 300; i++ {
		in.Now = int64(i * 16)
		s.Update(w)
		if m.Hitbox.Left() < 0 || m.Hitbox.Right() > 320 {
			t.Fatalf("frame %d: hitbox %+v left the platform", i, m.Hitbox)
		}
		if !near(m.Hitbox.Bottom(), 400) {
			t.Fatalf("frame %d: hitbox bottom %v, want 400", i, m.Hitbox.Bottom())
		}
		if m.Direction != dir {
			flips++
			dir = m.Direction
		}
	}
	if flips < 2 {
		t.Fatalf("expected at least two reversals, got %d", flips)
	}
}

func TestWalkerTurnsAtWall(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	spawnObstacle(t, w, common.NewRect(0, 400, 1000, 32))
	spawnObstacle(t, w, common.NewRect(300, 200, 32, 200))
	e := spawnMonster(t, w, testSpecies(), 200, 400, 1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	for i := 1; i <= 60; i++ {
		in.Now = int64(i * 16)
		s.Update(w)
		if m.Hitbox.Right() > 300 {
			t.Fatalf("frame %d: walked into the wall: %+v", i, m.Hitbox)
		}
	}
	if m.Direction != -1 {
		t.Fatalf("direction = %v, want -1", m.Direction)
	}
}

func TestReadyToAttackWindow(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	sp := testSpecies()
	e := spawnMonster(t, w, sp, 100, 200, 1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	const start int64 = 1000
	in.Now = start
	s.StateChange(w, e, component.MonsterStateAttacking, "", common.Vec2{}, false)
	if m.LastAttack != start {
		t.Fatalf("LastAttack = %d, want %d", m.LastAttack, start)
	}

	d := sp.AttackDelay
	for _, now := range []int64{start + 1, start + d/2, start + d - 1, start + d, start + d + 1, start + d + 200} {
		in.Now = now
		s.Update(w)
		want := now-start > d
		if m.ReadyToAttack != want {
			t.Fatalf("now=%d: ReadyToAttack = %v, want %v", now, m.ReadyToAttack, want)
		}
	}
}

func TestStunRecovery(t *testing.T) {
	cases := []struct {
		name   string
		deadly bool
		want   component.MonsterState
	}{
		{"recovers", false, component.MonsterStateAttacking},
		{"deadly", true, component.MonsterStateDying},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := common.DefaultSettings()
			w, in := newTestWorld(t)
			s := newTestMonsterSystem(settings)
			sp := testSpecies()
			e := spawnMonster(t, w, sp, 100, 200, 1)
			m := mustGet(t, w, e, component.MonsterComponent.Kind())
			body := mustGet(t, w, e, component.PhysicsBodyComponent.Kind())
			anim := mustGet(t, w, e, component.AnimationComponent.Kind())
			audio := mustGet(t, w, e, component.AudioComponent.Kind())

			in.Now = 1000
			s.StateChange(w, e, component.MonsterStateStunned, "", common.Vec2{X: 40}, tc.deadly)
			if !m.Invulnerable || m.DieAfterStun != tc.deadly {
				t.Fatalf("stun flags: invulnerable=%v dieAfterStun=%v", m.Invulnerable, m.DieAfterStun)
			}
			if m.Direction != -1 {
				t.Fatalf("should face the attacker, direction = %v", m.Direction)
			}
			wantVel := -settings.Knockback
			if tc.deadly {
				wantVel = 0
			}
			if body.VelX != wantVel {
				t.Fatalf("VelX = %v, want %v", body.VelX, wantVel)
			}
			if !anim.Active().Frozen {
				t.Fatalf("animation should be frozen")
			}
			if !audio.Pending("hit") {
				t.Fatalf("hit sound not triggered")
			}

			in.Now = 1000 + sp.StunTime
			s.Update(w)
			if m.State != component.MonsterStateStunned {
				t.Fatalf("left stun early: %v", m.State)
			}

			in.Now = 1000 + sp.StunTime + 1
			s.Update(w)
			if m.State != tc.want {
				t.Fatalf("state = %v, want %v", m.State, tc.want)
			}
			if m.Invulnerable {
				t.Fatalf("invulnerability should clear")
			}
		})
	}
}

func TestAttackingWithoutTargetFallsBackToWalking(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	sp := testSpecies()
	sp.AttackDelay = 2000
	spawnObstacle(t, w, common.NewRect(0, 400, 1000, 32))
	e := spawnMonster(t, w, sp, 300, 400, 1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())
	anim := mustGet(t, w, e, component.AnimationComponent.Kind())

	in.Now = 1000
	m.LastAttack = 900
	s.StateChange(w, e, component.MonsterStateStunned, "", common.Vec2{X: 400}, false)

	// recovery lands in ATTACKING before the attack delay has run out
	in.Now = 1000 + sp.StunTime + 1
	s.Update(w)
	if m.State != component.MonsterStateAttacking || anim.Current != component.CycleWalk {
		t.Fatalf("after stun: state=%v cycle=%q, want attacking on the walk cycle", m.State, anim.Current)
	}

	in.Now += 16
	s.Update(w)
	if m.State != component.MonsterStateWalking {
		t.Fatalf("state = %v, want walking with no player detected", m.State)
	}
	if !m.Attack.IsZero() {
		t.Fatalf("attack rect should be cleared, got %+v", m.Attack)
	}
}

func TestDeathCycleReachesDead(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	e := spawnMonster(t, w, testSpecies(), 100, 200, 1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	in.Now = 1000
	s.StateChange(w, e, component.MonsterStateDying, "", common.Vec2{}, false)
	if !m.Hitbox.IsZero() || !m.Detect.IsZero() || !m.Attack.IsZero() {
		t.Fatalf("rects not cleared on dying")
	}
	if m.DeathSpot != (common.Vec2{X: 100, Y: 200}) {
		t.Fatalf("DeathSpot = %+v", m.DeathSpot)
	}

	for i := 1; i <= 6; i++ {
		if m.State != component.MonsterStateDying {
			t.Fatalf("update %d: state = %v, want dying", i, m.State)
		}
		in.Now = 1000 + int64(i*16)
		s.Update(w)
	}
	if m.State != component.MonsterStateDead {
		t.Fatalf("state = %v, want dead after 6 updates", m.State)
	}
	if !m.Hitbox.IsZero() || !m.Detect.IsZero() || !m.Attack.IsZero() {
		t.Fatalf("dead monster has rects: %+v %+v %+v", m.Hitbox, m.Detect, m.Attack)
	}
	if !m.ConsumeScore() || m.ConsumeScore() {
		t.Fatalf("score should be claimable exactly once")
	}

	died := false
	for _, evt := range w.Events().Drain() {
		if evt.Type == ecs.EventMonsterDied {
			died = true
		}
	}
	if !died {
		t.Fatalf("no monster_died event")
	}
}

func TestDetectionStartsAttack(t *testing.T) {
	settings := common.DefaultSettings()
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(settings)
	spawnObstacle(t, w, common.NewRect(0, 400, 1000, 32))
	e := spawnMonster(t, w, testSpecies(), 300, 400, 1)
	spawnPlayer(t, w, settings, 420, 400)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())
	audio := mustGet(t, w, e, component.AudioComponent.Kind())

	in.Now = 16
	s.Update(w)
	if m.State != component.MonsterStateAttacking {
		t.Fatalf("state = %v, want attacking", m.State)
	}
	if !audio.Pending("swing") {
		t.Fatalf("attack sound not triggered")
	}
	if m.Attack.IsZero() {
		t.Fatalf("attack rect should exist on the attack cycle")
	}
	if m.Attack.Left() != m.Hitbox.CenterX() || m.Attack.W != 50 {
		t.Fatalf("attack rect %+v does not extend forward from %v", m.Attack, m.Hitbox.CenterX())
	}
}

func TestNonInstantSpeciesQueuesProjectile(t *testing.T) {
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(common.DefaultSettings())
	sp := testSpecies()
	sp.InstantDamage = false
	sp.Projectile = "arrow"
	sp.AttackFrame = 2
	e := spawnMonster(t, w, sp, 100, 200, -1)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	in.Now = 1000
	s.StateChange(w, e, component.MonsterStateAttacking, "", common.Vec2{}, false)
	for i := 1; i <= 6; i++ {
		in.Now = 1000 + int64(i*16)
		s.Update(w)
	}
	if len(m.PendingProjectiles) != 1 {
		t.Fatalf("queued %d projectiles, want 1", len(m.PendingProjectiles))
	}
	p := m.PendingProjectiles[0]
	if p.Name != "arrow" || p.Direction != -1 || p.Damage != sp.AttackDamage {
		t.Fatalf("unexpected projectile %+v", p)
	}
}

func TestJumperLeapsTowardPlayer(t *testing.T) {
	settings := common.DefaultSettings()
	settings.JumpChance = 1
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(settings)
	sp := testSpecies()
	sp.Jumper = true
	spawnObstacle(t, w, common.NewRect(0, 400, 1000, 32))
	e := spawnMonster(t, w, sp, 300, 400, 1)
	spawnPlayer(t, w, settings, 600, 300)

	in.Now = 1000
	s.StateChange(w, e, component.MonsterStateAttacking, "", common.Vec2{}, false)
	in.Now = 1016
	s.Update(w)

	body := mustGet(t, w, e, component.PhysicsBodyComponent.Kind())
	if body.VelY != -settings.JumpImpulse {
		t.Fatalf("VelY = %v, want %v", body.VelY, -settings.JumpImpulse)
	}
}

func TestBossCastsFan(t *testing.T) {
	settings := common.DefaultSettings()
	w, in := newTestWorld(t)
	spells := NewSpellCaster(prefabs.SpellTable{
		"firewalker": {Damage: 5, Count: 3, Spacing: 100, Animation: prefabs.CycleSpec{Frames: 2, SpeedMS: 16, Width: 32, Height: 64}},
	})
	s := NewMonsterSystem(settings, nil, spells)
	e := spawnMonster(t, w, bossSpecies(), 500, 400, 1)
	spawnPlayer(t, w, settings, 300, 400)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())
	audio := mustGet(t, w, e, component.AudioComponent.Kind())

	in.Now = 1000
	s.StateChange(w, e, component.MonsterStateAttacking, "", common.Vec2{}, false)
	in.Now = 1016
	s.Update(w)
	if m.State != component.MonsterStateCasting {
		t.Fatalf("state = %v, want casting", m.State)
	}
	if m.CurrentlyCasting != "firewalker" || m.CastTargetX != 300 || m.CastTargetY != 400 {
		t.Fatalf("cast snapshot = %q (%v,%v)", m.CurrentlyCasting, m.CastTargetX, m.CastTargetY)
	}
	if !audio.Pending("chant") {
		t.Fatalf("cast sound not triggered")
	}
	if m.LastCast != 1016 {
		t.Fatalf("LastCast = %d", m.LastCast)
	}

	for i := 2; i <= 10 && m.State == component.MonsterStateCasting; i++ {
		in.Now = 1000 + int64(i*16)
		s.Update(w)
	}
	if m.State != component.MonsterStateWalking {
		t.Fatalf("state = %v, want walking after the cast", m.State)
	}
	if m.CurrentlyCasting != "" {
		t.Fatalf("CurrentlyCasting not cleared")
	}
	want := []float64{200, 300, 400}
	if len(m.PendingSpells) != len(want) {
		t.Fatalf("got %d spells, want %d", len(m.PendingSpells), len(want))
	}
	for i, sp := range m.PendingSpells {
		if sp.Name != "firewalker" || sp.X != want[i] || sp.Y != 400 {
			t.Fatalf("spell %d = %+v", i, sp)
		}
	}
}

func TestBossWaitsForCastDelay(t *testing.T) {
	settings := common.DefaultSettings()
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(settings)
	e := spawnMonster(t, w, bossSpecies(), 500, 400, 1)
	spawnPlayer(t, w, settings, 300, 400)
	m := mustGet(t, w, e, component.MonsterComponent.Kind())

	in.Now = 1000
	m.LastCast = 900
	s.StateChange(w, e, component.MonsterStateAttacking, "", common.Vec2{}, false)
	in.Now = 1016
	s.Update(w)
	if m.State != component.MonsterStateAttacking {
		t.Fatalf("state = %v, want attacking while the cast delay runs", m.State)
	}
}

func TestConfigurationErrorsAreFatal(t *testing.T) {
	t.Run("unknown state", func(t *testing.T) {
		msgs := catchFatal(t)
		w, in := newTestWorld(t)
		s := newTestMonsterSystem(common.DefaultSettings())
		e := spawnMonster(t, w, testSpecies(), 100, 200, 1)
		mustGet(t, w, e, component.MonsterComponent.Kind()).State = component.MonsterState(42)
		in.Now = 16
		s.Update(w)
		if len(*msgs) != 1 {
			t.Fatalf("fatal messages = %v", *msgs)
		}
	})
	t.Run("unknown target state", func(t *testing.T) {
		msgs := catchFatal(t)
		w, _ := newTestWorld(t)
		s := newTestMonsterSystem(common.DefaultSettings())
		e := spawnMonster(t, w, testSpecies(), 100, 200, 1)
		if s.StateChange(w, e, component.MonsterState(42), "", common.Vec2{}, false) {
			t.Fatalf("unknown target should not transition")
		}
		if len(*msgs) != 1 {
			t.Fatalf("fatal messages = %v", *msgs)
		}
	})
	t.Run("unknown boss", func(t *testing.T) {
		msgs := catchFatal(t)
		w, in := newTestWorld(t)
		s := newTestMonsterSystem(common.DefaultSettings())
		sp := bossSpecies()
		sp.ID = "lich"
		spawnMonster(t, w, sp, 100, 200, 1)
		in.Now = 16
		s.Update(w)
		if len(*msgs) != 1 {
			t.Fatalf("fatal messages = %v", *msgs)
		}
	})
}

func TestCullingOutsideWindow(t *testing.T) {
	settings := common.DefaultSettings()
	w, in := newTestWorld(t)
	s := newTestMonsterSystem(settings)
	spawnPlayer(t, w, settings, 100, 400)
	far := spawnMonster(t, w, testSpecies(), 5000, 400, 1)
	nearby := spawnMonster(t, w, testSpecies(), 300, 400, 1)

	in.Now = 16
	s.Update(w)
	farTr := mustGet(t, w, far, component.TransformComponent.Kind())
	if farTr.Rect.CenterX() != 5000 || mustGet(t, w, far, component.MonsterComponent.Kind()).Active {
		t.Fatalf("far monster should not update")
	}
	if !mustGet(t, w, nearby, component.MonsterComponent.Kind()).Active {
		t.Fatalf("near monster should update")
	}
}

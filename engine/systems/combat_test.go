package systems

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/1siamBot/lanebattle/engine/core"
)

var farmer = &core.Archetype{Name: "Farmer", Cost: 10, MoveSpeed: 10, AttackRange: 25, AttackDamage: 2, MaxHealth: 5}

func newLane() *core.World {
	w := core.NewWorld()
	w.Spawn(core.Entity{Kind: core.KindBase, Faction: core.Friendly, Pos: core.Position{X: -200}, Facing: 1, Health: core.HealthFromMax(100)})
	w.Spawn(core.Entity{Kind: core.KindBase, Faction: core.Enemy, Pos: core.Position{X: 200}, Facing: -1, Health: core.HealthFromMax(100)})
	return w
}

func addUnit(w *core.World, f core.Faction, x float64, a *core.Archetype) *core.Entity {
	facing := 1.0
	if f == core.Enemy {
		facing = -1
	}
	id := w.Spawn(core.Entity{
		Kind: core.KindUnit, Faction: f, Pos: core.Position{X: x}, Facing: facing,
		Health: core.HealthFromMax(a.MaxHealth), Archetype: a,
	})
	return w.Get(id)
}

func TestAdvanceTransitions(t *testing.T) {
	timing := AttackTiming{WindUp: 1.0, Recovery: 0.5}
	tests := []struct {
		name       string
		in         core.AttackPhase
		dt         float64
		want       core.AttackPhase
		wantStrike bool
	}{
		{"start enters wind-up without consuming time", core.AttackStart{}, 0.3, core.AttackWindUp{Remaining: 1.0}, false},
		{"wind-up counts down", core.AttackWindUp{Remaining: 1.0}, 0.25, core.AttackWindUp{Remaining: 0.75}, false},
		{"wind-up completes and strikes", core.AttackWindUp{Remaining: 0.05}, 0.05, core.AttackRecovery{Remaining: 0.5}, true},
		{"wind-up overshoot still strikes once", core.AttackWindUp{Remaining: 0.01}, 0.05, core.AttackRecovery{Remaining: 0.5}, true},
		{"wind-up within epsilon strikes", core.AttackWindUp{Remaining: 0.05 + 1e-12}, 0.05, core.AttackRecovery{Remaining: 0.5}, true},
		{"recovery counts down", core.AttackRecovery{Remaining: 0.5}, 0.2, core.AttackRecovery{Remaining: 0.3}, false},
		{"recovery ends the attack", core.AttackRecovery{Remaining: 0.1}, 0.1, nil, false},
		{"no attack stays idle", nil, 0.05, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strike := Advance(tt.in, tt.dt, timing)
			if strike != tt.wantStrike {
				t.Errorf("strike = %v, want %v", strike, tt.wantStrike)
			}
			if !samePhase(got, tt.want) {
				t.Errorf("Advance(%#v, %v) = %#v, want %#v", tt.in, tt.dt, got, tt.want)
			}
		})
	}
}

func samePhase(a, b core.AttackPhase) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case core.AttackStart:
		_, ok := b.(core.AttackStart)
		return ok
	case core.AttackWindUp:
		y, ok := b.(core.AttackWindUp)
		return ok && math.Abs(x.Remaining-y.Remaining) < 1e-9
	case core.AttackRecovery:
		y, ok := b.(core.AttackRecovery)
		return ok && math.Abs(x.Remaining-y.Remaining) < 1e-9
	}
	return false
}

// TestOneStrikePerCycle runs full cycles at 20 Hz and counts strikes
func TestOneStrikePerCycle(t *testing.T) {
	timing := DefaultAttackTiming
	var p core.AttackPhase = core.AttackStart{}
	strikes, steps := 0, 0
	for p != nil {
		var strike bool
		p, strike = Advance(p, 0.05, timing)
		if strike {
			strikes++
			// Start consumes a step, then twenty 0.05 s steps of wind-up
			if steps != 20 {
				t.Errorf("strike on step %d, want 20", steps)
			}
		}
		steps++
		if steps > 1000 {
			t.Fatal("attack cycle never ended")
		}
	}
	if strikes != 1 {
		t.Fatalf("%d strikes in one cycle, want 1", strikes)
	}
	// 1 start step + 20 wind-up steps + 10 recovery steps
	if steps != 31 {
		t.Errorf("cycle took %d steps, want 31", steps)
	}
}

func TestTimingOverride(t *testing.T) {
	shadow := &core.Archetype{Name: "Shadow", WindUp: 0.6}
	got := DefaultAttackTiming.For(shadow)
	if got.WindUp != 0.6 || got.Recovery != 0.5 {
		t.Fatalf("For(Shadow) = %+v, want {0.6 0.5}", got)
	}
	if got := DefaultAttackTiming.For(nil); got != DefaultAttackTiming {
		t.Fatalf("For(nil) = %+v", got)
	}
}

func TestNearestTargetAhead(t *testing.T) {
	w := newLane()
	shooter := addUnit(w, core.Friendly, 0, farmer)
	far := addUnit(w, core.Enemy, 20, farmer)
	near := addUnit(w, core.Enemy, 10, farmer)
	addUnit(w, core.Enemy, -5, farmer)  // behind
	addUnit(w, core.Friendly, 5, farmer) // ally

	got := NearestTargetAhead(w, core.Friendly, shooter.Pos, shooter.Facing, 25)
	if got == nil || got.ID != near.ID {
		t.Fatalf("nearest = %v, want %d", got, near.ID)
	}

	near.Health.Current = 0
	got = NearestTargetAhead(w, core.Friendly, shooter.Pos, shooter.Facing, 25)
	if got == nil || got.ID != far.ID {
		t.Fatalf("with nearest dead, got %v, want %d", got, far.ID)
	}
}

func TestNearestTargetTieGoesToLowestID(t *testing.T) {
	w := newLane()
	first := addUnit(w, core.Enemy, 10, farmer)
	addUnit(w, core.Enemy, 10, farmer)

	got := NearestTargetAhead(w, core.Friendly, core.Position{X: 0}, 1, 25)
	if got == nil || got.ID != first.ID {
		t.Fatalf("tie resolved to %v, want %d", got, first.ID)
	}
}

func TestApplyDamageLostWhenNothingInReach(t *testing.T) {
	w := newLane()
	target := addUnit(w, core.Enemy, 50, farmer)
	bus := core.NewEventBus()
	id := ApplyDamage(w, core.DamageEvent{Faction: core.Friendly, Damage: 2, Range: 25, Origin: core.Position{X: 0}, Facing: 1}, bus)
	if id != 0 {
		t.Fatalf("hit %d out of reach", id)
	}
	if target.Health.Current != 5 {
		t.Errorf("target health = %v, want 5", target.Health.Current)
	}
	if len(bus.Pending()) != 0 {
		t.Error("damage event emitted for a miss")
	}
}

func TestDamageResolvesInEmissionOrder(t *testing.T) {
	w := newLane()
	target := addUnit(w, core.Enemy, 10, farmer)
	backup := addUnit(w, core.Enemy, 20, farmer)
	w.Strikes = []core.DamageEvent{
		{Source: 90, Faction: core.Friendly, Damage: 5, Range: 25, Origin: core.Position{X: 0}, Facing: 1},
		{Source: 91, Faction: core.Friendly, Damage: 2, Range: 25, Origin: core.Position{X: 0}, Facing: 1},
	}
	(&DamageSystem{}).Update(w, 0.05)

	if !target.Health.IsDead() {
		t.Fatal("first strike did not kill the nearest target")
	}
	// The second strike skips the dead target
	if backup.Health.Current != 3 {
		t.Errorf("backup health = %v, want 3", backup.Health.Current)
	}
}

func TestBasesAreTargets(t *testing.T) {
	w := newLane()
	u := addUnit(w, core.Friendly, 180, farmer)
	got := NearestTargetAhead(w, core.Friendly, u.Pos, u.Facing, farmer.AttackRange)
	base, _ := w.BaseOf(core.Enemy)
	if got == nil || got.ID != base.ID {
		t.Fatalf("target = %v, want enemy base %d", got, base.ID)
	}
}

func TestAttackSystemQueuesStrike(t *testing.T) {
	w := newLane()
	u := addUnit(w, core.Friendly, 0, farmer)
	u.Attack = core.AttackWindUp{Remaining: 0.05}
	bus := core.NewEventBus()

	(&AttackSystem{Timing: DefaultAttackTiming, EventBus: bus}).Update(w, 0.05)

	if len(w.Strikes) != 1 {
		t.Fatalf("%d strikes queued, want 1", len(w.Strikes))
	}
	ev := w.Strikes[0]
	if ev.Source != u.ID || ev.Damage != 2 || ev.Range != 25 || ev.Facing != 1 {
		t.Errorf("strike = %+v", ev)
	}
	if _, ok := u.Attack.(core.AttackRecovery); !ok {
		t.Errorf("phase after strike = %#v, want recovery", u.Attack)
	}
	if p := bus.Pending(); len(p) != 1 || p[0].Type != core.EvtStrike {
		t.Errorf("events = %v, want one strike", p)
	}
}

func TestDamageSystemLogsLostStrikes(t *testing.T) {
	w := newLane()
	target := addUnit(w, core.Enemy, 10, farmer)
	w.TickCount = 7
	w.Strikes = []core.DamageEvent{
		{Source: 41, Faction: core.Friendly, Damage: 2, Range: 25, Origin: core.Position{X: 0}, Facing: 1},
		{Source: 42, Faction: core.Friendly, Damage: 3, Range: 25, Origin: core.Position{X: 100}, Facing: 1},
	}

	var buf bytes.Buffer
	s := &DamageSystem{
		EventBus: core.NewEventBus(),
		Log:      slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	s.Update(w, 0.05)

	if target.Health.Current != 3 {
		t.Errorf("target health = %v, want 3", target.Health.Current)
	}
	out := buf.String()
	if strings.Count(out, "damage lost") != 1 {
		t.Fatalf("log = %q, want one lost strike", out)
	}
	for _, want := range []string{"source=42", "damage=3", "tick=7"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q lacks %s", out, want)
		}
	}
	if strings.Contains(out, "source=41") {
		t.Errorf("landed strike logged as lost: %q", out)
	}

	// A nil logger stays quiet
	w.Strikes = w.Strikes[1:]
	(&DamageSystem{}).Update(w, 0.05)
}

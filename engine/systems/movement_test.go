package systems

import (
	"math"
	"testing"

	"github.com/1siamBot/lanebattle/engine/core"
)

func TestMovementAdvancesIdleUnits(t *testing.T) {
	w := newLane()
	f := addUnit(w, core.Friendly, 0, farmer)
	e := addUnit(w, core.Enemy, 100, farmer)
	rooted := addUnit(w, core.Friendly, 50, farmer)
	rooted.Attack = core.AttackWindUp{Remaining: 1}

	(&MovementSystem{}).Update(w, 0.5)

	if f.Pos.X != 5 {
		t.Errorf("friendly x = %v, want 5", f.Pos.X)
	}
	if e.Pos.X != 95 {
		t.Errorf("enemy x = %v, want 95", e.Pos.X)
	}
	if rooted.Pos.X != 50 {
		t.Errorf("attacking unit moved to %v", rooted.Pos.X)
	}
	for _, f := range core.Factions {
		base, _ := w.BaseOf(f)
		if math.Abs(base.Pos.X) != 200 {
			t.Errorf("%s base moved to %v", f, base.Pos.X)
		}
	}
}

func TestTargetingStartsAttackOnlyInRange(t *testing.T) {
	w := newLane()
	inRange := addUnit(w, core.Friendly, 0, farmer)
	outOfRange := addUnit(w, core.Friendly, -100, farmer)
	addUnit(w, core.Enemy, 20, farmer)
	bus := core.NewEventBus()

	(&TargetingSystem{EventBus: bus}).Update(w, 0.05)

	if _, ok := inRange.Attack.(core.AttackStart); !ok {
		t.Errorf("in-range unit phase = %#v, want start", inRange.Attack)
	}
	if outOfRange.Attacking() {
		t.Error("out-of-range unit started attacking")
	}
	// The enemy at 20 faces -X and sees the friendly at 0 within 25
	started := 0
	for _, e := range bus.Pending() {
		if e.Type == core.EvtAttackStarted {
			started++
		}
	}
	if started != 2 {
		t.Errorf("%d attack_started events, want 2", started)
	}
}

func TestTargetingKeepsExistingAttack(t *testing.T) {
	w := newLane()
	u := addUnit(w, core.Friendly, 0, farmer)
	addUnit(w, core.Enemy, 20, farmer)
	u.Attack = core.AttackRecovery{Remaining: 0.2}

	(&TargetingSystem{}).Update(w, 0.05)

	if r, ok := u.Attack.(core.AttackRecovery); !ok || r.Remaining != 0.2 {
		t.Errorf("phase = %#v, want untouched recovery", u.Attack)
	}
}

// TestOpposingUnitsEngage walks two units toward each other through the
// targeting, movement and attack steps
func TestOpposingUnitsEngage(t *testing.T) {
	short := &core.Archetype{Name: "Pike", MoveSpeed: 10, AttackRange: 20, AttackDamage: 1, MaxHealth: 10}
	w := newLane()
	a := addUnit(w, core.Friendly, 0, short)
	b := addUnit(w, core.Enemy, 30, short)
	w.AddSystem(&TargetingSystem{})
	w.AddSystem(&MovementSystem{})
	w.AddSystem(&AttackSystem{Timing: DefaultAttackTiming})

	for i := 0; i < 40; i++ {
		gap := b.Pos.X - a.Pos.X
		if gap > short.AttackRange && (a.Attacking() || b.Attacking()) {
			t.Fatalf("tick %d: attacking at gap %v", i, gap)
		}
		w.Tick(0.05)
	}
	if !a.Attacking() || !b.Attacking() {
		t.Fatalf("a attacking=%v b attacking=%v, want both", a.Attacking(), b.Attacking())
	}
	if a.Pos.X >= b.Pos.X {
		t.Errorf("units walked past each other: a=%v b=%v", a.Pos.X, b.Pos.X)
	}
}

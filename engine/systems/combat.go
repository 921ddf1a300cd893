package systems

import (
	"log/slog"

	"github.com/1siamBot/lanebattle/engine/core"
)

// timerEpsilon absorbs float drift when a countdown is summed from many dt steps
const timerEpsilon = 1e-9

// AttackTiming is the default attack cycle shared by archetypes that do not
// override it
type AttackTiming struct {
	WindUp   float64
	Recovery float64
}

// DefaultAttackTiming is one second of wind-up and half a second of recovery
var DefaultAttackTiming = AttackTiming{WindUp: 1.0, Recovery: 0.5}

// For returns the timing an archetype actually uses
func (t AttackTiming) For(a *core.Archetype) AttackTiming {
	out := t
	if a != nil && a.WindUp > 0 {
		out.WindUp = a.WindUp
	}
	if a != nil && a.Recovery > 0 {
		out.Recovery = a.Recovery
	}
	return out
}

// AttackSystem advances every attacking unit by exactly one phase step and
// queues a damage event whenever a wind-up completes.
type AttackSystem struct {
	Timing   AttackTiming
	EventBus *core.EventBus
}

func (s *AttackSystem) Priority() int { return 40 }

func (s *AttackSystem) Update(w *core.World, dt float64) {
	for _, u := range w.Units() {
		if !u.Attacking() || u.Health.IsDead() {
			continue
		}
		next, strike := Advance(u.Attack, dt, s.Timing.For(u.Archetype))
		u.Attack = next
		if !strike {
			continue
		}
		w.Strikes = append(w.Strikes, core.DamageEvent{
			Source:  u.ID,
			Faction: u.Faction,
			Damage:  u.Archetype.AttackDamage,
			Range:   u.Archetype.AttackRange,
			Origin:  u.Pos,
			Facing:  u.Facing,
		})
		if s.EventBus != nil {
			s.EventBus.Emit(core.Event{
				Type: core.EvtStrike, Tick: w.TickCount, Source: u.ID,
				Faction: u.Faction, Amount: u.Archetype.AttackDamage,
			})
		}
	}
}

// Advance performs one step of the attack cycle. It returns the next phase
// (nil once recovery ends) and whether a strike happens on this step.
func Advance(p core.AttackPhase, dt float64, t AttackTiming) (core.AttackPhase, bool) {
	switch ph := p.(type) {
	case core.AttackStart:
		return core.AttackWindUp{Remaining: t.WindUp}, false
	case core.AttackWindUp:
		ph.Remaining -= dt
		if ph.Remaining <= timerEpsilon {
			return core.AttackRecovery{Remaining: t.Recovery}, true
		}
		return ph, false
	case core.AttackRecovery:
		ph.Remaining -= dt
		if ph.Remaining <= timerEpsilon {
			return nil, false
		}
		return ph, false
	}
	return nil, false
}

// DamageSystem resolves the tick's damage events in emission order
type DamageSystem struct {
	EventBus *core.EventBus
	Log      *slog.Logger
}

func (s *DamageSystem) Priority() int { return 50 }

func (s *DamageSystem) Update(w *core.World, _ float64) {
	for _, ev := range w.Strikes {
		if ApplyDamage(w, ev, s.EventBus) == 0 && s.Log != nil {
			s.Log.Debug("damage lost", "source", ev.Source, "faction", ev.Faction, "damage", ev.Damage, "tick", w.TickCount)
		}
	}
}

// ApplyDamage hits the nearest living opponent in front of the event origin.
// It returns the target's ID, or 0 when nothing was in reach and the damage
// is lost.
func ApplyDamage(w *core.World, ev core.DamageEvent, bus *core.EventBus) core.EntityID {
	target := NearestTargetAhead(w, ev.Faction, ev.Origin, ev.Facing, ev.Range)
	if target == nil {
		return 0
	}
	target.Health.ApplyDamage(ev.Damage)
	if bus != nil {
		bus.Emit(core.Event{
			Type: core.EvtDamaged, Tick: w.TickCount, Source: ev.Source, Target: target.ID,
			Faction: ev.Faction, Amount: ev.Damage,
		})
	}
	return target.ID
}

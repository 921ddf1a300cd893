package systems

import (
	"github.com/1siamBot/lanebattle/engine/core"
)

// TargetingSystem starts an attack for every idle unit that has at least one
// living opponent ahead of it within attack range. The actual target is
// picked at strike time.
type TargetingSystem struct {
	EventBus *core.EventBus
}

func (s *TargetingSystem) Priority() int { return 20 }

func (s *TargetingSystem) Update(w *core.World, _ float64) {
	for _, u := range w.Units() {
		if u.Attacking() || u.Health.IsDead() || u.Archetype == nil {
			continue
		}
		if !HasTargetAhead(w, u.Faction, u.Pos, u.Facing, u.Archetype.AttackRange) {
			continue
		}
		u.Attack = core.AttackStart{}
		if s.EventBus != nil {
			s.EventBus.Emit(core.Event{Type: core.EvtAttackStarted, Tick: w.TickCount, Source: u.ID, Faction: u.Faction})
		}
	}
}

// HasTargetAhead reports whether any living opponent of f lies ahead of
// origin within reach.
func HasTargetAhead(w *core.World, f core.Faction, origin core.Position, facing, reach float64) bool {
	for _, e := range w.Living(f.Opponent()) {
		if origin.AheadWithin(facing, reach, e.Pos) {
			return true
		}
	}
	return false
}

// NearestTargetAhead returns the living opponent of f ahead of origin within
// reach that is closest to origin. Ties go to the lowest ID.
func NearestTargetAhead(w *core.World, f core.Faction, origin core.Position, facing, reach float64) *core.Entity {
	var best *core.Entity
	bestDist := 0.0
	// Living is ordered by ID, so a strict comparison keeps the lowest ID on ties
	for _, e := range w.Living(f.Opponent()) {
		if !origin.AheadWithin(facing, reach, e.Pos) {
			continue
		}
		d := origin.DistanceTo(e.Pos)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

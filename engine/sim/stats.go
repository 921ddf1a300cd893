package sim

import "github.com/1siamBot/lanebattle/engine/core"

// FactionStats counts what one side did during a match
type FactionStats struct {
	Spawned     int
	Dropped     int
	Lost        int
	Strikes     int
	DamageDealt float64
	Spent       float64
}

// Stats is the running tally of a match, fed from the event bus
type Stats struct {
	Duration float64 // simulated seconds until the match ended
	sides    [2]FactionStats
}

// Of returns the tally of a faction
func (s Stats) Of(f core.Faction) FactionStats {
	if int(f) >= len(s.sides) {
		return FactionStats{}
	}
	return s.sides[f]
}

func (s *Stats) observe(e core.Event) {
	if int(e.Faction) >= len(s.sides) {
		return
	}
	side := &s.sides[e.Faction]
	switch e.Type {
	case core.EvtUnitSpawned:
		side.Spawned++
		side.Spent += e.Amount
	case core.EvtSpawnDropped:
		side.Dropped++
	case core.EvtStrike:
		side.Strikes++
	case core.EvtDamaged:
		side.DamageDealt += e.Amount
	case core.EvtEntityDied:
		if e.Label == core.KindUnit.String() {
			side.Lost++
		}
	}
}

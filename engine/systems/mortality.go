package systems

import (
	"log/slog"

	"github.com/1siamBot/lanebattle/engine/core"
)

// MortalitySystem removes every entity whose health reached zero
type MortalitySystem struct {
	EventBus *core.EventBus
	Log      *slog.Logger
}

func (s *MortalitySystem) Priority() int { return 60 }

func (s *MortalitySystem) Update(w *core.World, _ float64) {
	for _, e := range w.Entities() {
		if !e.Health.IsDead() {
			continue
		}
		w.Destroy(e.ID)
		if s.Log != nil {
			s.Log.Debug("entity died", "id", e.ID, "kind", e.Kind, "faction", e.Faction)
		}
		if s.EventBus != nil {
			s.EventBus.Emit(core.Event{Type: core.EvtEntityDied, Tick: w.TickCount, Source: e.ID, Faction: e.Faction, Label: e.Kind.String()})
		}
	}
	w.Flush()
}

// VictorySystem ends the match once a faction has no base left. Both bases
// falling in the same tick is a draw.
type VictorySystem struct {
	EventBus *core.EventBus
	Log      *slog.Logger
}

func (s *VictorySystem) Priority() int { return 70 }

func (s *VictorySystem) Update(w *core.World, _ float64) {
	if w.State.Phase == core.Ended {
		return
	}
	_, friendly := w.BaseOf(core.Friendly)
	_, enemy := w.BaseOf(core.Enemy)

	var winner core.Faction
	switch {
	case friendly && enemy:
		return
	case friendly:
		winner = core.Friendly
	case enemy:
		winner = core.Enemy
	default:
		winner = core.NoFaction
	}

	w.State = core.MatchState{Phase: core.Ended, Winner: winner}
	if s.Log != nil {
		s.Log.Info("match ended", "winner", winner, "tick", w.TickCount)
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtMatchEnded, Tick: w.TickCount, Faction: winner})
	}
}

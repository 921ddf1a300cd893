package systems

import (
	"log/slog"

	"github.com/1siamBot/lanebattle/engine/core"
)

// RandSource supplies spawn jitter. *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// SpawnOffsets places new units in front of their base
type SpawnOffsets struct {
	Forward       float64 // fixed distance ahead of the base
	ForwardJitter float64 // extra random distance in [0, ForwardJitter)
	LateralJitter float64 // random lateral offset in (-LateralJitter, LateralJitter)
}

// SpawnSystem turns queued spawn requests into units. It also performs the
// spend: a request the faction cannot afford creates nothing and costs nothing.
// Without an Economy units are free and the spawn event carries no amount.
type SpawnSystem struct {
	Catalog  *core.Catalog
	Economy  *core.Economy
	Rand     RandSource
	Offsets  SpawnOffsets
	EventBus *core.EventBus
	Log      *slog.Logger
}

func (s *SpawnSystem) Priority() int { return 10 }

func (s *SpawnSystem) Update(w *core.World, _ float64) {
	for _, req := range w.Pending {
		s.Spawn(w, req)
	}
}

// Spawn handles one request and returns the new unit's ID, or 0 if the
// request was dropped.
func (s *SpawnSystem) Spawn(w *core.World, req core.SpawnRequest) core.EntityID {
	base, ok := w.BaseOf(req.Faction)
	if !ok {
		s.drop(w, req, "no base")
		return 0
	}
	arch, ok := s.Catalog.Lookup(req.Archetype)
	if !ok {
		s.drop(w, req, "unknown archetype")
		return 0
	}
	spent := 0.0
	if s.Economy != nil {
		if !s.Economy.TrySpend(req.Faction, arch.Cost) {
			s.drop(w, req, "insufficient funds")
			return 0
		}
		spent = float64(arch.Cost)
	}

	facing := FacingFrom(w, req.Faction, base)
	forward := s.Offsets.Forward + s.rand()*s.Offsets.ForwardJitter
	lateral := (2*s.rand() - 1) * s.Offsets.LateralJitter

	id := w.Spawn(core.Entity{
		Kind:    core.KindUnit,
		Faction: req.Faction,
		Pos: core.Position{
			X: base.Pos.X + facing*forward,
			Y: base.Pos.Y + lateral,
		},
		Facing:    facing,
		Health:    core.HealthFromMax(arch.MaxHealth),
		Archetype: arch,
	})

	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{
			Type: core.EvtUnitSpawned, Tick: w.TickCount, Source: id,
			Faction: req.Faction, Amount: spent, Label: arch.Name,
		})
	}
	return id
}

func (s *SpawnSystem) drop(w *core.World, req core.SpawnRequest, reason string) {
	if s.Log != nil {
		s.Log.Debug("spawn dropped", "faction", req.Faction, "archetype", req.Archetype, "reason", reason)
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{
			Type: core.EvtSpawnDropped, Tick: w.TickCount,
			Faction: req.Faction, Label: req.Archetype,
		})
	}
}

func (s *SpawnSystem) rand() float64 {
	if s.Rand == nil {
		return 0
	}
	return s.Rand.Float64()
}

// FacingFrom returns the lane direction from a faction's base toward the
// opposing base. Without an opposing base, Friendly faces +X and Enemy -X.
func FacingFrom(w *core.World, f core.Faction, base *core.Entity) float64 {
	if other, ok := w.BaseOf(f.Opponent()); ok && other.Pos.X != base.Pos.X {
		if other.Pos.X > base.Pos.X {
			return 1
		}
		return -1
	}
	if f == core.Enemy {
		return -1
	}
	return 1
}

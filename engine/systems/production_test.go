package systems

import (
	"math"
	"testing"

	"github.com/1siamBot/lanebattle/engine/core"
)

// fixedRand returns its values in order, repeating the last one
type fixedRand struct {
	vals []float64
	i    int
}

func (r *fixedRand) Float64() float64 {
	v := r.vals[min(r.i, len(r.vals)-1)]
	r.i++
	return v
}

func newSpawner(start float64, rnd RandSource) (*SpawnSystem, *core.EventBus) {
	bus := core.NewEventBus()
	return &SpawnSystem{
		Catalog:  core.NewCatalog(core.DefaultArchetypes()),
		Economy:  core.NewEconomy(start, 1000),
		Rand:     rnd,
		Offsets:  SpawnOffsets{Forward: 20, ForwardJitter: 10, LateralJitter: 2},
		EventBus: bus,
	}, bus
}

func TestSpawnPlacesUnitAheadOfBase(t *testing.T) {
	tests := []struct {
		name    string
		faction core.Faction
		rand    []float64
		wantX   float64
		wantY   float64
		facing  float64
	}{
		{"friendly no jitter", core.Friendly, []float64{0, 0.5}, -180, 0, 1},
		{"friendly full jitter", core.Friendly, []float64{0.5, 1}, -175, 2, 1},
		{"enemy faces back", core.Enemy, []float64{0.5, 0}, 175, -2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newLane()
			s, _ := newSpawner(100, &fixedRand{vals: tt.rand})
			id := s.Spawn(w, core.SpawnRequest{Faction: tt.faction, Archetype: "Farmer"})
			if id == 0 {
				t.Fatal("spawn dropped")
			}
			u := w.Get(id)
			if math.Abs(u.Pos.X-tt.wantX) > 1e-9 || math.Abs(u.Pos.Y-tt.wantY) > 1e-9 {
				t.Errorf("pos = %+v, want {%v %v}", u.Pos, tt.wantX, tt.wantY)
			}
			if u.Facing != tt.facing {
				t.Errorf("facing = %v, want %v", u.Facing, tt.facing)
			}
			if u.Health.Current != 5 || u.Archetype.Name != "Farmer" || u.Attacking() {
				t.Errorf("unit = %+v", u)
			}
			if got := s.Economy.Amount(tt.faction); got != 90 {
				t.Errorf("amount after spawn = %v, want 90", got)
			}
		})
	}
}

func TestSpawnDrops(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		req    core.SpawnRequest
		noBase bool
	}{
		{"insufficient funds", 5, core.SpawnRequest{Faction: core.Friendly, Archetype: "Farmer"}, false},
		{"unknown archetype", 100, core.SpawnRequest{Faction: core.Friendly, Archetype: "Dragon"}, false},
		{"no base", 100, core.SpawnRequest{Faction: core.Friendly, Archetype: "Farmer"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newLane()
			if tt.noBase {
				base, _ := w.BaseOf(core.Friendly)
				w.Destroy(base.ID)
				w.Flush()
			}
			before := w.EntityCount()
			s, bus := newSpawner(tt.start, &fixedRand{vals: []float64{0}})

			if id := s.Spawn(w, tt.req); id != 0 {
				t.Fatalf("spawned %d, want drop", id)
			}
			if w.EntityCount() != before {
				t.Error("entity created by a dropped request")
			}
			if got := s.Economy.Amount(core.Friendly); got != tt.start {
				t.Errorf("amount = %v, want unchanged %v", got, tt.start)
			}
			p := bus.Pending()
			if len(p) != 1 || p[0].Type != core.EvtSpawnDropped {
				t.Errorf("events = %v, want one spawn_dropped", p)
			}
		})
	}
}

// TestSpawnSameSeedSamePositions checks jitter is reproducible
func TestSpawnSameSeedSamePositions(t *testing.T) {
	positions := func() []core.Position {
		w := newLane()
		s, _ := newSpawner(1000, &fixedRand{vals: []float64{0.1, 0.7, 0.3, 0.9, 0.5}})
		var out []core.Position
		for i := 0; i < 5; i++ {
			id := s.Spawn(w, core.SpawnRequest{Faction: core.Friendly, Archetype: "Farmer"})
			out = append(out, w.Get(id).Pos)
		}
		return out
	}
	a, b := positions(), positions()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("spawn %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSpawnSystemDrainsPendingInOrder(t *testing.T) {
	w := newLane()
	s, _ := newSpawner(30, nil)
	w.Pending = []core.SpawnRequest{
		{Faction: core.Friendly, Archetype: "Archer"},
		{Faction: core.Friendly, Archetype: "Farmer"},
	}
	s.Update(w, 0.05)

	units := w.Units()
	if len(units) != 1 || units[0].Archetype.Name != "Archer" {
		t.Fatalf("units = %v, want a single Archer", units)
	}
	if got := s.Economy.Amount(core.Friendly); got != 5 {
		t.Errorf("amount = %v, want 5", got)
	}
}

func TestIncomeSystem(t *testing.T) {
	e := core.NewEconomy(0, 1000)
	s := &IncomeSystem{Economy: e, Rates: [2]float64{10, 4}}
	for i := 0; i < 20; i++ {
		s.Update(nil, 0.05)
	}
	if got := e.Amount(core.Friendly); math.Abs(got-10) > 1e-9 {
		t.Errorf("friendly = %v, want 10", got)
	}
	if got := e.Amount(core.Enemy); math.Abs(got-4) > 1e-9 {
		t.Errorf("enemy = %v, want 4", got)
	}
}

func TestSpawnWithoutEconomyIsFree(t *testing.T) {
	w := newLane()
	s, bus := newSpawner(0, &fixedRand{vals: []float64{0.5}})
	s.Economy = nil
	id := s.Spawn(w, core.SpawnRequest{Faction: core.Enemy, Archetype: "Shadow"})
	if id == 0 {
		t.Fatal("spawn dropped")
	}
	pending := bus.Pending()
	if len(pending) != 1 || pending[0].Type != core.EvtUnitSpawned {
		t.Fatalf("events = %+v, want one unit_spawned", pending)
	}
	if pending[0].Amount != 0 {
		t.Errorf("spawn event amount = %v, want 0 without an economy", pending[0].Amount)
	}
}

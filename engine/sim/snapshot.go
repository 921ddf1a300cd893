package sim

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/1siamBot/lanebattle/engine/core"
)

// Purse is one faction's resource as seen by consumers
type Purse struct {
	Faction  core.Faction `msgpack:"faction"`
	Amount   float64      `msgpack:"amount"`
	Capacity float64      `msgpack:"capacity"`
}

// EntityView is a read-only copy of a living entity
type EntityView struct {
	ID        core.EntityID `msgpack:"id"`
	Kind      core.Kind     `msgpack:"kind"`
	Faction   core.Faction  `msgpack:"faction"`
	X         float64       `msgpack:"x"`
	Y         float64       `msgpack:"y"`
	Facing    float64       `msgpack:"facing"`
	Health    float64       `msgpack:"health"`
	MaxHealth float64       `msgpack:"max_health"`
	Archetype string        `msgpack:"archetype,omitempty"`
	Attack    string        `msgpack:"attack,omitempty"`
}

// Snapshot is the full observable state after a tick. It holds slices only
// so that equal states always encode to the same bytes.
type Snapshot struct {
	MatchID  string          `msgpack:"match_id"`
	Tick     uint64          `msgpack:"tick"`
	Economy  [2]Purse        `msgpack:"economy"`
	Entities []EntityView    `msgpack:"entities"`
	State    core.MatchState `msgpack:"state"`
}

// Snapshot copies the current state
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		MatchID: m.ID,
		Tick:    m.World.TickCount,
		State:   m.World.State,
	}
	for i, f := range core.Factions {
		s.Economy[i] = Purse{Faction: f, Amount: m.Economy.Amount(f), Capacity: m.Economy.Capacity(f)}
	}
	for _, e := range m.World.Entities() {
		v := EntityView{
			ID:        e.ID,
			Kind:      e.Kind,
			Faction:   e.Faction,
			X:         e.Pos.X,
			Y:         e.Pos.Y,
			Facing:    e.Facing,
			Health:    e.Health.Current,
			MaxHealth: e.Health.Max,
			Attack:    core.AttackLabel(e.Attack),
		}
		if e.Archetype != nil {
			v.Archetype = e.Archetype.Name
		}
		s.Entities = append(s.Entities, v)
	}
	return s
}

// Amount returns a faction's resource amount
func (s Snapshot) Amount(f core.Faction) float64 {
	for _, p := range s.Economy {
		if p.Faction == f {
			return p.Amount
		}
	}
	return 0
}

// Find returns the view of an entity by ID
func (s Snapshot) Find(id core.EntityID) (EntityView, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityView{}, false
}

// Base returns the view of a faction's base
func (s Snapshot) Base(f core.Faction) (EntityView, bool) {
	for _, e := range s.Entities {
		if e.Kind == core.KindBase && e.Faction == f {
			return e, true
		}
	}
	return EntityView{}, false
}

// wireSnapshot has no methods, so msgpack encodes its fields instead of
// calling back into MarshalBinary
type wireSnapshot Snapshot

// MarshalBinary encodes the snapshot with msgpack
func (s Snapshot) MarshalBinary() ([]byte, error) {
	b, err := msgpack.Marshal((*wireSnapshot)(&s))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot reverses MarshalBinary
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s wireSnapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return Snapshot(s), nil
}

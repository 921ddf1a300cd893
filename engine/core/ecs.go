package core

import (
	"fmt"
	"sort"
)

// EntityID is a unique identifier for entities within one match
type EntityID uint64

// MatchPhase is the top-level state of a match
type MatchPhase uint8

const (
	InProgress MatchPhase = iota
	Ended
)

func (p MatchPhase) String() string {
	if p == Ended {
		return "ended"
	}
	return "in_progress"
}

// MatchState records whether the match is running and who won.
// The transition to Ended is one-way.
type MatchState struct {
	Phase  MatchPhase
	Winner Faction
}

// World holds all entities plus the per-tick queues shared by the systems
type World struct {
	entities map[EntityID]*Entity
	systems  []System
	toRemove []EntityID
	nextID   EntityID

	// Pending is filled by the match before a tick and drained by the spawner
	Pending []SpawnRequest
	// Strikes is filled by the attack system and drained by damage resolution
	Strikes []DamageEvent

	State     MatchState
	TickCount uint64
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		entities: make(map[EntityID]*Entity),
		State:    MatchState{Phase: InProgress, Winner: NoFaction},
	}
}

// Spawn stores a new entity, assigns its ID and returns it
func (w *World) Spawn(e Entity) EntityID {
	w.nextID++
	e.ID = w.nextID
	w.entities[e.ID] = &e
	return e.ID
}

// Get returns an entity, or nil
func (w *World) Get(id EntityID) *Entity {
	return w.entities[id]
}

// Has checks if an entity exists
func (w *World) Has(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Destroy marks an entity for removal on the next Flush
func (w *World) Destroy(id EntityID) {
	w.toRemove = append(w.toRemove, id)
}

// Flush removes entities marked by Destroy
func (w *World) Flush() {
	for _, id := range w.toRemove {
		delete(w.entities, id)
	}
	w.toRemove = w.toRemove[:0]
}

// Entities returns all entities ordered by ID
func (w *World) Entities() []*Entity {
	result := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Units returns all units ordered by ID
func (w *World) Units() []*Entity {
	var result []*Entity
	for _, e := range w.Entities() {
		if e.Kind == KindUnit {
			result = append(result, e)
		}
	}
	return result
}

// Living returns entities of a faction whose health is above zero, ordered by ID
func (w *World) Living(f Faction) []*Entity {
	var result []*Entity
	for _, e := range w.Entities() {
		if e.Faction == f && !e.Health.IsDead() {
			result = append(result, e)
		}
	}
	return result
}

// BaseOf returns the base of a faction. More than one base is an invariant
// violation and panics.
func (w *World) BaseOf(f Faction) (*Entity, bool) {
	var found *Entity
	for _, e := range w.entities {
		if e.Kind != KindBase || e.Faction != f {
			continue
		}
		if found != nil {
			panic(fmt.Sprintf("core: faction %s has more than one base (%d, %d)", f, found.ID, e.ID))
		}
		found = e
	}
	return found, found != nil
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once, in priority order
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.Flush()
	w.Pending = w.Pending[:0]
	w.Strikes = w.Strikes[:0]
	w.TickCount++
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities)
}

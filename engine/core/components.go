package core

import (
	"fmt"
	"math"
)

// ---- Faction ----

// Faction identifies one of the two sides of a match
type Faction uint8

const (
	Friendly Faction = iota
	Enemy
	// NoFaction is only used as the winner of a drawn match
	NoFaction
)

// Factions lists both playable sides in index order
var Factions = [2]Faction{Friendly, Enemy}

// Opponent returns the opposing faction
func (f Faction) Opponent() Faction {
	switch f {
	case Friendly:
		return Enemy
	case Enemy:
		return Friendly
	}
	return NoFaction
}

func (f Faction) String() string {
	switch f {
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	}
	return "none"
}

// ---- Position ----

// Position is a lane coordinate. X runs along the lane and drives all
// movement and range checks; Y is a small lateral offset.
type Position struct {
	X, Y float64
}

// DistanceTo returns euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AheadWithin reports whether other lies on the facing side of p along the
// lane axis and no further than reach. A zero lane distance counts as ahead.
func (p Position) AheadWithin(facing float64, reach float64, other Position) bool {
	d := other.X - p.X
	if d*facing < 0 {
		return false
	}
	return math.Abs(d) <= reach
}

// ---- Health ----

// Health represents hit points. Current may drop below zero; mortality
// removes the entity before it can act again.
type Health struct {
	Current float64
	Max     float64
}

// HealthFromMax returns full health
func HealthFromMax(max float64) Health {
	return Health{Current: max, Max: max}
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}

func (h *Health) ApplyDamage(damage float64) {
	h.Current -= damage
}

// Ratio is clamped to [0, 1] for presentation
func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, h.Current/h.Max))
}

func (h Health) String() string {
	return fmt.Sprintf("%.0f / %.0f", math.Max(0, h.Current), h.Max)
}

// ---- Attack cycle ----

// AttackPhase is the state of an in-progress attack. The set of phases is
// closed: AttackStart, AttackWindUp and AttackRecovery.
type AttackPhase interface {
	Label() string
	attackPhase()
}

// AttackStart is attached by targeting and becomes a wind-up on the next
// attack step without consuming time.
type AttackStart struct{}

// AttackWindUp counts down to the strike
type AttackWindUp struct {
	Remaining float64
}

// AttackRecovery counts down to the end of the attack
type AttackRecovery struct {
	Remaining float64
}

func (AttackStart) attackPhase()    {}
func (AttackWindUp) attackPhase()   {}
func (AttackRecovery) attackPhase() {}

func (AttackStart) Label() string    { return "start" }
func (AttackWindUp) Label() string   { return "windup" }
func (AttackRecovery) Label() string { return "recovery" }

// AttackLabel returns the label of a phase, or "" when the unit is moving
func AttackLabel(p AttackPhase) string {
	if p == nil {
		return ""
	}
	return p.Label()
}

// ---- Entity ----

// Kind separates bases from units
type Kind uint8

const (
	KindBase Kind = iota
	KindUnit
)

func (k Kind) String() string {
	if k == KindBase {
		return "base"
	}
	return "unit"
}

// Entity is a base or a unit. Bases have no archetype and never attack.
type Entity struct {
	ID      EntityID
	Kind    Kind
	Faction Faction
	Pos     Position
	Facing  float64 // +1 or -1 along the lane axis
	Health  Health

	Archetype *Archetype  // units only
	Attack    AttackPhase // nil while moving
}

// IsUnit reports whether the entity is a living unit
func (e *Entity) IsUnit() bool {
	return e.Kind == KindUnit && e.Archetype != nil
}

// Attacking reports whether the unit has an attack in progress
func (e *Entity) Attacking() bool {
	return e.Attack != nil
}

// ---- Per-tick messages ----

// SpawnRequest asks for one unit of an archetype for a faction
type SpawnRequest struct {
	Faction   Faction
	Archetype string
}

// DamageEvent is produced when a wind-up completes and is resolved against
// the nearest valid target in the same tick.
type DamageEvent struct {
	Source  EntityID
	Faction Faction
	Damage  float64
	Range   float64
	Origin  Position
	Facing  float64
}

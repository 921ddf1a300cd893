// Package sim owns a single match: the entity store, the economy and the
// fixed per-tick pipeline.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/1siamBot/lanebattle/engine/config"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/systems"
)

// TickSummary is what consumers see after every Advance
type TickSummary struct {
	Snapshot
	Events []core.Event
}

// Match runs the simulation. It is not safe for concurrent use; front ends
// call it from a single update loop.
type Match struct {
	ID      string
	World   *core.World
	Economy *core.Economy
	Catalog *core.Catalog
	Bus     *core.EventBus

	spawner *systems.SpawnSystem
	log     *slog.Logger
	events  []core.Event
	stats   Stats
}

// Option customises a match at construction
type Option func(*Match)

// WithLogger routes simulation logs to l
func WithLogger(l *slog.Logger) Option {
	return func(m *Match) { m.log = l }
}

// WithRand replaces the seeded RNG used for spawn jitter
func WithRand(r systems.RandSource) Option {
	return func(m *Match) { m.spawner.Rand = r }
}

// WithID fixes the match ID instead of generating one
func WithID(id string) Option {
	return func(m *Match) { m.ID = id }
}

// New sets up bases, economy and the pipeline from validated settings
func New(cfg config.Match, opts ...Option) *Match {
	m := &Match{
		ID:      uuid.NewString(),
		World:   core.NewWorld(),
		Economy: core.NewEconomy(cfg.Economy.Start, cfg.Economy.Capacity),
		Catalog: core.NewCatalog(cfg.Units),
		Bus:     core.NewEventBus(),
		log:     slog.New(slog.DiscardHandler),
	}
	m.spawner = &systems.SpawnSystem{
		Catalog:  m.Catalog,
		Economy:  m.Economy,
		Rand:     rand.New(rand.NewSource(cfg.Seed)),
		EventBus: m.Bus,
		Offsets: systems.SpawnOffsets{
			Forward:       cfg.Spawn.ForwardOffset,
			ForwardJitter: cfg.Spawn.ForwardJitter,
			LateralJitter: cfg.Spawn.LateralJitter,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With("match", m.ID)
	m.spawner.Log = m.log

	timing := systems.AttackTiming{WindUp: cfg.Attack.WindUp, Recovery: cfg.Attack.Recovery}
	m.World.AddSystem(&systems.IncomeSystem{Economy: m.Economy, Rates: cfg.Rates()})
	m.World.AddSystem(m.spawner)
	m.World.AddSystem(&systems.TargetingSystem{EventBus: m.Bus})
	m.World.AddSystem(&systems.MovementSystem{})
	m.World.AddSystem(&systems.AttackSystem{Timing: timing, EventBus: m.Bus})
	m.World.AddSystem(&systems.DamageSystem{EventBus: m.Bus, Log: m.log})
	m.World.AddSystem(&systems.MortalitySystem{EventBus: m.Bus, Log: m.log})
	m.World.AddSystem(&systems.VictorySystem{EventBus: m.Bus, Log: m.log})

	m.PlaceBase(core.Friendly, cfg.Lane.FriendlyBaseX, cfg.Lane.BaseHealth)
	m.PlaceBase(core.Enemy, cfg.Lane.EnemyBaseX, cfg.Lane.BaseHealth)

	m.Bus.OnAny(m.record)
	m.log.Info("match created", "seed", cfg.Seed, "units", m.Catalog.Names())
	return m
}

// PlaceBase creates a faction's base. Calling it twice for one faction breaks
// the one-base invariant and the next base lookup panics.
func (m *Match) PlaceBase(f core.Faction, x, health float64) core.EntityID {
	facing := 1.0
	if f == core.Enemy {
		facing = -1
	}
	return m.World.Spawn(core.Entity{
		Kind:    core.KindBase,
		Faction: f,
		Pos:     core.Position{X: x},
		Facing:  facing,
		Health:  core.HealthFromMax(health),
	})
}

// Advance runs one tick with the given requests. Once the match has ended it
// changes nothing and returns the frozen state.
func (m *Match) Advance(dt float64, reqs []core.SpawnRequest) TickSummary {
	if m.World.State.Phase == core.Ended {
		return TickSummary{Snapshot: m.Snapshot()}
	}
	if dt < 0 {
		dt = 0
	}
	m.World.Pending = append(m.World.Pending[:0], reqs...)
	m.World.Tick(dt)
	m.stats.Duration += dt

	m.events = m.events[:0]
	m.Bus.Dispatch()

	events := make([]core.Event, len(m.events))
	copy(events, m.events)
	return TickSummary{Snapshot: m.Snapshot(), Events: events}
}

// Spawn places a unit immediately, outside the tick pipeline and without
// spending. Used for scripted setups. Its events are recorded in the stats
// and logs right away and never appear in a TickSummary.
func (m *Match) Spawn(req core.SpawnRequest) core.EntityID {
	economy := m.spawner.Economy
	m.spawner.Economy = nil
	id := m.spawner.Spawn(m.World, req)
	m.spawner.Economy = economy

	m.events = m.events[:0]
	m.Bus.Dispatch()
	m.events = m.events[:0]
	return id
}

// State returns the current match state
func (m *Match) State() core.MatchState {
	return m.World.State
}

// Ended reports whether the match is over
func (m *Match) Ended() bool {
	return m.World.State.Phase == core.Ended
}

// Stats returns the running match tally
func (m *Match) Stats() Stats {
	return m.stats
}

func (m *Match) record(e core.Event) {
	m.events = append(m.events, e)
	m.stats.observe(e)
	switch e.Type {
	case core.EvtUnitSpawned:
		m.log.Debug("unit spawned", "id", e.Source, "faction", e.Faction, "archetype", e.Label, "tick", e.Tick)
	case core.EvtStrike:
		m.log.Debug("strike", "id", e.Source, "faction", e.Faction, "damage", e.Amount, "tick", e.Tick)
	case core.EvtDamaged:
		m.log.Debug("damaged", "source", e.Source, "target", e.Target, "damage", e.Amount, "tick", e.Tick)
	}
}

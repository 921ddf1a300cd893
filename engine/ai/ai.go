// Package ai holds scripted spawn-request producers. Targeting itself is
// never decided here.
package ai

import (
	"math"

	"github.com/1siamBot/lanebattle/engine/config"
	"github.com/1siamBot/lanebattle/engine/core"
	"github.com/1siamBot/lanebattle/engine/sim"
)

// Controller buys units for one faction from a fixed rotation
type Controller struct {
	Faction    core.Faction
	Difficulty config.Difficulty
	Catalog    *core.Catalog
	Rotation   []string

	tickTimer     float64
	thinkInterval float64
	next          int
	waveCount     int
}

// NewController creates a controller; an empty rotation cycles the catalog
func NewController(f core.Faction, diff config.Difficulty, cat *core.Catalog, rotation []string) *Controller {
	interval := 2.0
	switch diff {
	case config.DiffEasy:
		interval = 3.0
	case config.DiffHard:
		interval = 1.0
	}
	if len(rotation) == 0 {
		rotation = cat.Names()
	}
	return &Controller{
		Faction:       f,
		Difficulty:    diff,
		Catalog:       cat,
		Rotation:      rotation,
		thinkInterval: interval,
	}
}

// Think is called once per tick with the latest snapshot. It returns the
// spawn requests to queue for the next tick.
func (c *Controller) Think(snap sim.Snapshot, dt float64) []core.SpawnRequest {
	if snap.State.Phase == core.Ended || len(c.Rotation) == 0 {
		return nil
	}
	c.tickTimer += dt
	if c.tickTimer < c.thinkInterval {
		return nil
	}

	name := c.Rotation[c.next%len(c.Rotation)]
	arch, ok := c.Catalog.Lookup(name)
	if !ok {
		c.next++
		return nil
	}
	// Save up for the next unit in the rotation rather than skipping it
	if snap.Amount(c.Faction) < float64(arch.Cost) {
		return nil
	}
	c.tickTimer = 0
	c.next++
	c.waveCount++
	return []core.SpawnRequest{{Faction: c.Faction, Archetype: name}}
}

// Spawned returns how many requests the controller has issued
func (c *Controller) Spawned() int {
	return c.waveCount
}

// ThinkInterval returns the seconds between purchases
func (c *Controller) ThinkInterval() float64 {
	return c.thinkInterval
}

// ThreatAssessment sums the damage of opposing units within radius of x,
// weighted by proximity. Front ends use it for the danger meter; the
// controller does not plan with it.
func ThreatAssessment(snap sim.Snapshot, cat *core.Catalog, f core.Faction, x, radius float64) float64 {
	threat := 0.0
	for _, e := range snap.Entities {
		if e.Faction == f || e.Kind != core.KindUnit {
			continue
		}
		d := math.Abs(e.X - x)
		if d > radius {
			continue
		}
		if arch, ok := cat.Lookup(e.Archetype); ok {
			threat += arch.AttackDamage * (1.0 - d/radius)
		}
	}
	return threat
}

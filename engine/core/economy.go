package core

import (
	"fmt"
	"math"
)

// Resource is a capped counter. The amount never leaves [0, capacity].
type Resource struct {
	amount   float64
	capacity float64
}

// NewResource clamps the starting amount into [0, capacity]
func NewResource(amount, capacity float64) *Resource {
	return &Resource{
		amount:   math.Max(0, math.Min(amount, capacity)),
		capacity: capacity,
	}
}

func (r *Resource) Amount() float64   { return r.amount }
func (r *Resource) Capacity() float64 { return r.capacity }

// Count is the whole amount shown to players
func (r *Resource) Count() int {
	return int(math.Floor(math.Max(0, r.amount)))
}

// AddUntilFull adds until the capacity is reached and returns the rest
func (r *Resource) AddUntilFull(amount float64) float64 {
	total := r.amount + amount
	if total >= r.capacity {
		r.amount = r.capacity
		return total - r.capacity
	}
	r.amount = total
	return 0
}

// TryRemove subtracts cost if enough is available. Otherwise nothing changes.
func (r *Resource) TryRemove(cost int) bool {
	c := float64(cost)
	if r.amount >= c {
		r.amount -= c
		return true
	}
	return false
}

func (r *Resource) String() string {
	return fmt.Sprintf("%d / %d", r.Count(), int(math.Floor(math.Max(0, r.capacity))))
}

// Economy holds one resource per faction
type Economy struct {
	purses [2]*Resource
	wasted [2]float64
}

// NewEconomy gives both factions the same capacity and starting amount
func NewEconomy(start, capacity float64) *Economy {
	return &Economy{
		purses: [2]*Resource{NewResource(start, capacity), NewResource(start, capacity)},
	}
}

// Accrue adds rate*dt to the faction's purse and returns the clamped-off overflow
func (e *Economy) Accrue(f Faction, rate, dt float64) float64 {
	r := e.purse(f)
	if r == nil {
		return 0
	}
	over := r.AddUntilFull(rate * dt)
	e.wasted[f] += over
	return over
}

// TrySpend removes cost if the faction can afford it
func (e *Economy) TrySpend(f Faction, cost int) bool {
	r := e.purse(f)
	if r == nil {
		return false
	}
	return r.TryRemove(cost)
}

// CanAfford reports whether TrySpend would succeed, without spending
func (e *Economy) CanAfford(f Faction, cost int) bool {
	r := e.purse(f)
	return r != nil && r.Amount() >= float64(cost)
}

func (e *Economy) Amount(f Faction) float64 {
	if r := e.purse(f); r != nil {
		return r.Amount()
	}
	return 0
}

func (e *Economy) Capacity(f Faction) float64 {
	if r := e.purse(f); r != nil {
		return r.Capacity()
	}
	return 0
}

// Wasted returns everything accrual discarded at capacity so far
func (e *Economy) Wasted(f Faction) float64 {
	if int(f) >= len(e.wasted) {
		return 0
	}
	return e.wasted[f]
}

// Purse exposes a faction's resource for display
func (e *Economy) Purse(f Faction) *Resource {
	return e.purse(f)
}

func (e *Economy) purse(f Faction) *Resource {
	if int(f) >= len(e.purses) {
		return nil
	}
	return e.purses[f]
}

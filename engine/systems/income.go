package systems

import (
	"github.com/1siamBot/lanebattle/engine/core"
)

// IncomeSystem accrues each faction's resource once per tick
type IncomeSystem struct {
	Economy *core.Economy
	Rates   [2]float64 // per second, indexed by faction
}

func (s *IncomeSystem) Priority() int { return 0 }

func (s *IncomeSystem) Update(_ *core.World, dt float64) {
	for _, f := range core.Factions {
		s.Economy.Accrue(f, s.Rates[f], dt)
	}
}

package systems

import (
	"github.com/1siamBot/lanebattle/engine/core"
)

// MovementSystem walks idle units along the lane. Attacking units stay rooted.
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 30 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	for _, u := range w.Units() {
		if u.Attacking() || u.Health.IsDead() || u.Archetype == nil {
			continue
		}
		u.Pos.X += u.Facing * u.Archetype.MoveSpeed * dt
	}
}

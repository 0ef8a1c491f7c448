package system

import (
	"time"

	"github.com/kersk/ballista/internal/core/event"
	coresys "github.com/kersk/ballista/internal/core/system"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/world"
)

// FlightSystem integrates projectile motion, counts down TTLs, and detects
// arena-bounds impacts. Impacted or expired projectiles go straight back to
// the pool; their events are dispatched next tick. Phase 2 (Update).
type FlightSystem struct {
	state       *world.State
	projectiles *world.Projectiles
	arena       data.Arena
	bus         *event.Bus
}

func NewFlightSystem(state *world.State, projectiles *world.Projectiles, arena data.Arena, bus *event.Bus) *FlightSystem {
	return &FlightSystem{
		state:       state,
		projectiles: projectiles,
		arena:       arena,
		bus:         bus,
	}
}

func (s *FlightSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *FlightSystem) Update(_ time.Duration) {
	s.state.Each(func(p *world.Projectile) {
		m := &p.Motion
		m.X += m.VX
		m.Y += m.VY
		p.Trail.Record(m.X, m.Y)
		m.TTL--

		switch {
		case !s.arena.Contains(m.X, m.Y):
			event.Emit(s.bus, event.ProjectileImpacted{
				Handle:   p.Handle(),
				Template: p.Template().Key,
				X:        m.X,
				Y:        m.Y,
				Damage:   p.Payload.Damage,
			})
			s.projectiles.Release(p.Handle(), p)
		case m.TTL <= 0:
			event.Emit(s.bus, event.ProjectileExpired{
				Handle:   p.Handle(),
				Template: p.Template().Key,
			})
			s.projectiles.Release(p.Handle(), p)
		}
	})
}

package event

import "github.com/kersk/ballista/internal/core/handle"

// ProjectileFired is emitted when an emitter puts a projectile in flight.
type ProjectileFired struct {
	Handle   handle.Handle
	Template string
}

// ProjectileImpacted is emitted when a projectile crosses the arena bounds.
type ProjectileImpacted struct {
	Handle   handle.Handle
	Template string
	X, Y     float64
	Damage   int
}

// ProjectileExpired is emitted when a projectile's TTL runs out in flight.
type ProjectileExpired struct {
	Handle   handle.Handle
	Template string
}

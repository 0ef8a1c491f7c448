package world

import (
	"github.com/kersk/ballista/internal/core/handle"
)

// State tracks projectiles currently in flight. Accessed only from the
// simulation goroutine — no locks needed.
type State struct {
	alloc    *handle.Allocator
	inFlight map[handle.Handle]*Projectile
}

func NewState() *State {
	return &State{
		alloc:    handle.NewAllocator(),
		inFlight: make(map[handle.Handle]*Projectile, 256),
	}
}

// Allocate issues a permanent identity for a new projectile instance.
func (s *State) Allocate() handle.Handle {
	return s.alloc.Create()
}

// Alive reports whether h refers to an instance this state issued and has
// not retired. Under pool ownership instances are never retired, so this
// guards against handles fabricated or torn down elsewhere.
func (s *State) Alive(h handle.Handle) bool {
	return s.alloc.Alive(h)
}

// Get returns the in-flight projectile for h, or nil.
func (s *State) Get(h handle.Handle) *Projectile {
	return s.inFlight[h]
}

// InFlight returns the number of projectiles currently in flight.
func (s *State) InFlight() int {
	return len(s.inFlight)
}

// Track registers a projectile as in flight.
func (s *State) Track(p *Projectile) {
	s.inFlight[p.Handle()] = p
}

// Untrack removes a projectile from the in-flight registry.
func (s *State) Untrack(p *Projectile) {
	delete(s.inFlight, p.Handle())
}

// Each visits every in-flight projectile. Untracking the visited projectile
// from inside fn is allowed; tracking new ones is not.
func (s *State) Each(fn func(*Projectile)) {
	for _, p := range s.inFlight {
		fn(p)
	}
}

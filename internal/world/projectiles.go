package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kersk/ballista/internal/core/handle"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/pool"
)

// PrewarmCapacity is the idle-queue target filled at startup. Fixed at build
// time on purpose: runtime-editable capacity invites untracked drift between
// environments.
const PrewarmCapacity = 64

// BaseTemplateKey is the fixed template every pooled instance is built from.
// Emitters restamp per-shot parameters via Arm; the backing instance category
// stays uniform.
const BaseTemplateKey = "base"

// NewFactory returns the instantiation collaborator for the projectile pool:
// resolve the fixed base template, allocate an identity, build an instance.
// Resolution failure is a configuration error and surfaces as fatal at
// prewarm or on the exhaustion path.
func NewFactory(state *State, src *data.TemplateSource) pool.Factory[*Projectile] {
	return func() (*Projectile, error) {
		tmpl, err := src.Resolve(BaseTemplateKey)
		if err != nil {
			return nil, fmt.Errorf("resolve base projectile template: %w", err)
		}
		return NewProjectile(state.Allocate(), tmpl), nil
	}
}

// Projectiles is the surface game logic talks to: one shared pool per
// category, owned here and injected into whoever needs it. It keeps the
// in-flight registry and the pool in lockstep.
type Projectiles struct {
	pool  *pool.Pool[*Projectile]
	state *State
	log   *zap.Logger
}

func NewProjectiles(p *pool.Pool[*Projectile], state *State, log *zap.Logger) *Projectiles {
	return &Projectiles{pool: p, state: state, log: log.Named("projectiles")}
}

// AcquireDefault obtains a projectile and fires its on-acquire notification
// as one step from the caller's perspective. The returned projectile is
// active, tracked as in flight, and absent from the idle queue.
func (ps *Projectiles) AcquireDefault() (*Projectile, error) {
	p, err := ps.pool.Acquire()
	if err != nil {
		return nil, err
	}
	ps.state.Track(p)
	return p, nil
}

// Release takes a handle plus the already-resolved projectile to skip a
// registry lookup on the hot path. The pair must match and the handle must
// be live; mismatches are contract violations checked in debug builds.
func (ps *Projectiles) Release(h handle.Handle, p *Projectile) {
	if pool.DebugChecks {
		if p == nil {
			panic("projectiles: Release with nil projectile")
		}
		if p.Handle() != h {
			panic("projectiles: handle does not match projectile")
		}
		if !ps.state.Alive(h) {
			panic("projectiles: Release of dead handle")
		}
	}
	ps.state.Untrack(p)
	ps.pool.Release(p)
}

// Count returns the idle-queue length.
func (ps *Projectiles) Count() int {
	return ps.pool.Count()
}

// Exhaustions returns the pool's on-demand instantiation count.
func (ps *Projectiles) Exhaustions() uint64 {
	return ps.pool.Exhaustions()
}

package world

import (
	"github.com/kersk/ballista/internal/core/handle"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/pool"
)

// Projectile is the single recyclable entity category this process manages.
// An instance is created once (prewarm or exhaustion) and then cycles between
// in-flight and idle forever; it is never destroyed during normal operation.
// Accessed only from the simulation goroutine.
type Projectile struct {
	h      handle.Handle
	active bool
	group  *pool.Group

	// tmpl is the flavor stamped by the emitter that fired this instance.
	// Opaque to the pool; overwritten on every Arm.
	tmpl *data.ProjectileTemplate

	Motion  Motion
	Trail   Trail
	Payload Payload

	// participants is the fixed, construction-time fan-out list for
	// lifecycle notifications. Direct calls only.
	participants [3]pool.Participant
}

func NewProjectile(h handle.Handle, tmpl *data.ProjectileTemplate) *Projectile {
	p := &Projectile{h: h, tmpl: tmpl}
	p.participants = [3]pool.Participant{&p.Motion, &p.Trail, &p.Payload}
	return p
}

func (p *Projectile) Handle() handle.Handle              { return p.h }
func (p *Projectile) Active() bool                       { return p.active }
func (p *Projectile) Group() *pool.Group                 { return p.group }
func (p *Projectile) Template() *data.ProjectileTemplate { return p.tmpl }

// Arm stamps the firing parameters onto a freshly acquired projectile.
func (p *Projectile) Arm(tmpl *data.ProjectileTemplate, x, y, vx, vy float64, damage int) {
	p.tmpl = tmpl
	p.Motion.X, p.Motion.Y = x, y
	p.Motion.VX, p.Motion.VY = vx, vy
	p.Motion.TTL = tmpl.TTLTicks
	p.Payload.Damage = damage
	p.Payload.Pierce = tmpl.Pierce
	p.Trail.Emitting = tmpl.Trail
}

// ── pool.Poolable ─────────────────────────────────────────────────

func (p *Projectile) SetActive(active bool) { p.active = active }

func (p *Projectile) SetGroup(g *pool.Group) { p.group = g }

func (p *Projectile) NotifyAcquired() {
	for _, pc := range p.participants {
		pc.OnAcquire()
	}
}

func (p *Projectile) NotifyReleased() {
	for _, pc := range p.participants {
		pc.OnRelease()
	}
}

// Package pool implements a fixed-category object pool for short-lived
// simulation entities. Entities are never destroyed during normal operation;
// they cycle between an active (in-flight) state and an idle FIFO queue.
// Single-goroutine access only (simulation loop) — no locks.
package pool

import (
	"fmt"

	"github.com/gammazero/deque"
	"go.uber.org/zap"
)

// Participant is a behavior attached to a pooled entity that wants lifecycle
// callbacks. OnAcquire runs right after the entity leaves the pool, OnRelease
// right before it is deactivated and returned. Both are direct calls over a
// list fixed at entity construction — no reflection, no name-keyed dispatch.
// A handler must not call back into the pool that owns its entity.
type Participant interface {
	OnAcquire()
	OnRelease()
}

// Poolable is the capability contract every pool-managed entity exposes:
// an activation toggle, a grouping reparent hook, and the two notification
// fan-outs over its participant list.
type Poolable interface {
	SetActive(active bool)
	SetGroup(g *Group)
	NotifyAcquired()
	NotifyReleased()
}

// Factory instantiates a fresh entity from the category's fixed template.
// Errors are configuration errors (template unresolvable) and are fatal to
// the caller; the factory is never retried.
type Factory[T Poolable] func() (T, error)

// Pool owns the idle queue and grouping context for one entity category.
type Pool[T Poolable] struct {
	idle      *deque.Deque[T]
	group     *Group
	factory   Factory[T]
	log       *zap.Logger
	prewarmed bool

	// exhaustions counts on-demand instantiations after prewarm ran dry.
	// Not an error — the designed-for degraded path.
	exhaustions uint64

	// owned tracks every entity this pool ever created. Debug builds only;
	// nil when checks are compiled out.
	owned map[any]struct{}
}

// New creates an empty pool. Prewarm must run before any Acquire/Release.
func New[T Poolable](name string, factory Factory[T], log *zap.Logger) *Pool[T] {
	p := &Pool[T]{
		idle:    deque.New[T](),
		group:   NewGroup(name + "/idle"),
		factory: factory,
		log:     log.Named("pool." + name),
	}
	if debugChecks {
		p.owned = make(map[any]struct{}, 128)
	}
	return p
}

// Prewarm instantiates entities from the template until the idle queue holds
// capacity items. Runs exactly once, before any traffic.
func (p *Pool[T]) Prewarm(capacity int) error {
	if debugChecks && p.prewarmed {
		panic("pool: Prewarm called twice")
	}
	for i := 0; i < capacity; i++ {
		item, err := p.factory()
		if err != nil {
			return fmt.Errorf("prewarm %s (%d/%d): %w", p.group.Name(), i, capacity, err)
		}
		if debugChecks {
			p.owned[item] = struct{}{}
		}
		p.recycle(item)
	}
	p.prewarmed = true
	p.log.Debug("prewarmed", zap.Int("capacity", capacity))
	return nil
}

// Acquire removes the head of the idle queue, detaches it from the grouping
// context, activates it, and fires the on-acquire notification. When the
// queue is empty it instantiates a fresh entity directly in the active state;
// the new entity joins the pooled population on its first Release.
func (p *Pool[T]) Acquire() (T, error) {
	if debugChecks && !p.prewarmed {
		panic("pool: Acquire before Prewarm")
	}
	if p.idle.Len() > 0 {
		item := p.idle.PopFront()
		p.group.Remove(item)
		item.SetGroup(nil)
		item.SetActive(true)
		item.NotifyAcquired()
		return item, nil
	}

	// Exhaustion path. Deliberately does not cache the resolved template;
	// the factory's own resolver caches.
	item, err := p.factory()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("instantiate on exhausted pool: %w", err)
	}
	p.exhaustions++
	if debugChecks {
		p.owned[item] = struct{}{}
	}
	p.log.Debug("pool exhausted, instantiated", zap.Uint64("exhaustions", p.exhaustions))
	item.SetActive(true)
	item.NotifyAcquired()
	return item, nil
}

// Release fires the on-release notification first (the entity resets its
// state while still active), then deactivates the entity, reparents it under
// the grouping context, and appends it to the idle queue tail.
//
// Releasing an entity not owned by this pool, or releasing the same entity
// twice, is a caller contract violation: panics in debug builds, undefined
// in -tags poolrelease builds.
func (p *Pool[T]) Release(item T) {
	if debugChecks {
		if !p.prewarmed {
			panic("pool: Release before Prewarm")
		}
		if _, ok := p.owned[item]; !ok {
			panic("pool: Release of entity not owned by this pool")
		}
		if p.group.Contains(item) {
			panic("pool: double Release")
		}
	}
	item.NotifyReleased()
	p.recycle(item)
}

// recycle is the shared pooling tail of Prewarm and Release.
func (p *Pool[T]) recycle(item T) {
	item.SetActive(false)
	item.SetGroup(p.group)
	p.group.Add(item)
	p.idle.PushBack(item)
}

// Count returns the idle-queue length. Callers must not assume anything about
// the underlying container beyond this count.
func (p *Pool[T]) Count() int {
	return p.idle.Len()
}

// Exhaustions returns how many times Acquire found the queue empty and
// instantiated on demand.
func (p *Pool[T]) Exhaustions() uint64 {
	return p.exhaustions
}

// Group returns the organizational grouping context for idle entities. Debug
// and inspection only; it has no simulation effect.
func (p *Pool[T]) Group() *Group {
	return p.group
}

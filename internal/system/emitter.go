package system

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/kersk/ballista/internal/core/event"
	coresys "github.com/kersk/ballista/internal/core/system"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/world"
)

// EmitterSystem fires projectiles from the scenario's emitters. Phase 1
// (Spawn). All templates are resolved once at construction so a bad scenario
// fails at startup, not mid-run.
type EmitterSystem struct {
	projectiles *world.Projectiles
	bus         *event.Bus
	rng         *rand.Rand
	log         *zap.Logger
	emitters    []emitterState
}

type emitterState struct {
	cfg      data.Emitter
	tmpl     *data.ProjectileTemplate
	cooldown int
}

func NewEmitterSystem(projectiles *world.Projectiles, sc *data.Scenario, src *data.TemplateSource, bus *event.Bus, rng *rand.Rand, log *zap.Logger) (*EmitterSystem, error) {
	s := &EmitterSystem{
		projectiles: projectiles,
		bus:         bus,
		rng:         rng,
		log:         log.Named("emitter"),
		emitters:    make([]emitterState, 0, len(sc.Emitters)),
	}
	for _, e := range sc.Emitters {
		tmpl, err := src.Resolve(e.Template)
		if err != nil {
			return nil, fmt.Errorf("emitter template: %w", err)
		}
		s.emitters = append(s.emitters, emitterState{cfg: e, tmpl: tmpl})
	}
	return s, nil
}

func (s *EmitterSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *EmitterSystem) Update(_ time.Duration) {
	for i := range s.emitters {
		e := &s.emitters[i]
		e.cooldown--
		if e.cooldown > 0 {
			continue
		}
		e.cooldown = e.cfg.IntervalTicks
		for n := 0; n < e.cfg.Burst; n++ {
			s.fire(e)
		}
	}
}

func (s *EmitterSystem) fire(e *emitterState) {
	p, err := s.projectiles.AcquireDefault()
	if err != nil {
		// Template resolution failed mid-run; prewarm validated the base
		// template, so this only happens if configuration changed under us.
		s.log.Error("acquire projectile", zap.Error(err))
		return
	}

	heading := e.cfg.Heading
	if e.cfg.JitterDeg > 0 {
		heading += (s.rng.Float64()*2 - 1) * e.cfg.JitterDeg
	}
	rad := heading * math.Pi / 180
	vx := math.Cos(rad) * e.tmpl.Speed
	vy := math.Sin(rad) * e.tmpl.Speed

	damage := e.tmpl.DamageMin
	if spread := e.tmpl.DamageMax - e.tmpl.DamageMin; spread > 0 {
		damage += s.rng.Intn(spread + 1)
	}

	p.Arm(e.tmpl, e.cfg.X, e.cfg.Y, vx, vy, damage)
	event.Emit(s.bus, event.ProjectileFired{
		Handle:   p.Handle(),
		Template: e.tmpl.Key,
	})
}

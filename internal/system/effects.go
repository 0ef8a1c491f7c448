package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/kersk/ballista/internal/core/event"
	coresys "github.com/kersk/ballista/internal/core/system"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/metrics"
	"github.com/kersk/ballista/internal/scripting"
)

// EffectsSystem delivers last tick's projectile events: records counters and
// runs scripted impact hooks. Phase 0 (Dispatch) — the swap happens at tick
// start, before any system emits, so an event emitted in tick N is always
// delivered in tick N+1.
type EffectsSystem struct {
	bus *event.Bus
}

func NewEffectsSystem(bus *event.Bus, engine *scripting.Engine, src *data.TemplateSource, log *zap.Logger) *EffectsSystem {
	log = log.Named("effects")

	event.Subscribe(bus, func(ev event.ProjectileFired) {
		metrics.FiredTotal.WithLabelValues(ev.Template).Inc()
	})

	event.Subscribe(bus, func(ev event.ProjectileImpacted) {
		metrics.ImpactsTotal.WithLabelValues(ev.Template).Inc()
		tmpl, err := src.Resolve(ev.Template)
		if err != nil {
			log.Warn("impact template lookup", zap.String("template", ev.Template), zap.Error(err))
			return
		}
		if tmpl.ImpactHook == "" {
			return
		}
		if err := engine.CallImpact(tmpl.ImpactHook, ev.Template, ev.X, ev.Y, ev.Damage); err != nil {
			log.Warn("impact hook failed",
				zap.String("hook", tmpl.ImpactHook),
				zap.String("template", ev.Template),
				zap.Error(err))
		}
	})

	event.Subscribe(bus, func(ev event.ProjectileExpired) {
		metrics.ExpiredTotal.WithLabelValues(ev.Template).Inc()
	})

	return &EffectsSystem{bus: bus}
}

func (s *EffectsSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EffectsSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

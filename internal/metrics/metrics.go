// Package metrics exposes Prometheus collectors for the projectile pool and
// the simulation around it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ballista",
		Name:      "projectiles_fired_total",
		Help:      "Projectiles put in flight, by template.",
	}, []string{"template"})

	ImpactsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ballista",
		Name:      "projectiles_impacts_total",
		Help:      "Projectiles that hit the arena bounds, by template.",
	}, []string{"template"})

	ExpiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ballista",
		Name:      "projectiles_expired_total",
		Help:      "Projectiles whose TTL ran out in flight, by template.",
	}, []string{"template"})

	PoolExhaustionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ballista",
		Name:      "pool_exhaustions_total",
		Help:      "Acquisitions that found the idle queue empty and instantiated on demand.",
	})

	PoolIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ballista",
		Name:      "pool_idle",
		Help:      "Current idle-queue length.",
	})

	InFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ballista",
		Name:      "projectiles_in_flight",
		Help:      "Projectiles currently in flight.",
	})
)

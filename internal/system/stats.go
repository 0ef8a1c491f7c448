package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/kersk/ballista/internal/core/system"
	"github.com/kersk/ballista/internal/metrics"
	"github.com/kersk/ballista/internal/world"
)

// statsLogEvery is how many ticks pass between summary log lines.
const statsLogEvery = 100

// StatsSystem refreshes pool gauges each tick and logs a periodic summary.
// Phase 3 (Output).
type StatsSystem struct {
	state       *world.State
	projectiles *world.Projectiles
	log         *zap.Logger

	ticks           uint64
	lastExhaustions uint64
}

func NewStatsSystem(state *world.State, projectiles *world.Projectiles, log *zap.Logger) *StatsSystem {
	return &StatsSystem{
		state:       state,
		projectiles: projectiles,
		log:         log.Named("stats"),
	}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *StatsSystem) Update(_ time.Duration) {
	idle := s.projectiles.Count()
	inFlight := s.state.InFlight()
	metrics.PoolIdle.Set(float64(idle))
	metrics.InFlight.Set(float64(inFlight))

	if ex := s.projectiles.Exhaustions(); ex > s.lastExhaustions {
		metrics.PoolExhaustionsTotal.Add(float64(ex - s.lastExhaustions))
		s.lastExhaustions = ex
	}

	s.ticks++
	if s.ticks%statsLogEvery == 0 {
		s.log.Info("pool",
			zap.Int("idle", idle),
			zap.Int("in_flight", inFlight),
			zap.Uint64("exhaustions", s.lastExhaustions))
	}
}

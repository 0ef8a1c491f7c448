package system

import "time"

// Phase defines execution ordering within a single simulation tick.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver last tick's events, scripted effects
	PhaseSpawn                 // 1: emitters fire projectiles
	PhaseUpdate                // 2: flight integration, TTL, impacts
	PhaseOutput                // 3: metrics + periodic stats
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

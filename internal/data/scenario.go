package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Emitter defines one projectile source in the arena: where it sits, what it
// fires, and how often.
type Emitter struct {
	Template      string  `yaml:"template"`
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Heading       float64 `yaml:"heading"` // degrees, 0 = +X, counterclockwise
	IntervalTicks int     `yaml:"interval_ticks"`
	Burst         int     `yaml:"burst"`      // projectiles per firing
	JitterDeg     float64 `yaml:"jitter_deg"` // random spread around heading
}

// Arena is the simulation bounds; a projectile crossing them impacts.
type Arena struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

func (a Arena) Contains(x, y float64) bool {
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// Scenario is the load description for a simulation run.
type Scenario struct {
	Arena    Arena     `yaml:"arena"`
	Emitters []Emitter `yaml:"emitters"`
}

// LoadScenario loads an arena scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Arena.MaxX <= sc.Arena.MinX || sc.Arena.MaxY <= sc.Arena.MinY {
		return nil, fmt.Errorf("scenario: degenerate arena bounds")
	}
	for i := range sc.Emitters {
		e := &sc.Emitters[i]
		if e.Template == "" {
			return nil, fmt.Errorf("scenario: emitter %d has no template", i)
		}
		if e.IntervalTicks <= 0 {
			e.IntervalTicks = 1
		}
		if e.Burst <= 0 {
			e.Burst = 1
		}
	}
	return &sc, nil
}

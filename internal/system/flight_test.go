package system_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kersk/ballista/internal/core/event"
	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/pool"
	"github.com/kersk/ballista/internal/system"
	"github.com/kersk/ballista/internal/world"
)

const testTemplates = `
projectiles:
  - key: base
    speed: 1.0
    ttl_ticks: 5
    damage_min: 2
    damage_max: 2
  - key: arrow
    extends: base
    speed: 2.0
    ttl_ticks: 100
`

type fixture struct {
	state       *world.State
	projectiles *world.Projectiles
	src         *data.TemplateSource
	bus         *event.Bus
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projectile_list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testTemplates), 0o644))
	table, err := data.LoadTemplateTable(path)
	require.NoError(t, err)
	src, err := data.NewTemplateSource(table)
	require.NoError(t, err)
	t.Cleanup(src.Close)

	state := world.NewState()
	p := pool.New("projectiles", world.NewFactory(state, src), zap.NewNop())
	require.NoError(t, p.Prewarm(capacity))
	return &fixture{
		state:       state,
		projectiles: world.NewProjectiles(p, state, zap.NewNop()),
		src:         src,
		bus:         event.NewBus(),
	}
}

func TestFlightImpactReleasesToPool(t *testing.T) {
	f := newFixture(t, 2)
	arena := data.Arena{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10}
	flight := system.NewFlightSystem(f.state, f.projectiles, arena, f.bus)

	var impacts []event.ProjectileImpacted
	event.Subscribe(f.bus, func(ev event.ProjectileImpacted) {
		impacts = append(impacts, ev)
	})

	tmpl, err := f.src.Resolve("arrow")
	require.NoError(t, err)
	p, err := f.projectiles.AcquireDefault()
	require.NoError(t, err)
	p.Arm(tmpl, 9, 0, 2, 0, 5) // one tick from the east wall

	flight.Update(0)

	assert.Equal(t, 0, f.state.InFlight())
	assert.Equal(t, 2, f.projectiles.Count())
	assert.False(t, p.Active())

	f.bus.SwapBuffers()
	f.bus.DispatchAll()
	require.Len(t, impacts, 1)
	assert.Equal(t, p.Handle(), impacts[0].Handle)
	assert.Equal(t, "arrow", impacts[0].Template)
	assert.Equal(t, 5, impacts[0].Damage)
	assert.Equal(t, 11.0, impacts[0].X)
}

func TestFlightTTLExpiry(t *testing.T) {
	f := newFixture(t, 1)
	arena := data.Arena{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000}
	flight := system.NewFlightSystem(f.state, f.projectiles, arena, f.bus)

	var expired []event.ProjectileExpired
	event.Subscribe(f.bus, func(ev event.ProjectileExpired) {
		expired = append(expired, ev)
	})

	tmpl, err := f.src.Resolve("base")
	require.NoError(t, err)
	p, err := f.projectiles.AcquireDefault()
	require.NoError(t, err)
	p.Arm(tmpl, 0, 0, 1, 0, 2) // ttl_ticks: 5, never reaches a wall

	for i := 0; i < 5; i++ {
		assert.Equal(t, 1, f.state.InFlight())
		flight.Update(0)
	}

	assert.Equal(t, 0, f.state.InFlight())
	assert.Equal(t, 1, f.projectiles.Count())

	f.bus.SwapBuffers()
	f.bus.DispatchAll()
	require.Len(t, expired, 1)
	assert.Equal(t, "base", expired[0].Template)
}

func TestEmitterFiresOnInterval(t *testing.T) {
	f := newFixture(t, 8)
	sc := &data.Scenario{
		Arena: data.Arena{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Emitters: []data.Emitter{
			{Template: "arrow", X: -9, Heading: 0, IntervalTicks: 2, Burst: 2},
		},
	}
	rng := rand.New(rand.NewSource(1))
	emitter, err := system.NewEmitterSystem(f.projectiles, sc, f.src, f.bus, rng, zap.NewNop())
	require.NoError(t, err)

	// First tick fires (cooldown starts expired), second is quiet.
	emitter.Update(0)
	assert.Equal(t, 2, f.state.InFlight())
	emitter.Update(0)
	assert.Equal(t, 2, f.state.InFlight())
	emitter.Update(0)
	assert.Equal(t, 4, f.state.InFlight())

	f.state.Each(func(p *world.Projectile) {
		assert.True(t, p.Active())
		assert.Equal(t, "arrow", p.Template().Key)
		assert.Equal(t, -9.0, p.Motion.X)
		assert.Equal(t, 2.0, p.Motion.VX, "heading 0 moves along +X at template speed")
		assert.Equal(t, 100, p.Motion.TTL)
	})
}

func TestEmitterUnknownTemplateFailsAtConstruction(t *testing.T) {
	f := newFixture(t, 0)
	sc := &data.Scenario{
		Arena:    data.Arena{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Emitters: []data.Emitter{{Template: "ghost", IntervalTicks: 1, Burst: 1}},
	}
	_, err := system.NewEmitterSystem(f.projectiles, sc, f.src, f.bus, rand.New(rand.NewSource(1)), zap.NewNop())
	require.Error(t, err)
}

func TestSpawnFlightRecycleLoop(t *testing.T) {
	f := newFixture(t, 4)
	sc := &data.Scenario{
		Arena: data.Arena{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Emitters: []data.Emitter{
			{Template: "arrow", X: -9, Heading: 0, IntervalTicks: 3, Burst: 1},
		},
	}
	rng := rand.New(rand.NewSource(1))
	emitter, err := system.NewEmitterSystem(f.projectiles, sc, f.src, f.bus, rng, zap.NewNop())
	require.NoError(t, err)
	flight := system.NewFlightSystem(f.state, f.projectiles, sc.Arena, f.bus)

	for tick := 0; tick < 200; tick++ {
		emitter.Update(0)
		flight.Update(0)
		f.bus.SwapBuffers()
		f.bus.DispatchAll()
		// Pool invariant: idle + in flight never drops below prewarm.
		require.GreaterOrEqual(t, f.projectiles.Count()+f.state.InFlight(), 4)
	}

	// Arena crossing takes ~10 ticks at speed 2, firing every 3 ticks, so a
	// handful of instances cycle; the prewarmed set must absorb the load.
	assert.Equal(t, uint64(0), f.projectiles.Exhaustions())
}

package world_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kersk/ballista/internal/data"
	"github.com/kersk/ballista/internal/pool"
	"github.com/kersk/ballista/internal/world"
)

const testTemplates = `
projectiles:
  - key: base
    gfx_id: 1
    speed: 2.0
    ttl_ticks: 50
    damage_min: 1
    damage_max: 3
  - key: arrow
    extends: base
    speed: 3.0
    trail: true
`

func newTestSource(t *testing.T) *data.TemplateSource {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projectile_list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testTemplates), 0o644))
	table, err := data.LoadTemplateTable(path)
	require.NoError(t, err)
	src, err := data.NewTemplateSource(table)
	require.NoError(t, err)
	t.Cleanup(src.Close)
	return src
}

func newTestProjectiles(t *testing.T, capacity int) (*world.Projectiles, *world.State) {
	t.Helper()
	state := world.NewState()
	src := newTestSource(t)
	p := pool.New("projectiles", world.NewFactory(state, src), zap.NewNop())
	require.NoError(t, p.Prewarm(capacity))
	return world.NewProjectiles(p, state, zap.NewNop()), state
}

func TestReleaseResetsComponents(t *testing.T) {
	ps, _ := newTestProjectiles(t, 1)
	src := newTestSource(t)
	tmpl, err := src.Resolve("arrow")
	require.NoError(t, err)

	p, err := ps.AcquireDefault()
	require.NoError(t, err)
	p.Arm(tmpl, 0, 0, 3, 0, 7)
	p.Trail.Record(3, 0)
	p.Trail.Record(6, 0)
	p.Payload.Hits = 2

	require.Len(t, p.Trail.Points, 2)
	trailCap := cap(p.Trail.Points)

	ps.Release(p.Handle(), p)

	assert.False(t, p.Active())
	assert.Equal(t, world.Motion{}, p.Motion)
	assert.Equal(t, world.Payload{}, p.Payload)
	assert.Empty(t, p.Trail.Points)
	assert.False(t, p.Trail.Emitting)
	// Backing storage survives the recycle.
	assert.Equal(t, trailCap, cap(p.Trail.Points))
}

func TestAcquireDefaultTracksInFlight(t *testing.T) {
	ps, state := newTestProjectiles(t, 2)

	p, err := ps.AcquireDefault()
	require.NoError(t, err)
	assert.Equal(t, 1, state.InFlight())
	assert.Same(t, p, state.Get(p.Handle()))
	assert.True(t, p.Active())
	assert.Equal(t, 1, ps.Count())

	ps.Release(p.Handle(), p)
	assert.Equal(t, 0, state.InFlight())
	assert.Nil(t, state.Get(p.Handle()))
	assert.Equal(t, 2, ps.Count())
}

func TestReleaseMismatchedHandlePanics(t *testing.T) {
	if !pool.DebugChecks {
		t.Skip("contract checks compiled out")
	}
	ps, _ := newTestProjectiles(t, 2)

	a, err := ps.AcquireDefault()
	require.NoError(t, err)
	b, err := ps.AcquireDefault()
	require.NoError(t, err)

	require.Panics(t, func() { ps.Release(a.Handle(), b) })
}

func TestArmStampsTemplateParameters(t *testing.T) {
	src := newTestSource(t)
	tmpl, err := src.Resolve("arrow")
	require.NoError(t, err)

	state := world.NewState()
	p := world.NewProjectile(state.Allocate(), tmpl)
	p.Arm(tmpl, 1, 2, 0.5, -0.5, 9)

	assert.Equal(t, 1.0, p.Motion.X)
	assert.Equal(t, 2.0, p.Motion.Y)
	assert.Equal(t, 0.5, p.Motion.VX)
	assert.Equal(t, -0.5, p.Motion.VY)
	assert.Equal(t, tmpl.TTLTicks, p.Motion.TTL)
	assert.Equal(t, 9, p.Payload.Damage)
	assert.True(t, p.Trail.Emitting)
	assert.Same(t, tmpl, p.Template())
}

func TestHandlesAreUniqueAndLive(t *testing.T) {
	ps, state := newTestProjectiles(t, 3)

	seen := make(map[uint64]bool)
	for i := 0; i < 3; i++ {
		p, err := ps.AcquireDefault()
		require.NoError(t, err)
		h := p.Handle()
		assert.False(t, seen[uint64(h)], "handle reused across instances")
		seen[uint64(h)] = true
		assert.True(t, state.Alive(h))
	}
}

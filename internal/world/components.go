package world

// Motion carries the kinematic state of a projectile in flight.
// Units are arena units per tick; TTL counts remaining ticks.
type Motion struct {
	X, Y   float64
	VX, VY float64
	TTL    int
}

func (m *Motion) OnAcquire() {
	// The emitter stamps fresh kinematics via Arm right after acquire;
	// nothing to prepare here.
}

func (m *Motion) OnRelease() {
	*m = Motion{}
}

// Trail records recent positions for render/debug output. The backing slice
// is kept across recycles so steady-state flight allocates nothing.
type Trail struct {
	Emitting bool
	Points   []TrailPoint
}

type TrailPoint struct {
	X, Y float64
}

func (t *Trail) Record(x, y float64) {
	if !t.Emitting {
		return
	}
	t.Points = append(t.Points, TrailPoint{X: x, Y: y})
}

func (t *Trail) OnAcquire() {
	t.Points = t.Points[:0]
}

func (t *Trail) OnRelease() {
	t.Emitting = false
	t.Points = t.Points[:0]
}

// Payload is the damage-carrying state of a projectile.
type Payload struct {
	Damage int
	Pierce bool
	Hits   int
}

func (p *Payload) OnAcquire() {
	p.Hits = 0
}

func (p *Payload) OnRelease() {
	*p = Payload{}
}

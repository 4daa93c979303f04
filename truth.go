package photic

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Truth propagates the exact state of a body moving along the vertical axis.
type Truth struct {
	Δt    float64
	state *mat.VecDense // altitude, velocity, acceleration
	k     int
}

// NewTruth returns a ground truth starting at the provided altitude and
// velocity.
func NewTruth(Δt, altitude, velocity float64) *Truth {
	return &Truth{Δt: Δt, state: mat.NewVecDense(3, []float64{altitude, velocity, 0})}
}

// Advance moves the body forward by one timestep under the provided
// acceleration.
func (t *Truth) Advance(accel float64) {
	t.state.SetVec(2, accel)
	t.state.SetVec(1, t.state.AtVec(1)+accel*t.Δt)
	t.state.SetVec(0, t.state.AtVec(0)+t.state.AtVec(1)*t.Δt)
	t.k++
}

// State returns a copy of the true (altitude, velocity, acceleration).
func (t *Truth) State() *mat.VecDense {
	return mat.VecDenseCopyOf(t.state)
}

// Step returns the number of timesteps advanced.
func (t *Truth) Step() int {
	return t.k
}

// DeadReckoner estimates the state by integrating acceleration observations
// twice, ignoring altitude. It implements Estimator and is the baseline any
// useful filter must beat.
type DeadReckoner struct {
	Δt float32
	x  Matrix
}

// NewDeadReckoner returns a dead reckoner starting from the provided state.
func NewDeadReckoner(Δt, altitude, velocity, accel float32) *DeadReckoner {
	return &DeadReckoner{Δt, Vector3(altitude, velocity, accel)}
}

// Filter implements the Estimator interface.
func (d *DeadReckoner) Filter(altitude, accel float32) Matrix {
	d.x.SetVec(2, accel)
	d.x.SetVec(1, d.x.AtVec(1)+accel*d.Δt)
	d.x.SetVec(0, d.x.AtVec(0)+d.x.AtVec(1)*d.Δt)
	return d.x
}

// State implements the Estimator interface.
func (d *DeadReckoner) State() Matrix {
	return d.x
}

// ErrSensorFault is returned by simulated sensors when a fault was injected.
var ErrSensorFault = errors.New("simulated sensor fault")

// SimRig produces noisy observations of a Truth. Its Barometer and
// Accelerometer share one noise draw per update, so the n-th update of both
// devices sees the same (altitude, acceleration) noise pair.
type SimRig struct {
	truth *Truth
	noise Noise
	draws [][2]float64
}

// NewSimRig returns a rig observing truth through the provided noise.
func NewSimRig(truth *Truth, noise Noise) *SimRig {
	return &SimRig{truth: truth, noise: noise}
}

func (r *SimRig) draw(n int) [2]float64 {
	for len(r.draws) <= n {
		alt, acc := r.noise.Measurement(len(r.draws))
		r.draws = append(r.draws, [2]float64{alt, acc})
	}
	return r.draws[n]
}

// Barometer returns a new simulated barometer attached to the rig.
func (r *SimRig) Barometer() *SimBarometer {
	return &SimBarometer{rig: r}
}

// Accelerometer returns a new simulated accelerometer attached to the rig.
func (r *SimRig) Accelerometer() *SimAccelerometer {
	return &SimAccelerometer{rig: r}
}

// SimBarometer implements Barometer over a SimRig.
type SimBarometer struct {
	rig *SimRig
	n   int
	alt float32
	// Fault, when set, is returned by every subsequent Update. A faulty
	// update still consumes a sample.
	Fault error
}

// Init implements the Barometer interface.
func (b *SimBarometer) Init() error {
	return nil
}

// Update implements the Barometer interface.
func (b *SimBarometer) Update() error {
	if b.Fault != nil {
		b.n++
		return b.Fault
	}
	b.alt = float32(b.rig.truth.state.AtVec(0) + b.rig.draw(b.n)[0])
	b.n++
	return nil
}

// Altitude implements the Barometer interface.
func (b *SimBarometer) Altitude() float32 {
	return b.alt
}

// SimAccelerometer implements Accelerometer over a SimRig.
type SimAccelerometer struct {
	rig *SimRig
	n   int
	acc float32
	// Fault, when set, is returned by every subsequent Update. A faulty
	// update still consumes a sample.
	Fault error
}

// Init implements the Accelerometer interface.
func (a *SimAccelerometer) Init() error {
	return nil
}

// Update implements the Accelerometer interface.
func (a *SimAccelerometer) Update() error {
	if a.Fault != nil {
		a.n++
		return a.Fault
	}
	a.acc = float32(a.rig.truth.state.AtVec(2) + a.rig.draw(a.n)[1])
	a.n++
	return nil
}

// VerticalAccel implements the Accelerometer interface.
func (a *SimAccelerometer) VerticalAccel() float32 {
	return a.acc
}

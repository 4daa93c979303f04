package photic

import "fmt"

// Estimator turns one altitude and one vertical acceleration observation per
// step into an (altitude, velocity, acceleration) state estimate.
type Estimator interface {
	Filter(altitude, accel float32) Matrix // Consumes one observation pair and returns the new 3x1 state.
	State() Matrix                         // Returns the last state without advancing.
}

// KalmanFilter is a 1-DOF linear Kalman filter with an (altitude,
// acceleration) observation model, designed for high power rocketry.
//
// A filter is unusable until it has been configured. In setup code, call
// SetDeltaT, SetSensorVariance and SetInitialEstimate, then ComputeGain (or
// SetGain with a precomputed gain), which must come last. Afterwards call
// Filter once per iteration of the flight logic loop.
//
// Nothing is validated. A misconfigured filter returns meaningless estimates,
// and strongly disagreeing observations may drive the state to NaN. Callers
// must sanity check both the observations they supply (e.g. floor altitude at
// the launchpad) and the estimates they act upon.
//
// None of the methods allocate.
type KalmanFilter struct {
	a Matrix // State transition.
	q Matrix // Process noise covariance, always zero.
	h Matrix // State to observation map.
	r Matrix // Measurement noise covariance.
	p Matrix // Error covariance.
	k Matrix // Kalman gain.
	x Matrix // Last state estimate.
}

// NewKalmanFilter returns an unconfigured filter.
func NewKalmanFilter() *KalmanFilter {
	kf := &KalmanFilter{}
	kf.init()
	return kf
}

func (kf *KalmanFilter) init() {
	// The time-variant elements of A are set in SetDeltaT.
	kf.a = Identity(3)
	kf.q = NewMatrix(3, 3)
	kf.h = NewMatrix(2, 3,
		1, 0, 0,
		0, 0, 1)
	// Observations are not expected to co-vary, so only the diagonal of R is
	// ever set.
	kf.r = NewMatrix(2, 2)
	kf.p = Identity(3)
	kf.k = NewMatrix(3, 2)
	kf.x = NewMatrix(3, 1)
}

// Configure applies the configured timestep, sensor variances and initial
// state, then computes the gain with the configured number of iterations. The
// configuration is not validated here; see Config.Validate.
func (kf *KalmanFilter) Configure(cfg Config) {
	kf.SetDeltaT(cfg.DeltaT)
	kf.SetSensorVariance(cfg.AltitudeVariance, cfg.AccelVariance)
	kf.SetInitialEstimate(cfg.InitialAltitude, cfg.InitialVelocity, cfg.InitialAccel)
	kf.ComputeGain(cfg.GainIterations)
}

// SetDeltaT sets the timestep used in state transitions. This is usually the
// period of the flight logic loop.
func (kf *KalmanFilter) SetDeltaT(Δt float32) {
	kf.a.Set(0, 1, Δt)
	kf.a.Set(0, 2, 0.5*Δt*Δt)
	kf.a.Set(1, 2, Δt)
}

// SetSensorVariance sets the variance of the altitude and acceleration
// readings. The acceleration variance is that of the vertical component only.
func (kf *KalmanFilter) SetSensorVariance(altitudeVariance, accelVariance float32) {
	kf.r.Set(0, 0, altitudeVariance)
	kf.r.Set(1, 1, accelVariance)
}

// SetInitialEstimate sets the state directly, usually to (0, 0, 0) or
// (launchpad altitude, 0, 0).
func (kf *KalmanFilter) SetInitialEstimate(altitude, velocity, accel float32) {
	kf.x = Vector3(altitude, velocity, accel)
}

// Filter runs a single filter iteration and returns the new state estimate.
// The acceleration must be relative to the Earth, not to the rocket.
func (kf *KalmanFilter) Filter(altitude, accel float32) Matrix {
	z := Vector2(altitude, accel)
	xPred := Mul(kf.a, kf.x)
	innov := Sub(z, Mul(kf.h, xPred))
	kf.x = Add(xPred, Mul(kf.k, innov))
	return kf.x
}

// State returns the last state estimate.
func (kf *KalmanFilter) State() Matrix {
	return kf.x
}

// Gain returns the K matrix.
func (kf *KalmanFilter) Gain() Matrix {
	return kf.k
}

// Covariance returns the P matrix as left by the last gain refinement.
func (kf *KalmanFilter) Covariance() Matrix {
	return kf.p
}

// StateTransition returns the A matrix.
func (kf *KalmanFilter) StateTransition() Matrix {
	return kf.a
}

// MeasurementMatrix returns the H matrix.
func (kf *KalmanFilter) MeasurementMatrix() Matrix {
	return kf.h
}

// MeasurementNoise returns the R matrix.
func (kf *KalmanFilter) MeasurementNoise() Matrix {
	return kf.r
}

func (kf *KalmanFilter) String() string {
	return fmt.Sprintf("A=\n%v\nH=\n%v\nR=\n%v\nK=\n%v\nx=\n%v", kf.a, kf.h, kf.r, kf.k, kf.x)
}

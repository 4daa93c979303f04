package photic

import (
	"errors"
	"math"
)

// Scenario describes a simulated 1-DOF flight: a body starting at rest at
// zero altitude under constant acceleration, observed by a noisy barometer and
// accelerometer.
type Scenario struct {
	DeltaT           float64 // Observation period (s).
	Duration         float64 // Simulated time (s).
	TrueAccel        float64 // Constant true acceleration (m/s²).
	AltitudeVariance float64 // Variance of the barometer noise.
	AccelVariance    float64 // Variance of the accelerometer noise.
	Seed             uint64
}

// DefaultScenario returns 100 s of free fall in Earth gravity sampled at
// 10 Hz, with noise matching DefaultConfig.
func DefaultScenario() Scenario {
	return Scenario{
		DeltaT:           0.1,
		Duration:         100,
		TrueAccel:        9.81,
		AltitudeVariance: 15.45,
		AccelVariance:    1.8,
		Seed:             1,
	}
}

// Steps returns the number of observations in the scenario.
func (s Scenario) Steps() int {
	return int(math.Round(s.Duration / s.DeltaT))
}

// Noise returns the observation noise described by the scenario.
func (s Scenario) Noise() (Noise, error) {
	if s.AltitudeVariance == 0 && s.AccelVariance == 0 {
		return NewNoiseless(0, 0), nil
	}
	return NewSensorAWGN(s.AltitudeVariance, s.AccelVariance, s.Seed)
}

// Sample is the simulation record of one timestep.
type Sample struct {
	T            float64
	Truth        [3]float64
	Observation  [2]float32
	Filtered     Matrix
	DeadReckoned Matrix
}

// Trace is the full record of a simulation.
type Trace struct {
	Samples []Sample
}

// Final returns the last sample.
func (t *Trace) Final() Sample {
	return t.Samples[len(t.Samples)-1]
}

// FilteredError returns the absolute error of the final filtered state.
func (t *Trace) FilteredError() [3]float64 {
	f := t.Final()
	return absError(f.Truth, f.Filtered)
}

// DeadReckonedError returns the absolute error of the final dead reckoned
// state.
func (t *Trace) DeadReckonedError() [3]float64 {
	f := t.Final()
	return absError(f.Truth, f.DeadReckoned)
}

// RelativeError returns the final filtered altitude error relative to the
// true altitude.
func (t *Trace) RelativeError() float64 {
	return t.FilteredError()[0] / math.Abs(t.Final().Truth[0])
}

func absError(truth [3]float64, est Matrix) (e [3]float64) {
	for i := range e {
		e[i] = math.Abs(truth[i] - float64(est.AtVec(i)))
	}
	return
}

// Simulate runs the scenario through a Tracker configured with cfg, alongside
// a dead reckoner fed the same observations.
func Simulate(cfg Config, sc Scenario) (*Trace, error) {
	noise, err := sc.Noise()
	if err != nil {
		return nil, err
	}
	return SimulateWithNoise(cfg, sc, noise)
}

// SimulateWithNoise is Simulate with explicit observation noise.
func SimulateWithNoise(cfg Config, sc Scenario, noise Noise) (*Trace, error) {
	steps := sc.Steps()
	if steps <= 0 {
		return nil, errors.New("scenario must contain at least one step")
	}
	truth := NewTruth(sc.DeltaT, 0, 0)
	rig := NewSimRig(truth, noise)
	baro, accel := rig.Barometer(), rig.Accelerometer()
	tracker, err := NewTracker(cfg, baro, accel)
	if err != nil {
		return nil, err
	}
	dr := NewDeadReckoner(cfg.DeltaT, cfg.InitialAltitude, cfg.InitialVelocity, cfg.InitialAccel)

	tr := &Trace{Samples: make([]Sample, 0, steps)}
	for k := 0; k < steps; k++ {
		truth.Advance(sc.TrueAccel)
		est, err := tracker.Step()
		if err != nil {
			return nil, err
		}
		obs := [2]float32{baro.Altitude(), accel.VerticalAccel()}
		s := Sample{
			T:            float64(k+1) * sc.DeltaT,
			Observation:  obs,
			Filtered:     est,
			DeadReckoned: dr.Filter(obs[0], obs[1]),
		}
		copy(s.Truth[:], truth.state.RawVector().Data)
		tr.Samples = append(tr.Samples, s)
	}
	return tr, nil
}

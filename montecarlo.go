package photic

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MonteCarloRuns stores the final errors of repeated simulations of one
// scenario, each with a different noise seed.
type MonteCarloRuns struct {
	Runs []MonteCarloRun
}

// MonteCarloRun stores the final absolute errors of one simulation.
type MonteCarloRun struct {
	Seed              uint64
	FilteredError     [3]float64
	DeadReckonedError [3]float64
}

// NewMonteCarloRuns simulates the scenario the requested number of times.
// Run i uses seed sc.Seed+i.
func NewMonteCarloRuns(cfg Config, sc Scenario, samples int) (MonteCarloRuns, error) {
	if samples < 1 {
		return MonteCarloRuns{}, fmt.Errorf("must run at least one sample, got %d", samples)
	}
	runs := make([]MonteCarloRun, samples)
	for i := range runs {
		run := sc
		run.Seed = sc.Seed + uint64(i)
		tr, err := Simulate(cfg, run)
		if err != nil {
			return MonteCarloRuns{}, fmt.Errorf("run %d: %w", i, err)
		}
		runs[i] = MonteCarloRun{run.Seed, tr.FilteredError(), tr.DeadReckonedError()}
	}
	return MonteCarloRuns{runs}, nil
}

func (mc MonteCarloRuns) component(i int, filtered bool) []float64 {
	vals := make([]float64, len(mc.Runs))
	for r, run := range mc.Runs {
		if filtered {
			vals[r] = run.FilteredError[i]
		} else {
			vals[r] = run.DeadReckonedError[i]
		}
	}
	return vals
}

// Mean returns the mean final error of each state component, for the filter
// or for dead reckoning.
func (mc MonteCarloRuns) Mean(filtered bool) (means [3]float64) {
	for i := range means {
		means[i] = stat.Mean(mc.component(i, filtered), nil)
	}
	return
}

// StdDev returns the standard deviation of the final error of each state
// component.
func (mc MonteCarloRuns) StdDev(filtered bool) (devs [3]float64) {
	for i := range devs {
		devs[i] = stat.StdDev(mc.component(i, filtered), nil)
	}
	return
}

// Worst returns the largest final error of each state component.
func (mc MonteCarloRuns) Worst(filtered bool) (worst [3]float64) {
	for i := range worst {
		worst[i] = floats.Max(mc.component(i, filtered))
	}
	return
}

// FilterWins returns the number of runs in which the filtered altitude ended
// closer to the truth than the dead reckoned one.
func (mc MonteCarloRuns) FilterWins() int {
	wins := 0
	for _, run := range mc.Runs {
		if run.FilteredError[0] < run.DeadReckonedError[0] {
			wins++
		}
	}
	return wins
}

// AsCSV is used as a CSV serializer. It includes a header line.
func (mc MonteCarloRuns) AsCSV() string {
	lines := make([]string, len(mc.Runs)+1)
	lines[0] = "seed,altitude-kf,velocity-kf,acceleration-kf,altitude-dr,velocity-dr,acceleration-dr"
	for r, run := range mc.Runs {
		lines[r+1] = fmt.Sprintf("%d,%f,%f,%f,%f,%f,%f", run.Seed,
			run.FilteredError[0], run.FilteredError[1], run.FilteredError[2],
			run.DeadReckonedError[0], run.DeadReckonedError[1], run.DeadReckonedError[2])
	}
	return strings.Join(lines, "\n")
}

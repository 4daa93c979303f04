package photic

import (
	"errors"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// altitudeErrors returns the absolute filtered and dead reckoned altitude
// errors of every sample.
func altitudeErrors(tr *Trace) (kf, dr plotter.XYs) {
	kf = make(plotter.XYs, len(tr.Samples))
	dr = make(plotter.XYs, len(tr.Samples))
	for i, s := range tr.Samples {
		kf[i].X, dr[i].X = s.T, s.T
		kf[i].Y = math.Abs(s.Truth[0] - float64(s.Filtered.AtVec(0)))
		dr[i].Y = math.Abs(s.Truth[0] - float64(s.DeadReckoned.AtVec(0)))
	}
	return
}

// PlotAltitudeError saves a plot of the filtered and dead reckoned altitude
// errors over time. The format follows the file extension (png, svg, pdf, eps).
func PlotAltitudeError(tr *Trace, filename string) error {
	if tr == nil || len(tr.Samples) == 0 {
		return errors.New("cannot plot an empty trace")
	}
	p := plot.New()
	p.Title.Text = "Altitude error"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "|error| (m)"

	kf, dr := altitudeErrors(tr)
	if err := plotutil.AddLines(p, "Kalman", kf, "Dead reckoning", dr); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

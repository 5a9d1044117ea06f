package rollstat

import (
	"errors"
	"time"
)

// ErrEmptySeries is returned by Process when the input price series is empty.
var ErrEmptySeries = errors.New("rollstat: empty price series")

// Process runs the rolling analytics over a historical price series. Every
// point is fed into an Analytics in order, and the mean, volatility and
// Sharpe ratio are snapshotted immediately after each update, producing one
// frame row per input point. The riskFree annual rate is used for the Sharpe
// column. An empty series is a configuration error and produces no output.
func Process(points []PricePoint, window int, riskFree float64) (*Frame, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}
	a, err := NewAnalytics(window)
	if err != nil {
		return nil, err
	}

	f := &Frame{
		Time:       make([]time.Time, 0, len(points)),
		Price:      make([]float64, 0, len(points)),
		Mean:       make([]float64, 0, len(points)),
		Volatility: make([]float64, 0, len(points)),
		Sharpe:     make([]float64, 0, len(points)),
	}
	for _, p := range points {
		a.Update(p.Price)
		f.Time = append(f.Time, p.Time)
		f.Price = append(f.Price, p.Price)
		f.Mean = append(f.Mean, a.MeanPrice())
		f.Volatility = append(f.Volatility, a.Volatility())
		f.Sharpe = append(f.Sharpe, a.SharpeRate(riskFree))
	}
	return f, nil
}

package rollstat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// TradingDays is the assumed number of trading periods per year, used to
	// annualize per-period statistics.
	TradingDays = 252

	// DefaultRiskFreeRate is the annual risk-free rate applied by Sharpe.
	DefaultRiskFreeRate = 0.02
)

// Analytics computes rolling statistics over a stream of prices fed in one at
// a time with Update. It maintains a window of the most recent prices and a
// window of the most recent single-step simple returns, and answers mean,
// annualized volatility and annualized Sharpe-ratio queries over the current
// window contents. Queries never mutate state and may be called in any order.
// Statistics that are undefined for the data seen so far are reported as NaN.
// It is *not* safe to make concurrent calls on an Analytics.
type Analytics struct {
	prices  *Window
	returns *Window
	prev    float64
	started bool
}

// NewAnalytics creates an Analytics computing statistics over a rolling window
// of the given size. The window must be positive.
func NewAnalytics(window int) (*Analytics, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rollstat: window must be positive, got %d", window)
	}
	return &Analytics{prices: NewWindow(window), returns: NewWindow(window)}, nil
}

// Update feeds the next price into the analytics. On every call after the
// first, the simple return against the previously observed price is pushed
// into the return window. The previous price is tracked by arrival order, so
// a return is produced even when the window has already evicted it.
func (a *Analytics) Update(price float64) {
	a.prices.Push(price)
	if a.started {
		a.returns.Push(price/a.prev - 1)
	}
	a.prev = price
	a.started = true
}

// MeanPrice returns the mean of the prices in the current window. Returns NaN
// before the first update.
func (a *Analytics) MeanPrice() float64 {
	return a.prices.Mean()
}

// Volatility returns the annualized sample standard deviation of the returns
// in the current window. Returns NaN while the window holds fewer than 2
// returns.
func (a *Analytics) Volatility() float64 {
	if a.returns.Len() < 2 {
		return math.NaN()
	}
	return stat.StdDev(a.returns.Values(), nil) * math.Sqrt(TradingDays)
}

// Sharpe returns the annualized Sharpe ratio of the returns in the current
// window at the default risk-free rate.
func (a *Analytics) Sharpe() float64 {
	return a.SharpeRate(DefaultRiskFreeRate)
}

// SharpeRate returns the annualized Sharpe ratio of the returns in the current
// window. The riskFree annual rate is spread evenly across the year's trading
// periods to form per-period excess returns. Returns NaN while the window
// holds fewer than 2 returns, or when the sample standard deviation of the
// excess returns is exactly zero.
func (a *Analytics) SharpeRate(riskFree float64) float64 {
	if a.returns.Len() < 2 {
		return math.NaN()
	}
	excess := a.returns.Values()
	perPeriod := riskFree / TradingDays
	for i := range excess {
		excess[i] -= perPeriod
	}
	mean, std := stat.MeanStdDev(excess, nil)
	if std == 0 {
		return math.NaN()
	}
	return math.Sqrt(TradingDays) * mean / std
}

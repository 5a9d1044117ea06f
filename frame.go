package rollstat

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// PricePoint is a single observation of an instrument's price series.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// Frame is a time-indexed table of rolling statistics, one row per input
// price. All columns have the same length. Statistics that were undefined at
// a given row hold NaN.
type Frame struct {
	Time       []time.Time
	Price      []float64
	Mean       []float64
	Volatility []float64
	Sharpe     []float64
}

// Len returns the number of rows in the frame.
func (f *Frame) Len() int {
	return len(f.Time)
}

// Tail formats the last n rows of the frame as an aligned text table. If n
// exceeds the number of rows, all rows are included. NaN statistics are
// printed as NaN.
func (f *Frame) Tail(n int) string {
	if n > f.Len() {
		n = f.Len()
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Time\tPrice\tMA\tVolatility\tSharpe")
	for i := f.Len() - n; i < f.Len(); i++ {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.4f\t%.4f\n",
			f.Time[i].Format("2006-01-02"), f.Price[i], f.Mean[i], f.Volatility[i], f.Sharpe[i])
	}
	tw.Flush()
	return b.String()
}

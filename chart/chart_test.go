package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantfold/rollstat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() *rollstat.Frame {
	points := make([]rollstat.PricePoint, 0, 40)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < 40; i++ {
		price *= 1 + 0.01*math.Sin(float64(i))
		points = append(points, rollstat.PricePoint{Time: start.AddDate(0, 0, i), Price: price})
	}
	frame, err := rollstat.Process(points, 10, rollstat.DefaultRiskFreeRate)
	if err != nil {
		panic(err)
	}
	return frame
}

// The leading rows of a frame hold NaN statistics; rendering must gap them
// rather than fail.
func TestRenderWithNaNRows(t *testing.T) {
	frame := testFrame()
	require.True(t, math.IsNaN(frame.Volatility[0]))

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Render(frame, 10, "BTCUSDT", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderEmptyFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := Render(&rollstat.Frame{}, 10, "BTCUSDT", path)
	assert.Error(t, err)
}

func TestSegmentsSplitOnNaN(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, 6)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
	}
	ys := []float64{math.NaN(), 1, 2, math.NaN(), 3, 4}

	segs := segments(times, ys)
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 2)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 1.0, segs[0][0].Y)
	assert.Equal(t, 3.0, segs[1][0].Y)
}

func TestSegmentsAllNaN(t *testing.T) {
	times := []time.Time{time.Now(), time.Now()}
	segs := segments(times, []float64{math.NaN(), math.NaN()})
	assert.Empty(t, segs)
}

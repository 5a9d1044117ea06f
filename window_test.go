package rollstat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowEviction(t *testing.T) {
	w := NewWindow(3)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 3, w.Cap())
	assert.True(t, math.IsNaN(w.Mean()))

	w.Push(1)
	w.Push(2)
	w.Push(3)
	assert.Equal(t, []float64{1, 2, 3}, w.Values())
	assert.InDelta(t, 6.0, w.Sum(), 1e-12)
	assert.InDelta(t, 2.0, w.Mean(), 1e-12)

	w.Push(4)
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []float64{2, 3, 4}, w.Values())
	assert.InDelta(t, 9.0, w.Sum(), 1e-12)
	assert.InDelta(t, 3.0, w.Mean(), 1e-12)

	w.Push(-10)
	assert.Equal(t, []float64{3, 4, -10}, w.Values())
	assert.InDelta(t, -3.0, w.Sum(), 1e-12)
}

func TestWindowCapacityOne(t *testing.T) {
	w := NewWindow(1)
	w.Push(5)
	w.Push(7)
	assert.Equal(t, []float64{7}, w.Values())
	assert.InDelta(t, 7.0, w.Sum(), 1e-12)
	assert.InDelta(t, 7.0, w.Mean(), 1e-12)
}

// The running sum must track the exact contents of the window across
// arbitrary update sequences.
func TestWindowRunningSumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, capacity := range []int{1, 2, 5, 17} {
		w := NewWindow(capacity)
		for i := 0; i < 200; i++ {
			w.Push(rng.Float64()*200 - 100)
			var sum float64
			for _, v := range w.Values() {
				sum += v
			}
			assert.InDelta(t, sum, w.Sum(), 1e-9)
			assert.LessOrEqual(t, w.Len(), capacity)
		}
	}
}

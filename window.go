package rollstat

import (
	"math"

	"github.com/edwingeng/deque/v2"
)

// Window is a rolling window retaining a fixed number of most-recent values.
// A running sum is kept in sync with the window contents, so the sum and mean
// are available in constant time. It is *not* safe to make concurrent calls
// on a Window.
type Window struct {
	values   *deque.Deque[float64]
	capacity int
	sum      float64
}

// NewWindow creates a Window retaining at most capacity values. The capacity
// must be positive.
func NewWindow(capacity int) *Window {
	values := deque.NewDeque[float64]()
	return &Window{values: values, capacity: capacity}
}

// Push appends a value to the window. If the window is already at capacity,
// the oldest value is evicted and subtracted from the running sum before the
// new value is added.
func (w *Window) Push(v float64) {
	if w.values.Len() == w.capacity {
		old, _ := w.values.Front()
		w.values.PopFront()
		w.sum -= old
	}
	w.values.PushBack(v)
	w.sum += v
}

// Len returns the number of values currently held in the window.
func (w *Window) Len() int {
	return w.values.Len()
}

// Cap returns the maximum number of values the window retains.
func (w *Window) Cap() int {
	return w.capacity
}

// Sum returns the running sum of the window contents.
func (w *Window) Sum() float64 {
	return w.sum
}

// Mean returns the arithmetic mean of the window contents. Returns NaN if the
// window is empty.
func (w *Window) Mean() float64 {
	if w.values.Len() == 0 {
		return math.NaN()
	}
	return w.sum / float64(w.values.Len())
}

// Values returns a snapshot of the window contents in insertion order, oldest
// first.
func (w *Window) Values() []float64 {
	vals := make([]float64, 0, w.values.Len())
	w.values.Range(func(i int, v float64) bool {
		vals = append(vals, v)
		return true
	})
	return vals
}

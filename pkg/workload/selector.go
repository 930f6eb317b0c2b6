package workload

import (
	"fmt"
	"math"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Selector draws labels by weight. Draws are independent of each other.
type Selector[L any] struct {
	labels     []L
	cumulative []float64
}

// NewSelector creates a Selector. Weights are relative and need not sum
// to one, but at least one must be positive.
func NewSelector[L any](labels []L, weights []float64) (*Selector[L], error) {
	if len(labels) == 0 {
		return nil, &runtime.ValidationError{Field: "labels", Message: "at least one label is required"}
	}
	if len(labels) != len(weights) {
		return nil, &runtime.ValidationError{
			Field:   "weights",
			Message: fmt.Sprintf("%d weights for %d labels", len(weights), len(labels)),
		}
	}

	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, &runtime.ValidationError{Field: "weights", Message: fmt.Sprintf("invalid weight %v at %d", w, i)}
		}
		total += w
		cumulative[i] = total
	}
	if total <= 0 {
		return nil, &runtime.ValidationError{Field: "weights", Message: "weights sum to zero"}
	}

	return &Selector[L]{labels: labels, cumulative: cumulative}, nil
}

// Pick draws one label.
func (s *Selector[L]) Pick(r Rand) L {
	total := s.cumulative[len(s.cumulative)-1]
	x := r.Float64() * total
	for i, c := range s.cumulative {
		if x < c {
			return s.labels[i]
		}
	}
	// Float rounding can leave x at the total; fall back to the last
	// label with positive weight.
	for i := len(s.cumulative) - 1; i > 0; i-- {
		if s.cumulative[i] > s.cumulative[i-1] {
			return s.labels[i]
		}
	}
	return s.labels[0]
}

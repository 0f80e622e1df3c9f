// Package indicator implements pure technical-indicator computations
// (SMA, EMA, RSI, MACD, Bollinger Bands, ATR) over an ordered price series.
//
// All functions are stateless and deterministic: they never mutate their
// input and always return an output series aligned index-by-index with the
// input. Indices that lack enough history to produce a value (the warm-up
// gap) carry math.NaN() and can be tested with Point.Valid.
package indicator

import (
	"fmt"
	"math"
	"time"
)

// PricePoint is a single observation of a price series.
// Only Close is required by SMA/EMA/RSI/MACD/Bollinger; ATR also reads
// High and Low.
type PricePoint struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series is an immutable, strictly time-ascending sequence of price points.
// Construct it with NewSeries; the zero value is an empty series.
type Series struct {
	pts []PricePoint
}

// NewSeries copies pts into a new Series. Timestamps must be strictly
// ascending; otherwise ErrUnsortedInput is returned. An empty input yields
// an empty (but valid) series.
func NewSeries(pts []PricePoint) (Series, error) {
	cp := make([]PricePoint, len(pts))
	copy(cp, pts)
	for i := 1; i < len(cp); i++ {
		if !cp[i].Time.After(cp[i-1].Time) {
			return Series{}, fmt.Errorf("%w: index %d (%s) is not after index %d (%s)",
				ErrUnsortedInput, i, cp[i].Time.Format(time.RFC3339), i-1, cp[i-1].Time.Format(time.RFC3339))
		}
	}
	return Series{pts: cp}, nil
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.pts) }

// At returns the i-th point. It panics if i is out of range, like a slice.
func (s Series) At(i int) PricePoint { return s.pts[i] }

// Point is one element of a computed indicator series. Value is math.NaN()
// inside the warm-up gap.
type Point struct {
	Time  time.Time
	Value float64
}

// Valid reports whether the point carries a computed value.
func (p Point) Valid() bool { return !math.IsNaN(p.Value) }

// IndicatorSeries is a derived series aligned with the input Series:
// same length, same timestamps.
type IndicatorSeries []Point

// closes extracts the close values of the series.
func closes(s Series) []float64 {
	out := make([]float64, len(s.pts))
	for i, p := range s.pts {
		out[i] = p.Close
	}
	return out
}

// nanSeries builds an all-NaN indicator series aligned with s.
func nanSeries(s Series) IndicatorSeries {
	out := make(IndicatorSeries, len(s.pts))
	for i, p := range s.pts {
		out[i] = Point{Time: p.Time, Value: math.NaN()}
	}
	return out
}

// validate checks the shared preconditions of every indicator function:
// all periods positive, series non-empty.
func validate(s Series, periods ...int) error {
	for _, p := range periods {
		if p <= 0 {
			return fmt.Errorf("%w: period must be a positive integer, got %d", ErrInvalidParameter, p)
		}
	}
	if s.Len() == 0 {
		return ErrEmptyInput
	}
	return nil
}

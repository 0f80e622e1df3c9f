package indicator

import (
	"fmt"
	"math"
	"time"
)

// BandPoint is one element of a Bollinger Bands series. All three values
// are NaN inside the warm-up gap.
type BandPoint struct {
	Time   time.Time
	Upper  float64
	Middle float64
	Lower  float64
}

// Valid reports whether the bands are defined at this point.
func (p BandPoint) Valid() bool { return !math.IsNaN(p.Middle) }

// BandSeries is a derived series aligned with the input Series.
type BandSeries []BandPoint

// BollingerBands computes the classic volatility bands: the middle band is
// SMA(period) of the closes, the upper/lower bands sit mult standard
// deviations above/below it. The deviation is the population standard
// deviation over the window, matching the middle-band mean.
func BollingerBands(s Series, period int, mult float64) (BandSeries, error) {
	if err := validate(s, period); err != nil {
		return nil, err
	}
	if mult <= 0 || math.IsNaN(mult) {
		return nil, fmt.Errorf("%w: band width multiplier must be positive, got %v", ErrInvalidParameter, mult)
	}

	out := make(BandSeries, s.Len())
	var sum float64
	for i, p := range s.pts {
		out[i] = BandPoint{Time: p.Time, Upper: math.NaN(), Middle: math.NaN(), Lower: math.NaN()}
		sum += p.Close
		if i >= period {
			sum -= s.pts[i-period].Close
		}
		if i < period-1 {
			continue
		}
		mean := sum / float64(period)

		// Second pass over the window: summing squared deviations from the
		// already-known mean avoids the cancellation of the sum-of-squares
		// shortcut.
		var sq float64
		for j := i - period + 1; j <= i; j++ {
			d := s.pts[j].Close - mean
			sq += d * d
		}
		sd := math.Sqrt(sq / float64(period))

		out[i].Middle = mean
		out[i].Upper = mean + mult*sd
		out[i].Lower = mean - mult*sd
	}
	return out, nil
}

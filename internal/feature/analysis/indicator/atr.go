package indicator

import "math"

// ATR computes the Average True Range: the simple moving average over
// period true-range values, where
//
//	TR[i] = max(high-low, |high-prevClose|, |low-prevClose|)
//
// TR needs a previous close and is therefore undefined at index 0, so the
// first defined ATR value sits at index period.
func ATR(s Series, period int) (IndicatorSeries, error) {
	if err := validate(s, period); err != nil {
		return nil, err
	}

	out := nanSeries(s)
	if s.Len() <= period {
		return out, nil
	}

	tr := make([]float64, s.Len())
	for i := 1; i < s.Len(); i++ {
		tr[i] = trueRange(s.pts[i], s.pts[i-1].Close)
	}

	var sum float64
	for i := 1; i < s.Len(); i++ {
		sum += tr[i]
		if i > period {
			sum -= tr[i-period]
		}
		if i >= period {
			out[i].Value = sum / float64(period)
		}
	}
	return out, nil
}

// trueRange is the largest of the intra-period range and the two gaps
// against the previous close.
func trueRange(p PricePoint, prevClose float64) float64 {
	return math.Max(p.High-p.Low, math.Max(math.Abs(p.High-prevClose), math.Abs(p.Low-prevClose)))
}

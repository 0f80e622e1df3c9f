package indicator

import "math"

// EMA computes the exponential moving average of the close prices with
// smoothing factor α = 2/(period+1). The first defined value, at index
// period-1, is seeded with the SMA of the first period closes; indices
// before that are NaN.
func EMA(s Series, period int) (IndicatorSeries, error) {
	if err := validate(s, period); err != nil {
		return nil, err
	}

	out := nanSeries(s)
	for i, v := range emaValues(closes(s), period) {
		out[i].Value = v
	}
	return out, nil
}

// emaValues is the raw-value EMA shared by EMA and the MACD signal line.
// Indices before period-1 are NaN; index period-1 holds the simple mean of
// the first period values (the SMA seed).
func emaValues(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	alpha := 2 / float64(period+1)
	var sum, prev float64
	for i, v := range values {
		switch {
		case i < period-1:
			sum += v
			out[i] = math.NaN()
		case i == period-1:
			sum += v
			prev = sum / float64(period)
			out[i] = prev
		default:
			prev = alpha*v + (1-alpha)*prev
			out[i] = prev
		}
	}
	return out
}

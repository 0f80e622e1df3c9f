package indicator

// SMA computes the simple moving average of the close prices over a sliding
// window of period points. Indices before period-1 are NaN.
//
// The window sum is maintained incrementally (subtract the value leaving,
// add the value entering), so the whole series costs O(len).
func SMA(s Series, period int) (IndicatorSeries, error) {
	if err := validate(s, period); err != nil {
		return nil, err
	}

	out := nanSeries(s)
	var sum float64
	for i, p := range s.pts {
		sum += p.Close
		if i >= period {
			sum -= s.pts[i-period].Close
		}
		if i >= period-1 {
			out[i].Value = sum / float64(period)
		}
	}
	return out, nil
}

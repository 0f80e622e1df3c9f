package indicator

// RSI computes the Relative Strength Index using the Wilder formulation.
//
// The per-step delta is undefined at index 0, so the first defined RSI value
// sits at index period: its average gain/loss is the simple mean of the
// first period gains/losses. Later indices use Wilder smoothing:
//
//	avg[i] = (avg[i-1]*(period-1) + current) / period
//
// When the average loss is zero the RSI is pinned to 100 to avoid dividing
// by zero.
func RSI(s Series, period int) (IndicatorSeries, error) {
	if err := validate(s, period); err != nil {
		return nil, err
	}

	out := nanSeries(s)
	if s.Len() <= period {
		return out, nil
	}

	var sumGain, sumLoss float64
	for i := 1; i <= period; i++ {
		delta := s.pts[i].Close - s.pts[i-1].Close
		if delta > 0 {
			sumGain += delta
		} else {
			sumLoss += -delta
		}
	}
	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)
	out[period].Value = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < s.Len(); i++ {
		delta := s.pts[i].Close - s.pts[i-1].Close
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i].Value = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

// rsiValue converts average gain/loss to the bounded [0,100] oscillator.
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

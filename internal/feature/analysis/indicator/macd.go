package indicator

import (
	"math"
	"time"
)

// Default MACD parameters, matching common charting conventions.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// MACDPoint is one element of a MACD series. MACD becomes defined first;
// Signal and Histogram stay NaN until the signal EMA has warmed up over the
// MACD line's defined prefix.
type MACDPoint struct {
	Time      time.Time
	MACD      float64
	Signal    float64
	Histogram float64
}

// Valid reports whether the MACD line is defined at this point.
func (p MACDPoint) Valid() bool { return !math.IsNaN(p.MACD) }

// SignalValid reports whether the signal line (and histogram) is defined.
func (p MACDPoint) SignalValid() bool { return !math.IsNaN(p.Signal) }

// MACDSeries is a derived series aligned with the input Series.
type MACDSeries []MACDPoint

// MACD computes the Moving Average Convergence Divergence:
//
//	MACD line  = EMA(fast) - EMA(slow)   defined from index slow-1
//	Signal     = EMA(signal) of the MACD line's defined prefix,
//	             defined from index slow-1 + signal-1
//	Histogram  = MACD - Signal wherever both are defined
//
// fast < slow is the conventional usage but is not enforced; with the
// arguments swapped the line is simply the negated conventional MACD and
// becomes defined from max(fast, slow)-1.
func MACD(s Series, fast, slow, signal int) (MACDSeries, error) {
	if err := validate(s, fast, slow, signal); err != nil {
		return nil, err
	}

	cs := closes(s)
	fastEMA := emaValues(cs, fast)
	slowEMA := emaValues(cs, slow)

	out := make(MACDSeries, s.Len())
	for i, p := range s.pts {
		out[i] = MACDPoint{Time: p.Time, MACD: math.NaN(), Signal: math.NaN(), Histogram: math.NaN()}
	}

	start := max(fast, slow) - 1
	if start >= s.Len() {
		return out, nil
	}

	// The MACD line's defined prefix becomes the input series for the
	// signal EMA, so the signal warm-up counts from start, not from 0.
	macdLine := make([]float64, 0, s.Len()-start)
	for i := start; i < s.Len(); i++ {
		m := fastEMA[i] - slowEMA[i]
		out[i].MACD = m
		macdLine = append(macdLine, m)
	}

	for j, v := range emaValues(macdLine, signal) {
		if math.IsNaN(v) {
			continue
		}
		i := start + j
		out[i].Signal = v
		out[i].Histogram = out[i].MACD - v
	}
	return out, nil
}

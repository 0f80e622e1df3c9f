package usecase

import (
	"context"
	"math"
	"sort"
	"time"
)

// ColumnSummary は1カラム分の要約統計です。
// Stdは標本標準偏差（n-1除算）で、標本数1の場合はNaNになります。
type ColumnSummary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Stats は1銘柄のOHLCV各カラムの要約統計です。
type Stats struct {
	Symbol  string
	Columns map[string]ColumnSummary
}

// Summarize は指定された銘柄・期間の価格データからOHLCVカラムごとの
// 要約統計（件数・平均・標準偏差・最小値・四分位点・最大値）を計算します。
func (u *analysisUsecase) Summarize(ctx context.Context, symbol string, from, to time.Time) (*Stats, error) {
	rows, err := u.prices.FindRange(ctx, symbol, from, to, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoPriceData
	}

	open := make([]float64, len(rows))
	high := make([]float64, len(rows))
	low := make([]float64, len(rows))
	cls := make([]float64, len(rows))
	vol := make([]float64, len(rows))
	hasVolume := false
	for i, r := range rows {
		open[i], high[i], low[i], cls[i] = r.Open, r.High, r.Low, r.Close
		vol[i] = float64(r.Volume)
		if r.Volume != 0 {
			hasVolume = true
		}
	}

	cols := map[string]ColumnSummary{
		"open":  summarize(open),
		"high":  summarize(high),
		"low":   summarize(low),
		"close": summarize(cls),
	}
	// 出来高の列を持たないCSVから取り込んだデータでは全行0になるため省略する
	if hasVolume {
		cols["volume"] = summarize(vol)
	}

	return &Stats{Symbol: symbol, Columns: cols}, nil
}

// summarize は1カラム分の値から要約統計を計算します。
func summarize(values []float64) ColumnSummary {
	n := len(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	std := math.NaN()
	if n > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return ColumnSummary{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		P25:    percentile(sorted, 0.25),
		Median: percentile(sorted, 0.5),
		P75:    percentile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// percentile は昇順ソート済みの値に対する線形補間パーセンタイルです。
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Package usecase は指標計算フィーチャーのビジネスロジックを実装します。
// 価格リポジトリから系列を読み出し、純粋な指標エンジン
// (internal/feature/analysis/indicator) に計算を委譲します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"stock_analysis/internal/feature/analysis/indicator"
	pricesentity "stock_analysis/internal/feature/prices/domain/entity"
)

// PriceRepository は価格データの読み取り層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	FindRange(ctx context.Context, symbol string, from, to time.Time, limit int) ([]pricesentity.PricePoint, error)
}

// MACDParams はMACD計算のパラメータ三つ組です。
type MACDParams struct {
	Fast   int
	Slow   int
	Signal int
}

// BollingerParams はボリンジャーバンド計算のパラメータです。
type BollingerParams struct {
	Period int
	Mult   float64
}

// IndicatorParams は1回の分析リクエストで計算する指標の集合です。
// ゼロ値/nilの項目は計算されません。
type IndicatorParams struct {
	SMAPeriods []int
	EMAPeriods []int
	RSIPeriod  int
	MACD       *MACDParams
	Bollinger  *BollingerParams
	ATRPeriod  int
}

// IsEmpty はいずれの指標も要求されていないことを返します。
func (p IndicatorParams) IsEmpty() bool {
	return len(p.SMAPeriods) == 0 && len(p.EMAPeriods) == 0 &&
		p.RSIPeriod == 0 && p.MACD == nil && p.Bollinger == nil && p.ATRPeriod == 0
}

// DefaultParams は元のチャート画面の初期状態と同じ指標セット
// （RSI(14)とボリンジャーバンド(20, 2σ)）を返します。
func DefaultParams() IndicatorParams {
	return IndicatorParams{
		RSIPeriod: 14,
		Bollinger: &BollingerParams{Period: 20, Mult: 2},
	}
}

// Analysis は1銘柄に対する指標計算の結果一式です。
// すべての系列は入力価格データとインデックスが揃っています。
type Analysis struct {
	Symbol    string
	Times     []time.Time
	SMA       map[int]indicator.IndicatorSeries
	EMA       map[int]indicator.IndicatorSeries
	RSI       indicator.IndicatorSeries
	MACD      indicator.MACDSeries
	Bollinger indicator.BandSeries
	ATR       indicator.IndicatorSeries
}

// analysisUsecase は指標計算のユースケースを定義します。
type analysisUsecase struct {
	prices PriceRepository
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(prices PriceRepository) *analysisUsecase {
	return &analysisUsecase{prices: prices}
}

// ComputeIndicators は指定された銘柄・期間の価格データを読み出し、
// 要求された指標を計算します。指標が1つも指定されていない場合は
// DefaultParamsを使用します。
//
// パラメータ不正は indicator.ErrInvalidParameter を、価格データが
// 存在しない場合は ErrNoPriceData を返します。
func (u *analysisUsecase) ComputeIndicators(ctx context.Context, symbol string, from, to time.Time, params IndicatorParams) (*Analysis, error) {
	if params.IsEmpty() {
		params = DefaultParams()
	}

	series, times, err := u.loadSeries(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	out := &Analysis{Symbol: symbol, Times: times}

	for _, n := range params.SMAPeriods {
		s, err := indicator.SMA(series, n)
		if err != nil {
			return nil, fmt.Errorf("SMA(%d): %w", n, err)
		}
		if out.SMA == nil {
			out.SMA = make(map[int]indicator.IndicatorSeries, len(params.SMAPeriods))
		}
		out.SMA[n] = s
	}

	for _, n := range params.EMAPeriods {
		s, err := indicator.EMA(series, n)
		if err != nil {
			return nil, fmt.Errorf("EMA(%d): %w", n, err)
		}
		if out.EMA == nil {
			out.EMA = make(map[int]indicator.IndicatorSeries, len(params.EMAPeriods))
		}
		out.EMA[n] = s
	}

	if params.RSIPeriod != 0 {
		s, err := indicator.RSI(series, params.RSIPeriod)
		if err != nil {
			return nil, fmt.Errorf("RSI(%d): %w", params.RSIPeriod, err)
		}
		out.RSI = s
	}

	if params.MACD != nil {
		s, err := indicator.MACD(series, params.MACD.Fast, params.MACD.Slow, params.MACD.Signal)
		if err != nil {
			return nil, fmt.Errorf("MACD(%d,%d,%d): %w", params.MACD.Fast, params.MACD.Slow, params.MACD.Signal, err)
		}
		out.MACD = s
	}

	if params.Bollinger != nil {
		s, err := indicator.BollingerBands(series, params.Bollinger.Period, params.Bollinger.Mult)
		if err != nil {
			return nil, fmt.Errorf("BollingerBands(%d,%v): %w", params.Bollinger.Period, params.Bollinger.Mult, err)
		}
		out.Bollinger = s
	}

	if params.ATRPeriod != 0 {
		s, err := indicator.ATR(series, params.ATRPeriod)
		if err != nil {
			return nil, fmt.Errorf("ATR(%d): %w", params.ATRPeriod, err)
		}
		out.ATR = s
	}

	return out, nil
}

// loadSeries は価格リポジトリから読み出した行を指標エンジンのSeriesに
// 変換します。リポジトリは日付昇順・重複なしで返すため、NewSeriesの
// 検証が失敗した場合はデータ不整合としてそのままエラーを返します。
func (u *analysisUsecase) loadSeries(ctx context.Context, symbol string, from, to time.Time) (indicator.Series, []time.Time, error) {
	rows, err := u.prices.FindRange(ctx, symbol, from, to, 0)
	if err != nil {
		return indicator.Series{}, nil, err
	}
	if len(rows) == 0 {
		return indicator.Series{}, nil, fmt.Errorf("%w: %s", ErrNoPriceData, symbol)
	}

	pts := make([]indicator.PricePoint, len(rows))
	times := make([]time.Time, len(rows))
	for i, r := range rows {
		pts[i] = indicator.PricePoint{
			Time:   r.Date,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
		times[i] = r.Date
	}

	series, err := indicator.NewSeries(pts)
	if err != nil {
		return indicator.Series{}, nil, fmt.Errorf("stored prices for %s: %w", symbol, err)
	}
	return series, times, nil
}

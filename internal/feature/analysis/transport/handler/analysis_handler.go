// Package handler は指標計算フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/analysis/indicator"
	"stock_analysis/internal/feature/analysis/usecase"
)

// AnalysisUsecase は指標計算のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	ComputeIndicators(ctx context.Context, symbol string, from, to time.Time, params usecase.IndicatorParams) (*usecase.Analysis, error)
	Summarize(ctx context.Context, symbol string, from, to time.Time) (*usecase.Stats, error)
}

// AnalysisHandler は指標計算のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// GetIndicatorsHandler は銘柄・期間・指標パラメータを受け取り、
// 計算結果をJSONで返します。ウォームアップ区間の値はnullになります。
//
// エンドポイント例:
// GET /stocks/:symbol/indicators?sma=5,20&rsi=14&macd=12,26,9&bbands=20,2&atr=14
//
// 指標パラメータを1つも指定しない場合は、チャート画面の初期状態と同じ
// RSI(14)とボリンジャーバンド(20, 2σ)が計算されます。
func (h *AnalysisHandler) GetIndicatorsHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	params, err := parseIndicatorParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.uc.ComputeIndicators(c.Request.Context(), symbol, from, to, params)
	switch {
	case errors.Is(err, usecase.ErrNoPriceData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no price data for symbol"})
		return
	case errors.Is(err, indicator.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("indicator computation failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "indicator computation failed"})
		return
	}

	c.JSON(http.StatusOK, toIndicatorsResponse(result))
}

// GetStatsHandler は銘柄・期間のOHLCV要約統計をJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/stats?start=2021-01-01&end=2021-06-30
func (h *AnalysisHandler) GetStatsHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	stats, err := h.uc.Summarize(c.Request.Context(), symbol, from, to)
	switch {
	case errors.Is(err, usecase.ErrNoPriceData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no price data for symbol"})
		return
	case err != nil:
		slog.Error("stats computation failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "stats computation failed"})
		return
	}

	out := api.StatsResponse{Symbol: stats.Symbol, Columns: make(map[string]api.ColumnStats, len(stats.Columns))}
	for name, s := range stats.Columns {
		out.Columns[name] = api.ColumnStats{
			Count:  s.Count,
			Mean:   s.Mean,
			Std:    floatPtr(s.Std),
			Min:    s.Min,
			P25:    s.P25,
			Median: s.Median,
			P75:    s.P75,
			Max:    s.Max,
		}
	}
	c.JSON(http.StatusOK, out)
}

// parseIndicatorParams は指標関連のクエリパラメータをパースします。
func parseIndicatorParams(c *gin.Context) (usecase.IndicatorParams, error) {
	var params usecase.IndicatorParams
	var err error

	if params.SMAPeriods, err = parseIntList(c.Query("sma"), "sma"); err != nil {
		return params, err
	}
	if params.EMAPeriods, err = parseIntList(c.Query("ema"), "ema"); err != nil {
		return params, err
	}

	if s := c.Query("rsi"); s != "" {
		if params.RSIPeriod, err = parsePositiveInt(s, "rsi"); err != nil {
			return params, err
		}
	}
	if s := c.Query("atr"); s != "" {
		if params.ATRPeriod, err = parsePositiveInt(s, "atr"); err != nil {
			return params, err
		}
	}

	if s := c.Query("macd"); s != "" {
		parts, err := parseIntList(s, "macd")
		if err != nil {
			return params, err
		}
		if len(parts) != 3 {
			return params, errors.New("macd expects three comma-separated periods: fast,slow,signal")
		}
		params.MACD = &usecase.MACDParams{Fast: parts[0], Slow: parts[1], Signal: parts[2]}
	}

	if s := c.Query("bbands"); s != "" {
		parts := strings.SplitN(s, ",", 2)
		period, err := parsePositiveInt(parts[0], "bbands period")
		if err != nil {
			return params, err
		}
		mult := 2.0
		if len(parts) == 2 {
			mult, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return params, errors.New("bbands expects period[,stddev-multiplier]")
			}
		}
		params.Bollinger = &usecase.BollingerParams{Period: period, Mult: mult}
	}

	return params, nil
}

// parseIntList は "5,20,50" 形式のクエリ値を正の整数リストにパースします。
func parseIntList(s, name string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := parsePositiveInt(p, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parsePositiveInt(s, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, errors.New(name + " expects a positive integer period")
	}
	return v, nil
}

// parseDateRange はstart/endクエリパラメータをパースします。
// 不正な形式の場合は400を書き込み、okにfalseを返します。
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	const layout = "2006-01-02"

	if s := c.Query("start"); s != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
			return from, to, false
		}
		from = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid end date, expected YYYY-MM-DD"})
			return from, to, false
		}
		to = t
	}
	return from, to, true
}

// toIndicatorsResponse は計算結果をJSON DTOへ変換します。
// NaN（ウォームアップ区間）はnilポインタとなり、JSONではnullになります。
func toIndicatorsResponse(a *usecase.Analysis) api.IndicatorsResponse {
	out := api.IndicatorsResponse{
		Symbol: a.Symbol,
		Dates:  make([]string, len(a.Times)),
	}
	for i, t := range a.Times {
		out.Dates[i] = t.UTC().Format("2006-01-02")
	}

	if len(a.SMA) > 0 {
		out.SMA = make(map[string][]*float64, len(a.SMA))
		for n, s := range a.SMA {
			out.SMA[strconv.Itoa(n)] = seriesValues(s)
		}
	}
	if len(a.EMA) > 0 {
		out.EMA = make(map[string][]*float64, len(a.EMA))
		for n, s := range a.EMA {
			out.EMA[strconv.Itoa(n)] = seriesValues(s)
		}
	}
	if a.RSI != nil {
		out.RSI = seriesValues(a.RSI)
	}
	if a.MACD != nil {
		m := &api.MACDResponse{
			MACD:      make([]*float64, len(a.MACD)),
			Signal:    make([]*float64, len(a.MACD)),
			Histogram: make([]*float64, len(a.MACD)),
		}
		for i, p := range a.MACD {
			m.MACD[i] = floatPtr(p.MACD)
			m.Signal[i] = floatPtr(p.Signal)
			m.Histogram[i] = floatPtr(p.Histogram)
		}
		out.MACD = m
	}
	if a.Bollinger != nil {
		b := &api.BBandsResponse{
			Upper:  make([]*float64, len(a.Bollinger)),
			Middle: make([]*float64, len(a.Bollinger)),
			Lower:  make([]*float64, len(a.Bollinger)),
		}
		for i, p := range a.Bollinger {
			b.Upper[i] = floatPtr(p.Upper)
			b.Middle[i] = floatPtr(p.Middle)
			b.Lower[i] = floatPtr(p.Lower)
		}
		out.BBands = b
	}
	if a.ATR != nil {
		out.ATR = seriesValues(a.ATR)
	}
	return out
}

func seriesValues(s indicator.IndicatorSeries) []*float64 {
	out := make([]*float64, len(s))
	for i, p := range s {
		out[i] = floatPtr(p.Value)
	}
	return out
}

// floatPtr はNaNをnilに写します（JSONのnull表現）。
func floatPtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

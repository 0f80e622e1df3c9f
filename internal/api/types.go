// Package api defines the request/response DTOs shared by the HTTP handlers.
package api

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries an issued JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the user-registration payload.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StockResponse はレスポンス用の銘柄DTOです。
type StockResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateStockRequest は銘柄登録のリクエストDTOです。
type CreateStockRequest struct {
	Symbol      string `json:"symbol" binding:"required,max=10"`
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description"`
}

// PriceResponse は日次価格データのレスポンスDTOです。
type PriceResponse struct {
	Date     string   `json:"date"` // YYYY-MM-DD
	Open     float64  `json:"open"`
	High     float64  `json:"high"`
	Low      float64  `json:"low"`
	Close    float64  `json:"close"`
	AdjClose *float64 `json:"adj_close,omitempty"`
	Volume   int64    `json:"volume"`
}

// ImportResponse はCSVインポート結果のレスポンスDTOです。
type ImportResponse struct {
	Symbol   string `json:"symbol"`
	Imported int    `json:"imported"`
}

// IndicatorsResponse は指標計算結果のレスポンスDTOです。
// 値は入力系列とインデックスが揃った列指向の配列で、ウォームアップ区間は
// nullになります。
type IndicatorsResponse struct {
	Symbol string                `json:"symbol"`
	Dates  []string              `json:"dates"`
	SMA    map[string][]*float64 `json:"sma,omitempty"` // キーは期間（例: "20"）
	EMA    map[string][]*float64 `json:"ema,omitempty"`
	RSI    []*float64            `json:"rsi,omitempty"`
	MACD   *MACDResponse         `json:"macd,omitempty"`
	BBands *BBandsResponse       `json:"bbands,omitempty"`
	ATR    []*float64            `json:"atr,omitempty"`
}

// MACDResponse はMACDの3系列を保持します。
type MACDResponse struct {
	MACD      []*float64 `json:"macd"`
	Signal    []*float64 `json:"signal"`
	Histogram []*float64 `json:"histogram"`
}

// BBandsResponse はボリンジャーバンドの3系列を保持します。
type BBandsResponse struct {
	Upper  []*float64 `json:"upper"`
	Middle []*float64 `json:"middle"`
	Lower  []*float64 `json:"lower"`
}

// ColumnStats は1カラム分の要約統計のレスポンスDTOです。
type ColumnStats struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std"` // 標本数1ではnull
	Min    float64  `json:"min"`
	P25    float64  `json:"p25"`
	Median float64  `json:"median"`
	P75    float64  `json:"p75"`
	Max    float64  `json:"max"`
}

// StatsResponse は銘柄の要約統計のレスポンスDTOです。
type StatsResponse struct {
	Symbol  string                 `json:"symbol"`
	Columns map[string]ColumnStats `json:"columns"` // open/high/low/close/volume
}

// SavedAnalysisRequest は分析設定保存のリクエストDTOです。
type SavedAnalysisRequest struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Symbol     string  `json:"symbol" binding:"required,max=10"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD、空なら無制限
	EndDate    string  `json:"end_date"`
	ChartType  string  `json:"chart_type"`
	ShowMA     bool    `json:"show_ma"`
	MAPeriods  []int   `json:"ma_periods"`
	ShowRSI    bool    `json:"show_rsi"`
	RSIPeriod  int     `json:"rsi_period"`
	ShowMACD   bool    `json:"show_macd"`
	MACDFast   int     `json:"macd_fast"`
	MACDSlow   int     `json:"macd_slow"`
	MACDSignal int     `json:"macd_signal"`
	ShowBBands bool    `json:"show_bbands"`
	BBPeriod   int     `json:"bbands_period"`
	BBStd      float64 `json:"bbands_std"`
}

// SavedAnalysisResponse は保存済み分析設定のレスポンスDTOです。
type SavedAnalysisResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Symbol     string  `json:"symbol"`
	StartDate  string  `json:"start_date,omitempty"`
	EndDate    string  `json:"end_date,omitempty"`
	ChartType  string  `json:"chart_type,omitempty"`
	ShowMA     bool    `json:"show_ma"`
	MAPeriods  []int   `json:"ma_periods,omitempty"`
	ShowRSI    bool    `json:"show_rsi"`
	RSIPeriod  int     `json:"rsi_period,omitempty"`
	ShowMACD   bool    `json:"show_macd"`
	MACDFast   int     `json:"macd_fast,omitempty"`
	MACDSlow   int     `json:"macd_slow,omitempty"`
	MACDSignal int     `json:"macd_signal,omitempty"`
	ShowBBands bool    `json:"show_bbands"`
	BBPeriod   int     `json:"bbands_period,omitempty"`
	BBStd      float64 `json:"bbands_std,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

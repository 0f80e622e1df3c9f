// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/prices/domain/entity"
	"stock_analysis/internal/feature/prices/usecase"
)

// PricesUsecase は価格データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetPrices(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error)
}

// ImportUsecase はCSVインポートのユースケースインターフェースを定義します。
type ImportUsecase interface {
	ImportCSV(ctx context.Context, symbol string, r io.Reader) (int, error)
}

// PriceHandler は価格データのHTTPリクエストを処理します。
type PriceHandler struct {
	prices   PricesUsecase
	importer ImportUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(prices PricesUsecase, importer ImportUsecase) *PriceHandler {
	return &PriceHandler{prices: prices, importer: importer}
}

// GetPricesHandler は銘柄コードと期間を受け取り、価格データをJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/prices?start=2021-01-01&end=2021-06-30&limit=500
func (h *PriceHandler) GetPricesHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	points, err := h.prices.GetPrices(c.Request.Context(), symbol, from, to, limit)
	if err != nil {
		slog.Error("failed to load prices", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load prices"})
		return
	}

	out := make([]api.PriceResponse, 0, len(points))
	for _, p := range points {
		out = append(out, api.PriceResponse{
			Date:     p.Date.UTC().Format("2006-01-02"),
			Open:     p.Open,
			High:     p.High,
			Low:      p.Low,
			Close:    p.Close,
			AdjClose: p.AdjClose,
			Volume:   p.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ImportHandler はマルチパートフォームのCSVファイルを受け取り、
// 指定された銘柄の価格データとして取り込みます。
//
// エンドポイント例:
// POST /stocks/:symbol/prices/import  (form field: "file")
func (h *PriceHandler) ImportHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing CSV file upload"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to open uploaded file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	n, err := h.importer.ImportCSV(c.Request.Context(), symbol, f)
	if err != nil {
		// フォーマット不正はクライアント起因、それ以外はサーバー起因として扱う
		if errors.Is(err, usecase.ErrInvalidCSV) || errors.Is(err, usecase.ErrEmptyCSV) {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("CSV import failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "import failed"})
		return
	}

	c.JSON(http.StatusCreated, api.ImportResponse{Symbol: symbol, Imported: n})
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

// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_analysis/internal/api"
	"stock_analysis/internal/feature/stocks/domain/entity"
	"stock_analysis/internal/feature/stocks/usecase"
)

// StockUsecase は銘柄マスタ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockUsecase interface {
	ListStocks(ctx context.Context) ([]entity.Stock, error)
	GetStock(ctx context.Context, symbol string) (*entity.Stock, error)
	CreateStock(ctx context.Context, symbol, name, description string) (*entity.Stock, error)
}

// StockHandler は銘柄マスタのHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List は登録済みの全銘柄をJSONで返します。
//
// エンドポイント例:
// GET /stocks
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.uc.ListStocks(c.Request.Context())
	if err != nil {
		slog.Error("failed to list stocks", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list stocks"})
		return
	}

	out := make([]api.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, api.StockResponse{Symbol: s.Symbol, Name: s.Name, Description: s.Description})
	}
	c.JSON(http.StatusOK, out)
}

// Create は新しい銘柄を登録します。
//
// エンドポイント例:
// POST /stocks  {"symbol": "AAPL", "name": "Apple Inc."}
func (h *StockHandler) Create(c *gin.Context) {
	var req api.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	stock, err := h.uc.CreateStock(c.Request.Context(), req.Symbol, req.Name, req.Description)
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrSymbolAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("failed to create stock", "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create stock"})
		return
	}

	c.JSON(http.StatusCreated, api.StockResponse{Symbol: stock.Symbol, Name: stock.Name, Description: stock.Description})
}

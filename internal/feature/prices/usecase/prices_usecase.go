// Package usecase は価格データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"stock_analysis/internal/feature/prices/domain/entity"
)

const (
	// DefaultLimit は価格クエリのデフォルト返却件数です。
	DefaultLimit = 500
	// MaxLimit は価格クエリの最大返却件数です。
	MaxLimit = 10000
)

// PriceRepository は価格データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// FindRange は指定された銘柄の価格データを日付昇順で返します。
	// from/to のゼロ値はその側の範囲制限なしを意味します。
	FindRange(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error)

	// UpsertBatch は価格データを一括で挿入または更新します。
	// (symbol, date) の組が既に存在する行は上書きされます。
	UpsertBatch(ctx context.Context, points []entity.PricePoint) error
}

// pricesUsecase は価格データ操作のユースケースを定義します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// GetPrices は指定された銘柄と期間の価格データを日付昇順で取得します。
func (pu *pricesUsecase) GetPrices(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return pu.prices.FindRange(ctx, symbol, from, to, limit)
}

// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_analysis/internal/feature/prices/domain/entity"
	"stock_analysis/internal/feature/prices/usecase"
)

// priceGorm はPriceRepositoryインターフェースのgorm実装です。
type priceGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceGorm)(nil)

// NewPriceRepository は指定されたDB接続でpriceGormリポジトリの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

// PriceModel は価格データのgormモデルです。
// (symbol, date) の複合ユニーク制約で同一日の重複登録を防ぎます。
type PriceModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:10;not null;uniqueIndex:price_sym_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:price_sym_date,priority:2"`

	Open     float64  `gorm:"not null"`
	High     float64  `gorm:"not null"`
	Low      float64  `gorm:"not null"`
	Close    float64  `gorm:"not null"`
	AdjClose *float64
	Volume   int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
}

func (PriceModel) TableName() string {
	return "stock_prices"
}

func toModel(e entity.PricePoint) PriceModel {
	return PriceModel{
		Symbol:   e.Symbol,
		Date:     e.Date,
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		AdjClose: e.AdjClose,
		Volume:   e.Volume,
	}
}

func toEntity(m PriceModel) entity.PricePoint {
	return entity.PricePoint{
		Symbol:   m.Symbol,
		Date:     m.Date,
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		AdjClose: m.AdjClose,
		Volume:   m.Volume,
	}
}

// UpsertBatch は価格データを一括で挿入し、(symbol, date) が衝突した行は
// 価格カラムのみを上書きします。
func (r *priceGorm) UpsertBatch(ctx context.Context, points []entity.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(points))
	for _, e := range points {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "adj_close", "volume"}),
	}).Create(&ms).Error
}

// FindRange は指定された銘柄の価格データを日付昇順で検索します。
// from/to のゼロ値はその側の範囲制限なしを意味します。
func (r *priceGorm) FindRange(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error) {
	var rows []PriceModel
	q := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("`date` ASC")
	if !from.IsZero() {
		q = q.Where("`date` >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("`date` <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.PricePoint, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

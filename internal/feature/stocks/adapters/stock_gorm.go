// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stock_analysis/internal/feature/stocks/domain/entity"
	"stock_analysis/internal/feature/stocks/usecase"
)

// stockGorm はStockRepositoryインターフェースのgorm実装です。
type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// List はシンボル順にすべての銘柄を返します。
func (r *stockGorm) List(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).
		Order("symbol ASC").
		Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindBySymbol は指定されたシンボルの銘柄を検索します。
// 存在しない場合はErrStockNotFoundを返します。
func (r *stockGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", usecase.ErrStockNotFound, symbol)
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// Create は新しい銘柄を登録します。シンボルが重複している場合は
// ErrSymbolAlreadyExistsを返します。
func (r *stockGorm) Create(ctx context.Context, stock *entity.Stock) error {
	err := r.db.WithContext(ctx).Create(stock).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", usecase.ErrSymbolAlreadyExists, stock.Symbol)
	}
	return err
}

// Package usecase implements the business logic for stock master data.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_analysis/internal/feature/stocks/domain/entity"
)

// StockRepository abstracts the persistence layer for stock master data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockRepository interface {
	// List returns all stocks ordered by symbol.
	List(ctx context.Context) ([]entity.Stock, error)

	// FindBySymbol retrieves a stock by its ticker symbol.
	// Returns ErrStockNotFound when no such stock exists.
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)

	// Create persists a new stock. Returns an error when the symbol
	// already exists.
	Create(ctx context.Context, stock *entity.Stock) error
}

// StockUsecase provides business logic for stock master operations.
type StockUsecase struct {
	repo StockRepository
}

// NewStockUsecase creates a new StockUsecase with the given repository.
func NewStockUsecase(r StockRepository) *StockUsecase {
	return &StockUsecase{repo: r}
}

// ListStocks returns all registered stocks.
func (u *StockUsecase) ListStocks(ctx context.Context) ([]entity.Stock, error) {
	return u.repo.List(ctx)
}

// GetStock returns the stock registered under the given symbol.
func (u *StockUsecase) GetStock(ctx context.Context, symbol string) (*entity.Stock, error) {
	return u.repo.FindBySymbol(ctx, normalizeSymbol(symbol))
}

// CreateStock validates and registers a new stock.
func (u *StockUsecase) CreateStock(ctx context.Context, symbol, name, description string) (*entity.Stock, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}
	if len(symbol) > 10 {
		return nil, fmt.Errorf("%w: %q exceeds 10 characters", ErrInvalidSymbol, symbol)
	}

	stock := &entity.Stock{Symbol: symbol, Name: name, Description: description}
	if err := u.repo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// Exists reports whether a stock with the given symbol is registered.
// It satisfies the prices feature's StockRegistry interface.
func (u *StockUsecase) Exists(ctx context.Context, symbol string) (bool, error) {
	_, err := u.repo.FindBySymbol(ctx, normalizeSymbol(symbol))
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Register creates a minimal stock row for the given symbol.
// It satisfies the prices feature's StockRegistry interface.
func (u *StockUsecase) Register(ctx context.Context, symbol, name string) error {
	_, err := u.CreateStock(ctx, symbol, name, "")
	return err
}

// normalizeSymbol canonicalizes user-supplied ticker symbols.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

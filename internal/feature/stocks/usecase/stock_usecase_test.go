package usecase

import (
	"context"
	"errors"
	"testing"

	"stock_analysis/internal/feature/stocks/domain/entity"
)

// mockStockRepository はStockRepositoryインターフェースのモック実装です。
type mockStockRepository struct {
	ListFunc         func(ctx context.Context) ([]entity.Stock, error)
	FindBySymbolFunc func(ctx context.Context, symbol string) (*entity.Stock, error)
	CreateFunc       func(ctx context.Context, stock *entity.Stock) error
}

func (m *mockStockRepository) List(ctx context.Context) ([]entity.Stock, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockStockRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	if m.FindBySymbolFunc != nil {
		return m.FindBySymbolFunc(ctx, symbol)
	}
	return nil, ErrStockNotFound
}

func (m *mockStockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, stock)
	}
	return nil
}

func TestStockUsecase_CreateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the symbol before persisting", func(t *testing.T) {
		var created *entity.Stock
		repo := &mockStockRepository{
			CreateFunc: func(ctx context.Context, stock *entity.Stock) error {
				created = stock
				return nil
			},
		}
		uc := NewStockUsecase(repo)

		stock, err := uc.CreateStock(ctx, " aapl ", "Apple Inc.", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stock.Symbol != "AAPL" {
			t.Errorf("expected normalized symbol AAPL, got %s", stock.Symbol)
		}
		if created == nil || created.Symbol != "AAPL" {
			t.Errorf("repository received unexpected stock: %+v", created)
		}
	})

	t.Run("rejects invalid symbols", func(t *testing.T) {
		tests := []struct {
			name   string
			symbol string
		}{
			{name: "empty", symbol: ""},
			{name: "whitespace only", symbol: "   "},
			{name: "too long", symbol: "TOOLONGSYMBOL"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewStockUsecase(&mockStockRepository{
					CreateFunc: func(ctx context.Context, stock *entity.Stock) error {
						t.Error("Create should not be called for an invalid symbol")
						return nil
					},
				})
				_, err := uc.CreateStock(ctx, tt.symbol, "", "")
				if !errors.Is(err, ErrInvalidSymbol) {
					t.Errorf("expected ErrInvalidSymbol, got %v", err)
				}
			})
		}
	})

	t.Run("propagates duplicate symbol errors", func(t *testing.T) {
		repo := &mockStockRepository{
			CreateFunc: func(ctx context.Context, stock *entity.Stock) error {
				return ErrSymbolAlreadyExists
			},
		}
		uc := NewStockUsecase(repo)

		_, err := uc.CreateStock(ctx, "AAPL", "", "")
		if !errors.Is(err, ErrSymbolAlreadyExists) {
			t.Errorf("expected ErrSymbolAlreadyExists, got %v", err)
		}
	})
}

func TestStockUsecase_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("registered symbol", func(t *testing.T) {
		repo := &mockStockRepository{
			FindBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Stock, error) {
				return &entity.Stock{Symbol: symbol}, nil
			},
		}
		uc := NewStockUsecase(repo)

		ok, err := uc.Exists(ctx, "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected true for a registered symbol")
		}
	})

	t.Run("unknown symbol is not an error", func(t *testing.T) {
		uc := NewStockUsecase(&mockStockRepository{})

		ok, err := uc.Exists(ctx, "NOPE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected false for an unknown symbol")
		}
	})

	t.Run("repository failures propagate", func(t *testing.T) {
		wantErr := errors.New("db down")
		repo := &mockStockRepository{
			FindBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Stock, error) {
				return nil, wantErr
			},
		}
		uc := NewStockUsecase(repo)

		_, err := uc.Exists(ctx, "AAPL")
		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stock_analysis/internal/feature/prices/domain/entity"
)

// mockPriceRepository はPriceRepositoryインターフェースのモック実装です。
type mockPriceRepository struct {
	FindRangeFunc   func(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error)
	UpsertBatchFunc func(ctx context.Context, points []entity.PricePoint) error
}

func (m *mockPriceRepository) FindRange(ctx context.Context, symbol string, from, to time.Time, limit int) ([]entity.PricePoint, error) {
	if m.FindRangeFunc != nil {
		return m.FindRangeFunc(ctx, symbol, from, to, limit)
	}
	return nil, nil
}

func (m *mockPriceRepository) UpsertBatch(ctx context.Context, points []entity.PricePoint) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, points)
	}
	return nil
}

// mockStockRegistry はStockRegistryインターフェースのモック実装です。
type mockStockRegistry struct {
	ExistsFunc   func(ctx context.Context, symbol string) (bool, error)
	RegisterFunc func(ctx context.Context, symbol, name string) error
}

func (m *mockStockRegistry) Exists(ctx context.Context, symbol string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, symbol)
	}
	return true, nil
}

func (m *mockStockRegistry) Register(ctx context.Context, symbol, name string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, symbol, name)
	}
	return nil
}

func TestImportUsecase_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a full CSV with optional columns", func(t *testing.T) {
		csvData := strings.Join([]string{
			"Date,Open,High,Low,Close,Volume,Adjusted Close",
			"2024-01-04,102,106,101,105,1200,104.5",
			"2024-01-03,100,104,99,103,1000,102.5",
		}, "\n")

		var got []entity.PricePoint
		repo := &mockPriceRepository{
			UpsertBatchFunc: func(ctx context.Context, points []entity.PricePoint) error {
				got = points
				return nil
			},
		}
		uc := NewImportUsecase(repo, &mockStockRegistry{})

		n, err := uc.ImportCSV(ctx, "AAPL", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 rows imported, got %d", n)
		}

		// 行は日付昇順に並べ替えられる
		if len(got) != 2 {
			t.Fatalf("expected 2 points upserted, got %d", len(got))
		}
		if !got[0].Date.Before(got[1].Date) {
			t.Errorf("points are not sorted ascending: %v, %v", got[0].Date, got[1].Date)
		}

		first := got[0]
		if first.Symbol != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", first.Symbol)
		}
		wantDate := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
		if !first.Date.Equal(wantDate) {
			t.Errorf("expected date %v, got %v", wantDate, first.Date)
		}
		if first.Open != 100 || first.High != 104 || first.Low != 99 || first.Close != 103 {
			t.Errorf("unexpected OHLC: %+v", first)
		}
		if first.Volume != 1000 {
			t.Errorf("expected volume 1000, got %d", first.Volume)
		}
		if first.AdjClose == nil || *first.AdjClose != 102.5 {
			t.Errorf("unexpected adjusted close: %v", first.AdjClose)
		}
	})

	t.Run("accepts minimal header and slash dates", func(t *testing.T) {
		csvData := strings.Join([]string{
			"date,Open,High,Low,Close",
			"2024/01/03,100,104,99,103",
		}, "\n")

		var got []entity.PricePoint
		repo := &mockPriceRepository{
			UpsertBatchFunc: func(ctx context.Context, points []entity.PricePoint) error {
				got = points
				return nil
			},
		}
		uc := NewImportUsecase(repo, &mockStockRegistry{})

		n, err := uc.ImportCSV(ctx, "7203", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 row imported, got %d", n)
		}
		if got[0].Volume != 0 || got[0].AdjClose != nil {
			t.Errorf("optional columns should stay zero-valued: %+v", got[0])
		}
	})

	t.Run("registers unknown symbols before upserting", func(t *testing.T) {
		csvData := "Date,Open,High,Low,Close\n2024-01-03,1,2,0.5,1.5\n"

		registered := false
		stocks := &mockStockRegistry{
			ExistsFunc: func(ctx context.Context, symbol string) (bool, error) {
				return false, nil
			},
			RegisterFunc: func(ctx context.Context, symbol, name string) error {
				if symbol != "NEW" {
					t.Errorf("expected symbol NEW, got %s", symbol)
				}
				registered = true
				return nil
			},
		}
		uc := NewImportUsecase(&mockPriceRepository{}, stocks)

		if _, err := uc.ImportCSV(ctx, "NEW", strings.NewReader(csvData)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !registered {
			t.Error("expected unknown symbol to be registered")
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		tests := []struct {
			name    string
			csvData string
			wantErr error
		}{
			{
				name:    "empty file",
				csvData: "",
				wantErr: ErrEmptyCSV,
			},
			{
				name:    "header only",
				csvData: "Date,Open,High,Low,Close\n",
				wantErr: ErrEmptyCSV,
			},
			{
				name:    "missing required columns",
				csvData: "Date,Open,Close\n2024-01-03,100,103\n",
				wantErr: ErrInvalidCSV,
			},
			{
				name:    "unparseable date",
				csvData: "Date,Open,High,Low,Close\nnot-a-date,100,104,99,103\n",
				wantErr: ErrInvalidCSV,
			},
			{
				name:    "unparseable close",
				csvData: "Date,Open,High,Low,Close\n2024-01-03,100,104,99,abc\n",
				wantErr: ErrInvalidCSV,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewImportUsecase(&mockPriceRepository{}, &mockStockRegistry{})
				_, err := uc.ImportCSV(ctx, "AAPL", strings.NewReader(tt.csvData))
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		csvData := "Date,Open,High,Low,Close\n2024-01-03,1,2,0.5,1.5\n"
		wantErr := errors.New("db down")
		repo := &mockPriceRepository{
			UpsertBatchFunc: func(ctx context.Context, points []entity.PricePoint) error {
				return wantErr
			},
		}
		uc := NewImportUsecase(repo, &mockStockRegistry{})

		_, err := uc.ImportCSV(ctx, "AAPL", strings.NewReader(csvData))
		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
	})
}

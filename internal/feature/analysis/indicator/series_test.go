package indicator

import (
	"errors"
	"testing"
	"time"
)

// mkSeries は終値のリストから日次のテスト用Seriesを生成します。
func mkSeries(t *testing.T, closes ...float64) Series {
	t.Helper()
	base := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	pts := make([]PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = PricePoint{
			Time:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	s, err := NewSeries(pts)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return s
}

// TestNewSeries_RejectsUnsortedInput はタイムスタンプが厳密な昇順でない場合に
// ErrUnsortedInputを返すことを検証します。
func TestNewSeries_RejectsUnsortedInput(t *testing.T) {
	base := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offsets []int // 日単位のオフセット
		wantErr bool
	}{
		{name: "ascending", offsets: []int{0, 1, 2, 3}, wantErr: false},
		{name: "descending pair", offsets: []int{0, 2, 1}, wantErr: true},
		{name: "duplicate timestamp", offsets: []int{0, 1, 1}, wantErr: true},
		{name: "empty", offsets: nil, wantErr: false},
		{name: "single point", offsets: []int{0}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := make([]PricePoint, len(tt.offsets))
			for i, d := range tt.offsets {
				pts[i] = PricePoint{Time: base.AddDate(0, 0, d), Close: 100}
			}
			_, err := NewSeries(pts)
			if tt.wantErr && !errors.Is(err, ErrUnsortedInput) {
				t.Fatalf("expected ErrUnsortedInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestNewSeries_CopiesInput は呼び出し元のスライスを変更しても
// Seriesに影響しないことを検証します。
func TestNewSeries_CopiesInput(t *testing.T) {
	pts := []PricePoint{
		{Time: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), Close: 100},
		{Time: time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), Close: 101},
	}
	s, err := NewSeries(pts)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}

	pts[0].Close = -1

	if got := s.At(0).Close; got != 100 {
		t.Errorf("series was mutated through the caller's slice: got %v, want 100", got)
	}
}

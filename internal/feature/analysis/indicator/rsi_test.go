package indicator

import (
	"errors"
	"math"
	"testing"
)

// TestRSI_MonotonicSeries は単調増加系列でRSIが100に、単調減少系列で
// 0に達することを検証します（Wilder方式では損失/利得の平均が厳密に0になる）。
func TestRSI_MonotonicSeries(t *testing.T) {
	const period = 14
	n := 40

	t.Run("strictly increasing approaches 100", func(t *testing.T) {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		out, err := RSI(mkSeries(t, closes...), period)
		if err != nil {
			t.Fatalf("RSI: %v", err)
		}
		for i := period; i < n; i++ {
			if got := out[i].Value; math.Abs(got-100) > eps {
				t.Errorf("index %d: got %v, want 100", i, got)
			}
		}
	})

	t.Run("strictly decreasing approaches 0", func(t *testing.T) {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 - float64(i)
		}
		out, err := RSI(mkSeries(t, closes...), period)
		if err != nil {
			t.Fatalf("RSI: %v", err)
		}
		for i := period; i < n; i++ {
			if got := out[i].Value; math.Abs(got) > eps {
				t.Errorf("index %d: got %v, want 0", i, got)
			}
		}
	})
}

// TestRSI_WarmupGap は最初の定義済み値がインデックスperiodに現れることを
// 検証します（Δはインデックス0で未定義のため）。
func TestRSI_WarmupGap(t *testing.T) {
	const period = 5
	s := mkSeries(t, 10, 11, 10, 12, 11, 13, 12, 14)

	out, err := RSI(s, period)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}
	for i := 0; i < period; i++ {
		if out[i].Valid() {
			t.Errorf("index %d: expected warm-up NaN, got %v", i, out[i].Value)
		}
	}
	if !out[period].Valid() {
		t.Errorf("index %d: expected first defined value, got NaN", period)
	}
}

// TestRSI_WilderSmoothing は最初の平均が単純平均、以降がWilder平滑化で
// あることを手計算の値と比較して検証します。
func TestRSI_WilderSmoothing(t *testing.T) {
	// Δ: +1, -2, +3, -1  → period=4 での初期平均:
	//   avgGain = (1+0+3+0)/4 = 1.0, avgLoss = (0+2+0+1)/4 = 0.75
	s := mkSeries(t, 10, 11, 9, 12, 11, 13)
	const period = 4

	out, err := RSI(s, period)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}

	rs := 1.0 / 0.75
	want := 100 - 100/(1+rs)
	if got := out[4].Value; math.Abs(got-want) > eps {
		t.Errorf("index 4: got %v, want %v", got, want)
	}

	// 次のステップ: Δ=+2 → avgGain=(1.0*3+2)/4=1.25, avgLoss=(0.75*3+0)/4=0.5625
	rs = 1.25 / 0.5625
	want = 100 - 100/(1+rs)
	if got := out[5].Value; math.Abs(got-want) > eps {
		t.Errorf("index 5: got %v, want %v", got, want)
	}
}

// TestRSI_FlatSeries は値動きのない系列でAvgLossが0になり、
// ゼロ除算を避けてRSI=100が返ることを検証します。
func TestRSI_FlatSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50
	}
	out, err := RSI(mkSeries(t, closes...), 14)
	if err != nil {
		t.Fatalf("RSI: %v", err)
	}
	for i := 14; i < len(closes); i++ {
		if got := out[i].Value; got != 100 {
			t.Errorf("index %d: got %v, want 100", i, got)
		}
	}
}

// TestRSI_Errors は不正なパラメータと空入力のエラーを検証します。
func TestRSI_Errors(t *testing.T) {
	if _, err := RSI(mkSeries(t, 1, 2), -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative period: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := RSI(mkSeries(t), 14); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty series: expected ErrEmptyInput, got %v", err)
	}
}

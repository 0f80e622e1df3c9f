package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock_analysis/internal/feature/prices/domain/entity"
)

// dateLayouts はCSVのDate列として受け付ける形式です。
var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006-01-02 15:04:05"}

// StockRegistry は銘柄マスタへの最小限のアクセスを抽象化します。
// インポート時に未登録の銘柄を自動登録するために使用します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRegistry interface {
	// Exists は指定された銘柄コードが登録済みかどうかを返します。
	Exists(ctx context.Context, symbol string) (bool, error)
	// Register は新しい銘柄を登録します。
	Register(ctx context.Context, symbol, name string) error
}

// ImportUsecase はCSVファイルから価格データを取り込み、
// データベースに永続化するユースケースを定義します。
type ImportUsecase struct {
	prices PriceRepository
	stocks StockRegistry
}

// NewImportUsecase はImportUsecaseの新しいインスタンスを生成します。
func NewImportUsecase(prices PriceRepository, stocks StockRegistry) *ImportUsecase {
	return &ImportUsecase{prices: prices, stocks: stocks}
}

// csvColumns はヘッダー検証後の列インデックスを保持します。
// 省略可能な列は-1になります。
type csvColumns struct {
	date     int
	open     int
	high     int
	low      int
	close    int
	volume   int
	adjClose int
}

// ImportCSV はrからCSVを読み込み、検証のうえ指定された銘柄の価格データとして
// 一括登録します。取り込んだ行数を返します。
//
// 期待フォーマット（元データと同じ）:
//
//	Date,Open,High,Low,Close[,Volume][,Adjusted Close]
//
// Date列は "Date"/"date" のどちらでも受け付け、行は日付昇順に並べ替えてから
// 登録します。
func (iu *ImportUsecase) ImportCSV(ctx context.Context, symbol string, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return 0, ErrEmptyCSV
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return 0, err
	}

	var points []entity.PricePoint
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}

		p, err := parseRow(record, cols, line)
		if err != nil {
			return 0, err
		}
		p.Symbol = symbol
		points = append(points, p)
	}

	if len(points) == 0 {
		return 0, ErrEmptyCSV
	}

	// 元データは日付順とは限らないため、登録前に昇順へ並べ替える
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if err := iu.ensureStock(ctx, symbol); err != nil {
		return 0, err
	}
	if err := iu.prices.UpsertBatch(ctx, points); err != nil {
		return 0, err
	}

	slog.Info("CSV import completed", "symbol", symbol, "rows", len(points))
	return len(points), nil
}

// ensureStock は銘柄マスタに未登録の場合のみ銘柄を登録します。
func (iu *ImportUsecase) ensureStock(ctx context.Context, symbol string) error {
	ok, err := iu.stocks.Exists(ctx, symbol)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return iu.stocks.Register(ctx, symbol, "")
}

// resolveColumns はヘッダー行を検証し、各列のインデックスを解決します。
func resolveColumns(header []string) (csvColumns, error) {
	cols := csvColumns{date: -1, open: -1, high: -1, low: -1, close: -1, volume: -1, adjClose: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Date", "date":
			cols.date = i
		case "Open":
			cols.open = i
		case "High":
			cols.high = i
		case "Low":
			cols.low = i
		case "Close":
			cols.close = i
		case "Volume":
			cols.volume = i
		case "Adjusted Close", "Adj Close":
			cols.adjClose = i
		}
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, "Date")
	}
	if cols.open < 0 {
		missing = append(missing, "Open")
	}
	if cols.high < 0 {
		missing = append(missing, "High")
	}
	if cols.low < 0 {
		missing = append(missing, "Low")
	}
	if cols.close < 0 {
		missing = append(missing, "Close")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: missing required columns: %s", ErrInvalidCSV, strings.Join(missing, ", "))
	}
	return cols, nil
}

// parseRow は1行分のレコードをPricePointに変換します。
func parseRow(record []string, cols csvColumns, line int) (entity.PricePoint, error) {
	var p entity.PricePoint

	cell := func(idx int, name string) (string, error) {
		if idx >= len(record) {
			return "", fmt.Errorf("%w: line %d: missing %s cell", ErrInvalidCSV, line, name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	dateStr, err := cell(cols.date, "Date")
	if err != nil {
		return p, err
	}
	p.Date, err = parseDate(dateStr)
	if err != nil {
		return p, fmt.Errorf("%w: line %d: invalid Date %q", ErrInvalidCSV, line, dateStr)
	}

	for _, f := range []struct {
		idx  int
		name string
		dst  *float64
	}{
		{cols.open, "Open", &p.Open},
		{cols.high, "High", &p.High},
		{cols.low, "Low", &p.Low},
		{cols.close, "Close", &p.Close},
	} {
		raw, err := cell(f.idx, f.name)
		if err != nil {
			return p, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("%w: line %d: invalid %s %q", ErrInvalidCSV, line, f.name, raw)
		}
		*f.dst = v
	}

	if cols.volume >= 0 {
		raw, err := cell(cols.volume, "Volume")
		if err != nil {
			return p, err
		}
		if raw != "" {
			// 一部のエクスポートは出来高を小数表記で出力するためfloat経由でパース
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("%w: line %d: invalid Volume %q", ErrInvalidCSV, line, raw)
			}
			p.Volume = int64(v)
		}
	}

	if cols.adjClose >= 0 {
		raw, err := cell(cols.adjClose, "Adjusted Close")
		if err != nil {
			return p, err
		}
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("%w: line %d: invalid Adjusted Close %q", ErrInvalidCSV, line, raw)
			}
			p.AdjClose = &v
		}
	}

	return p, nil
}

// parseDate は受け付け可能な日付形式を順に試します。
func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

package usecase

import "errors"

var (
	// ErrInvalidCSV はCSVファイルが期待されるフォーマット
	// （Date, Open, High, Low, Close [, Volume, Adjusted Close]）を
	// 満たしていない場合に返されます。
	ErrInvalidCSV = errors.New("invalid CSV format")

	// ErrEmptyCSV はヘッダー以外のデータ行を含まないCSVに対して返されます。
	ErrEmptyCSV = errors.New("CSV contains no data rows")
)

package usecase

import "errors"

var (
	// ErrNoPriceData は指定された銘柄・期間に価格データが1件も
	// 存在しない場合に返されます。
	ErrNoPriceData = errors.New("no price data for symbol")
)

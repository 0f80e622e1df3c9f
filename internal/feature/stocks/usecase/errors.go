package usecase

import "errors"

var (
	// ErrStockNotFound is returned when no stock is registered under the
	// requested symbol.
	ErrStockNotFound = errors.New("stock not found")

	// ErrSymbolAlreadyExists is returned when registering a symbol that is
	// already present.
	ErrSymbolAlreadyExists = errors.New("symbol already exists")

	// ErrInvalidSymbol is returned for an empty or over-long ticker symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")
)

// IsNotFound reports whether err denotes a missing stock.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStockNotFound)
}

package indicator

import "errors"

// Indicator functions report these errors synchronously; warm-up gaps are
// not errors and are represented as NaN values in the result instead.
var (
	// ErrEmptyInput is returned when a zero-length series is passed to any
	// indicator function.
	ErrEmptyInput = errors.New("indicator: empty input series")

	// ErrInvalidParameter is returned for a non-positive window or period
	// argument. Periods are typed int, so non-integral values cannot occur.
	ErrInvalidParameter = errors.New("indicator: invalid parameter")

	// ErrUnsortedInput is returned by NewSeries when timestamps are not
	// strictly ascending.
	ErrUnsortedInput = errors.New("indicator: timestamps not strictly ascending")
)

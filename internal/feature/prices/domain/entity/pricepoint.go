// Package entity defines the domain models for the prices feature.
package entity

import "time"

// PricePoint represents one day of OHLCV price data for a stock symbol,
// as imported from a CSV file.
type PricePoint struct {
	Symbol   string    // Stock ticker symbol (e.g., "AAPL")
	Date     time.Time // Trading day (time component is always midnight UTC)
	Open     float64   // Opening price
	High     float64   // Highest price of the day
	Low      float64   // Lowest price of the day
	Close    float64   // Closing price
	AdjClose *float64  // Split/dividend adjusted close (nil if the CSV has no such column)
	Volume   int64     // Trading volume (0 if the CSV has no Volume column)
}

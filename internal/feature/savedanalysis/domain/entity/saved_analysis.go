// Package entity defines the domain models for the savedanalysis feature.
package entity

import "time"

// SavedAnalysis stores one user's chart configuration so an analysis can be
// reopened later: the symbol, the date range and which indicators (with
// which parameters) were enabled.
type SavedAnalysis struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Name   string `gorm:"size:100;not null"`
	Symbol string `gorm:"size:10;not null;index"`

	StartDate *time.Time
	EndDate   *time.Time
	ChartType string `gorm:"size:20"` // "line" or "candlestick"

	ShowMA    bool
	MAPeriods string `gorm:"size:100"` // comma-separated periods, e.g. "5,20,50"

	ShowRSI   bool
	RSIPeriod int

	ShowMACD   bool
	MACDFast   int
	MACDSlow   int
	MACDSignal int

	ShowBBands   bool
	BBandsPeriod int
	BBandsStd    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SavedAnalysis) TableName() string {
	return "saved_analyses"
}

// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock represents a stock/ticker registered in the system.
// Price data rows reference it by Symbol.
type Stock struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"size:10;not null;uniqueIndex"`
	Name        string    `gorm:"size:100"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

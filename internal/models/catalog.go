package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is reference price-list data. The quote engine reads it when
// composing items; it is never mutated by quote operations.
type CatalogItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Type        QuoteItemType   `gorm:"size:10;not null;default:'PRODUCT';index" json:"type"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `json:"description"`
	Category    string          `gorm:"size:100;index" json:"category"`
	PriceRef    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price_ref"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

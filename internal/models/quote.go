package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote models. Total is derived from the items and is rewritten on every item
// mutation inside the same transaction; it is never updated independently.
type Quote struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	OpportunityID *uint           `gorm:"index" json:"opportunity_id"`
	Status        QuoteStatus     `gorm:"size:15;not null;default:'DRAFT';index" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	ValidUntil    *time.Time      `json:"valid_until"`
	Notes         string          `json:"notes"`
	Items         []QuoteItem     `gorm:"foreignKey:QuoteID" json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type QuoteItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	QuoteID       uint            `gorm:"not null;index" json:"quote_id"`
	CatalogItemID *uint           `gorm:"index" json:"catalog_item_id"`
	ItemType      QuoteItemType   `gorm:"size:10;not null;default:'PRODUCT'" json:"item_type"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	Description   string          `json:"description"`
	Qty           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"qty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

// LineTotal is qty * unit_price rounded to the currency's minor unit.
func (it QuoteItem) LineTotal() decimal.Decimal {
	return it.Qty.Mul(it.UnitPrice).Round(2)
}

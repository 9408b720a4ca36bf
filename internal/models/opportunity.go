package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opportunity in the sales pipeline. Stage moves per OpportunityStage.CanTransition;
// WON and LOST are permanent.
type Opportunity struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	CustomerID    uint             `gorm:"not null;index" json:"customer_id"`
	Title         string           `gorm:"size:200;not null" json:"title"`
	Stage         OpportunityStage `gorm:"size:20;not null;default:'NEW';index" json:"stage"`
	ValueEstimate decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"value_estimate"`
	CloseDate     *time.Time       `json:"close_date"`
	Notes         string           `json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Activity is a scheduled or completed touch-point, optionally linked to a
// customer and/or an opportunity. DoneAt is set once and never cleared.
type Activity struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Type          ActivityType `gorm:"size:15;not null;default:'TASK';index" json:"type"`
	Notes         string       `json:"notes"`
	DueAt         *time.Time   `gorm:"index" json:"due_at"`
	DoneAt        *time.Time   `json:"done_at"`
	CustomerID    *uint        `gorm:"index" json:"customer_id"`
	OpportunityID *uint        `gorm:"index" json:"opportunity_id"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (a *Activity) IsDone() bool { return a.DoneAt != nil }

package models

import "time"

// Lead is a prospective customer awaiting qualification. CustomerID is a weak
// reference set exactly once when the lead is converted; it never changes after.
type Lead struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID *uint      `gorm:"index" json:"customer_id"`
	Name       string     `gorm:"size:200;not null" json:"name"`
	Phone      string     `gorm:"size:30" json:"phone"`
	Email      string     `gorm:"size:254" json:"email"`
	Source     LeadSource `gorm:"size:15;not null;default:'OTHER';index" json:"source"`
	Status     LeadStatus `gorm:"size:15;not null;default:'NEW';index" json:"status"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

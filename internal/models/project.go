package models

import "time"

// Project is post-sale work for a customer, optionally originating from an
// accepted quote. QuoteID is a weak reference fixed at creation.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  uint           `gorm:"not null;index" json:"customer_id"`
	QuoteID     *uint          `gorm:"index" json:"quote_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Status      ProjectStatus  `gorm:"size:15;not null;default:'PLANNING';index" json:"status"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Description string         `json:"description"`
	Media       []ProjectMedia `gorm:"foreignKey:ProjectID" json:"media,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProjectMedia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	MediaType MediaType `gorm:"size:10;not null;default:'PROGRESS';index" json:"media_type"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Caption   string    `gorm:"size:200" json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

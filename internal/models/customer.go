package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer entity - individual or company. Owns contacts and addresses.
type Customer struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Type      CustomerType `gorm:"size:15;not null;default:'INDIVIDUAL';index" json:"type"`
	Name      string       `gorm:"size:200;not null;index" json:"name"`
	Phone     string       `gorm:"size:30" json:"phone"`
	Email     string       `gorm:"size:254" json:"email"`
	Notes     string       `json:"notes"`
	Contacts  []Contact    `gorm:"foreignKey:CustomerID" json:"contacts,omitempty"`
	Addresses []Address    `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Contact struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Phone      string    `gorm:"size:30" json:"phone"`
	Email      string    `gorm:"size:254" json:"email"`
	RoleTitle  string    `gorm:"size:100" json:"role_title"`
	CreatedAt  time.Time `json:"created_at"`
}

type Address struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	CustomerID uint                `gorm:"not null;index" json:"customer_id"`
	Label      string              `gorm:"size:50;default:'Principal'" json:"label"`
	City       string              `gorm:"size:100" json:"city"`
	Zone       string              `gorm:"size:100" json:"zone"`
	Details    string              `json:"details"`
	Lat        decimal.NullDecimal `gorm:"type:decimal(10,7)" json:"lat"`
	Lng        decimal.NullDecimal `gorm:"type:decimal(10,7)" json:"lng"`
	CreatedAt  time.Time           `json:"created_at"`
}

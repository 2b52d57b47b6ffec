package models

import (
	"boxoffice/src/types"
	"database/sql/driver"
	"time"
)

type TicketStatus types.TicketStatus

func (self *TicketStatus) Scan(value interface{}) error {
	*self = TicketStatus(value.([]byte))
	return nil
}

func (self TicketStatus) Value() (driver.Value, error) {
	return string(self), nil
}

// Ticket is one sellable unit of inventory. It belongs to exactly one
// concert for its entire life; state transitions only happen through the
// booking.Inventory component.
type Ticket struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	ConcertID  uint       `gorm:"index" json:"concert_id,omitempty"`
	Status     string     `gorm:"default:'available';index" json:"status,omitempty"`
	OrderID    *uint      `gorm:"index" json:"order_id,omitempty"`
	ReservedAt *time.Time `json:"reserved_at,omitempty"`

	Concert Concert `json:"concert,omitempty"`

	types.Timestamps
}

package models

import "boxoffice/src/types"

// Order is the durable record of a completed purchase. It only ever
// comes into existence through a committed reservation, so an Order row
// always owns at least one sold ticket.
type Order struct {
	ID                 uint   `gorm:"primarykey" json:"id"`
	ConfirmationNumber string `gorm:"uniqueIndex;size:16" json:"confirmation_number"`
	Email              string `gorm:"index" json:"email"`
	Amount             int64  `json:"amount"`
	ConcertID          uint   `gorm:"index" json:"concert_id,omitempty"`

	Concert Concert  `json:"concert,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:OrderID" json:"tickets,omitempty"`

	types.Timestamps
}

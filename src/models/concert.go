package models

import (
	"boxoffice/src/types"
	"time"
)

type Concert struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Title          string     `json:"title,omitempty"`
	Subtitle       string     `json:"subtitle,omitempty"`
	Slug           string     `gorm:"index" json:"slug,omitempty"`
	Venue          string     `json:"venue,omitempty"`
	VenueAddress   string     `json:"venue_address,omitempty"`
	City           string     `json:"city,omitempty"`
	Date           time.Time  `json:"date,omitempty"`
	TicketPrice    int64      `json:"ticket_price"`
	TicketQuantity uint       `json:"ticket_quantity,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`

	Tickets []Ticket `json:"tickets,omitempty"`

	types.Timestamps
}

// IsPublished reports whether the concert is visible to customers. A
// concert with a publish timestamp in the future is still hidden.
func (c *Concert) IsPublished() bool {
	return c.PublishedAt != nil && c.PublishedAt.Before(time.Now())
}

package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type TicketStatus string

const (
	TICKET_AVAILABLE TicketStatus = "available"
	TICKET_RESERVED  TicketStatus = "reserved"
	TICKET_SOLD      TicketStatus = "sold"
)

type CreateConcertRequestBody struct {
	Title          string `json:"title" binding:"required"`
	Subtitle       string `json:"subtitle,omitempty"`
	Venue          string `json:"venue" binding:"required"`
	VenueAddress   string `json:"venue_address,omitempty"`
	City           string `json:"city,omitempty"`
	Date           string `json:"date" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	TicketPrice    int64  `json:"ticket_price" binding:"required,gt=0"`
	TicketQuantity uint   `json:"ticket_quantity" binding:"required,min=1"`
}

type CreateOrderRequestBody struct {
	Email          string `json:"email" binding:"required,email"`
	TicketQuantity int    `json:"ticket_quantity" binding:"required,min=1"`
	PaymentToken   string `json:"payment_token" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type ConfirmationURIParams struct {
	ConfirmationNumber string `uri:"confirmation" binding:"required,len=16"`
}

type APIResponseConcert struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title,omitempty"`
	Subtitle         string     `json:"subtitle,omitempty"`
	Slug             string     `json:"slug,omitempty"`
	Venue            string     `json:"venue,omitempty"`
	VenueAddress     string     `json:"venue_address,omitempty"`
	City             string     `json:"city,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	TicketPrice      int64      `json:"ticket_price"`
	TicketsRemaining int64      `json:"tickets_remaining"`
}

type APIResponseOrder struct {
	ID                 uint       `json:"id"`
	ConfirmationNumber string     `json:"confirmation_number"`
	Email              string     `json:"email"`
	Amount             int64      `json:"amount"`
	TicketQuantity     int        `json:"ticket_quantity"`
	ConcertID          uint       `json:"concert_id,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const RolePromoter = "promoter"

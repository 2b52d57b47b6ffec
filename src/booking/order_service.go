package booking

import (
	"boxoffice/src/billing"
	"boxoffice/src/models"
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// ErrConfirmationCollision is returned if a unique confirmation number
// could not be produced within the retry budget. Callers may retry the
// whole purchase.
var ErrConfirmationCollision = errors.New("could not generate a unique confirmation number")

const confirmationAttempts = 3

// OrderService turns a purchase request into either a confirmed Order or
// a reported failure, with the inventory always left consistent. The
// payment gateway is injected by the caller; tests pass the fake.
type OrderService struct {
	db        *gorm.DB
	inventory *Inventory
	gateway   billing.PaymentGateway

	// confirmations is swappable so tests can force collisions.
	confirmations func() (string, error)
}

func NewOrderService(db *gorm.DB, inventory *Inventory, gateway billing.PaymentGateway) *OrderService {
	return &OrderService{
		db:            db,
		inventory:     inventory,
		gateway:       gateway,
		confirmations: GenerateConfirmationNumber,
	}
}

func (s *OrderService) Inventory() *Inventory {
	return s.inventory
}

// PlaceOrder runs the purchase protocol: reserve the tickets, charge the
// customer, then commit the reservation into an Order. The charge is
// made after the reservation transaction commits, so a slow gateway
// never blocks other buyers. A failed charge releases the reservation
// before returning.
func (s *OrderService) PlaceOrder(ctx context.Context, concertID uint, email string, qty int, paymentToken string) (*models.Order, error) {
	reservation, err := s.inventory.Reserve(ctx, concertID, qty)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.Charge(ctx, reservation.Total, paymentToken); err != nil {
		if rerr := s.inventory.Release(ctx, reservation); rerr != nil {
			log.Printf("Error releasing reservation %s: %s\n", reservation.ID, rerr.Error())
		}
		if errors.Is(err, billing.ErrPaymentFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", billing.ErrPaymentFailed, err.Error())
	}

	order, err := s.createOrder(ctx, reservation, email)
	if err != nil {
		if rerr := s.inventory.Release(ctx, reservation); rerr != nil {
			log.Printf("Error releasing reservation %s: %s\n", reservation.ID, rerr.Error())
		}
		return nil, err
	}
	return order, nil
}

// createOrder writes the Order row and commits the reservation in one
// transaction, regenerating the confirmation number on a unique-index
// collision up to the attempt budget.
func (s *OrderService) createOrder(ctx context.Context, reservation *Reservation, email string) (*models.Order, error) {
	for range confirmationAttempts {
		number, err := s.confirmations()
		if err != nil {
			return nil, err
		}
		order := &models.Order{
			ConfirmationNumber: number,
			Email:              email,
			Amount:             reservation.Total,
			ConcertID:          reservation.ConcertID,
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
			return s.inventory.commitTx(tx, reservation, order.ID)
		})
		if err == nil {
			return order, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Confirmation number collision on %s, regenerating\n", number)
			continue
		}
		return nil, err
	}
	return nil, ErrConfirmationCollision
}

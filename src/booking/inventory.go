// Package booking owns the ticket inventory and the order placement
// protocol: reserve, charge, then commit or release. It is the only
// legal mutator of ticket state.
package booking

import (
	"boxoffice/src/models"
	"boxoffice/src/types"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotEnoughTickets is returned when a reservation asks for more
// tickets than the concert has available. No partial reservation is ever
// made.
var ErrNotEnoughTickets = errors.New("not enough tickets available")

// Reservation is a transient claim on a set of tickets pending payment.
// It is never persisted on its own; the claimed tickets carry the state.
// Every Reservation must reach Commit or Release before the purchase
// attempt returns.
type Reservation struct {
	ID        uuid.UUID
	ConcertID uint
	TicketIDs []uint
	Total     int64
}

func (r *Reservation) Quantity() int {
	return len(r.TicketIDs)
}

type Inventory struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewInventory(db *gorm.DB) *Inventory {
	return &Inventory{
		db:    db,
		locks: make(map[uint]*sync.Mutex),
	}
}

// concertLock serializes reservation attempts per concert so that two
// concurrent buyers cannot both observe enough availability and both
// claim the same tickets.
func (inv *Inventory) concertLock(concertID uint) *sync.Mutex {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	l, ok := inv.locks[concertID]
	if !ok {
		l = &sync.Mutex{}
		inv.locks[concertID] = l
	}
	return l
}

// Reserve atomically claims qty available tickets for the concert and
// marks them reserved, or fails with ErrNotEnoughTickets leaving the
// inventory unchanged. Non-positive quantities are rejected here so the
// invariant lives in one place.
func (inv *Inventory) Reserve(ctx context.Context, concertID uint, qty int) (*Reservation, error) {
	if qty < 1 {
		return nil, ErrNotEnoughTickets
	}
	l := inv.concertLock(concertID)
	l.Lock()
	defer l.Unlock()

	reservation := &Reservation{ID: uuid.New(), ConcertID: concertID}
	err := inv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var concert models.Concert
		if err := tx.
			Where(&models.Concert{ID: concertID}).
			First(&concert).
			Error; err != nil {
			return err
		}
		var ids []uint
		if err := tx.
			Model(&models.Ticket{}).
			Where(&models.Ticket{ConcertID: concertID, Status: string(types.TICKET_AVAILABLE)}).
			Order("id").
			Limit(qty).
			Pluck("id", &ids).
			Error; err != nil {
			return err
		}
		if len(ids) < qty {
			return ErrNotEnoughTickets
		}
		now := time.Now()
		claim := tx.
			Model(&models.Ticket{}).
			Where("id IN ?", ids).
			Where("status = ?", types.TICKET_AVAILABLE).
			Updates(map[string]any{
				"status":      types.TICKET_RESERVED,
				"reserved_at": now,
			})
		if claim.Error != nil {
			return claim.Error
		}
		// The status guard on the UPDATE catches any ticket claimed out
		// from under us; roll the whole claim back rather than reserve a
		// partial set.
		if claim.RowsAffected != int64(qty) {
			return ErrNotEnoughTickets
		}
		reservation.TicketIDs = ids
		reservation.Total = concert.TicketPrice * int64(qty)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Release returns every ticket in the reservation to the available pool.
// Must only be called once per reservation, on the payment-failed path.
func (inv *Inventory) Release(ctx context.Context, reservation *Reservation) error {
	return inv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return releaseTickets(tx, reservation.TicketIDs)
	})
}

// Commit converts the reservation into sold tickets stamped with the
// order that now owns them.
func (inv *Inventory) Commit(ctx context.Context, reservation *Reservation, orderID uint) error {
	return inv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return inv.commitTx(tx, reservation, orderID)
	})
}

func (inv *Inventory) commitTx(tx *gorm.DB, reservation *Reservation, orderID uint) error {
	res := tx.
		Model(&models.Ticket{}).
		Where("id IN ?", reservation.TicketIDs).
		Where("status = ?", types.TICKET_RESERVED).
		Updates(map[string]any{
			"status":   types.TICKET_SOLD,
			"order_id": orderID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(reservation.TicketIDs)) {
		return fmt.Errorf("reservation %s no longer holds %d tickets", reservation.ID, len(reservation.TicketIDs))
	}
	return nil
}

// AvailableCount reports how many tickets are currently available for
// the concert. Informational; never used for claim decisions.
func (inv *Inventory) AvailableCount(ctx context.Context, concertID uint) (int64, error) {
	var count int64
	err := inv.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where(&models.Ticket{ConcertID: concertID, Status: string(types.TICKET_AVAILABLE)}).
		Count(&count).
		Error
	return count, err
}

// AddTickets seeds qty available tickets for the concert. Called when a
// promoter publishes.
func (inv *Inventory) AddTickets(ctx context.Context, concertID uint, qty uint) error {
	if qty == 0 {
		return nil
	}
	tickets := make([]models.Ticket, qty)
	for i := range tickets {
		tickets[i] = models.Ticket{
			ConcertID: concertID,
			Status:    string(types.TICKET_AVAILABLE),
		}
	}
	return inv.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tickets).Error
	})
}

// ReleaseStaleReservations frees tickets left reserved with no order for
// longer than maxAge, which only happens if a process died between
// reserve and charge. Run from the scheduler, not from the purchase
// path.
func (inv *Inventory) ReleaseStaleReservations(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)
	err := inv.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Ticket{}).
			Where("status = ?", types.TICKET_RESERVED).
			Where("order_id IS NULL").
			Where("reserved_at < ?", cutoff).
			Updates(map[string]any{
				"status":      types.TICKET_AVAILABLE,
				"reserved_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Printf("Released %d stale reserved tickets\n", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error releasing stale reservations: %s\n", err.Error())
	}
}

func releaseTickets(tx *gorm.DB, ticketIDs []uint) error {
	return tx.
		Model(&models.Ticket{}).
		Where("id IN ?", ticketIDs).
		Where("status = ?", types.TICKET_RESERVED).
		Updates(map[string]any{
			"status":      types.TICKET_AVAILABLE,
			"reserved_at": nil,
		}).
		Error
}

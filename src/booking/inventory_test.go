package booking

import (
	"boxoffice/src/models"
	"boxoffice/src/types"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type InventorySuite struct {
	suite.Suite
	DB  *gorm.DB
	Inv *Inventory
}

func (s *InventorySuite) SetupTest() {
	s.DB = newTestDB()
	s.Inv = NewInventory(s.DB)
}

func (s *InventorySuite) TestAddTicketsSeedsAvailability() {
	concert := createPublishedConcert(s.DB, 3250)

	err := s.Inv.AddTickets(context.Background(), concert.ID, 10)
	assert.Nil(s.T(), err)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(10), count)
}

func (s *InventorySuite) TestReserveClaimsTickets() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 10)

	reservation, err := s.Inv.Reserve(context.Background(), concert.ID, 3)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), 3, reservation.Quantity())
	assert.Equal(s.T(), int64(9750), reservation.Total)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(7), count)
}

func (s *InventorySuite) TestReserveFailsWhenNotEnoughTickets() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 2)

	reservation, err := s.Inv.Reserve(context.Background(), concert.ID, 3)
	assert.Nil(s.T(), reservation)
	assert.ErrorIs(s.T(), err, ErrNotEnoughTickets)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(2), count)
}

func (s *InventorySuite) TestReserveRejectsNonPositiveQuantities() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	for _, qty := range []int{0, -1} {
		reservation, err := s.Inv.Reserve(context.Background(), concert.ID, qty)
		assert.Nil(s.T(), reservation)
		assert.ErrorIs(s.T(), err, ErrNotEnoughTickets)
	}

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(5), count)
}

func (s *InventorySuite) TestConcurrentReservationsNeverOversell() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 3)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Inv.Reserve(context.Background(), concert.ID, 3)
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(s.T(), err, ErrNotEnoughTickets)
			failed++
		}
	}
	assert.Equal(s.T(), 1, succeeded)
	assert.Equal(s.T(), 1, failed)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(0), count)
}

func (s *InventorySuite) TestReleaseRestoresAvailability() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	reservation, err := s.Inv.Reserve(context.Background(), concert.ID, 4)
	assert.Nil(s.T(), err)

	err = s.Inv.Release(context.Background(), reservation)
	assert.Nil(s.T(), err)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(5), count)

	var reserved int64
	s.DB.Model(&models.Ticket{}).Where("reserved_at IS NOT NULL").Count(&reserved)
	assert.Equal(s.T(), int64(0), reserved)
}

func (s *InventorySuite) TestCommitMarksTicketsSold() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	reservation, err := s.Inv.Reserve(context.Background(), concert.ID, 2)
	assert.Nil(s.T(), err)

	order := models.Order{
		ConfirmationNumber: "B2B2B2B2B2B2B2B2",
		Email:              "john@example.com",
		Amount:             reservation.Total,
		ConcertID:          concert.ID,
	}
	assert.Nil(s.T(), s.DB.Create(&order).Error)

	err = s.Inv.Commit(context.Background(), reservation, order.ID)
	assert.Nil(s.T(), err)

	var sold []models.Ticket
	s.DB.
		Where("order_id = ?", order.ID).
		Find(&sold)
	assert.Len(s.T(), sold, 2)
	for _, t := range sold {
		assert.Equal(s.T(), string(types.TICKET_SOLD), t.Status)
	}

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(3), count)
}

func (s *InventorySuite) TestStaleReservationsAreReleased() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 4)

	stale, err := s.Inv.Reserve(context.Background(), concert.ID, 2)
	assert.Nil(s.T(), err)
	old := time.Now().Add(-time.Hour)
	s.DB.
		Model(&models.Ticket{}).
		Where("id IN ?", stale.TicketIDs).
		Update("reserved_at", old)

	fresh, err := s.Inv.Reserve(context.Background(), concert.ID, 1)
	assert.Nil(s.T(), err)

	s.Inv.ReleaseStaleReservations(15 * time.Minute)

	count, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(3), count)

	var stillReserved int64
	s.DB.
		Model(&models.Ticket{}).
		Where("id IN ?", fresh.TicketIDs).
		Where("status = ?", types.TICKET_RESERVED).
		Count(&stillReserved)
	assert.Equal(s.T(), int64(1), stillReserved)
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventorySuite))
}

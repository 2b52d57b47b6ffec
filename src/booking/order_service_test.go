package booking

import (
	"boxoffice/src/billing"
	"boxoffice/src/models"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderServiceSuite struct {
	suite.Suite
	DB      *gorm.DB
	Inv     *Inventory
	Gateway *billing.FakePaymentGateway
	Orders  *OrderService
}

func (s *OrderServiceSuite) SetupTest() {
	s.DB = newTestDB()
	s.Inv = NewInventory(s.DB)
	s.Gateway = billing.NewFakePaymentGateway()
	s.Orders = NewOrderService(s.DB, s.Inv, s.Gateway)
}

func (s *OrderServiceSuite) orderCount() int64 {
	var count int64
	s.DB.Model(&models.Order{}).Count(&count)
	return count
}

func (s *OrderServiceSuite) TestCustomerCanPurchaseTickets() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 10)

	order, err := s.Orders.PlaceOrder(context.Background(), concert.ID, "john@example.com", 3, s.Gateway.ValidTestToken())
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "john@example.com", order.Email)
	assert.Equal(s.T(), int64(9750), order.Amount)
	assert.Len(s.T(), order.ConfirmationNumber, 16)
	assert.Equal(s.T(), int64(9750), s.Gateway.TotalCharges())

	var sold int64
	s.DB.Model(&models.Ticket{}).Where("order_id = ?", order.ID).Count(&sold)
	assert.Equal(s.T(), int64(3), sold)

	remaining, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(7), remaining)
}

func (s *OrderServiceSuite) TestCannotPurchaseMoreTicketsThanRemain() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 2)

	order, err := s.Orders.PlaceOrder(context.Background(), concert.ID, "john@example.com", 3, s.Gateway.ValidTestToken())
	assert.Nil(s.T(), order)
	assert.ErrorIs(s.T(), err, ErrNotEnoughTickets)
	assert.Equal(s.T(), 0, s.Gateway.ChargeCount())
	assert.Equal(s.T(), int64(0), s.orderCount())

	remaining, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(2), remaining)
}

func (s *OrderServiceSuite) TestFailedPaymentReleasesTickets() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	order, err := s.Orders.PlaceOrder(context.Background(), concert.ID, "john@example.com", 3, "not-a-valid-token")
	assert.Nil(s.T(), order)
	assert.ErrorIs(s.T(), err, billing.ErrPaymentFailed)
	assert.Equal(s.T(), int64(0), s.orderCount())

	remaining, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(5), remaining)
}

func (s *OrderServiceSuite) TestConfirmationCollisionIsRetried() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	taken := models.Order{
		ConfirmationNumber: "TAKEN22222222222",
		Email:              "jane@example.com",
		Amount:             3250,
		ConcertID:          concert.ID,
	}
	assert.Nil(s.T(), s.DB.Create(&taken).Error)

	numbers := []string{"TAKEN22222222222", "FRESH33333333333"}
	s.Orders.confirmations = func() (string, error) {
		number := numbers[0]
		if len(numbers) > 1 {
			numbers = numbers[1:]
		}
		return number, nil
	}

	order, err := s.Orders.PlaceOrder(context.Background(), concert.ID, "john@example.com", 1, s.Gateway.ValidTestToken())
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "FRESH33333333333", order.ConfirmationNumber)
}

func (s *OrderServiceSuite) TestConfirmationCollisionBudgetExhausted() {
	concert := createPublishedConcert(s.DB, 3250)
	s.Inv.AddTickets(context.Background(), concert.ID, 5)

	taken := models.Order{
		ConfirmationNumber: "TAKEN22222222222",
		Email:              "jane@example.com",
		Amount:             3250,
		ConcertID:          concert.ID,
	}
	assert.Nil(s.T(), s.DB.Create(&taken).Error)

	s.Orders.confirmations = func() (string, error) {
		return "TAKEN22222222222", nil
	}

	order, err := s.Orders.PlaceOrder(context.Background(), concert.ID, "john@example.com", 2, s.Gateway.ValidTestToken())
	assert.Nil(s.T(), order)
	assert.ErrorIs(s.T(), err, ErrConfirmationCollision)

	remaining, err := s.Inv.AvailableCount(context.Background(), concert.ID)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), int64(5), remaining)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

package main

import (
	"boxoffice/src/billing"
	"boxoffice/src/booking"
	"boxoffice/src/db"
	"boxoffice/src/lib/mailer"
	"boxoffice/src/models"
	"boxoffice/src/types"
	"boxoffice/src/utils"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

func orderHandlers(g *gin.RouterGroup, orders *booking.OrderService) *gin.RouterGroup {
	g.
		POST("/concerts/:id/orders", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			concert, ok := findPublishedConcert(params.ID)
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "concert not found"})
				return
			}
			order, err := orders.PlaceOrder(ctx, concert.ID, body.Email, body.TicketQuantity, body.PaymentToken)
			if err != nil {
				if errors.Is(err, booking.ErrNotEnoughTickets) || errors.Is(err, billing.ErrPaymentFailed) {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not complete purchase"})
					return
				}
				log.Printf("Error placing order for Concert [%d]: %s\n", concert.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
				return
			}
			utils.InvalidateConcertAvailability(ctx, concert.ID)
			go func() {
				if err := mailer.SendOrderConfirmation(concert, order, body.TicketQuantity); err != nil {
					log.Printf("Error sending confirmation email for Order [%d]: %s\n", order.ID, err.Error())
				}
			}()
			ctx.JSON(http.StatusCreated, gin.H{"data": orderProjection(order, body.TicketQuantity)})
		}).
		GET("/orders/:confirmation", func(ctx *gin.Context) {
			order, ok := findOrderByConfirmation(ctx)
			if !ok {
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orderProjection(order, len(order.Tickets))})
		}).
		GET("/orders/:confirmation/code", func(ctx *gin.Context) {
			order, ok := findOrderByConfirmation(ctx)
			if !ok {
				return
			}
			qrc, err := qrcode.New(order.ConfirmationNumber)
			if err != nil {
				log.Printf("Error generating code for Order [%d]: %s\n", order.ID, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			filepath := path.Join(os.TempDir(), fmt.Sprintf("ordercode_%s.jpeg", order.ConfirmationNumber))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save code to file [%s]: %s\n", filepath, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.FileAttachment(filepath, "order-code.jpeg")
		})
	return g
}

func findOrderByConfirmation(ctx *gin.Context) (*models.Order, bool) {
	var params types.ConfirmationURIParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Status(http.StatusBadRequest)
		return nil, false
	}
	var order models.Order
	db := db.GetDb()
	if err := db.
		Where(&models.Order{ConfirmationNumber: params.ConfirmationNumber}).
		Preload("Tickets").
		First(&order).
		Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return nil, false
	}
	return &order, true
}

func orderProjection(order *models.Order, quantity int) types.APIResponseOrder {
	createdAt := order.CreatedAt
	return types.APIResponseOrder{
		ID:                 order.ID,
		ConfirmationNumber: order.ConfirmationNumber,
		Email:              order.Email,
		Amount:             order.Amount,
		TicketQuantity:     quantity,
		ConcertID:          order.ConcertID,
		CreatedAt:          &createdAt,
	}
}

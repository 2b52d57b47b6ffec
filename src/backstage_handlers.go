package main

import (
	"boxoffice/src/booking"
	"boxoffice/src/db"
	"boxoffice/src/middlewares"
	"boxoffice/src/models"
	"boxoffice/src/types"
	"boxoffice/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// backstageHandlers is the minimal promoter surface: create a draft
// concert, then publish it, which seeds the ticket inventory.
func backstageHandlers(g *gin.RouterGroup, inv *booking.Inventory) *gin.RouterGroup {
	bs := g.Group("/backstage")
	bs.Use(middlewares.AuthMiddleware)
	bs.
		POST("/concerts", func(ctx *gin.Context) {
			var body types.CreateConcertRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := utils.CreateNewConcert(&body)
			if err != nil {
				log.Printf("error creating concert: %s", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": id})
		}).
		PATCH("/concerts/:id/publish", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var concert models.Concert
			dbi := db.GetDb()
			if err := dbi.
				Where(&models.Concert{ID: params.ID}).
				First(&concert).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "concert not found"})
				return
			}
			if err := utils.PublishConcert(params.ID); err != nil {
				log.Printf("error publishing concert: %s", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := inv.AddTickets(ctx, params.ID, concert.TicketQuantity); err != nil {
				log.Printf("error seeding tickets for concert %d: %s", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
				return
			}
			utils.InvalidateConcertAvailability(ctx, params.ID)
			ctx.JSON(http.StatusOK, gin.H{"id": params.ID})
		})
	return bs
}

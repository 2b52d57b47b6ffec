package main

import (
	"boxoffice/src/booking"
	"boxoffice/src/db"
	"boxoffice/src/models"
	"boxoffice/src/types"
	"boxoffice/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func concertHandlers(g *gin.RouterGroup, inv *booking.Inventory) *gin.RouterGroup {
	g.
		GET("/concerts", func(ctx *gin.Context) {
			var concerts []models.Concert
			db := db.GetDb()
			if err := db.
				Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
				Order("date asc").
				Find(&concerts).
				Error; err != nil {
				log.Printf("Error retrieving Concerts: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			data := make([]types.APIResponseConcert, 0, len(concerts))
			for _, c := range concerts {
				remaining, err := utils.GetConcertAvailability(ctx, inv, c.ID)
				if err != nil {
					log.Printf("Error counting tickets for Concert [%d]: %s\n", c.ID, err.Error())
				}
				data = append(data, concertProjection(&c, remaining))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/concerts/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			concert, ok := findPublishedConcert(params.ID)
			if !ok {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "concert not found"})
				return
			}
			remaining, err := utils.GetConcertAvailability(ctx, inv, concert.ID)
			if err != nil {
				log.Printf("Error counting tickets for Concert [%d]: %s\n", concert.ID, err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": concertProjection(concert, remaining)})
		})
	return g
}

// findPublishedConcert hides drafts and future publish dates from
// customers; both look like a missing concert.
func findPublishedConcert(id uint) (*models.Concert, bool) {
	var concert models.Concert
	db := db.GetDb()
	if err := db.
		Where(&models.Concert{ID: id}).
		First(&concert).
		Error; err != nil {
		return nil, false
	}
	if !concert.IsPublished() {
		return nil, false
	}
	return &concert, true
}

func concertProjection(c *models.Concert, remaining int64) types.APIResponseConcert {
	date := c.Date
	return types.APIResponseConcert{
		ID:               c.ID,
		Title:            c.Title,
		Subtitle:         c.Subtitle,
		Slug:             c.Slug,
		Venue:            c.Venue,
		VenueAddress:     c.VenueAddress,
		City:             c.City,
		Date:             &date,
		TicketPrice:      c.TicketPrice,
		TicketsRemaining: remaining,
	}
}

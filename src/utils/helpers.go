package utils

import (
	"boxoffice/src/booking"
	"boxoffice/src/config"
	"boxoffice/src/db"
	"boxoffice/src/lib"
	"boxoffice/src/models"
	"boxoffice/src/types"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func CreateNewConcert(params *types.CreateConcertRequestBody) (uint, error) {
	date, err := time.Parse(config.TIME_PARSE_FORMAT, params.Date)
	if err != nil {
		log.Printf("Error parsing date: %s\n", err.Error())
		return 0, err
	}
	concert := models.Concert{
		Title:          params.Title,
		Subtitle:       params.Subtitle,
		Slug:           slug.Make(params.Title),
		Venue:          params.Venue,
		VenueAddress:   params.VenueAddress,
		City:           params.City,
		Date:           date,
		TicketPrice:    params.TicketPrice,
		TicketQuantity: params.TicketQuantity,
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&concert).Error
	})
	if err != nil {
		return 0, err
	}
	return concert.ID, nil
}

// PublishConcert stamps the publish timestamp. Ticket seeding is the
// inventory's job; callers do that after this succeeds.
func PublishConcert(id uint) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var concert models.Concert
		if err := tx.
			Where(&models.Concert{ID: id}).
			First(&concert).
			Error; err != nil {
			return err
		}
		if concert.PublishedAt != nil {
			return errors.New("concert is already published")
		}
		now := time.Now()
		return tx.
			Model(&models.Concert{}).
			Where(&models.Concert{ID: id}).
			Update("published_at", now).
			Error
	})
}

func availabilityCacheKey(concertID uint) string {
	return fmt.Sprintf("concert:%d:available", concertID)
}

// GetConcertAvailability returns the available ticket count, serving
// from redis when possible. The cache is best effort; a missing or
// broken redis falls straight through to the inventory.
func GetConcertAvailability(ctx context.Context, inv *booking.Inventory, concertID uint) (int64, error) {
	key := availabilityCacheKey(concertID)
	rd := lib.GetRedisClient()
	if rd != nil {
		cached, err := rd.Get(ctx, key).Result()
		if err == nil {
			count, perr := strconv.ParseInt(cached, 10, 64)
			if perr == nil {
				return count, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("Error reading availability cache for concert %d: %s\n", concertID, err.Error())
		}
	}
	count, err := inv.AvailableCount(ctx, concertID)
	if err != nil {
		return 0, err
	}
	if rd != nil {
		if err := rd.SetEx(ctx, key, strconv.FormatInt(count, 10), 30*time.Second).Err(); err != nil {
			log.Printf("Error caching availability for concert %d: %s\n", concertID, err.Error())
		}
	}
	return count, nil
}

// InvalidateConcertAvailability drops the cached count after a purchase
// or publish so browsers see fresh numbers before the TTL expires.
func InvalidateConcertAvailability(ctx context.Context, concertID uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(ctx, availabilityCacheKey(concertID)).Err(); err != nil {
		log.Printf("Error invalidating availability cache for concert %d: %s\n", concertID, err.Error())
	}
}

package booking

import (
	"boxoffice/src/models"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB() *gorm.DB {
	d, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	inner, err := d.DB()
	if err != nil {
		log.Fatalf("Error accessing inner db instance: %s\n", err.Error())
	}
	inner.SetMaxOpenConns(1)

	if err := d.AutoMigrate(
		&models.Concert{},
		&models.Ticket{},
		&models.Order{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return d
}

func createPublishedConcert(d *gorm.DB, price int64) *models.Concert {
	now := time.Now()
	concert := models.Concert{
		Title:       "The Red Chord",
		Venue:       "The Mosh Pit",
		City:        "Laraville",
		Date:        now.AddDate(0, 1, 0),
		TicketPrice: price,
		PublishedAt: &now,
	}
	if err := d.Create(&concert).Error; err != nil {
		log.Fatalf("Could not create concert due to error: %s\n", err.Error())
	}
	return &concert
}

package boot

import (
	"boxoffice/src/booking"
	"boxoffice/src/db"
	"boxoffice/src/lib"
	"boxoffice/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Concert{},
		&models.Ticket{},
		&models.Order{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

const (
	staleSweepInterval = 10 * time.Minute
	staleReservedAge   = 15 * time.Minute
)

// InitScheduler starts the sweep that frees tickets stuck in reserved
// after a crash between reserve and charge.
func InitScheduler(inv *booking.Inventory) {
	id, err := lib.CreateCronJob(func() {
		inv.ReleaseStaleReservations(staleReservedAge)
	}, staleSweepInterval)
	if err != nil {
		log.Printf("Error scheduling stale reservation sweep: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
	log.Printf("Scheduled stale reservation sweep: %s\n", *id)
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}

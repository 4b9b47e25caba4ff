package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"

	"home-services-server/models"
)

// StaleBookingJob cancels pending bookings whose requested date is long
// past and was never picked up by a technician.
type StaleBookingJob struct {
	db        *gorm.DB
	staleDays int
	interval  time.Duration
	stopChan  chan bool
}

// NewStaleBookingJob creates a new sweeper
func NewStaleBookingJob(db *gorm.DB, staleDays int) *StaleBookingJob {
	return &StaleBookingJob{
		db:        db,
		staleDays: staleDays,
		interval:  time.Hour,
		stopChan:  make(chan bool),
	}
}

// Start begins the sweeper loop
func (j *StaleBookingJob) Start() {
	go j.run()
	log.Println("🚀 Stale booking sweeper started")
}

// Stop stops the sweeper loop
func (j *StaleBookingJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Stale booking sweeper stopped")
}

func (j *StaleBookingJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.Sweep(time.Now())
		case <-j.stopChan:
			return
		}
	}
}

// Sweep cancels pending bookings whose requested_date is more than
// staleDays before now. Exported so tests can drive it directly.
func (j *StaleBookingJob) Sweep(now time.Time) {
	cutoff := now.AddDate(0, 0, -j.staleDays).Format("2006-01-02")

	var stale []models.ServiceRequest
	err := j.db.Where("status = ? AND requested_date <> '' AND requested_date < ?",
		models.StatusPending, cutoff).Find(&stale).Error
	if err != nil {
		log.Printf("❌ Error checking stale bookings: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("⏰ Found %d stale pending bookings", len(stale))

	for _, request := range stale {
		request.Status = models.StatusCancelled
		if err := j.db.Save(&request).Error; err != nil {
			log.Printf("❌ Failed to cancel stale booking %d: %v", request.ID, err)
			continue
		}
		log.Printf("✅ Booking %d cancelled as stale", request.ID)
	}
}

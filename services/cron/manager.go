package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled maintenance jobs
type CronManager struct {
	cron        *cron.Cron
	db          *gorm.DB
	tokenExpiry time.Duration
}

// NewCronManager creates a new cron manager. tokenExpiry bounds how
// long a session may legitimately stay online.
func NewCronManager(db *gorm.DB, tokenExpiry time.Duration) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:        c,
		db:          db,
		tokenExpiry: tokenExpiry,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 10 minutes: flip the online flag off for sessions whose
	// tokens can no longer be valid
	_, err := m.cron.AddFunc("0 */10 * * * *", func() {
		m.SweepStaleOnlineFlags()
	})
	return err
}

package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"fleetrental/config"
	"fleetrental/jobs"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	if _, err := s.cron.AddFunc(config.AppConfig.RecurringCostsSpec, s.jobs.GenerateRecurringCosts); err != nil {
		log.Printf("Failed to register GenerateRecurringCosts job: %v", err)
	}

	if _, err := s.cron.AddFunc(config.AppConfig.ExpiryRemindersSpec, s.jobs.SendContractExpiryReminders); err != nil {
		log.Printf("Failed to register SendContractExpiryReminders job: %v", err)
	}

	log.Println("Cron jobs registered")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Cron scheduler started")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

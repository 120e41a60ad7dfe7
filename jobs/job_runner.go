package jobs

import (
	"log"

	"gorm.io/gorm"
)

// JobRunner executes scheduled background jobs against the database
type JobRunner struct {
	db *gorm.DB
}

// NewJobRunner creates a job runner bound to the given database
func NewJobRunner(db *gorm.DB) *JobRunner {
	return &JobRunner{db: db}
}

// runWithRecovery executes a job function and recovers from panics so a
// failing job cannot take down the scheduler
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Job %s panicked: %v", name, r)
		}
	}()
	log.Printf("Running job %s", name)
	fn()
}

// Package scheduler wires up the cron job that surfaces candidates due for a
// follow-up call today.
package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"ats-backend/internal/store"
)

// Scheduler wraps robfig/cron around the follow-up digest.
type Scheduler struct {
	cron  *cron.Cron
	store *store.Store
	spec  string // cron spec, e.g. "0 8 * * *"
}

// New creates a Scheduler firing on the given cron spec.
func New(st *store.Store, spec string) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLogger(cron.DefaultLogger)),
		store: st,
		spec:  spec,
	}
}

// Start registers the digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runDigest)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[scheduler] cron started with spec %q", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runDigest logs every candidate whose follow-up date is today.
func (s *Scheduler) runDigest() {
	candidates, err := s.store.TodaysFollowUps()
	if err != nil {
		log.Printf("[scheduler] follow-up query error: %v", err)
		return
	}
	if len(candidates) == 0 {
		log.Println("[scheduler] No follow-ups due today")
		return
	}
	log.Printf("[scheduler] %d candidate(s) due for follow-up today:", len(candidates))
	for _, c := range candidates {
		log.Printf("[scheduler]   %s %s (%s)", c.CandidateCode, c.Name, c.Phone)
	}
}

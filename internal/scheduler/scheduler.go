package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// defaultIntervalMinutes is used when the configured interval is under a minute.
const defaultIntervalMinutes = 15

// Pruner drops stale forecasts and reports how many were removed.
type Pruner interface {
	Prune(now time.Time) int
}

// Scheduler periodically prunes stale forecasts from the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Pruner
	interval  time.Duration
	now       func() time.Time
}

// New creates a new Scheduler.
func New(store Pruner, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		store:     store,
		interval:  interval,
		now:       time.Now,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = defaultIntervalMinutes
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.prune)
	if err != nil {
		return err
	}

	log.Printf("INFO: scheduler: pruning stale forecasts every %d minutes", minutes)
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) prune() {
	removed := s.store.Prune(s.now())
	if removed > 0 {
		log.Printf("INFO: scheduler: pruned %d stale forecasts", removed)
	} else {
		log.Println("DEBUG: scheduler: nothing to prune")
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

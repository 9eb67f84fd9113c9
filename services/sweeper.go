package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartHistorySweeper runs orphaned-history cleanup on a fixed interval.
// The caller owns the returned scheduler and shuts it down on exit.
func (s *LeaderboardService) StartHistorySweeper(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			removed, err := s.RemoveOrphanedHistory()
			if err != nil {
				log.Printf("[Sweeper] DB error: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("[Sweeper] Removed %d orphaned history entries", removed)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// services/scheduler.go
package services

import (
	"log"
	"time"

	"habit-game-system/engine"
	"habit-game-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartEngagementScheduler runs the recurring maintenance jobs: hourly
// quest expiry and a nightly reconciliation that recomputes every
// profile's cached projections from the fact tables. Quest generation
// is not scheduled — instances materialize lazily per user on read.
func (s *QuestService) StartEngagementScheduler(summary *SummaryService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Hourly: expire quests whose window closed. The sweep uses the
	// service default timezone; per-user windows were derived from the
	// profile timezone at generation time.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			loc, err := time.LoadLocation(defaultTimezone())
			if err != nil {
				loc = time.UTC
			}
			today := engine.DayKeyFor(time.Now(), loc)
			n, err := s.ExpireOldQuests(today)
			if err != nil {
				log.Printf("[Scheduler] Quest expiry failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("🧹 [Scheduler] Expired %d quest(s)", n)
			}
		}),
	)

	// Nightly: overwrite cached lifetime projections with a fresh
	// recompute. Any drift from partial failures gets erased here.
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			var profiles []models.PlayerProfile
			if err := summary.DB.Find(&profiles).Error; err != nil {
				log.Printf("[Scheduler] Projection sweep DB error: %v", err)
				return
			}
			var refreshed int
			for _, p := range profiles {
				if err := summary.RefreshProjections(p.ExternalUserID); err != nil {
					log.Printf("[Scheduler] Failed to refresh projections for %s: %v", p.ExternalUserID, err)
					continue
				}
				refreshed++
			}
			log.Printf("✅ [Scheduler] Reconciled projections for %d profile(s)", refreshed)
		}),
	)
}

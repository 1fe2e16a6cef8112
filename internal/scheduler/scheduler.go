package scheduler

import (
	"fmt"
	"log"

	"CoinVault/internal/directory"
	"CoinVault/internal/syncer"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically extends the cached series of every watchlist asset.
type Scheduler struct {
	Cron      *cron.Cron
	Directory *directory.Directory
	Engine    *syncer.Engine
	Watchlist []string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(dir *directory.Directory, engine *syncer.Engine, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Directory: dir,
		Engine:    engine,
		Watchlist: watchlist,
	}
}

// Register adds the periodic sync task.
func (s *Scheduler) Register(syncCron string) error {
	if _, err := s.Cron.AddFunc(syncCron, s.syncTask); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the sync task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.syncTask()
}

func (s *Scheduler) syncTask() {
	log.Println("[INFO] running scheduled sync")
	assets := s.Directory.Resolve(s.Watchlist)
	if len(assets) == 0 {
		log.Printf("[WARN] watchlist %v resolved no known assets", s.Watchlist)
		return
	}
	for _, r := range s.Engine.SyncAll(assets) {
		if r.Err != nil {
			log.Printf("[ERROR] sync [%s] %s: %v", r.Asset.Symbol, r.Asset.Name, r.Err)
			continue
		}
		log.Printf("[INFO] synced [%s] %s: %d quotes through %s",
			r.Asset.Symbol, r.Asset.Name, len(r.Series.Quotes), r.Series.StatusTimestamp)
	}
}

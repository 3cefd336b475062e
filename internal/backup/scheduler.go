package backup

import (
	"sync"

	"github.com/roylee0704/gron"

	"wedcms/internal/backup/interfaces"
	"wedcms/internal/providers"
	"wedcms/internal/structures"
)

// Scheduler drives periodic snapshots so the backup history advances
// even when nobody saves through the admin panel.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	manager ManagerInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	interval := s.config.Backup.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Periodic backups disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.manager.Snapshot(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled backup failed: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Scheduled backup complete")
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, manager ManagerInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		manager: manager,
	}
}

package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/madflojo/tasks"

	"github.com/akabraham06/warp/cache"
	"github.com/akabraham06/warp/config"
)

type SchedulerService interface {
	ScheduleQuoteSweep()
	DropTask(taskID string)
}

const quoteSweepTaskID = "quote-cache-sweep"

func NewSchedulerService(cfg *config.Config, scheduler *tasks.Scheduler, quotes cache.QuoteCache, log *zap.Logger) SchedulerService {
	return &schedulerService{
		service: service{
			cfg:    cfg,
			quotes: quotes,
			log:    log,
		},
		scheduler: scheduler,
	}
}

type schedulerService struct {
	service
	scheduler *tasks.Scheduler
}

func (s *schedulerService) DropTask(taskID string) {
	s.scheduler.Del(taskID)
}

func (s *schedulerService) ScheduleQuoteSweep() {
	err := s.scheduler.AddWithID(quoteSweepTaskID, &tasks.Task{
		Interval: s.cfg.Quotes.Sweep,
		TaskFunc: func() error {
			if dropped := s.quotes.Sweep(time.Now()); dropped > 0 {
				s.log.Info("expired quotes evicted", zap.Int("count", dropped))
			}
			return nil
		},
	})
	if err != nil {
		s.log.Error("scheduling quote sweep", zap.Error(err))
	}
}

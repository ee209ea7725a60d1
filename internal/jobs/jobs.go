// Package jobs runs the periodic background work of the server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/domain/billing"
)

// RevenueSource produces the revenue report. billing.Service satisfies it.
type RevenueSource interface {
	RevenueReport(ctx context.Context) (*billing.RevenueReport, error)
}

// RevenueReportJob logs the revenue report each time it runs.
type RevenueReportJob struct {
	source  RevenueSource
	logger  zerolog.Logger
	timeout time.Duration
}

func NewRevenueReportJob(source RevenueSource, logger zerolog.Logger) *RevenueReportJob {
	return &RevenueReportJob{source: source, logger: logger, timeout: 30 * time.Second}
}

// Run computes and logs one report. Errors are returned and also logged.
func (j *RevenueReportJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	r, err := j.source.RevenueReport(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("revenue report failed")
		return err
	}

	byType := zerolog.Dict()
	for tag, total := range r.ByBillType {
		byType.Str(tag, billing.FormatAmount(total))
	}
	j.logger.Info().
		Int("bills", r.BillCount).
		Str("total_revenue", billing.FormatAmount(r.TotalRevenue)).
		Dict("by_bill_type", byType).
		Msg("revenue report")
	return nil
}

// Scheduler wraps a cron runner whose jobs never take the process down.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

func NewScheduler(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// AddRevenueReport schedules job on spec. An empty spec disables it and
// returns false.
func (s *Scheduler) AddRevenueReport(spec string, job *RevenueReportJob) (bool, error) {
	if spec == "" {
		s.logger.Info().Msg("revenue report job disabled")
		return false, nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		_ = job.Run(context.Background())
	})
	if err != nil {
		return false, fmt.Errorf("schedule revenue report %q: %w", spec, err)
	}
	s.logger.Info().Str("schedule", spec).Msg("revenue report job scheduled")
	return true, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) Len() int { return len(s.cron.Entries()) }

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

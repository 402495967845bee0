package cron

import (
	"context"
	"errors"
	"time"

	"github.com/enqueter/backend/internal/domain/statistic"
	"github.com/enqueter/backend/pkg/xcontext"
)

// StatsAggregationCronJob periodically rebuilds the point and response
// statistics snapshots. An overlapping run is skipped; the next tick picks up
// whatever the skipped one would have seen.
type StatsAggregationCronJob struct {
	aggregator statistic.Aggregator
	interval   time.Duration
}

func NewStatsAggregationCronJob(
	aggregator statistic.Aggregator, interval time.Duration,
) *StatsAggregationCronJob {
	return &StatsAggregationCronJob{aggregator: aggregator, interval: interval}
}

func (job *StatsAggregationCronJob) Do(ctx context.Context) {
	if err := job.aggregator.Run(ctx); err != nil {
		if errors.Is(err, statistic.ErrAlreadyRunning) {
			xcontext.Logger(ctx).Warnf("Skipped stats aggregation: %v", err)
			return
		}

		xcontext.Logger(ctx).Errorf("Cannot aggregate stats: %v", err)
	}
}

func (job *StatsAggregationCronJob) RunNow() bool {
	return true
}

func (job *StatsAggregationCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}

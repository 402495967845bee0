package main

import (
	"github.com/enqueter/backend/internal/domain/cron"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadDomains()

	interval := xcontext.Configs(s.ctx).Aggregation.Interval

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewStatsAggregationCronJob(s.aggregator, interval))
	cronJobManager.Start(s.ctx)

	return nil
}

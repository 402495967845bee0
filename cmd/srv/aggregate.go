package main

import (
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startAggregate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()
	s.loadDomains()

	if err := s.aggregator.Run(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Aggregation completed")
	return nil
}

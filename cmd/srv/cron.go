package main

import (
	"github.com/ujdhesa/unisubs/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadSearchCaller()
	s.loadRepos()

	manager := cron.NewCronJobManager()
	manager.Register(cron.NewReindexVideosCronJob(s.teamVideoRepo, s.searchCaller))
	manager.Register(cron.NewExpireTasksCronJob(s.taskRepo))
	manager.Start(s.ctx)

	return nil
}

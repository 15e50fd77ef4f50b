package main

import (
	"context"

	"github.com/birdsofspace/spacebirdz-backend/migration"
	"github.com/birdsofspace/spacebirdz-backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.ctx = context.Background()
	s.loadConfig()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.loadLogger()
	s.loadDatabase()

	return migration.Migrate(s.ctx, cctx.String("admin"))
}

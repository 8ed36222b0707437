package main

import (
	"log"

	"github.com/veleo-lab/backend/internal/entity"

	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	if err := entity.MigrateTable(s.ctx); err != nil {
		return err
	}

	log.Println("migration completed")
	return nil
}

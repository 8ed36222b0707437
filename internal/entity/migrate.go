package entity

import (
	"context"

	"github.com/veleo-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Event{},
		&ClaimCode{},
		&Badge{},
	)
}

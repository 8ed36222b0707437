package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/veleo-lab/backend/config"
	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/authenticator"
	"github.com/veleo-lab/backend/pkg/logger"
	"github.com/veleo-lab/backend/pkg/storage"
	"github.com/veleo-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	// A named in-memory database with a single connection, so concurrent
	// repository calls in a test all see the same tables.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
		},
		Aleo: config.AleoConfigs{
			ProgramID:  "veleo_badges.aleo",
			ChainID:    "testnetbeta",
			Fee:        1000000,
			FeePrivate: false,
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
		Storage: storage.S3Configs{
			Bucket: "veleo-test",
		},
		Price: config.PriceConfigs{
			CacheTTL: 5 * time.Minute,
		},
		QR: config.QRConfigs{
			Endpoint:    "https://api.qrserver.com/v1/create-qr-code/",
			DefaultSize: 300,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

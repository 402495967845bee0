package testutil

import (
	"context"
	"time"

	"github.com/enqueter/backend/config"
	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/logger"
	"github.com/enqueter/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret:     "secret",
			TokenExpiration: time.Minute,
		},
		Question: config.QuestionConfigs{
			CreateCooldown: 3 * time.Minute,
			OpenDuration:   7 * 24 * time.Hour,
		},
		Aggregation: config.AggregationConfigs{
			Interval: time.Minute,
			Timeout:  30 * time.Second,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

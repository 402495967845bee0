package entity

import (
	"context"

	"github.com/enqueter/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Question{},
		&Answer{},
		&PointLedger{},
		&ResponseLedger{},
		&PointStats{},
		&ResponseStats{},
		&Notification{},
		&UserRelationship{},
	)
}

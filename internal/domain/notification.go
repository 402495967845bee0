package domain

import (
	"context"

	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetList(ctx context.Context, req *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	WatchAll(ctx context.Context, req *model.WatchNotificationsRequest) (*model.WatchNotificationsResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", apiCfg.MaxLimit)
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByPassiveUserID(ctx, userID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, model.ConvertNotification(n))
	}

	return &model.GetNotificationsResponse{Notifications: result}, nil
}

func (d *notificationDomain) WatchAll(
	ctx context.Context, req *model.WatchNotificationsRequest,
) (*model.WatchNotificationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.notificationRepo.WatchAllByPassiveUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot watch notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WatchNotificationsResponse{}, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	// CreateIfNotExist inserts the notification unless an equal
	// (recipient, actor, category, question) one already exists. The
	// existence pre-check covers the common case; the unique index makes the
	// guard hold under concurrent writers, with a duplicate-key insert
	// treated as "already exists".
	CreateIfNotExist(ctx context.Context, data *entity.Notification) error

	GetListByPassiveUserID(ctx context.Context, passiveUserID string, offset, limit int) ([]entity.Notification, error)
	WatchAllByPassiveUserID(ctx context.Context, passiveUserID string) error
	DeleteByQuestionID(ctx context.Context, questionID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) CreateIfNotExist(ctx context.Context, data *entity.Notification) error {
	err := xcontext.DB(ctx).
		Take(&entity.Notification{},
			"passive_user_id=? AND active_user_id=? AND category=? AND question_id=?",
			data.PassiveUserID, data.ActiveUserID, data.Category, data.QuestionID).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := xcontext.DB(ctx).Create(data).Error; err != nil {
		if IsDuplicateKeyError(err) {
			return nil
		}

		return err
	}

	return nil
}

func (r *notificationRepository) GetListByPassiveUserID(
	ctx context.Context, passiveUserID string, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("passive_user_id=?", passiveUserID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) WatchAllByPassiveUserID(
	ctx context.Context, passiveUserID string,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("passive_user_id=? AND watched=?", passiveUserID, false).
		Update("watched", true).Error
}

func (r *notificationRepository) DeleteByQuestionID(ctx context.Context, questionID string) error {
	return xcontext.DB(ctx).
		Unscoped().
		Delete(&entity.Notification{}, "question_id=?", questionID).Error
}

package repository

import (
	"context"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
)

type UserQuestionAggregate struct {
	UserID    string
	Questions int64
}

type QuestionRepository interface {
	Create(ctx context.Context, data *entity.Question) error
	GetByID(ctx context.Context, id string) (*entity.Question, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Question, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Question, error)
	GetLatestByUserID(ctx context.Context, userID string) (*entity.Question, error)

	// CountByUser groups questions created after since by owner. The stats
	// aggregator joins the counts into the point snapshot of each window.
	CountByUser(ctx context.Context, since time.Time) ([]UserQuestionAggregate, error)

	DeleteByID(ctx context.Context, id string) error
}

type questionRepository struct{}

func NewQuestionRepository() *questionRepository {
	return &questionRepository{}
}

func (r *questionRepository) Create(ctx context.Context, data *entity.Question) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	var result entity.Question
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questionRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Question, error) {
	var result []entity.Question
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questionRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Question, error) {
	var result []entity.Question
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questionRepository) GetLatestByUserID(
	ctx context.Context, userID string,
) (*entity.Question, error) {
	var result entity.Question
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questionRepository) CountByUser(
	ctx context.Context, since time.Time,
) ([]UserQuestionAggregate, error) {
	var result []UserQuestionAggregate
	err := xcontext.DB(ctx).
		Model(&entity.Question{}).
		Select("user_id, COUNT(*) AS questions").
		Where("created_at > ?", since).
		Group("user_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questionRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Unscoped().Delete(&entity.Question{}, "id=?", id).Error
}

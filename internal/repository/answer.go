package repository

import (
	"context"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
)

type AnswerRepository interface {
	Create(ctx context.Context, data *entity.Answer) error
	Get(ctx context.Context, userID, questionID string) (*entity.Answer, error)
	UpdateOutcome(ctx context.Context, userID, questionID string, outcome entity.AnswerOutcome) error
	CountByOption(ctx context.Context, questionID string, option entity.QuestionOption) (int64, error)
	Count(ctx context.Context, questionID string) (int64, error)
	DeleteByQuestionID(ctx context.Context, questionID string) error
}

type answerRepository struct{}

func NewAnswerRepository() *answerRepository {
	return &answerRepository{}
}

func (r *answerRepository) Create(ctx context.Context, data *entity.Answer) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *answerRepository) Get(ctx context.Context, userID, questionID string) (*entity.Answer, error) {
	var result entity.Answer
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND question_id=?", userID, questionID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *answerRepository) UpdateOutcome(
	ctx context.Context, userID, questionID string, outcome entity.AnswerOutcome,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Answer{}).
		Where("user_id=? AND question_id=?", userID, questionID).
		Update("outcome", outcome).Error
}

func (r *answerRepository) CountByOption(
	ctx context.Context, questionID string, option entity.QuestionOption,
) (int64, error) {
	var count int64
	// The option column is backtick-quoted since OPTION is reserved in mysql.
	err := xcontext.DB(ctx).
		Model(&entity.Answer{}).
		Where("question_id=? AND `option`=?", questionID, option).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *answerRepository) Count(ctx context.Context, questionID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Answer{}).
		Where("question_id=?", questionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *answerRepository) DeleteByQuestionID(ctx context.Context, questionID string) error {
	return xcontext.DB(ctx).Delete(&entity.Answer{}, "question_id=?", questionID).Error
}

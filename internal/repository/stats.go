package repository

import (
	"context"
	"fmt"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	// UpsertPoint writes the full snapshot for one user, overwriting every
	// window field of an existing row.
	UpsertPoint(ctx context.Context, data *entity.PointStats) error
	UpsertResponse(ctx context.Context, data *entity.ResponseStats) error

	GetPointByUserID(ctx context.Context, userID string) (*entity.PointStats, error)
	GetResponseByUserID(ctx context.Context, userID string) (*entity.ResponseStats, error)

	GetPointLeaderBoard(ctx context.Context, window entity.StatsWindow, offset, limit int) ([]entity.PointStats, error)
	GetResponseLeaderBoard(ctx context.Context, window entity.StatsWindow, offset, limit int) ([]entity.ResponseStats, error)
}

type statsRepository struct{}

func NewStatsRepository() *statsRepository {
	return &statsRepository{}
}

func (r *statsRepository) UpsertPoint(ctx context.Context, data *entity.PointStats) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_rank", "total_point", "total_answers", "total_questions",
				"month_rank", "month_point", "month_answers", "month_questions",
				"week_rank", "week_point", "week_answers", "week_questions",
				"updated_at",
			}),
		}).
		Create(data).Error
}

func (r *statsRepository) UpsertResponse(ctx context.Context, data *entity.ResponseStats) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_rank", "total_response",
				"month_rank", "month_response",
				"week_rank", "week_response",
				"updated_at",
			}),
		}).
		Create(data).Error
}

func (r *statsRepository) GetPointByUserID(
	ctx context.Context, userID string,
) (*entity.PointStats, error) {
	var result entity.PointStats
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *statsRepository) GetResponseByUserID(
	ctx context.Context, userID string,
) (*entity.ResponseStats, error) {
	var result entity.ResponseStats
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *statsRepository) GetPointLeaderBoard(
	ctx context.Context, window entity.StatsWindow, offset, limit int,
) ([]entity.PointStats, error) {
	rankColumn, err := windowRankColumn(window)
	if err != nil {
		return nil, err
	}

	var result []entity.PointStats
	err = xcontext.DB(ctx).
		Where(fmt.Sprintf("%s IS NOT NULL", rankColumn)).
		Order(fmt.Sprintf("%s ASC", rankColumn)).
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *statsRepository) GetResponseLeaderBoard(
	ctx context.Context, window entity.StatsWindow, offset, limit int,
) ([]entity.ResponseStats, error) {
	rankColumn, err := windowRankColumn(window)
	if err != nil {
		return nil, err
	}

	var result []entity.ResponseStats
	err = xcontext.DB(ctx).
		Where(fmt.Sprintf("%s IS NOT NULL", rankColumn)).
		Order(fmt.Sprintf("%s ASC", rankColumn)).
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func windowRankColumn(window entity.StatsWindow) (string, error) {
	switch window {
	case entity.WindowTotal:
		return "total_rank", nil
	case entity.WindowMonth:
		return "month_rank", nil
	case entity.WindowWeek:
		return "week_rank", nil
	}

	return "", fmt.Errorf("expected total, month or week window, but got %s", window)
}

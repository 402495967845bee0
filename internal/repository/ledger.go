package repository

import (
	"context"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
)

// UserPointAggregate is one row of the grouped point-ledger query, already in
// ranking order.
type UserPointAggregate struct {
	UserID  string
	Points  int64
	Answers int64
}

type UserResponseAggregate struct {
	UserID    string
	Responses int64
}

type LedgerRepository interface {
	AppendPoint(ctx context.Context, data *entity.PointLedger) error
	AppendResponse(ctx context.Context, data *entity.ResponseLedger) error

	// SumPointsByUser groups point-ledger entries newer than since by user and
	// orders the groups by summed point descending, ties broken by user id
	// descending. The order is the ranking contract; callers assign rank from
	// the slice position.
	SumPointsByUser(ctx context.Context, since time.Time) ([]UserPointAggregate, error)

	// CountResponsesByUser is the response-ledger counterpart of
	// SumPointsByUser, ordered by count descending then user id descending.
	CountResponsesByUser(ctx context.Context, since time.Time) ([]UserResponseAggregate, error)
}

type ledgerRepository struct{}

func NewLedgerRepository() *ledgerRepository {
	return &ledgerRepository{}
}

func (r *ledgerRepository) AppendPoint(ctx context.Context, data *entity.PointLedger) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *ledgerRepository) AppendResponse(ctx context.Context, data *entity.ResponseLedger) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *ledgerRepository) SumPointsByUser(
	ctx context.Context, since time.Time,
) ([]UserPointAggregate, error) {
	var result []UserPointAggregate
	err := xcontext.DB(ctx).
		Model(&entity.PointLedger{}).
		Select("user_id, SUM(point) AS points, COUNT(*) AS answers").
		Where("created_at > ?", since).
		Group("user_id").
		Order("points DESC, user_id DESC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ledgerRepository) CountResponsesByUser(
	ctx context.Context, since time.Time,
) ([]UserResponseAggregate, error) {
	var result []UserResponseAggregate
	err := xcontext.DB(ctx).
		Model(&entity.ResponseLedger{}).
		Select("user_id, COUNT(*) AS responses").
		Where("created_at > ?", since).
		Group("user_id").
		Order("responses DESC, user_id DESC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

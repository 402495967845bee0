package statistic

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/xcontext"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrAlreadyRunning is returned by Run when another aggregation is still in
// flight. Callers treat it as a skip, not a failure.
var ErrAlreadyRunning = errors.New("an aggregation is already running")

// Aggregator recomputes the point and response statistics snapshots from the
// ledgers. Every run rewrites all three windows of every active user in a
// single transaction, so readers only ever observe a complete snapshot.
type Aggregator interface {
	Run(ctx context.Context) error
}

type aggregator struct {
	ledgerRepo   repository.LedgerRepository
	questionRepo repository.QuestionRepository
	statsRepo    repository.StatsRepository

	running int32
	now     func() time.Time
}

func NewAggregator(
	ledgerRepo repository.LedgerRepository,
	questionRepo repository.QuestionRepository,
	statsRepo repository.StatsRepository,
) *aggregator {
	return &aggregator{
		ledgerRepo:   ledgerRepo,
		questionRepo: questionRepo,
		statsRepo:    statsRepo,
		now:          time.Now,
	}
}

func (a *aggregator) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&a.running, 0, 1) {
		return ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&a.running, 0)

	timeout := xcontext.Configs(ctx).Aggregation.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	now := a.now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	pointStats, err := a.collectPointStats(ctx, now)
	if err != nil {
		return err
	}

	responseStats, err := a.collectResponseStats(ctx, now)
	if err != nil {
		return err
	}

	if err := flush(ctx, pointStats, a.statsRepo.UpsertPoint); err != nil {
		return err
	}

	if err := flush(ctx, responseStats, a.statsRepo.UpsertResponse); err != nil {
		return err
	}

	return xcontext.WithCommitDBTransaction(ctx)
}

func (a *aggregator) collectPointStats(
	ctx context.Context, now time.Time,
) (map[string]*entity.PointStats, error) {
	stats := make(map[string]*entity.PointStats)
	for _, window := range entity.StatsWindows {
		aggregates, err := a.ledgerRepo.SumPointsByUser(ctx, window.Since(now))
		if err != nil {
			return nil, err
		}

		// Question counts ride along with the point snapshot: a user ranked
		// in the window also gets the number of questions it asked in it,
		// even when that number is zero.
		questionAggregates, err := a.questionRepo.CountByUser(ctx, window.Since(now))
		if err != nil {
			return nil, err
		}

		questionCounts := make(map[string]int64, len(questionAggregates))
		for _, aggregate := range questionAggregates {
			questionCounts[aggregate.UserID] = aggregate.Questions
		}

		for i, aggregate := range aggregates {
			record, ok := stats[aggregate.UserID]
			if !ok {
				record = &entity.PointStats{UserID: aggregate.UserID, UpdatedAt: now}
				stats[aggregate.UserID] = record
			}

			rank := sql.NullInt64{Int64: int64(i + 1), Valid: true}
			point := sql.NullInt64{Int64: aggregate.Points, Valid: true}
			answers := sql.NullInt64{Int64: aggregate.Answers, Valid: true}
			questions := sql.NullInt64{Int64: questionCounts[aggregate.UserID], Valid: true}

			switch window {
			case entity.WindowTotal:
				record.TotalRank = rank
				record.TotalPoint = point
				record.TotalAnswers = answers
				record.TotalQuestions = questions
			case entity.WindowMonth:
				record.MonthRank = rank
				record.MonthPoint = point
				record.MonthAnswers = answers
				record.MonthQuestions = questions
			case entity.WindowWeek:
				record.WeekRank = rank
				record.WeekPoint = point
				record.WeekAnswers = answers
				record.WeekQuestions = questions
			}
		}
	}

	return stats, nil
}

func (a *aggregator) collectResponseStats(
	ctx context.Context, now time.Time,
) (map[string]*entity.ResponseStats, error) {
	stats := make(map[string]*entity.ResponseStats)
	for _, window := range entity.StatsWindows {
		aggregates, err := a.ledgerRepo.CountResponsesByUser(ctx, window.Since(now))
		if err != nil {
			return nil, err
		}

		for i, aggregate := range aggregates {
			record, ok := stats[aggregate.UserID]
			if !ok {
				record = &entity.ResponseStats{UserID: aggregate.UserID, UpdatedAt: now}
				stats[aggregate.UserID] = record
			}

			rank := sql.NullInt64{Int64: int64(i + 1), Valid: true}
			responses := sql.NullInt64{Int64: aggregate.Responses, Valid: true}

			switch window {
			case entity.WindowTotal:
				record.TotalRank = rank
				record.TotalResponse = responses
			case entity.WindowMonth:
				record.MonthRank = rank
				record.MonthResponse = responses
			case entity.WindowWeek:
				record.WeekRank = rank
				record.WeekResponse = responses
			}
		}
	}

	return stats, nil
}

// flush upserts in user id order so concurrent runs against a real database
// acquire row locks in a deterministic order.
func flush[T any](ctx context.Context, stats map[string]*T, upsert func(context.Context, *T) error) error {
	userIDs := maps.Keys(stats)
	slices.Sort(userIDs)

	for _, userID := range userIDs {
		if err := upsert(ctx, stats[userID]); err != nil {
			return err
		}
	}

	return nil
}

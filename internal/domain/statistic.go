package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/enum"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	orderedByPoint    = "point"
	orderedByResponse = "response"
)

type StatisticDomain interface {
	GetPointStats(ctx context.Context, req *model.GetPointStatsRequest) (*model.GetPointStatsResponse, error)
	GetResponseStats(ctx context.Context, req *model.GetResponseStatsRequest) (*model.GetResponseStatsResponse, error)
	GetLeaderBoard(ctx context.Context, req *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	statsRepo repository.StatsRepository
	userRepo  repository.UserRepository
}

func NewStatisticDomain(
	statsRepo repository.StatsRepository,
	userRepo repository.UserRepository,
) *statisticDomain {
	return &statisticDomain{statsRepo: statsRepo, userRepo: userRepo}
}

// GetPointStats returns the latest aggregated snapshot of one user in one
// window. A user without a snapshot row, or without activity in the window,
// gets nil fields rather than zeros.
func (d *statisticDomain) GetPointStats(
	ctx context.Context, req *model.GetPointStatsRequest,
) (*model.GetPointStatsResponse, error) {
	window, err := enum.ToEnum[entity.StatsWindow](req.Window)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid window %s", req.Window)
	}

	stats, err := d.statsRepo.GetPointByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetPointStatsResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get point stats: %v", err)
		return nil, errorx.Unknown
	}

	var rank, point, answers, questions sql.NullInt64
	switch window {
	case entity.WindowTotal:
		rank, point, answers = stats.TotalRank, stats.TotalPoint, stats.TotalAnswers
		questions = stats.TotalQuestions
	case entity.WindowMonth:
		rank, point, answers = stats.MonthRank, stats.MonthPoint, stats.MonthAnswers
		questions = stats.MonthQuestions
	case entity.WindowWeek:
		rank, point, answers = stats.WeekRank, stats.WeekPoint, stats.WeekAnswers
		questions = stats.WeekQuestions
	}

	return &model.GetPointStatsResponse{
		Stats: model.PointStats{
			Rank:      nullableInt64(rank),
			Point:     nullableInt64(point),
			Answers:   nullableInt64(answers),
			Questions: nullableInt64(questions),
		},
	}, nil
}

func (d *statisticDomain) GetResponseStats(
	ctx context.Context, req *model.GetResponseStatsRequest,
) (*model.GetResponseStatsResponse, error) {
	window, err := enum.ToEnum[entity.StatsWindow](req.Window)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid window %s", req.Window)
	}

	stats, err := d.statsRepo.GetResponseByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetResponseStatsResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get response stats: %v", err)
		return nil, errorx.Unknown
	}

	var rank, response sql.NullInt64
	switch window {
	case entity.WindowTotal:
		rank, response = stats.TotalRank, stats.TotalResponse
	case entity.WindowMonth:
		rank, response = stats.MonthRank, stats.MonthResponse
	case entity.WindowWeek:
		rank, response = stats.WeekRank, stats.WeekResponse
	}

	return &model.GetResponseStatsResponse{
		Stats: model.ResponseStats{
			Rank:     nullableInt64(rank),
			Response: nullableInt64(response),
		},
	}, nil
}

// GetLeaderBoard reads top users straight from the snapshot tables. It never
// aggregates at request time; an empty board simply means the aggregator has
// not run yet.
func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	window, err := enum.ToEnum[entity.StatsWindow](req.Window)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid window %s", req.Window)
	}

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

	var board []model.UserStatistic
	switch req.OrderedBy {
	case orderedByPoint:
		board, err = d.pointLeaderBoard(ctx, window, req.Offset, req.Limit)
	case orderedByResponse:
		board, err = d.responseLeaderBoard(ctx, window, req.Offset, req.Limit)
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid ordered_by %s", req.OrderedBy)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: board}, nil
}

func (d *statisticDomain) pointLeaderBoard(
	ctx context.Context, window entity.StatsWindow, offset, limit int,
) ([]model.UserStatistic, error) {
	stats, err := d.statsRepo.GetPointLeaderBoard(ctx, window, offset, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(stats))
	for _, s := range stats {
		userIDs = append(userIDs, s.UserID)
	}

	users, err := d.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	board := make([]model.UserStatistic, 0, len(stats))
	for _, s := range stats {
		var rank, value sql.NullInt64
		switch window {
		case entity.WindowTotal:
			rank, value = s.TotalRank, s.TotalPoint
		case entity.WindowMonth:
			rank, value = s.MonthRank, s.MonthPoint
		case entity.WindowWeek:
			rank, value = s.WeekRank, s.WeekPoint
		}

		board = append(board, model.UserStatistic{
			User:  model.ConvertUser(users[s.UserID]),
			Rank:  rank.Int64,
			Value: value.Int64,
		})
	}

	return board, nil
}

func (d *statisticDomain) responseLeaderBoard(
	ctx context.Context, window entity.StatsWindow, offset, limit int,
) ([]model.UserStatistic, error) {
	stats, err := d.statsRepo.GetResponseLeaderBoard(ctx, window, offset, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(stats))
	for _, s := range stats {
		userIDs = append(userIDs, s.UserID)
	}

	users, err := d.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	board := make([]model.UserStatistic, 0, len(stats))
	for _, s := range stats {
		var rank, value sql.NullInt64
		switch window {
		case entity.WindowTotal:
			rank, value = s.TotalRank, s.TotalResponse
		case entity.WindowMonth:
			rank, value = s.MonthRank, s.MonthResponse
		case entity.WindowWeek:
			rank, value = s.WeekRank, s.WeekResponse
		}

		board = append(board, model.UserStatistic{
			User:  model.ConvertUser(users[s.UserID]),
			Rank:  rank.Int64,
			Value: value.Int64,
		})
	}

	return board, nil
}

func (d *statisticDomain) usersByID(ctx context.Context, ids []string) (map[string]entity.User, error) {
	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	return byID, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}

	return &v.Int64
}

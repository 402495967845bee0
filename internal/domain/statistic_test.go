package domain

import (
	"testing"
	"time"

	"github.com/enqueter/backend/internal/domain/statistic"
	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newStatisticDomain() *statisticDomain {
	return NewStatisticDomain(
		repository.NewStatsRepository(),
		repository.NewUserRepository(),
	)
}

func Test_statisticDomain_GetPointStats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newStatisticDomain()

	ledgerRepo := repository.NewLedgerRepository()
	now := time.Now()
	require.NoError(t, ledgerRepo.AppendPoint(ctx, &entity.PointLedger{
		UserID: testutil.User1.ID, Point: 3, CreatedAt: now.AddDate(0, 0, -2)}))
	require.NoError(t, ledgerRepo.AppendPoint(ctx, &entity.PointLedger{
		UserID: testutil.User2.ID, Point: 1, CreatedAt: now.AddDate(0, 0, -40)}))

	aggregator := statistic.NewAggregator(
		ledgerRepo, repository.NewQuestionRepository(), repository.NewStatsRepository())
	require.NoError(t, aggregator.Run(ctx))

	resp, err := domain.GetPointStats(ctx, &model.GetPointStatsRequest{
		UserID: testutil.User1.ID,
		Window: "week",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), *resp.Stats.Rank)
	require.Equal(t, int64(3), *resp.Stats.Point)
	require.Equal(t, int64(1), *resp.Stats.Answers)
	require.Equal(t, int64(0), *resp.Stats.Questions)

	// user2 has no recent activity: nil fields in the week window.
	resp, err = domain.GetPointStats(ctx, &model.GetPointStatsRequest{
		UserID: testutil.User2.ID,
		Window: "week",
	})
	require.NoError(t, err)
	require.Nil(t, resp.Stats.Rank)
	require.Nil(t, resp.Stats.Point)
	require.Nil(t, resp.Stats.Answers)
	require.Nil(t, resp.Stats.Questions)

	// user3 never appears in the ledger: no snapshot row at all.
	resp, err = domain.GetPointStats(ctx, &model.GetPointStatsRequest{
		UserID: testutil.User3.ID,
		Window: "total",
	})
	require.NoError(t, err)
	require.Nil(t, resp.Stats.Rank)

	_, err = domain.GetPointStats(ctx, &model.GetPointStatsRequest{
		UserID: testutil.User1.ID,
		Window: "decade",
	})
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Invalid window decade"}, err)
}

func Test_statisticDomain_GetLeaderBoard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newStatisticDomain()

	ledgerRepo := repository.NewLedgerRepository()
	now := time.Now()
	require.NoError(t, ledgerRepo.AppendPoint(ctx, &entity.PointLedger{
		UserID: testutil.User1.ID, Point: 3, CreatedAt: now.AddDate(0, 0, -1)}))
	require.NoError(t, ledgerRepo.AppendPoint(ctx, &entity.PointLedger{
		UserID: testutil.User2.ID, Point: 1, CreatedAt: now.AddDate(0, 0, -1)}))
	require.NoError(t, ledgerRepo.AppendResponse(ctx, &entity.ResponseLedger{
		UserID: testutil.User3.ID, CreatedAt: now.AddDate(0, 0, -1)}))

	aggregator := statistic.NewAggregator(
		ledgerRepo, repository.NewQuestionRepository(), repository.NewStatsRepository())
	require.NoError(t, aggregator.Run(ctx))

	resp, err := domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{
		Window:    "week",
		OrderedBy: "point",
	})
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{
			User:  model.ShortUser{ID: testutil.User1.ID, Name: testutil.User1.Name},
			Rank:  1,
			Value: 3,
		},
		{
			User:  model.ShortUser{ID: testutil.User2.ID, Name: testutil.User2.Name},
			Rank:  2,
			Value: 1,
		},
	}, resp.LeaderBoard)

	resp, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{
		Window:    "total",
		OrderedBy: "response",
	})
	require.NoError(t, err)
	require.Len(t, resp.LeaderBoard, 1)
	require.Equal(t, testutil.User3.ID, resp.LeaderBoard[0].User.ID)
	require.Equal(t, int64(1), resp.LeaderBoard[0].Value)

	_, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{
		Window:    "week",
		OrderedBy: "followers",
	})
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Invalid ordered_by followers"}, err)

	_, err = domain.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{
		Window:    "week",
		OrderedBy: "point",
		Limit:     100,
	})
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Exceeded the maximum limit of 50"}, err)
}

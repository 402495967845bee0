package domain

import (
	"context"
	"testing"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/testutil"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAnswerDomain() *answerDomain {
	return NewAnswerDomain(
		repository.NewQuestionRepository(),
		repository.NewAnswerRepository(),
		repository.NewLedgerRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_answerDomain_Submit_outcomes(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAnswerDomain()

	// The first answer ever is FIRST regardless of the majority to come.
	resp, err := domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)
	require.Equal(t, "first", resp.Outcome)
	require.Equal(t, 1, resp.Score)

	// The second answer levels yes and no at one each.
	resp, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "no"},
	)
	require.NoError(t, err)
	require.Equal(t, "even", resp.Outcome)
	require.Equal(t, 0, resp.Score)

	// A third user joins the strict majority.
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: "user4"},
		Name: "dave",
	}))

	resp, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, "user4"),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)
	require.Equal(t, "right", resp.Outcome)
	require.Equal(t, 3, resp.Score)

	// A fourth user picks the minority option and loses points.
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: "user5"},
		Name: "erin",
	}))

	resp, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, "user5"),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)
	require.Equal(t, "right", resp.Outcome)

	require.NoError(t, userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: "user6"},
		Name: "frank",
	}))

	resp, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, "user6"),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "no"},
	)
	require.NoError(t, err)
	require.Equal(t, "wrong", resp.Outcome)
	require.Equal(t, -3, resp.Score)

	// Earlier outcomes are untouched by the shifting majority.
	answerRepo := repository.NewAnswerRepository()
	first, err := answerRepo.Get(ctx, testutil.User2.ID, testutil.Question1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OutcomeFirst, first.Outcome)

	even, err := answerRepo.Get(ctx, testutil.User3.ID, testutil.Question1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OutcomeEven, even.Outcome)

	// The point ledger holds one entry per answer, in submission order.
	var points []entity.PointLedger
	require.NoError(t, xcontext.DB(ctx).Order("id ASC").Find(&points).Error)
	require.Len(t, points, 5)
	require.Equal(t, 1, points[0].Point)
	require.Equal(t, 0, points[1].Point)
	require.Equal(t, 3, points[2].Point)
	require.Equal(t, 3, points[3].Point)
	require.Equal(t, -3, points[4].Point)

	// The owner got one response entry per received answer.
	var responses []entity.ResponseLedger
	require.NoError(t, xcontext.DB(ctx).Find(&responses, "user_id=?", testutil.User1.ID).Error)
	require.Len(t, responses, 5)
}

func Test_answerDomain_Submit_rejections(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAnswerDomain()

	// Unknown question.
	_, err := domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: "invalid-question", Option: "yes"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.NotFound, Message: "Not found question"}, err)

	// Invalid option.
	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "maybe"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Invalid option maybe"}, err)

	// The owner cannot answer its own question.
	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Cannot answer your own question"}, err)

	// A second answer of the same user is rejected and changes nothing.
	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)

	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "no"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "You answered this question before"}, err)

	var points []entity.PointLedger
	require.NoError(t, xcontext.DB(ctx).Find(&points).Error)
	require.Len(t, points, 1)
}

// recheckFreeAnswerRepository reports no existing answer from Get, so Submit
// always reaches the insert. This is what both sides of a race see when two
// submissions pass the pre-check before either row lands.
type recheckFreeAnswerRepository struct {
	repository.AnswerRepository
}

func (r recheckFreeAnswerRepository) Get(
	ctx context.Context, userID, questionID string,
) (*entity.Answer, error) {
	return nil, gorm.ErrRecordNotFound
}

func Test_answerDomain_Submit_duplicateRace(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewAnswerDomain(
		repository.NewQuestionRepository(),
		recheckFreeAnswerRepository{repository.NewAnswerRepository()},
		repository.NewLedgerRepository(),
		repository.NewNotificationRepository(),
	)

	_, err := domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)

	// The loser of the race is stopped by the primary key, not the pre-check.
	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "no"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.AlreadyExists, Message: "You answered this question before"}, err)

	// The rolled back submission left no trace in the ledgers.
	var points []entity.PointLedger
	require.NoError(t, xcontext.DB(ctx).Find(&points).Error)
	require.Len(t, points, 1)

	var responses []entity.ResponseLedger
	require.NoError(t, xcontext.DB(ctx).Find(&responses).Error)
	require.Len(t, responses, 1)
}

func Test_answerDomain_Submit_closedQuestion(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newAnswerDomain()

	questionRepo := repository.NewQuestionRepository()
	require.NoError(t, questionRepo.Create(ctx, &entity.Question{
		Base:     entity.Base{ID: "closed-question"},
		UserID:   testutil.User1.ID,
		Content:  "Too late to ask?",
		ClosedAt: time.Now().Add(-time.Hour),
	}))

	_, err := domain.Submit(ctx, &model.SubmitAnswerRequest{
		QuestionID: "closed-question", Option: "yes"})
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "This question is closed"}, err)
}

func Test_answerDomain_Submit_notifications(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAnswerDomain()

	_, err := domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)

	_, err = domain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "no"},
	)
	require.NoError(t, err)

	notificationRepo := repository.NewNotificationRepository()
	notifications, err := notificationRepo.GetListByPassiveUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	for _, n := range notifications {
		require.Equal(t, entity.NotificationAnswer, n.Category)
		require.Equal(t, testutil.Question1.ID, n.QuestionID)
		require.False(t, n.Watched)
	}
}

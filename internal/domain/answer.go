package domain

import (
	"context"
	"errors"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/enum"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerDomain interface {
	Submit(ctx context.Context, req *model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error)
}

type answerDomain struct {
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	ledgerRepo       repository.LedgerRepository
	notificationRepo repository.NotificationRepository

	now func() time.Time
}

func NewAnswerDomain(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	ledgerRepo repository.LedgerRepository,
	notificationRepo repository.NotificationRepository,
) *answerDomain {
	return &answerDomain{
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Submit records the answer of the requesting user and resolves its outcome
// in the same transaction. The outcome is decided against the vote counts as
// they stand right after this answer is inserted and is never revisited when
// later answers change the majority.
func (d *answerDomain) Submit(
	ctx context.Context, req *model.SubmitAnswerRequest,
) (*model.SubmitAnswerResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	option, err := enum.ToEnum[entity.QuestionOption](req.Option)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid option %s", req.Option)
	}

	question, err := d.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found question")
		}

		xcontext.Logger(ctx).Errorf("Cannot get question: %v", err)
		return nil, errorx.Unknown
	}

	if !d.now().Before(question.ClosedAt) {
		return nil, errorx.New(errorx.BadRequest, "This question is closed")
	}

	if question.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot answer your own question")
	}

	_, err = d.answerRepo.Get(ctx, userID, req.QuestionID)
	if err == nil {
		return nil, errorx.New(errorx.BadRequest, "You answered this question before")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get answer: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.answerRepo.Create(ctx, &entity.Answer{
		UserID:     userID,
		QuestionID: question.ID,
		Option:     option,
	})
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, errorx.New(errorx.AlreadyExists, "You answered this question before")
		}

		xcontext.Logger(ctx).Errorf("Cannot create answer: %v", err)
		return nil, errorx.Unknown
	}

	outcome, err := d.resolveOutcome(ctx, question.ID, option)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve outcome: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.answerRepo.UpdateOutcome(ctx, userID, question.ID, outcome); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update outcome: %v", err)
		return nil, errorx.Unknown
	}

	err = d.ledgerRepo.AppendPoint(ctx, &entity.PointLedger{
		UserID: userID,
		Point:  outcome.Score(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append point ledger: %v", err)
		return nil, errorx.Unknown
	}

	err = d.ledgerRepo.AppendResponse(ctx, &entity.ResponseLedger{
		UserID: question.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append response ledger: %v", err)
		return nil, errorx.Unknown
	}

	err = d.notificationRepo.CreateIfNotExist(ctx, &entity.Notification{
		Base:          entity.Base{ID: uuid.NewString()},
		PassiveUserID: question.UserID,
		ActiveUserID:  userID,
		Category:      entity.NotificationAnswer,
		QuestionID:    question.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit answer: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubmitAnswerResponse{
		Outcome: string(outcome),
		Score:   outcome.Score(),
	}, nil
}

// resolveOutcome classifies the freshly inserted answer against the counts
// including itself. The very first answer of a question is FIRST regardless
// of its option.
func (d *answerDomain) resolveOutcome(
	ctx context.Context, questionID string, option entity.QuestionOption,
) (entity.AnswerOutcome, error) {
	yes, err := d.answerRepo.CountByOption(ctx, questionID, entity.OptionYes)
	if err != nil {
		return "", err
	}

	no, err := d.answerRepo.CountByOption(ctx, questionID, entity.OptionNo)
	if err != nil {
		return "", err
	}

	chosen, other := yes, no
	if option == entity.OptionNo {
		chosen, other = no, yes
	}

	switch {
	case yes+no == 1:
		return entity.OutcomeFirst, nil
	case chosen == other:
		return entity.OutcomeEven, nil
	case chosen > other:
		return entity.OutcomeRight, nil
	default:
		return entity.OutcomeWrong, nil
	}
}

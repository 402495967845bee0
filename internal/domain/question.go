package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionDomain interface {
	Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.CreateQuestionResponse, error)
	Get(ctx context.Context, req *model.GetQuestionRequest) (*model.GetQuestionResponse, error)
	GetList(ctx context.Context, req *model.GetQuestionsRequest) (*model.GetQuestionsResponse, error)
	GetListByUser(ctx context.Context, req *model.GetUserQuestionsRequest) (*model.GetUserQuestionsResponse, error)
	Delete(ctx context.Context, req *model.DeleteQuestionRequest) (*model.DeleteQuestionResponse, error)
}

type questionDomain struct {
	questionRepo     repository.QuestionRepository
	answerRepo       repository.AnswerRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository

	now func() time.Time
}

func NewQuestionDomain(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *questionDomain {
	return &questionDomain{
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

func (d *questionDomain) Create(
	ctx context.Context, req *model.CreateQuestionRequest,
) (*model.CreateQuestionResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	cfg := xcontext.Configs(ctx).Question
	now := d.now()

	latest, err := d.questionRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the latest question: %v", err)
		return nil, errorx.Unknown
	}

	if err == nil && now.Sub(latest.CreatedAt) < cfg.CreateCooldown {
		return nil, errorx.New(errorx.TooManyRequests,
			"Please wait for a while before creating another question")
	}

	question := &entity.Question{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   userID,
		Content:  content,
		ClosedAt: now.Add(cfg.OpenDuration),
	}

	if err := d.questionRepo.Create(ctx, question); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create question: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get question owner: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateQuestionResponse{
		Question: model.ConvertQuestion(*question, *user, 0),
	}, nil
}

func (d *questionDomain) Get(
	ctx context.Context, req *model.GetQuestionRequest,
) (*model.GetQuestionResponse, error) {
	question, err := d.questionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found question")
		}

		xcontext.Logger(ctx).Errorf("Cannot get question: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, question.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get question owner: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.answerRepo.Count(ctx, question.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetQuestionResponse{
		Question: model.ConvertQuestion(*question, *user, count),
	}, nil
}

func (d *questionDomain) GetList(
	ctx context.Context, req *model.GetQuestionsRequest,
) (*model.GetQuestionsResponse, error) {
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

	questions, err := d.questionRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	ownerIDs := make([]string, 0, len(questions))
	for _, q := range questions {
		ownerIDs = append(ownerIDs, q.UserID)
	}

	owners, err := d.userRepo.GetByIDs(ctx, ownerIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get question owners: %v", err)
		return nil, errorx.Unknown
	}

	ownerByID := make(map[string]entity.User, len(owners))
	for _, owner := range owners {
		ownerByID[owner.ID] = owner
	}

	result := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		count, err := d.answerRepo.Count(ctx, q.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertQuestion(q, ownerByID[q.UserID], count))
	}

	return &model.GetQuestionsResponse{Questions: result}, nil
}

// GetListByUser lists the questions one user asked, newest first.
func (d *questionDomain) GetListByUser(
	ctx context.Context, req *model.GetUserQuestionsRequest,
) (*model.GetUserQuestionsResponse, error) {
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

	owner, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	questions, err := d.questionRepo.GetListByUserID(ctx, req.UserID, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get questions: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		count, err := d.answerRepo.Count(ctx, q.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertQuestion(q, *owner, count))
	}

	return &model.GetUserQuestionsResponse{Questions: result}, nil
}

// Delete removes the question together with its answers and notifications in
// one transaction. Ledger entries are append-only history and survive the
// deletion, so scores already granted are kept.
func (d *questionDomain) Delete(
	ctx context.Context, req *model.DeleteQuestionRequest,
) (*model.DeleteQuestionResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	question, err := d.questionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found question")
		}

		xcontext.Logger(ctx).Errorf("Cannot get question: %v", err)
		return nil, errorx.Unknown
	}

	if question.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can delete the question")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.answerRepo.DeleteByQuestionID(ctx, question.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete answers: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.notificationRepo.DeleteByQuestionID(ctx, question.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete notifications: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questionRepo.DeleteByID(ctx, question.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete question: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit question deletion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteQuestionResponse{}, nil
}

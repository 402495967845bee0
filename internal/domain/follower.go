package domain

import (
	"context"
	"errors"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowerDomain interface {
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
}

type followerDomain struct {
	userRepo         repository.UserRepository
	relationshipRepo repository.RelationshipRepository
	notificationRepo repository.NotificationRepository
}

func NewFollowerDomain(
	userRepo repository.UserRepository,
	relationshipRepo repository.RelationshipRepository,
	notificationRepo repository.NotificationRepository,
) *followerDomain {
	return &followerDomain{
		userRepo:         userRepo,
		relationshipRepo: relationshipRepo,
		notificationRepo: notificationRepo,
	}
}

// Follow is idempotent. Following a user twice keeps a single relationship
// row and a single notification.
func (d *followerDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == req.UserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.relationshipRepo.Create(ctx, &entity.UserRelationship{
		FollowingID: userID,
		FollowedID:  req.UserID,
	})
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			return &model.FollowResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot create relationship: %v", err)
		return nil, errorx.Unknown
	}

	err = d.notificationRepo.CreateIfNotExist(ctx, &entity.Notification{
		Base:          entity.Base{ID: uuid.NewString()},
		PassiveUserID: req.UserID,
		ActiveUserID:  userID,
		Category:      entity.NotificationFollow,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit follow: %v", err)
		return nil, errorx.Unknown
	}

	return &model.FollowResponse{}, nil
}

func (d *followerDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.relationshipRepo.Get(ctx, userID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You are not following this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get relationship: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.relationshipRepo.Delete(ctx, userID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete relationship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnfollowResponse{}, nil
}

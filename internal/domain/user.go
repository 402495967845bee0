package domain

import (
	"context"
	"errors"

	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	Get(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type userDomain struct {
	userRepo         repository.UserRepository
	relationshipRepo repository.RelationshipRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	relationshipRepo repository.RelationshipRepository,
) *userDomain {
	return &userDomain{userRepo: userRepo, relationshipRepo: relationshipRepo}
}

func (d *userDomain) Get(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followers, err := d.relationshipRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	isFollowing := false
	if requesterID := xcontext.RequestUserID(ctx); requesterID != "" && requesterID != user.ID {
		_, err := d.relationshipRepo.Get(ctx, requesterID, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get relationship: %v", err)
			return nil, errorx.Unknown
		}

		isFollowing = err == nil
	}

	return &model.GetUserResponse{
		User:        model.ConvertUser(*user),
		Followers:   followers,
		IsFollowing: isFollowing,
	}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(*user)}, nil
}

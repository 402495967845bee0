package repository

import (
	"context"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/pkg/xcontext"
)

type RelationshipRepository interface {
	Create(ctx context.Context, data *entity.UserRelationship) error
	Delete(ctx context.Context, followingID, followedID string) error
	Get(ctx context.Context, followingID, followedID string) (*entity.UserRelationship, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
}

type relationshipRepository struct{}

func NewRelationshipRepository() *relationshipRepository {
	return &relationshipRepository{}
}

func (r *relationshipRepository) Create(ctx context.Context, data *entity.UserRelationship) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *relationshipRepository) Delete(ctx context.Context, followingID, followedID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.UserRelationship{}, "following_id=? AND followed_id=?", followingID, followedID).Error
}

func (r *relationshipRepository) Get(
	ctx context.Context, followingID, followedID string,
) (*entity.UserRelationship, error) {
	var result entity.UserRelationship
	err := xcontext.DB(ctx).
		Take(&result, "following_id=? AND followed_id=?", followingID, followedID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *relationshipRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.UserRelationship{}).
		Where("followed_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

package domain

import (
	"testing"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/errorx"
	"github.com/enqueter/backend/pkg/testutil"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newFollowerDomain() *followerDomain {
	return NewFollowerDomain(
		repository.NewUserRepository(),
		repository.NewRelationshipRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_followerDomain_Follow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newFollowerDomain()

	_, err := domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	relationshipRepo := repository.NewRelationshipRepository()
	_, err = relationshipRepo.Get(ctx, testutil.User2.ID, testutil.User1.ID)
	require.NoError(t, err)

	notifications, err := repository.NewNotificationRepository().
		GetListByPassiveUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollow, notifications[0].Category)
	require.Equal(t, testutil.User2.ID, notifications[0].ActiveUserID)

	// Following again is a no-op.
	_, err = domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	notifications, err = repository.NewNotificationRepository().
		GetListByPassiveUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func Test_followerDomain_Follow_rejections(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newFollowerDomain()

	_, err := domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User2.ID},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.BadRequest, Message: "Cannot follow yourself"}, err)

	_, err = domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: "invalid-user"},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.NotFound, Message: "Not found user"}, err)
}

func Test_followerDomain_Unfollow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	domain := newFollowerDomain()

	_, err := domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	_, err = domain.Unfollow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.UnfollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	_, err = repository.NewRelationshipRepository().
		Get(ctx, testutil.User2.ID, testutil.User1.ID)
	require.Error(t, err)

	// Unfollowing a user who was never followed.
	_, err = domain.Unfollow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.UnfollowRequest{UserID: testutil.User3.ID},
	)
	require.Error(t, err)
	require.Equal(t, errorx.Error{Code: errorx.NotFound, Message: "You are not following this user"}, err)

	// The follow notification is deduplicated even across a refollow.
	_, err = domain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	notifications, err := repository.NewNotificationRepository().
		GetListByPassiveUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func Test_userDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)
	followerDomain := newFollowerDomain()
	userDomain := NewUserDomain(
		repository.NewUserRepository(),
		repository.NewRelationshipRepository(),
	)

	_, err := followerDomain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	resp, err := userDomain.Get(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.GetUserRequest{ID: testutil.User1.ID},
	)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, resp.User.Name)
	require.Equal(t, int64(1), resp.Followers)
	require.True(t, resp.IsFollowing)

	// Anonymous requesters never appear to follow anyone.
	resp, err = userDomain.Get(ctx, &model.GetUserRequest{ID: testutil.User1.ID})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)

	me, err := userDomain.GetMe(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID), &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, me.User.ID)
}

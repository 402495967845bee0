package domain

import (
	"testing"

	"github.com/enqueter/backend/internal/model"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/testutil"
	"github.com/enqueter/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_notificationDomain_GetList_WatchAll(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	answerDomain := newAnswerDomain()
	followerDomain := newFollowerDomain()
	domain := NewNotificationDomain(repository.NewNotificationRepository())

	_, err := answerDomain.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitAnswerRequest{QuestionID: testutil.Question1.ID, Option: "yes"},
	)
	require.NoError(t, err)

	_, err = followerDomain.Follow(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.FollowRequest{UserID: testutil.User1.ID},
	)
	require.NoError(t, err)

	resp, err := domain.GetList(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.GetNotificationsRequest{},
	)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)

	for _, n := range resp.Notifications {
		require.False(t, n.Watched)
	}

	// Another user's feed stays empty.
	other, err := domain.GetList(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.GetNotificationsRequest{},
	)
	require.NoError(t, err)
	require.Empty(t, other.Notifications)

	_, err = domain.WatchAll(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.WatchNotificationsRequest{},
	)
	require.NoError(t, err)

	resp, err = domain.GetList(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.GetNotificationsRequest{},
	)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)

	for _, n := range resp.Notifications {
		require.True(t, n.Watched)
	}
}

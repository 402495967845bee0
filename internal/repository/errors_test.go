package repository_test

import (
	"errors"
	"testing"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/repository"
	"github.com/enqueter/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKeyError(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	answerRepo := repository.NewAnswerRepository()

	require.NoError(t, answerRepo.Create(ctx, &entity.Answer{
		UserID:     testutil.User2.ID,
		QuestionID: testutil.Question1.ID,
		Option:     entity.OptionYes,
	}))

	// The composite primary key rejects a second answer of the same user.
	err := answerRepo.Create(ctx, &entity.Answer{
		UserID:     testutil.User2.ID,
		QuestionID: testutil.Question1.ID,
		Option:     entity.OptionNo,
	})
	require.Error(t, err)
	require.True(t, repository.IsDuplicateKeyError(err))

	require.False(t, repository.IsDuplicateKeyError(nil))
	require.False(t, repository.IsDuplicateKeyError(errors.New("connection refused")))
}

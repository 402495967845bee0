package testutil

import (
	"context"
	"time"

	"github.com/enqueter/backend/internal/entity"
	"github.com/enqueter/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "alice",
		Role: entity.UserRole,
	}

	User2 = entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "bob",
		Role: entity.UserRole,
	}

	User3 = entity.User{
		Base: entity.Base{ID: "user3"},
		Name: "carol",
		Role: entity.UserRole,
	}

	Question1 = entity.Question{
		Base:     entity.Base{ID: "question1"},
		UserID:   User1.ID,
		Content:  "Is pineapple acceptable on pizza?",
		ClosedAt: time.Now().Add(7 * 24 * time.Hour),
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertQuestions(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertQuestions(ctx context.Context) {
	questionRepo := repository.NewQuestionRepository()

	question := Question1
	if err := questionRepo.Create(ctx, &question); err != nil {
		panic(err)
	}
}

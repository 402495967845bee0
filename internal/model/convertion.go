package model

import (
	"time"

	"github.com/enqueter/backend/internal/entity"
)

func ConvertUser(user entity.User) ShortUser {
	return ShortUser{
		ID:   user.ID,
		Name: user.Name,
	}
}

func ConvertQuestion(question entity.Question, user entity.User, answerCount int64) Question {
	return Question{
		ID:          question.ID,
		Content:     question.Content,
		User:        ConvertUser(user),
		AnswerCount: answerCount,
		ClosedAt:    question.ClosedAt.Format(time.RFC3339),
		CreatedAt:   question.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertNotification(notification entity.Notification) Notification {
	return Notification{
		ID:           notification.ID,
		Category:     string(notification.Category),
		ActiveUserID: notification.ActiveUserID,
		QuestionID:   notification.QuestionID,
		Watched:      notification.Watched,
		CreatedAt:    notification.CreatedAt.Format(time.RFC3339),
	}
}

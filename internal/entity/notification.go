package entity

import "github.com/enqueter/backend/pkg/enum"

type NotificationCategory string

var (
	NotificationAnswer = enum.New(NotificationCategory("answer"))
	NotificationFollow = enum.New(NotificationCategory("follow"))
)

// Notification is created as a side effect of an answer or a follow. The
// unique index is what makes creation idempotent under concurrent writers;
// QuestionID holds the empty string instead of NULL for categories without a
// question so the index always applies.
type Notification struct {
	Base

	PassiveUserID string `gorm:"uniqueIndex:idx_notifications_dedup"`
	PassiveUser   User   `gorm:"foreignKey:PassiveUserID"`

	ActiveUserID string `gorm:"uniqueIndex:idx_notifications_dedup"`
	ActiveUser   User   `gorm:"foreignKey:ActiveUserID"`

	Category   NotificationCategory `gorm:"uniqueIndex:idx_notifications_dedup"`
	QuestionID string               `gorm:"uniqueIndex:idx_notifications_dedup;default:''"`

	Watched bool
}

package entity

import "time"

type Question struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Content string

	// ClosedAt is fixed at creation time. Once the wall clock passes it, the
	// question rejects every new answer; it is never reopened or extended.
	ClosedAt time.Time
}

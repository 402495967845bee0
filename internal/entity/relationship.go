package entity

import "time"

// UserRelationship records that FollowingID follows FollowedID. The composite
// primary key makes following idempotent.
type UserRelationship struct {
	FollowingID string `gorm:"primaryKey"`
	Following   User   `gorm:"foreignKey:FollowingID"`

	FollowedID string `gorm:"primaryKey"`
	Followed   User   `gorm:"foreignKey:FollowedID"`

	CreatedAt time.Time
}

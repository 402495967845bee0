package entity

import "time"

// PointLedger is append-only. It is the sole source of truth for score
// aggregation; no running counter is kept anywhere else.
type PointLedger struct {
	ID int64 `gorm:"primaryKey"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Point     int
	CreatedAt time.Time `gorm:"index"`
}

// ResponseLedger is append-only. One entry is written for every answer any
// question of UserID receives.
type ResponseLedger struct {
	ID int64 `gorm:"primaryKey"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"index"`
}

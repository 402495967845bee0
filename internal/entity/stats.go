package entity

import (
	"database/sql"
	"time"
)

// PointStats is a materialized snapshot derived from the point ledger by the
// batch aggregator. One row per user, overwritten on every run; it can be
// dropped and rebuilt at any time. A window's fields stay NULL when the user
// has no ledger entry in that window: NULL means "unranked", not "ranked with
// zero".
type PointStats struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TotalRank      sql.NullInt64
	TotalPoint     sql.NullInt64
	TotalAnswers   sql.NullInt64
	TotalQuestions sql.NullInt64

	MonthRank      sql.NullInt64
	MonthPoint     sql.NullInt64
	MonthAnswers   sql.NullInt64
	MonthQuestions sql.NullInt64

	WeekRank      sql.NullInt64
	WeekPoint     sql.NullInt64
	WeekAnswers   sql.NullInt64
	WeekQuestions sql.NullInt64

	UpdatedAt time.Time
}

// ResponseStats is the response-ledger counterpart of PointStats, ranking
// users by how many answers their questions received.
type ResponseStats struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TotalRank     sql.NullInt64
	TotalResponse sql.NullInt64

	MonthRank     sql.NullInt64
	MonthResponse sql.NullInt64

	WeekRank     sql.NullInt64
	WeekResponse sql.NullInt64

	UpdatedAt time.Time
}

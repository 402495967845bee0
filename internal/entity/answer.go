package entity

import (
	"time"

	"github.com/enqueter/backend/pkg/enum"
)

type QuestionOption string

var (
	OptionYes = enum.New(QuestionOption("yes"))
	OptionNo  = enum.New(QuestionOption("no"))
)

type AnswerOutcome string

var (
	OutcomeFirst = enum.New(AnswerOutcome("first"))
	OutcomeEven  = enum.New(AnswerOutcome("even"))
	OutcomeRight = enum.New(AnswerOutcome("right"))
	OutcomeWrong = enum.New(AnswerOutcome("wrong"))
)

// Score is the point value awarded for an outcome. It is resolved once, when
// the answer is cast, and never recomputed afterwards.
func (o AnswerOutcome) Score() int {
	switch o {
	case OutcomeFirst:
		return 1
	case OutcomeRight:
		return 3
	case OutcomeWrong:
		return -3
	}

	return 0
}

// Answer is the join record between a user and a question. The composite
// primary key is the database-level guarantee that a user answers a question
// at most once, even under concurrent submissions.
type Answer struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	QuestionID string   `gorm:"primaryKey"`
	Question   Question `gorm:"foreignKey:QuestionID"`

	Option  QuestionOption
	Outcome AnswerOutcome

	CreatedAt time.Time
}

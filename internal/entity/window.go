package entity

import (
	"time"

	"github.com/enqueter/backend/pkg/enum"
)

type StatsWindow string

var (
	WindowTotal = enum.New(StatsWindow("total"))
	WindowMonth = enum.New(StatsWindow("month"))
	WindowWeek  = enum.New(StatsWindow("week"))
)

// StatsWindows lists the ranking windows in the order the aggregator
// processes them.
var StatsWindows = []StatsWindow{WindowTotal, WindowMonth, WindowWeek}

// Since returns the inclusive-exclusive lower bound of the window relative to
// now. The total window looks back a century, which is unbounded for any
// practical ledger.
func (w StatsWindow) Since(now time.Time) time.Time {
	switch w {
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	}

	return now.AddDate(-100, 0, 0)
}

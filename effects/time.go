package effects

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

const epsilon = time.Millisecond

// NowAt widens the instant t by the clock precision the runtime assumes.
func NowAt(t time.Time) TimeSpan {
	return timespan.BetweenTimes(t.Add(-1*epsilon), t.Add(epsilon))
}

func Now() TimeSpan {
	return NowAt(time.Now())
}

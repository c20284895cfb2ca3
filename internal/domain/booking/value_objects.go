package booking

import "time"

type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod checks, in order: presence, start != end, end not before start,
// start not before now. The first violation wins. Once start >= now and
// end > start hold, end is necessarily in the future.
func NewPeriod(start, end *time.Time, now time.Time) (Period, error) {
	if start == nil || end == nil {
		return Period{}, ErrTimestampsRequired
	}
	if start.Equal(*end) {
		return Period{}, ErrStartEqualsEnd
	}
	if end.Before(*start) {
		return Period{}, ErrEndBeforeStart
	}
	if start.Before(now) {
		return Period{}, ErrStartInPast
	}
	return Period{start: *start, end: *end}, nil
}

func ReconstructPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

package filter

import (
	"time"

	"github.com/guttosm/salespulse/pkg/helpers"
)

// StatsQuery holds the heterogeneous date filters accepted by the sales stats
// endpoint. Dates are already parsed; the HTTP layer rejects malformed input.
type StatsQuery struct {
	Year       *int
	Month      *int
	LastMonths *int
	StartDate  *time.Time
	EndDate    *time.Time
}

// DateRange is a resolved [Gte, Lt) interval. Either bound may be open.
type DateRange struct {
	Gte *time.Time
	Lt  *time.Time
}

// ResolveDateRange collapses q into a single interval.
//
// Precedence: startDate/endDate > lastMonths > year(+month). A bound computed by a
// higher-precedence filter is never overwritten by a lower one, and the year
// branch only runs when nothing else produced a bound. Returns nil when no
// filter applies. Calendar math is done in UTC.
func ResolveDateRange(q StatsQuery, now time.Time) *DateRange {
	var r DateRange

	if q.LastMonths != nil {
		r.Gte = helpers.Ptr(midnight(now.AddDate(0, -*q.LastMonths, 0)))
	}
	if q.StartDate != nil {
		r.Gte = helpers.Ptr(midnight(*q.StartDate))
	}
	if q.EndDate != nil {
		r.Lt = helpers.Ptr(midnight(*q.EndDate).AddDate(0, 0, 1))
	}

	if r.Gte == nil && r.Lt == nil && q.Year != nil {
		var start, end time.Time
		if q.Month != nil {
			start = time.Date(*q.Year, time.Month(*q.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		} else {
			start = time.Date(*q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(1, 0, 0)
		}
		r.Gte, r.Lt = &start, &end
	}

	if r.Gte == nil && r.Lt == nil {
		return nil
	}
	return &r
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

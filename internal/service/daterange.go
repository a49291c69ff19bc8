package service

import (
	"fmt"
	"time"
)

// Named reporting periods accepted by every report endpoint.
const (
	PeriodToday      = "today"
	PeriodLast7Days  = "last_7_days"
	PeriodLast30Days = "last_30_days"
	PeriodThisMonth  = "this_month"
	PeriodLastMonth  = "last_month"
	PeriodThisYear   = "this_year"
	PeriodAllTime    = "all_time"
	PeriodCustom     = "custom"
)

// DateRange is an inclusive [Start, End] pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// ResolveDateRange turns a named period (or custom start/end strings)
// into a concrete range relative to today. A malformed custom date is
// never fatal: the default range (this_month) is returned along with a
// warning for the caller to surface.
func ResolveDateRange(period, startStr, endStr string, today time.Time) (DateRange, string) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	today = day(today)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	switch period {
	case PeriodToday:
		return DateRange{today, today}, ""
	case PeriodLast7Days:
		return DateRange{today.AddDate(0, 0, -6), today}, ""
	case PeriodLast30Days:
		return DateRange{today.AddDate(0, 0, -29), today}, ""
	case PeriodLastMonth:
		end := firstOfMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		return DateRange{start, end}, ""
	case PeriodThisYear:
		return DateRange{time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location()), today}, ""
	case PeriodAllTime:
		return DateRange{time.Time{}, today}, ""
	case PeriodCustom:
		rng := DateRange{firstOfMonth, today}
		start, err := time.ParseInLocation(dateLayout, startStr, today.Location())
		if err != nil {
			return rng, fmt.Sprintf("invalid start date %q; showing default range", startStr)
		}
		end, err := time.ParseInLocation(dateLayout, endStr, today.Location())
		if err != nil {
			return rng, fmt.Sprintf("invalid end date %q; showing default range", endStr)
		}
		return DateRange{day(start), day(end)}, ""
	case PeriodThisMonth, "":
		return DateRange{firstOfMonth, today}, ""
	default:
		return DateRange{firstOfMonth, today}, fmt.Sprintf("unknown period %q; showing default range", period)
	}
}

// ResolveExportRange maps the CSV export periods to a [start, end]
// window ending now. Unknown values fall through to all time.
func ResolveExportRange(period string, now time.Time) DateRange {
	switch period {
	case "daily":
		return DateRange{now.AddDate(0, 0, -1), now}
	case "weekly":
		return DateRange{now.AddDate(0, 0, -7), now}
	case "monthly":
		return DateRange{now.AddDate(0, 0, -30), now}
	default:
		return DateRange{time.Time{}, now}
	}
}

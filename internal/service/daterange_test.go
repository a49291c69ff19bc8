package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDateRangeNamedPeriods(t *testing.T) {
	// Mid-month reference date: 2024-03-15 (a leap year, so last_month
	// must land on Feb 29).
	today := day(2024, time.March, 15)

	cases := []struct {
		period     string
		start, end time.Time
	}{
		{PeriodToday, day(2024, time.March, 15), day(2024, time.March, 15)},
		{PeriodLast7Days, day(2024, time.March, 9), day(2024, time.March, 15)},
		{PeriodLast30Days, day(2024, time.February, 15), day(2024, time.March, 15)},
		{PeriodThisMonth, day(2024, time.March, 1), day(2024, time.March, 15)},
		{PeriodLastMonth, day(2024, time.February, 1), day(2024, time.February, 29)},
		{PeriodThisYear, day(2024, time.January, 1), day(2024, time.March, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			rng, warning := ResolveDateRange(tc.period, "", "", today)
			assert.Empty(t, warning)
			assert.True(t, rng.Start.Equal(tc.start), "start = %s, want %s", rng.Start, tc.start)
			assert.True(t, rng.End.Equal(tc.end), "end = %s, want %s", rng.End, tc.end)
		})
	}
}

func TestResolveDateRangeLastMonthAcrossYear(t *testing.T) {
	rng, warning := ResolveDateRange(PeriodLastMonth, "", "", day(2024, time.January, 10))
	assert.Empty(t, warning)
	assert.True(t, rng.Start.Equal(day(2023, time.December, 1)))
	assert.True(t, rng.End.Equal(day(2023, time.December, 31)))
}

func TestResolveDateRangeAllTime(t *testing.T) {
	today := day(2024, time.March, 15)
	rng, warning := ResolveDateRange(PeriodAllTime, "", "", today)
	assert.Empty(t, warning)
	assert.True(t, rng.Start.IsZero())
	assert.True(t, rng.End.Equal(today))
}

func TestResolveDateRangeCustom(t *testing.T) {
	today := day(2024, time.March, 15)
	rng, warning := ResolveDateRange(PeriodCustom, "2024-01-05", "2024-02-10", today)
	assert.Empty(t, warning)
	assert.True(t, rng.Start.Equal(day(2024, time.January, 5)))
	assert.True(t, rng.End.Equal(day(2024, time.February, 10)))
}

// A malformed custom date falls back to the default range with a
// warning, never an error.
func TestResolveDateRangeCustomBadDates(t *testing.T) {
	today := day(2024, time.March, 15)
	thisMonth := DateRange{day(2024, time.March, 1), today}

	rng, warning := ResolveDateRange(PeriodCustom, "not-a-date", "2024-02-10", today)
	assert.NotEmpty(t, warning)
	assert.Equal(t, thisMonth, rng)

	rng, warning = ResolveDateRange(PeriodCustom, "2024-01-05", "2024-13-40", today)
	assert.NotEmpty(t, warning)
	assert.Equal(t, thisMonth, rng)
}

func TestResolveDateRangeDefaultsAndUnknown(t *testing.T) {
	today := day(2024, time.March, 15)

	rng, warning := ResolveDateRange("", "", "", today)
	assert.Empty(t, warning)
	assert.True(t, rng.Start.Equal(day(2024, time.March, 1)))

	rng, warning = ResolveDateRange("fortnight", "", "", today)
	assert.NotEmpty(t, warning)
	assert.True(t, rng.Start.Equal(day(2024, time.March, 1)))
	assert.True(t, rng.End.Equal(today))
}

func TestResolveExportRange(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 30, 0, 0, time.UTC)

	daily := ResolveExportRange("daily", now)
	assert.True(t, daily.Start.Equal(now.AddDate(0, 0, -1)))

	weekly := ResolveExportRange("weekly", now)
	assert.True(t, weekly.Start.Equal(now.AddDate(0, 0, -7)))

	monthly := ResolveExportRange("monthly", now)
	assert.True(t, monthly.Start.Equal(now.AddDate(0, 0, -30)))

	all := ResolveExportRange("all", now)
	assert.True(t, all.Start.IsZero())
}

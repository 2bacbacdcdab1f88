package utils

import (
	"sync"
	"time"

	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
)

const (
	DayLayout      = "2006-01-02"
	IntradayLayout = "2006-01-02T15:04:05"
)

var (
	marketLoc     *time.Location
	marketLocOnce sync.Once
)

// MarketLocation returns the NSE local timezone. When the tz database is
// unavailable it falls back to a fixed +05:30 zone.
func MarketLocation() *time.Location {
	marketLocOnce.Do(func() {
		loc, err := time.LoadLocation(common.MarketTimezone)
		if err != nil {
			loc = time.FixedZone("IST", 5*60*60+30*60)
		}
		marketLoc = loc
	})
	return marketLoc
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sessionBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d, 9, 15, 0, 0, loc), time.Date(y, m, d, 15, 30, 0, 0, loc)
}

// IsMarketOpen reports whether t falls inside the NSE cash session,
// Monday to Friday 09:15:00 to 15:30:00 local time, both ends inclusive.
func IsMarketOpen(t time.Time) bool {
	t = t.In(MarketLocation())
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	open, closing := sessionBounds(t)
	return !t.Before(open) && !t.After(closing)
}

// DataSourceLabel names the quote source used in trending reasons.
func DataSourceLabel(t time.Time) string {
	if IsMarketOpen(t) {
		return common.DataSourceLive
	}
	return common.DataSourceEOD
}

// IntradaySessionWindow returns the window for the one-day intraday series:
// today's session up to now once the session has started, otherwise the
// whole of the previous calendar day's session.
func IntradaySessionWindow(now time.Time) (time.Time, time.Time) {
	now = now.In(MarketLocation())
	open, _ := sessionBounds(now)
	if !now.Before(open) {
		return open, now
	}
	return sessionBounds(now.AddDate(0, 0, -1))
}

// FormatDay renders a daily series timestamp in market local time.
func FormatDay(t time.Time) string {
	return t.In(MarketLocation()).Format(DayLayout)
}

// FormatIntraday renders an intraday series timestamp in market local time.
func FormatIntraday(t time.Time) string {
	return t.In(MarketLocation()).Format(IntradayLayout)
}

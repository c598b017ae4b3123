// Package dbtime resolves the site's display timezone and the calendar
// buckets the dashboard groups by.
package dbtime

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultTimezone = "Asia/Kolkata"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns APP_TIMEZONE (default Asia/Kolkata), falling back to UTC
// when the zone database is missing.
func Location() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = defaultTimezone
		}
		l, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[WARN] timezone %q not available, using UTC: %v", name, err)
			l = time.UTC
		}
		loc = l
	})
	return loc
}

func Local(t time.Time) time.Time { return t.In(Location()) }

// MonthStart is midnight on the first day of t's month in the site timezone.
func MonthStart(t time.Time) time.Time {
	t = Local(t)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// LastMonths returns the starts of the last n months, oldest first, ending
// with the month containing now.
func LastMonths(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	cur := MonthStart(now)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = cur.AddDate(0, -i, 0)
	}
	return out
}

// MonthKey formats a bucket label such as "2025-03".
func MonthKey(t time.Time) string { return Local(t).Format("2006-01") }

// DateStamp formats t as YYYY-MM-DD in the site timezone.
func DateStamp(t time.Time) string { return Local(t).Format("2006-01-02") }

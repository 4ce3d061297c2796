package stats

import (
	"fmt"
	"time"
)

// Granularity selects the calendar period used for bucketing time series.
type Granularity string

const (
	Daily     Granularity = "day"
	Weekly    Granularity = "week"
	Monthly   Granularity = "month"
	Quarterly Granularity = "quarter"
	Yearly    Granularity = "year"
)

func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return Granularity(s), true
	}
	return "", false
}

// BucketKey returns the canonical label of the bucket containing t.
// Weeks follow ISO 8601, so a date near the year boundary may carry the
// neighboring year's week number.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	case Quarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
	case Yearly:
		return t.Format("2006")
	}
	return t.Format("2006-01-02")
}

// BucketStart truncates t to the beginning of its bucket.
func BucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case Daily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday as first day
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		firstMonth := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, t.Location())
	case Yearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

func nextBucket(t time.Time, g Granularity) time.Time {
	switch g {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	case Yearly:
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 0, 1)
}

// BucketRange returns the calendar-complete ordered sequence of bucket keys
// covering [start, end], so a series over the range has no gaps even for
// buckets with no data.
func BucketRange(start, end time.Time, g Granularity) []string {
	if end.Before(start) {
		return []string{}
	}
	keys := []string{}
	endKey := BucketKey(end, g)
	for t := BucketStart(start, g); ; t = nextBucket(t, g) {
		key := BucketKey(t, g)
		keys = append(keys, key)
		if key == endKey {
			break
		}
	}
	return keys
}

// OffsetKey returns the key of the bucket n steps after the one containing t.
// Negative n steps backwards.
func OffsetKey(t time.Time, g Granularity, n int) string {
	start := BucketStart(t, g)
	switch g {
	case Daily:
		return BucketKey(start.AddDate(0, 0, n), g)
	case Weekly:
		return BucketKey(start.AddDate(0, 0, 7*n), g)
	case Monthly:
		return BucketKey(start.AddDate(0, n, 0), g)
	case Quarterly:
		return BucketKey(start.AddDate(0, 3*n, 0), g)
	case Yearly:
		return BucketKey(start.AddDate(n, 0, 0), g)
	}
	return BucketKey(start, g)
}

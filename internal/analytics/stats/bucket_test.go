package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketKey(t *testing.T) {
	ts := date(2024, time.February, 5)
	assert.Equal(t, "2024-02-05", BucketKey(ts, Daily))
	assert.Equal(t, "2024-W06", BucketKey(ts, Weekly))
	assert.Equal(t, "2024-02", BucketKey(ts, Monthly))
	assert.Equal(t, "2024-Q1", BucketKey(ts, Quarterly))
	assert.Equal(t, "2024", BucketKey(ts, Yearly))
}

func TestBucketKey_ISOWeekYearBoundary(t *testing.T) {
	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025
	assert.Equal(t, "2025-W01", BucketKey(date(2024, time.December, 30), Weekly))
}

func TestBucketRange_MonthAcrossYearBoundary(t *testing.T) {
	keys := BucketRange(date(2024, time.November, 15), date(2025, time.February, 3), Monthly)
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02"}, keys)
}

func TestBucketRange_Daily(t *testing.T) {
	keys := BucketRange(date(2024, time.February, 27), date(2024, time.March, 1), Daily)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, keys)
}

func TestBucketRange_Quarterly(t *testing.T) {
	keys := BucketRange(date(2023, time.October, 1), date(2024, time.May, 1), Quarterly)
	assert.Equal(t, []string{"2023-Q4", "2024-Q1", "2024-Q2"}, keys)
}

func TestBucketRange_EndBeforeStart(t *testing.T) {
	keys := BucketRange(date(2024, time.March, 1), date(2024, time.February, 1), Monthly)
	assert.Empty(t, keys)
}

func TestOffsetKey(t *testing.T) {
	ts := date(2024, time.November, 15)
	assert.Equal(t, "2024-12", OffsetKey(ts, Monthly, 1))
	assert.Equal(t, "2025-02", OffsetKey(ts, Monthly, 3))
	assert.Equal(t, "2024-10", OffsetKey(ts, Monthly, -1))
	assert.Equal(t, "2025", OffsetKey(ts, Yearly, 1))
}

func TestParseGranularity(t *testing.T) {
	g, ok := ParseGranularity("month")
	assert.True(t, ok)
	assert.Equal(t, Monthly, g)

	_, ok = ParseGranularity("fortnight")
	assert.False(t, ok)
}

package stats

import (
	"math"
	"sort"
)

// Summary holds the descriptive statistics of a sample. StdDev is the
// population standard deviation.
type Summary struct {
	Count  int
	Sum    float64
	Mean   float64
	StdDev float64
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return Summary{
		Count:  len(values),
		Sum:    sum,
		Mean:   mean,
		StdDev: math.Sqrt(variance),
	}
}

// GroupSummaries buckets items by key and summarizes the value of each bucket.
func GroupSummaries[T any](items []T, key func(T) string, value func(T) float64) map[string]Summary {
	grouped := make(map[string][]float64)
	for _, item := range items {
		k := key(item)
		grouped[k] = append(grouped[k], value(item))
	}
	summaries := make(map[string]Summary, len(grouped))
	for k, values := range grouped {
		summaries[k] = Summarize(values)
	}
	return summaries
}

// PercentOfTotal returns part as a percentage of total, 0 when total is 0.
func PercentOfTotal(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Ratio returns num/den, 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ChangePercent returns the relative change from previous to current as a
// percentage. A change from zero counts as 100% growth when current is
// positive and 0 otherwise.
func ChangePercent(current, previous float64) float64 {
	if previous != 0 {
		return (current - previous) / math.Abs(previous) * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

type KeyedValue struct {
	Key   string
	Value float64
}

// TopNByValue returns up to n entries sorted by descending absolute value,
// breaking ties by key ascending.
func TopNByValue(values map[string]float64, n int) []KeyedValue {
	entries := make([]KeyedValue, 0, len(values))
	for k, v := range values {
		entries = append(entries, KeyedValue{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		ai, aj := math.Abs(entries[i].Value), math.Abs(entries[j].Value)
		if ai != aj {
			return ai > aj
		}
		return entries[i].Key < entries[j].Key
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

package interfaces

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

func userIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	return userID, ok
}

// queryPeriod validates the shared "period" query parameter. An empty value
// defaults to "month".
func queryPeriod(r *http.Request) (string, error) {
	period := r.URL.Query().Get("period")
	switch period {
	case "":
		return "month", nil
	case "week", "month", "year":
		return period, nil
	default:
		return "", fmt.Errorf("Invalid period, must be one of: week, month, year")
	}
}

func queryInt(r *http.Request, name string, defaultValue, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, fmt.Errorf("Invalid %s, must be an integer between %d and %d", name, min, max)
	}
	return value, nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("Invalid %s format, expected YYYY-MM-DD", name)
	}
	return date, nil
}

func queryEnum(r *http.Request, name, defaultValue string, allowed ...string) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw, nil
		}
	}
	return "", fmt.Errorf("Invalid %s", name)
}

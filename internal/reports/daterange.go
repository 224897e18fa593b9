package reports

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/odyssey-erp/stockledger/internal/shared"
)

// DateRange is an inclusive sale date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses the startDate and endDate query values. A date without a
// time of day covers that whole day when used as the end bound.
func ParseRange(startRaw, endRaw string) (DateRange, error) {
	startRaw = strings.TrimSpace(startRaw)
	endRaw = strings.TrimSpace(endRaw)
	if startRaw == "" || endRaw == "" {
		return DateRange{}, shared.NewValidationError("", "startDate and endDate are required")
	}
	start, err := parseBound(startRaw, false)
	if err != nil {
		return DateRange{}, shared.NewValidationError("startDate", "is not a valid date")
	}
	end, err := parseBound(endRaw, true)
	if err != nil {
		return DateRange{}, shared.NewValidationError("endDate", "is not a valid date")
	}
	if start.After(end) {
		return DateRange{}, shared.NewValidationError("startDate", "must not be after endDate")
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t lies inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func parseBound(raw string, endOfDay bool) (time.Time, error) {
	t, err := dateparse.ParseStrict(raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	if endOfDay && isDateOnly(raw, t) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func isDateOnly(raw string, t time.Time) bool {
	if strings.Contains(raw, ":") {
		return false
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

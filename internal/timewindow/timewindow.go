package timewindow

import (
	"fmt"
	"time"

	"github.com/amaumene/jellygram/internal/domain"
)

const day = 24 * time.Hour

// Layouts accepted from the media server. Jellyfin emits seven fractional
// digits with a Z suffix; webhook payloads may carry zone-less timestamps,
// which are treated as UTC.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parse(timestamp string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, timestamp)
}

// WithinLastDays reports whether timestamp is strictly less than days*24h
// in the past. A malformed timestamp returns an error wrapping
// domain.ErrInvalidTimestamp; callers must treat that as "cannot
// determine", never as false.
func WithinLastDays(timestamp string, days int) (bool, error) {
	t, err := parse(timestamp)
	if err != nil {
		return false, err
	}
	return time.Since(t) < time.Duration(days)*day, nil
}

// NotWithinLastDays reports whether timestamp is at least days*24h in the
// past. Together with WithinLastDays it covers every timestamp exactly
// once; the exact-N-days boundary resolves to "not within".
func NotWithinLastDays(timestamp string, days int) (bool, error) {
	t, err := parse(timestamp)
	if err != nil {
		return false, err
	}
	return time.Since(t) >= time.Duration(days)*day, nil
}

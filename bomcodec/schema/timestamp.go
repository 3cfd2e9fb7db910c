package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/anchore/bomcodec/bomcodec/bomerr"
)

// TimestampLayout is the single textual date-time representation used for every timestamp field (RFC 3339,
// offset aware, sub-second precision kept when present).
const TimestampLayout = time.RFC3339Nano

var timeType = reflect.TypeOf(time.Time{})

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses any RFC 3339 date-time. Fractional seconds are optional on input.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an RFC 3339 timestamp", bomerr.ErrInvalidValue, s)
	}
	return t, nil
}

package filing

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for folder dates (day granularity, no time-of-day).
const DateLayout = "2006-01-02"

// Date is a calendar date truncated to day granularity.
// It marshals to and from ISO YYYY-MM-DD strings.
type Date struct {
	time.Time
}

// NewDate truncates t to day granularity in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the ISO YYYY-MM-DD representation.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Equal reports whether two dates fall on the same day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

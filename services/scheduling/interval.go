package scheduling

import (
	"fmt"
	"time"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates and builds an interval from parsed timestamps.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval builds an interval from ISO-8601 timestamps with offsets.
func ParseInterval(start, end string) (Interval, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: unparsable start %q", ErrInvalidInterval, start)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: unparsable end %q", ErrInvalidInterval, end)
	}
	return NewInterval(s, e)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count as overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns the interval's length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

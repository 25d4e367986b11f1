package valueobjects

import (
	"math"

	pkgerrors "opencut-backend/pkg/errors"
)

// TimeRange is a value object representing a half-open span [start, end)
// on the timeline, in seconds. A range ending exactly where another begins
// does not overlap it.
type TimeRange struct {
	start float64
	end   float64
}

// NewTimeRange creates a time range with validation
func NewTimeRange(start, end float64) (TimeRange, error) {
	if !isFiniteSeconds(start) || !isFiniteSeconds(end) {
		return TimeRange{}, pkgerrors.NewValidation("range bounds must be finite numbers")
	}
	if start < 0 {
		return TimeRange{}, pkgerrors.NewValidation("range cannot start before zero")
	}
	if end < start {
		return TimeRange{}, pkgerrors.NewValidation("range cannot end before it starts")
	}
	return TimeRange{start: start, end: end}, nil
}

// NewTimeRangeAt creates a range from a start position and a duration
func NewTimeRangeAt(start, duration float64) (TimeRange, error) {
	return NewTimeRange(start, start+duration)
}

// Start returns the inclusive start of the range
func (r TimeRange) Start() float64 {
	return r.start
}

// End returns the exclusive end of the range
func (r TimeRange) End() float64 {
	return r.end
}

// Duration returns the length of the range in seconds
func (r TimeRange) Duration() float64 {
	return r.end - r.start
}

// Overlaps reports whether two half-open ranges intersect.
// This is the single overlap predicate every placement check goes through.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start < other.end && r.end > other.start
}

// Contains reports whether t falls inside the half-open range
func (r TimeRange) Contains(t float64) bool {
	return t >= r.start && t < r.end
}

// ContainsStrict reports whether t falls strictly inside the range,
// excluding both endpoints. Split points must satisfy this.
func (r TimeRange) ContainsStrict(t float64) bool {
	return t > r.start && t < r.end
}

// Equals checks if two ranges are equal
func (r TimeRange) Equals(other TimeRange) bool {
	const epsilon = 1e-9
	return math.Abs(r.start-other.start) < epsilon &&
		math.Abs(r.end-other.end) < epsilon
}

// Shift returns the range moved by delta seconds
func (r TimeRange) Shift(delta float64) (TimeRange, error) {
	return NewTimeRange(r.start+delta, r.end+delta)
}

// isFiniteSeconds checks if a seconds value is a valid finite number
func isFiniteSeconds(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

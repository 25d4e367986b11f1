package valueobjects

import (
	pkgerrors "opencut-backend/pkg/errors"
)

// Trim is a value object describing how much of a clip's source media is
// cut away from each end, in seconds. The source duration itself is
// immutable; only the trim changes when a clip is resized or split.
type Trim struct {
	start float64
	end   float64
}

// ZeroTrim returns a trim that cuts nothing
func ZeroTrim() Trim {
	return Trim{}
}

// NewTrim creates a trim with validation
func NewTrim(start, end float64) (Trim, error) {
	if !isFiniteSeconds(start) || !isFiniteSeconds(end) {
		return Trim{}, pkgerrors.NewValidation("trim values must be finite numbers")
	}
	if start < 0 || end < 0 {
		return Trim{}, pkgerrors.NewValidation("trim values cannot be negative")
	}
	return Trim{start: start, end: end}, nil
}

// Start returns the seconds trimmed from the start of the source
func (t Trim) Start() float64 {
	return t.start
}

// End returns the seconds trimmed from the end of the source
func (t Trim) End() float64 {
	return t.end
}

// EffectiveDuration returns the visible duration left over after applying
// the trim to the given source duration
func (t Trim) EffectiveDuration(sourceDuration float64) float64 {
	return sourceDuration - t.start - t.end
}

// ValidFor reports whether the trim leaves a positive effective duration
// for the given source duration
func (t Trim) ValidFor(sourceDuration, minEffective float64) bool {
	return t.EffectiveDuration(sourceDuration) > minEffective
}

// WithStart returns a copy with the start trim replaced
func (t Trim) WithStart(start float64) (Trim, error) {
	return NewTrim(start, t.end)
}

// WithEnd returns a copy with the end trim replaced
func (t Trim) WithEnd(end float64) (Trim, error) {
	return NewTrim(t.start, end)
}

// Equals checks if two trims are equal
func (t Trim) Equals(other Trim) bool {
	return t.start == other.start && t.end == other.end
}

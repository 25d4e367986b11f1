package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		end     float64
		wantErr bool
	}{
		{name: "valid range", start: 1, end: 5},
		{name: "empty range is allowed", start: 3, end: 3},
		{name: "zero start", start: 0, end: 10},
		{name: "negative start", start: -1, end: 5, wantErr: true},
		{name: "inverted range", start: 5, end: 2, wantErr: true},
		{name: "NaN bound", start: math.NaN(), end: 2, wantErr: true},
		{name: "infinite bound", start: 0, end: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewTimeRange(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start())
			assert.Equal(t, tt.end, r.End())
			assert.InDelta(t, tt.end-tt.start, r.Duration(), 1e-9)
		})
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	mk := func(s, e float64) TimeRange {
		r, err := NewTimeRange(s, e)
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{name: "disjoint", a: mk(0, 2), b: mk(3, 5), want: false},
		{name: "abutting does not overlap", a: mk(0, 5), b: mk(5, 8), want: false},
		{name: "abutting reversed", a: mk(5, 8), b: mk(0, 5), want: false},
		{name: "partial overlap", a: mk(0, 5), b: mk(3, 6), want: true},
		{name: "contained", a: mk(0, 10), b: mk(2, 4), want: true},
		{name: "identical", a: mk(1, 4), b: mk(1, 4), want: true},
		{name: "spanning both", a: mk(3, 6), b: mk(0, 5), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// The predicate is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestTimeRangeContains(t *testing.T) {
	r, err := NewTimeRange(2, 6)
	require.NoError(t, err)

	assert.True(t, r.Contains(2), "start is inclusive")
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(6), "end is exclusive")
	assert.False(t, r.Contains(1.999))

	assert.False(t, r.ContainsStrict(2), "strict excludes the start")
	assert.True(t, r.ContainsStrict(4))
	assert.False(t, r.ContainsStrict(6))
}

func TestTrim(t *testing.T) {
	trim, err := NewTrim(1.5, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, trim.EffectiveDuration(10), 1e-9)
	assert.True(t, trim.ValidFor(10, 0))
	assert.False(t, trim.ValidFor(2, 0), "trim consuming the whole source is invalid")

	_, err = NewTrim(-1, 0)
	assert.Error(t, err)
	_, err = NewTrim(0, -0.1)
	assert.Error(t, err)
}

func TestTrackTypeDefaults(t *testing.T) {
	tests := []struct {
		in       string
		wantType TrackType
		wantName string
		wantErr  bool
	}{
		{in: "video", wantType: TrackTypeVideo, wantName: "Video Track"},
		{in: "Audio", wantType: TrackTypeAudio, wantName: "Audio Track"},
		{in: " effects ", wantType: TrackTypeEffects, wantName: "Effects Track"},
		{in: "subtitle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTrackType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got)
			assert.Equal(t, tt.wantName, got.DefaultTrackName())
		})
	}
}

func TestSelectionRef(t *testing.T) {
	trackID := NewTrackID()
	otherTrack := NewTrackID()
	clipID := NewClipID()

	ref, err := NewSelectionRef(trackID, clipID)
	require.NoError(t, err)

	same, err := NewSelectionRef(trackID, clipID)
	require.NoError(t, err)
	assert.True(t, ref.Equals(same))

	// Same clip id reached through another track is a different entry.
	other, err := NewSelectionRef(otherTrack, clipID)
	require.NoError(t, err)
	assert.False(t, ref.Equals(other))
	assert.NotEqual(t, ref.Key(), other.Key())

	_, err = NewSelectionRef(TrackID{}, clipID)
	assert.Error(t, err)
}

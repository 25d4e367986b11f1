package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencut-backend/domain/core/valueobjects"
)

func ref(t *testing.T) valueobjects.SelectionRef {
	t.Helper()
	r, err := valueobjects.NewSelectionRef(valueobjects.NewTrackID(), valueobjects.NewClipID())
	require.NoError(t, err)
	return r
}

func TestSelectionSetToggle(t *testing.T) {
	s := NewSelectionSet()
	a, b := ref(t), ref(t)

	s.Toggle(a)
	s.Toggle(b)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(a))

	s.Toggle(a)
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))
}

func TestSelectionSetReplace(t *testing.T) {
	s := NewSelectionSet()
	a, b := ref(t), ref(t)

	s.Toggle(a)
	s.Replace(b)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(b))
}

func TestSelectionSetOrderPreserved(t *testing.T) {
	s := NewSelectionSet()
	a, b, c := ref(t), ref(t), ref(t)

	s.Set([]valueobjects.SelectionRef{a, b, c, a})
	refs := s.Refs()
	require.Len(t, refs, 3, "duplicates collapse")
	assert.True(t, refs[0].Equals(a))
	assert.True(t, refs[1].Equals(b))
	assert.True(t, refs[2].Equals(c))
}

func TestSelectionSetPrune(t *testing.T) {
	s := NewSelectionSet()
	a, b := ref(t), ref(t)
	s.Set([]valueobjects.SelectionRef{a, b})

	s.Prune(func(r valueobjects.SelectionRef) bool { return r.Equals(b) })
	refs := s.Refs()
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Equals(b))
}

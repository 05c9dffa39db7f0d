package pairing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairSetUnorderedEquality(t *testing.T) {
	s := NewPairSet()
	s.Add("p1", "p2")

	require.True(t, s.Contains("p1", "p2"))
	require.True(t, s.Contains("p2", "p1"), "Contains must ignore argument order")
	require.False(t, s.Contains("p1", "p3"))
}

func TestPairSetAddIsIdempotent(t *testing.T) {
	s := NewPairSet()
	s.Add("p1", "p2")
	s.Add("p2", "p1")
	require.Equal(t, 1, s.Len())
}

func TestPairSetClone(t *testing.T) {
	s := NewPairSet()
	s.Add("p1", "p2")

	clone := s.Clone()
	clone.Add("p3", "p4")

	require.False(t, s.Contains("p3", "p4"), "mutating a clone must not affect the original set")
	require.True(t, clone.Contains("p1", "p2"))
	require.Equal(t, 1, s.Len())
}

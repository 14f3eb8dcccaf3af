package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretquiz/internal/fretboard"
)

func TestPositionOf(t *testing.T) {
	tests := []struct {
		note   fretboard.Note
		offset int
	}{
		{fretboard.Note{Name: "E", Octave: 2}, 0},
		{fretboard.Note{Name: "F", Octave: 2}, 1},
		{fretboard.Note{Name: "G", Octave: 3}, 9},
		{fretboard.Note{Name: "E", Octave: 4}, 14},
		{fretboard.Note{Name: "A", Octave: 4}, 17},
		{fretboard.Note{Name: "C", Octave: 5}, 19},
	}
	for _, tc := range tests {
		off, ok := PositionOf(tc.note)
		require.True(t, ok, "%s should have a staff position", tc.note)
		assert.Equal(t, tc.offset, off, "%s", tc.note)
	}
}

// A sharp renders at the same vertical position as its natural.
func TestSharpSharesNaturalOffset(t *testing.T) {
	pairs := []fretboard.Note{
		{Name: "F", Octave: 2}, {Name: "C", Octave: 3},
		{Name: "G", Octave: 3}, {Name: "D", Octave: 4},
	}
	for _, nat := range pairs {
		sharp := fretboard.Note{Name: nat.Name + "#", Octave: nat.Octave}
		natOff, ok := PositionOf(nat)
		require.True(t, ok)
		sharpOff, ok := PositionOf(sharp)
		require.True(t, ok)
		assert.Equal(t, natOff, sharpOff, "%s vs %s", nat, sharp)
	}
}

func TestOutOfRange(t *testing.T) {
	for _, n := range []fretboard.Note{
		{Name: "D", Octave: 2},  // below the rendered range
		{Name: "D", Octave: 5},  // above the rendered range
		{Name: "E#", Octave: 3}, // spelling never produced by the resolver
	} {
		_, ok := PositionOf(n)
		assert.False(t, ok, "%s should have no staff position", n)
	}
}

// Every note a practice round can produce has a rendered position; this
// is what guarantees generation never comes up empty when at least one
// string is enabled.
func TestPracticeRangeCovered(t *testing.T) {
	for idx := range fretboard.Strings {
		for fret := 1; fret <= 5; fret++ {
			n := fretboard.Resolve(idx, fret)
			_, ok := PositionOf(n)
			assert.True(t, ok, "string %d fret %d (%s) missing from staff table", idx, fret, n)
		}
	}
}

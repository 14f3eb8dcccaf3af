package trainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretquiz/internal/fretboard"
	"fretquiz/internal/staff"
)

// enumerate brute-forces every eligible placement for the settings,
// mirroring the generation contract independently of Generate.
func enumerate(set Settings) []PlacedNote {
	var out []PlacedNote
	for idx := range fretboard.Strings {
		if !set.Enabled[idx] {
			continue
		}
		for fret := 1; fret <= 5; fret++ {
			n := fretboard.Resolve(idx, fret)
			if !set.Accidentals && n.Accidental() {
				continue
			}
			if _, ok := staff.PositionOf(n); !ok {
				continue
			}
			out = append(out, PlacedNote{Note: n, Pos: fretboard.Position{String: idx, Fret: fret}})
		}
	}
	return out
}

func settingsWith(strings ...int) Settings {
	var s Settings
	for _, i := range strings {
		s.Enabled[i] = true
	}
	return s
}

func TestGenerateNoStringsEnabled(t *testing.T) {
	_, err := Generate(Settings{})
	require.ErrorIs(t, err, ErrNoEligibleNotes)

	_, err = Generate(Settings{Accidentals: true})
	require.ErrorIs(t, err, ErrNoEligibleNotes)
}

// Any single enabled string yields candidates regardless of the
// accidentals setting: the natural-note set alone is non-empty for
// every string in standard tuning.
func TestGenerateSingleStringNeverEmpty(t *testing.T) {
	for idx := 0; idx < fretboard.NumStrings; idx++ {
		for _, acc := range []bool{false, true} {
			set := settingsWith(idx)
			set.Accidentals = acc
			tgt, err := Generate(set)
			require.NoError(t, err, "string %d accidentals=%v", idx, acc)
			require.NotEmpty(t, tgt.Positions)
		}
	}
}

func TestGenerateAccidentalFilter(t *testing.T) {
	set := DefaultSettings()
	for i := 0; i < 100; i++ {
		tgt, err := Generate(set)
		require.NoError(t, err)
		assert.False(t, tgt.Note.Accidental(), "generated %s with accidentals off", tgt.Note)
	}
}

// Every placement whose resolved note equals the target must be in the
// accepted set, and nothing else.
func TestGenerateAcceptedSetComplete(t *testing.T) {
	for _, acc := range []bool{false, true} {
		set := DefaultSettings()
		set.Accidentals = acc
		for i := 0; i < 50; i++ {
			tgt, err := Generate(set)
			require.NoError(t, err)

			var want []fretboard.Position
			for _, p := range enumerate(set) {
				if p.Note == tgt.Note {
					want = append(want, p.Pos)
				}
			}
			assert.ElementsMatch(t, want, tgt.Positions, "note %s", tgt.Note)
		}
	}
}

func TestGenerateOnlyEnabledStrings(t *testing.T) {
	set := settingsWith(4, 5)
	set.Accidentals = true
	for i := 0; i < 50; i++ {
		tgt, err := Generate(set)
		require.NoError(t, err)
		for _, p := range tgt.Positions {
			assert.Contains(t, []int{4, 5}, p.String)
		}
	}
}

// Selection is uniform-random, so this is a distribution property:
// with a dozen-plus candidates, repeated draws must not collapse onto
// a single note.
func TestGenerateVariety(t *testing.T) {
	set := DefaultSettings()
	seen := map[fretboard.Note]struct{}{}
	for i := 0; i < 300; i++ {
		tgt, err := Generate(set)
		require.NoError(t, err)
		seen[tgt.Note] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestTargetAccepts(t *testing.T) {
	tgt := &Target{
		Note: fretboard.Note{Name: "G", Octave: 3},
		Positions: []fretboard.Position{
			{String: 3, Fret: 5},
		},
	}
	assert.True(t, tgt.Accepts(fretboard.Position{String: 3, Fret: 5}))
	assert.False(t, tgt.Accepts(fretboard.Position{String: 3, Fret: 4}))
	assert.False(t, tgt.Accepts(fretboard.Position{String: 2, Fret: 5}))
	// Valid fret on a string outside the accepted set.
	assert.False(t, tgt.Accepts(fretboard.Position{String: 5, Fret: 3}))
}

// Fret 12 is the octave above the open string: for a G3 target, the
// open G string matches by name only, and fret 12 on it sounds G4.
// Neither may be conflated with a true (name, octave) match.
func TestOctaveEquivalentsNotConflated(t *testing.T) {
	g4 := fretboard.Resolve(2, 12)
	require.Equal(t, fretboard.Note{Name: "G", Octave: 4}, g4)

	set := DefaultSettings()
	set.Accidentals = true
	wantNote := fretboard.Note{Name: "G", Octave: 3}
	var tgt *Target
	for i := 0; i < 2000; i++ {
		c, err := Generate(set)
		require.NoError(t, err)
		if c.Note == wantNote {
			tgt = c
			break
		}
	}
	require.NotNil(t, tgt, "G3 should be an eligible target")
	assert.True(t, tgt.Accepts(fretboard.Position{String: 3, Fret: 5}), "D string fret 5 sounds G3")
	assert.False(t, tgt.Accepts(fretboard.Position{String: 2, Fret: 0}), "open G is G3 but fret 0 is not a practice position")
	assert.False(t, tgt.Accepts(fretboard.Position{String: 2, Fret: 12}), "fret 12 on G sounds G4")
}

// internal/trainer/generate.go
//
// Candidate note generation for a training round.
// Enumerates frets 1–5 on every enabled string, filters by the
// accidentals toggle and the rendered staff range, deduplicates by
// (pitch-class, octave), and picks one target uniformly at random.
// The returned Target carries every enabled-string position that
// sounds the chosen note, so any of them is accepted as correct.

package trainer

import (
	"crypto/rand"
	"errors"
	"math/big"

	"fretquiz/internal/fretboard"
	"fretquiz/internal/staff"
)

// Practice rounds use fretted notes only; open strings are excluded.
const (
	minPracticeFret = 1
	maxPracticeFret = 5
)

// ErrNoEligibleNotes is returned when the current settings yield no
// practice candidates (e.g. every string disabled). The caller must not
// start or advance a round.
var ErrNoEligibleNotes = errors.New("no eligible notes for current settings")

// Generate builds the next training target for the given settings.
func Generate(set Settings) (*Target, error) {
	var placed []PlacedNote
	for idx := range fretboard.Strings {
		if !set.Enabled[idx] {
			continue
		}
		for fret := minPracticeFret; fret <= maxPracticeFret; fret++ {
			n := fretboard.Resolve(idx, fret)
			if !set.Accidentals && n.Accidental() {
				continue
			}
			if _, ok := staff.PositionOf(n); !ok {
				continue
			}
			placed = append(placed, PlacedNote{Note: n, Pos: fretboard.Position{String: idx, Fret: fret}})
		}
	}

	// Dedup placements into the eligible note set, keeping board order.
	seen := make(map[fretboard.Note]struct{}, len(placed))
	var eligible []fretboard.Note
	for _, p := range placed {
		if _, dup := seen[p.Note]; dup {
			continue
		}
		seen[p.Note] = struct{}{}
		eligible = append(eligible, p.Note)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleNotes
	}

	t := &Target{Note: eligible[randIndex(len(eligible))]}
	for _, p := range placed {
		if p.Note == t.Note {
			t.Positions = append(t.Positions, p.Pos)
		}
	}
	return t, nil
}

// randIndex returns a cryptographically random index in [0, n).
func randIndex(n int) int {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}

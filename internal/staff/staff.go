// internal/staff/staff.go
//
// Treble-clef staff position table.
// Maps a note (pitch-class + octave) to the integer vertical offset the
// widget uses to place it on the rendered staff. The table doubles as
// the bound on the practice range: a note without an entry is never
// offered as a training target.
//
// Layout: offset 0 is E2 at the bottom of the ledger-line range, one
// step per diatonic note up to C5. A sharp shares the offset of its
// natural and is rendered with an accidental glyph instead.

package staff

import "fretquiz/internal/fretboard"

var offsets = map[string]int{
	"E2": 0,
	"F2": 1, "F#2": 1,
	"G2": 2, "G#2": 2,
	"A2": 3, "A#2": 3,
	"B2": 4,
	"C3": 5, "C#3": 5,
	"D3": 6, "D#3": 6,
	"E3": 7,
	"F3": 8, "F#3": 8,
	"G3": 9, "G#3": 9,
	"A3": 10, "A#3": 10,
	"B3": 11,
	"C4": 12, "C#4": 12,
	"D4": 13, "D#4": 13,
	"E4": 14,
	"F4": 15, "F#4": 15,
	"G4": 16, "G#4": 16,
	"A4": 17, "A#4": 17,
	"B4": 18,
	"C5": 19,
}

// PositionOf returns the staff offset for n. ok is false when the note
// falls outside the rendered two-and-a-half-octave range.
func PositionOf(n fretboard.Note) (offset int, ok bool) {
	offset, ok = offsets[n.String()]
	return offset, ok
}

// TableSize returns the number of note entries with a rendered position.
func TableSize() int { return len(offsets) }

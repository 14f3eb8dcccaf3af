// internal/fretboard/fretboard.go
//
// Static description of a standard-tuned six-string guitar plus the
// fret→note resolver.
// Responsibilities:
//   - Chromatic: the ordered 12-label pitch-class cycle used for all
//     pitch arithmetic.
//   - Strings: the fixed tuning table (open note, octave, color, label).
//   - Resolve: map a (string, fret) pair to the note it sounds.
//
// Notes:
//   - The chromatic cycle is rooted at C, so the integer-division octave
//     adjustment in Resolve lands rollovers between B and C, matching
//     scientific pitch notation.
//   - Resolve is pure and total for fret 0–12; callers validate input
//     ranges at the HTTP boundary.

package fretboard

import (
	"strconv"
	"strings"
)

// Chromatic is the 12-semitone pitch-class cycle, sharp-spelled.
var Chromatic = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const (
	// NumStrings is the number of strings on the fretboard.
	NumStrings = 6
	// MaxFret is the highest fret a click can land on.
	MaxFret = 12
)

// Note is a pitch-class name plus its octave, e.g. {G#, 3}.
// Values are immutable once produced by Resolve.
type Note struct {
	Name   string `json:"name"`
	Octave int    `json:"octave"`
}

// Accidental reports whether the note is sharp-spelled.
func (n Note) Accidental() bool { return strings.Contains(n.Name, "#") }

// String renders the note in compact form, e.g. "G#3".
func (n Note) String() string { return n.Name + strconv.Itoa(n.Octave) }

// String describes one guitar string: its open note and the cosmetic
// attributes the widget uses to draw it.
type String struct {
	Name   string `json:"name"`   // open pitch-class
	Octave int    `json:"octave"` // open octave
	Index  int    `json:"index"`  // 0 = highest pitched
	Color  string `json:"color"`  // rendered string color
	Label  string `json:"label"`  // display label ("e" for high E)
}

// Strings is the standard tuning table, index 0 = high E down to
// index 5 = low E.
var Strings = [NumStrings]String{
	{Name: "E", Octave: 4, Index: 0, Color: "#e2474b", Label: "e"},
	{Name: "B", Octave: 3, Index: 1, Color: "#e28f3d", Label: "B"},
	{Name: "G", Octave: 3, Index: 2, Color: "#d9c93a", Label: "G"},
	{Name: "D", Octave: 3, Index: 3, Color: "#58b368", Label: "D"},
	{Name: "A", Octave: 2, Index: 4, Color: "#456ec4", Label: "A"},
	{Name: "E", Octave: 2, Index: 5, Color: "#9b59b6", Label: "E"},
}

// Position identifies one fretted spot on the board.
type Position struct {
	String int `json:"string"` // 0–5, index into Strings
	Fret   int `json:"fret"`   // 0–12, 0 = open
}

// Valid reports whether p is inside the playable board.
func (p Position) Valid() bool {
	return p.String >= 0 && p.String < NumStrings && p.Fret >= 0 && p.Fret <= MaxFret
}

// Resolve maps a string/fret pair to the note it sounds.
// The combined chromatic index wraps at 12; each full wrap raises the
// octave by one above the open string's octave.
func Resolve(stringIndex, fret int) Note {
	s := Strings[stringIndex]
	i := chromaticIndex(s.Name) + fret
	return Note{Name: Chromatic[i%12], Octave: s.Octave + i/12}
}

// chromaticIndex returns the position of a pitch-class label in the
// chromatic cycle. Tuning names are always present in the table.
func chromaticIndex(name string) int {
	for i, n := range Chromatic {
		if n == name {
			return i
		}
	}
	return 0
}

// internal/trainer/types.go
//
// Core type definitions for the training engine.
// Defines:
//   - Phase: session round state (idle/awaiting_click/feedback).
//   - Settings: which strings are enabled and whether accidentals play.
//   - Target: the note being trained plus every position that sounds it.
//   - ClickResult: judgement of one fretboard click.

package trainer

import "fretquiz/internal/fretboard"

// Phase represents where a session is in the round loop.
// Possible values:
//   - "idle":           no target; a reset is required to start a round.
//   - "awaiting_click": a target is set, waiting for the learner.
//   - "feedback":       a click was judged; the target is retained for
//     display until the next round is generated.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseAwaiting Phase = "awaiting_click"
	PhaseFeedback Phase = "feedback"
)

// Settings selects the practice material for generation.
type Settings struct {
	Enabled     [fretboard.NumStrings]bool // per-string toggle, index as in fretboard.Strings
	Accidentals bool                       // include sharp-spelled notes
}

// DefaultSettings enables all six strings, naturals only.
func DefaultSettings() Settings {
	var s Settings
	for i := range s.Enabled {
		s.Enabled[i] = true
	}
	return s
}

// PlacedNote is a note as it physically occurs at one fretboard spot.
type PlacedNote struct {
	Note fretboard.Note
	Pos  fretboard.Position
}

// Target is the note the learner must locate plus the full set of
// enabled-string positions that produce it. Positions stay server-side;
// only the note itself is ever shown to the learner.
type Target struct {
	Note      fretboard.Note
	Positions []fretboard.Position
}

// Accepts judges a click: true iff p matches one of the target's
// positions exactly, on both string and fret.
func (t *Target) Accepts(p fretboard.Position) bool {
	for _, q := range t.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// ClickResult records one judged click for transient feedback.
type ClickResult struct {
	Pos     fretboard.Position `json:"position"`
	Correct bool               `json:"correct"`
}

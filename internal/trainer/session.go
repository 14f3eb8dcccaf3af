// internal/trainer/session.go
//
// One training session: the round state machine, score/attempt
// counters, and the post-click display delay.
// Responsibilities:
//   - Reset: (re)start the round loop, zeroing counters.
//   - Click: judge a fretboard click and schedule the next round after
//     a fixed display delay.
//   - Skip: jump to a fresh target without touching counters.
//   - SetStrings/SetAccidentals: batch setting updates, effective at
//     the next round boundary only.
//
// Notes:
//   - All methods are safe for concurrent use; HTTP handlers share one
//     session per widget instance.
//   - The delayed advance is a single cancellable timer guarded by a
//     generation stamp: click, skip, reset, and Close all stop the
//     pending timer and bump the stamp, and a stale fire re-checks the
//     stamp under the lock and no-ops. A rapid second click during the
//     feedback window is judged against the retained target and re-arms
//     the delay; the round never advances twice.

package trainer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"fretquiz/internal/fretboard"
)

// ErrNoActiveRound is returned for clicks and skips while the session
// is idle (no target has been generated yet, or generation stalled).
var ErrNoActiveRound = errors.New("no active round")

// Session holds the state of a single training session.
type Session struct {
	ID string // unique session identifier (random hex string)

	mu       sync.Mutex
	phase    Phase
	settings Settings
	target   *Target
	last     *ClickResult
	score    int
	attempts int
	stalled  bool // auto-advance hit ErrNoEligibleNotes

	delay time.Duration // feedback display delay before the next round
	gen   uint64        // generation stamp for the pending advance
	timer *time.Timer
}

// NewSession constructs an idle session with default settings.
// delay is how long a judged click stays on display before the next
// target is generated.
func NewSession(delay time.Duration) *Session {
	return &Session{
		ID:       randomID(),
		phase:    PhaseIdle,
		settings: DefaultSettings(),
		delay:    delay,
	}
}

// Reset starts (or restarts) the round loop: fresh target, counters
// zeroed together. On ErrNoEligibleNotes nothing changes — the session
// keeps its previous phase, target, and counters.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := Generate(s.settings)
	if err != nil {
		return err
	}
	s.invalidatePending()
	s.target = t
	s.phase = PhaseAwaiting
	s.score, s.attempts = 0, 0
	s.last = nil
	s.stalled = false
	return nil
}

// Skip replaces the current target without touching counters.
// Fails with ErrNoActiveRound when idle and leaves the session
// untouched on ErrNoEligibleNotes.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle {
		return ErrNoActiveRound
	}
	t, err := Generate(s.settings)
	if err != nil {
		return err
	}
	s.invalidatePending()
	s.target = t
	s.phase = PhaseAwaiting
	s.last = nil
	return nil
}

// Click judges a fretboard click against the active target, updates the
// counters, and arms the delayed advance to the next round.
func (s *Session) Click(p fretboard.Position) (ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle || s.target == nil {
		return ClickResult{}, ErrNoActiveRound
	}
	res := ClickResult{Pos: p, Correct: s.target.Accepts(p)}
	s.attempts++
	if res.Correct {
		s.score++
	}
	s.last = &res
	s.phase = PhaseFeedback

	s.invalidatePending()
	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() { s.advance(gen) })
	return res, nil
}

// advance is the timer callback that ends the feedback window.
// It is a no-op if the generation stamp moved (click/skip/reset/Close
// happened first) or the session left the feedback phase.
func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.phase != PhaseFeedback {
		return
	}
	t, err := Generate(s.settings)
	if err != nil {
		// Settings were toggled to an empty combination mid-round.
		// Park the session; the client sees no_eligible_notes on its
		// next state read.
		log.Warn().Str("session", s.ID).Msg("no eligible notes at round boundary")
		s.target = nil
		s.phase = PhaseIdle
		s.stalled = true
		return
	}
	s.target = t
	s.phase = PhaseAwaiting
}

// invalidatePending cancels any scheduled advance. Caller holds s.mu.
func (s *Session) invalidatePending() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// SetStrings replaces the per-string toggles as one atomic batch.
// The in-flight round keeps its target and accepted positions; the new
// settings apply from the next Generate call.
func (s *Session) SetStrings(enabled [fretboard.NumStrings]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Enabled = enabled
}

// SetAccidentals toggles sharp-spelled notes for future rounds.
func (s *Session) SetAccidentals(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Accidentals = on
}

// Close tears the session down, cancelling any pending advance.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidatePending()
	s.target = nil
	s.phase = PhaseIdle
}

// Snapshot is the UI-facing view of a session. The target's accepted
// positions are deliberately absent.
type Snapshot struct {
	SessionID   string                     `json:"sessionId"`
	Phase       Phase                      `json:"phase"`
	Note        *fretboard.Note            `json:"note,omitempty"`
	Score       int                        `json:"score"`
	Attempts    int                        `json:"attempts"`
	Strings     [fretboard.NumStrings]bool `json:"strings"`
	Accidentals bool                       `json:"accidentals"`
	Last        *ClickResult               `json:"lastClick,omitempty"`
	Stalled     bool                       `json:"noEligibleNotes,omitempty"`
}

// Snapshot returns a consistent copy of the session state for encoding.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		SessionID:   s.ID,
		Phase:       s.phase,
		Score:       s.score,
		Attempts:    s.attempts,
		Strings:     s.settings.Enabled,
		Accidentals: s.settings.Accidentals,
		Stalled:     s.stalled,
	}
	if s.target != nil {
		n := s.target.Note
		snap.Note = &n
	}
	if s.last != nil {
		r := *s.last
		snap.Last = &r
	}
	return snap
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// internal/httpserver/server.go
//
// HTTP server wiring for the fretquiz backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/app" (embedded widget page).
//   - Session endpoints: POST /session/new, GET /session/state,
//     POST /session/click, /session/skip, /session/reset,
//     /session/settings, DELETE /session.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Everything is anonymous: one session per widget instance, no
//     accounts and no persistence. Accepted target positions never
//     leave the trainer package; responses carry only the note, the
//     judged click, and the counters.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"fretquiz/assets"
	"fretquiz/internal/fretboard"
	"fretquiz/internal/staff"
	"fretquiz/internal/store"
	"fretquiz/internal/trainer"
)

// Server bundles the router, the in-memory session store, and the
// feedback display delay handed to new sessions.
type Server struct {
	r     *chi.Mux
	store store.Store
	delay time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, delay time.Duration) *Server {
	s := &Server{r: chi.NewRouter(), store: st, delay: delay}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"fretquiz-go","endpoints":["/health","/app","POST /session/new","POST /session/click","POST /session/skip","POST /session/reset","POST /session/settings","GET /session/state"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Embedded widget page
	s.r.Get("/app", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(assets.IndexHTML)
	})

	// Session endpoints
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Get("/session/state", s.handleState)
	s.r.Post("/session/click", s.handleClick)
	s.r.Post("/session/skip", s.handleSkip)
	s.r.Post("/session/reset", s.handleReset)
	s.r.Post("/session/settings", s.handleSettings)
	s.r.Delete("/session", s.handleTeardown)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: static table counts
	s.r.Get("/debug/tables", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{
			"strings":   fretboard.NumStrings,
			"chromatic": len(fretboard.Chromatic),
			"staff":     staff.TableSize(),
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ----------------------------- SESSION -------------------------------------

// newSessionReq payload for POST /session/new. Both fields optional.
type newSessionReq struct {
	Strings     []bool `json:"strings"`     // per-string toggles, len 6
	Accidentals *bool  `json:"accidentals"` // include sharps
}

// handleNewSession creates a session, applies initial settings, and
// starts its first round.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess := trainer.NewSession(s.delay)
	if req.Strings != nil {
		enabled, ok := toEnabled(req.Strings)
		if !ok {
			http.Error(w, `{"error":"bad_strings"}`, http.StatusBadRequest)
			return
		}
		sess.SetStrings(enabled)
	}
	if req.Accidentals != nil {
		sess.SetAccidentals(*req.Accidentals)
	}
	if err := sess.Reset(); err != nil {
		http.Error(w, `{"error":"no_eligible_notes"}`, http.StatusConflict)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// handleState returns the current snapshot for ?sessionId=.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, r.URL.Query().Get("sessionId"))
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// clickReq/Res payloads for POST /session/click.
type clickReq struct {
	SessionID string `json:"sessionId"`
	String    int    `json:"string"`
	Fret      int    `json:"fret"`
}
type clickRes struct {
	Result   trainer.ClickResult `json:"result"`
	Score    int                 `json:"score"`
	Attempts int                 `json:"attempts"`
	Phase    trainer.Phase       `json:"phase"`
}

// handleClick judges one fretboard click against the active target.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	pos := fretboard.Position{String: req.String, Fret: req.Fret}
	if !pos.Valid() {
		http.Error(w, `{"error":"bad_position"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}
	res, err := sess.Click(pos)
	if err != nil {
		http.Error(w, `{"error":"no_active_round"}`, http.StatusConflict)
		return
	}
	snap := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(clickRes{
		Result:   res,
		Score:    snap.Score,
		Attempts: snap.Attempts,
		Phase:    snap.Phase,
	})
}

// sessionReq is the shared one-field payload for skip/reset/teardown.
type sessionReq struct {
	SessionID string `json:"sessionId"`
}

// handleSkip advances to a fresh target without touching counters.
func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.decodeSession(w, r)
	if !ok {
		return
	}
	if err := sess.Skip(); err != nil {
		s.roundError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// handleReset restarts the round loop and zeroes the counters.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.decodeSession(w, r)
	if !ok {
		return
	}
	if err := sess.Reset(); err != nil {
		s.roundError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// settingsReq payload for POST /session/settings. Omitted fields are
// left unchanged; present fields are applied as one atomic batch.
type settingsReq struct {
	SessionID   string `json:"sessionId"`
	Strings     []bool `json:"strings"`
	Accidentals *bool  `json:"accidentals"`
}

// handleSettings updates string/accidental toggles. The in-flight round
// keeps its target; new settings take effect at the next round boundary.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}
	if req.Strings != nil {
		enabled, valid := toEnabled(req.Strings)
		if !valid {
			http.Error(w, `{"error":"bad_strings"}`, http.StatusBadRequest)
			return
		}
		sess.SetStrings(enabled)
	}
	if req.Accidentals != nil {
		sess.SetAccidentals(*req.Accidentals)
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// handleTeardown closes and forgets a session.
func (s *Server) handleTeardown(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}
	sess.Close()
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------ helpers ------------------------------------

// decodeSession reads the shared {sessionId} payload and resolves the
// session, writing the error response itself on failure.
func (s *Server) decodeSession(w http.ResponseWriter, r *http.Request) (*trainer.Session, bool) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return nil, false
	}
	return s.lookup(w, r, req.SessionID)
}

// lookup resolves a session ID or writes a JSON 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*trainer.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// roundError maps trainer round errors onto HTTP statuses.
func (s *Server) roundError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trainer.ErrNoEligibleNotes):
		http.Error(w, `{"error":"no_eligible_notes"}`, http.StatusConflict)
	case errors.Is(err, trainer.ErrNoActiveRound):
		http.Error(w, `{"error":"no_active_round"}`, http.StatusConflict)
	default:
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

// toEnabled converts the wire-level toggle list into the fixed array,
// rejecting anything that is not exactly one flag per string.
func toEnabled(in []bool) ([fretboard.NumStrings]bool, bool) {
	var out [fretboard.NumStrings]bool
	if len(in) != fretboard.NumStrings {
		return out, false
	}
	copy(out[:], in)
	return out, true
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempo-sh/tempo/internal/domain"
	"github.com/tempo-sh/tempo/internal/infra/metrics"
)

// ─── Routines ───────────────────────────────────────────────────────────────

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.routines.ListRoutines(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if routines == nil {
		routines = []*domain.Routine{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"routines": routines})
}

type routineRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddRoutine(w http.ResponseWriter, r *http.Request) {
	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.routines.SaveRoutine(r.Context(), req.Name); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.routines.DeleteRoutine(r.Context(), name); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteRoutine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.routines.CompleteRoutine(r.Context(), name, time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.RoutineCompletions.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCompletion unchecks a routine for a calendar day. The day comes
// from the ?date=2006-01-02 query parameter, defaulting to today.
func (s *Server) handleDeleteCompletion(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		day = parsed
	}
	if err := s.routines.DeleteCompletion(r.Context(), name, day); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempo-sh/tempo/internal/domain"
)

// ─── Current timer ──────────────────────────────────────────────────────────

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Current())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Toggle())
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Pause())
}

type addTimeRequest struct {
	Seconds int `json:"seconds"`
}

func (s *Server) handleAddTime(w http.ResponseWriter, r *http.Request) {
	var req addTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cur, err := s.sess.AddTime(req.Seconds)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

type taskRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cur, err := s.sess.EditTask(req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleCommitTask(w http.ResponseWriter, r *http.Request) {
	cur, err := s.sess.CommitTask()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cur, err := s.sess.AddTag(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleRemoveTag(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cur, err := s.sess.RemoveTag(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Reset())
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Complete())
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	cur, err := s.sess.Queue()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

// ─── Historical records ─────────────────────────────────────────────────────

func (s *Server) handleListTimers(w http.ResponseWriter, r *http.Request) {
	f := domain.TimerFilter{
		Status: domain.TimerStatus(r.URL.Query().Get("status")),
	}
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := parseSince(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since, want RFC 3339 or YYYY-MM-DD")
			return
		}
		f.Since = since
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		f.Limit = n
	}

	records, err := s.timers.ListTimers(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if records == nil {
		records = []*domain.Timer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"timers": records})
}

// parseSince accepts an RFC 3339 timestamp or a local calendar day.
func parseSince(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

func (s *Server) handleDeleteTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.timers.DeleteTimer(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, err := s.sess.Resume(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

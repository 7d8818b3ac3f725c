package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/store"
)

// SessionsHandler handles HTTP requests for session resources.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

// ServeHTTP routes collection and item requests.
// Expected paths: /api/sessions, /api/sessions/{id}, /api/sessions/{id}/analyses.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/analyses"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.listAnalyses(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type createSessionRequest struct {
	Exercise string `json:"exercise"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	Exercise  string `json:"exercise"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

type sessionDetailResponse struct {
	sessionResponse
	Frames         int     `json:"frames"`
	AvgFormScore   float64 `json:"avg_form_score"`
	AvgConfidence  float64 `json:"avg_confidence"`
	CorrectPercent float64 `json:"correct_form_percent"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type analysisResponse struct {
	FrameIndex    int      `json:"frame_index"`
	Timestamp     float64  `json:"timestamp"`
	FormScore     float64  `json:"form_score"`
	Confidence    float64  `json:"confidence"`
	IsCorrectForm bool     `json:"is_correct_form"`
	Corrections   []string `json:"corrections"`
}

type listAnalysesResponse struct {
	SessionID string             `json:"session_id"`
	Analyses  []analysisResponse `json:"analyses"`
}

func toSessionResponse(s *store.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Exercise:  s.Exercise,
		Source:    s.Source,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/sessions and returns all sessions.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/sessions and opens a new session.
func (h *SessionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	exercise, err := engine.ParseExercise(req.Exercise)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid exercise type. Must be one of: %v", engine.Exercises()))
		return
	}

	session := &store.Session{Exercise: exercise.String()}
	if err := h.store.Sessions().Create(session); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// get handles GET /api/sessions/{id} and returns the session with its
// aggregate stats.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	stats, err := h.store.Analyses().Stats(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get session stats")
		return
	}

	writeJSON(w, http.StatusOK, sessionDetailResponse{
		sessionResponse: toSessionResponse(session),
		Frames:          stats.Frames,
		AvgFormScore:    stats.AvgFormScore,
		AvgConfidence:   stats.AvgConfidence,
		CorrectPercent:  stats.CorrectPercent,
	})
}

// listAnalyses handles GET /api/sessions/{id}/analyses.
func (h *SessionsHandler) listAnalyses(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	analyses, err := h.store.Analyses().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}

	response := listAnalysesResponse{
		SessionID: id,
		Analyses:  make([]analysisResponse, 0, len(analyses)),
	}
	for _, a := range analyses {
		response.Analyses = append(response.Analyses, analysisResponse{
			FrameIndex:    a.FrameIndex,
			Timestamp:     a.Timestamp,
			FormScore:     a.FormScore,
			Confidence:    a.Confidence,
			IsCorrectForm: a.IsCorrectForm,
			Corrections:   a.Corrections,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// delete handles DELETE /api/sessions/{id}.
func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Sessions().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

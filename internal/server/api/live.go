package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ayusman/formcoach/internal/engine"
)

// Coach controls the live analysis pipeline. It is implemented by app.App.
type Coach interface {
	// SetExercise selects the exercise to analyze and enables analysis.
	SetExercise(exercise engine.Exercise) error
	// SetEnabled pauses or resumes analysis without tearing down the
	// pipeline.
	SetEnabled(enabled bool)
	// IsEnabled reports whether analysis is currently running.
	IsEnabled() bool
}

// LiveControlHandler exposes live pipeline control over HTTP. Selecting an
// exercise is what arms the pipeline: until then the camera loop reads
// frames but analyzes nothing.
type LiveControlHandler struct {
	coach Coach
}

// NewLiveControlHandler creates a LiveControlHandler around a coach.
func NewLiveControlHandler(coach Coach) *LiveControlHandler {
	return &LiveControlHandler{coach: coach}
}

type liveExerciseRequest struct {
	Exercise string `json:"exercise"`
	// Enabled pauses analysis when explicitly set to false; selecting an
	// exercise otherwise enables it.
	Enabled *bool `json:"enabled,omitempty"`
}

type liveExerciseResponse struct {
	Exercise string `json:"exercise,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// ServeHTTP handles /api/live/exercise: POST selects the exercise (and
// optionally toggles analysis), GET reports whether analysis is enabled.
func (h *LiveControlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, liveExerciseResponse{Enabled: h.coach.IsEnabled()})
	case http.MethodPost:
		h.setExercise(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *LiveControlHandler) setExercise(w http.ResponseWriter, r *http.Request) {
	var req liveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Exercise == "" && req.Enabled != nil {
		// Pure enable/disable toggle for the already selected exercise
		h.coach.SetEnabled(*req.Enabled)
		writeJSON(w, http.StatusOK, liveExerciseResponse{Enabled: h.coach.IsEnabled()})
		return
	}

	exercise, err := engine.ParseExercise(req.Exercise)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid exercise type. Must be one of: %v", engine.Exercises()))
		return
	}

	if err := h.coach.SetExercise(exercise); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to start analysis session")
		return
	}
	if req.Enabled != nil {
		h.coach.SetEnabled(*req.Enabled)
	}

	writeJSON(w, http.StatusOK, liveExerciseResponse{
		Exercise: exercise.String(),
		Enabled:  h.coach.IsEnabled(),
	})
}

package api

import (
	"net/http"
	"time"

	"github.com/ayusman/formcoach/internal/advisor"
)

// ExercisesHandler serves the static exercise library.
type ExercisesHandler struct{}

// NewExercisesHandler creates a new ExercisesHandler.
func NewExercisesHandler() *ExercisesHandler {
	return &ExercisesHandler{}
}

type exercisesResponse struct {
	Exercises      map[string]advisor.ExerciseInfo `json:"exercises"`
	TotalExercises int                             `json:"total_exercises"`
	Timestamp      int64                           `json:"timestamp"`
}

// ServeHTTP handles GET /api/exercises.
func (h *ExercisesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	library := advisor.Library()
	writeJSON(w, http.StatusOK, exercisesResponse{
		Exercises:      library,
		TotalExercises: len(library),
		Timestamp:      time.Now().Unix(),
	})
}

// Package advisor turns raw form scores into coaching copy and describes
// the supported exercises.
package advisor

import "github.com/ayusman/formcoach/internal/engine"

// Feedback score thresholds.
const (
	excellentScore = 0.8
	goodScore      = 0.6
)

// FormFeedback maps a scored frame to a short motivational summary. The
// corrections list is the engine's cue output for the same frame; it only
// influences the phrasing, never the tier.
func FormFeedback(exercise engine.Exercise, score float64, corrections []string) string {
	switch {
	case score > excellentScore:
		return "Excellent form! You're performing the exercise with great technique. Keep up the good work!"
	case score > goodScore:
		return "Good form overall! Focus on the suggested corrections to perfect your technique."
	default:
		return "Let's work on improving your form. Focus on the corrections provided and practice slowly to build muscle memory."
	}
}

// ExerciseInfo describes one supported exercise for the library endpoint.
type ExerciseInfo struct {
	Name        string   `json:"name"`
	Muscles     []string `json:"muscles"`
	Difficulty  string   `json:"difficulty"`
	Equipment   string   `json:"equipment"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

var library = map[engine.Exercise]ExerciseInfo{
	engine.Squat: {
		Name:        "Squat",
		Muscles:     []string{"quadriceps", "glutes", "hamstrings", "core"},
		Difficulty:  "beginner",
		Equipment:   "bodyweight",
		Description: "Lower body strength exercise targeting legs and glutes",
		Benefits:    []string{"strength", "mobility", "functional movement"},
	},
	engine.Pushup: {
		Name:        "Push-up",
		Muscles:     []string{"chest", "shoulders", "triceps", "core"},
		Difficulty:  "beginner",
		Equipment:   "bodyweight",
		Description: "Upper body strength exercise targeting chest and arms",
		Benefits:    []string{"upper body strength", "core stability"},
	},
	engine.Plank: {
		Name:        "Plank",
		Muscles:     []string{"core", "shoulders", "glutes"},
		Difficulty:  "beginner",
		Equipment:   "bodyweight",
		Description: "Isometric core strengthening exercise",
		Benefits:    []string{"core strength", "stability", "endurance"},
	},
	engine.Lunge: {
		Name:        "Lunge",
		Muscles:     []string{"quadriceps", "glutes", "hamstrings", "calves"},
		Difficulty:  "beginner",
		Equipment:   "bodyweight",
		Description: "Single-leg strength exercise for legs and glutes",
		Benefits:    []string{"leg strength", "balance", "mobility"},
	},
	engine.Deadlift: {
		Name:        "Deadlift",
		Muscles:     []string{"hamstrings", "glutes", "lower back", "traps"},
		Difficulty:  "intermediate",
		Equipment:   "barbell",
		Description: "Hip-hinge movement for posterior chain strength",
		Benefits:    []string{"posterior chain strength", "functional movement"},
	},
}

// Library returns the exercise library keyed by the wire-format exercise
// name. The returned map is a fresh copy.
func Library() map[string]ExerciseInfo {
	out := make(map[string]ExerciseInfo, len(library))
	for exercise, info := range library {
		out[exercise.String()] = info
	}
	return out
}

// Info returns the library entry for one exercise.
func Info(exercise engine.Exercise) (ExerciseInfo, bool) {
	info, ok := library[exercise]
	return info, ok
}

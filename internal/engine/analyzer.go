package engine

import "github.com/ayusman/formcoach/internal/pose"

// Confidence tiers reported in results.
const (
	// ConfidenceNone means no pose was detected.
	ConfidenceNone = 0.0
	// ConfidencePartial means a pose was detected but the subject is not
	// fully framed.
	ConfidencePartial = 0.3
	// ConfidenceFull means the frame was fully analyzed.
	ConfidenceFull = 0.85
)

// verdictThreshold is the form score a frame must exceed for a correct
// verdict.
const verdictThreshold = 0.7

// consistencyBlend is the weight of the temporal consistency score when
// fusing with the base biomechanical score (a 9:1 base-to-consistency
// ratio, applied uniformly across exercises).
const consistencyBlend = 0.1

// Result is the engine's output for one analyzed frame. It is immutable
// once constructed.
type Result struct {
	ExerciseType  string                `json:"exercise_type"`
	Confidence    float64               `json:"confidence"`
	FormScore     float64               `json:"form_score"`
	Corrections   []string              `json:"corrections"`
	KeyPoints     map[string][2]float64 `json:"key_points"`
	SubScores     SubScores             `json:"sub_scores,omitempty"`
	IsCorrectForm bool                  `json:"is_correct_form"`
}

// Analyzer scores exercise form frame by frame. It owns the per-session
// smoothing filters and temporal window, so results depend on call order:
// one Analyzer serves one subject stream, and concurrent calls against the
// same instance must be serialized by the caller.
type Analyzer struct {
	exercise Exercise
	scorer   scorer
	smoother *AngleSmoother
	tracker  *Tracker
}

// NewAnalyzer creates an Analyzer for the given exercise with the default
// temporal window size.
func NewAnalyzer(exercise Exercise) *Analyzer {
	return NewAnalyzerWindow(exercise, DefaultWindowSize)
}

// NewAnalyzerWindow creates an Analyzer with an explicit temporal window
// size.
func NewAnalyzerWindow(exercise Exercise, windowSize int) *Analyzer {
	return &Analyzer{
		exercise: exercise,
		scorer:   scorerFor(exercise),
		smoother: NewAngleSmoother(),
		tracker:  NewTracker(windowSize),
	}
}

// Exercise returns the exercise this analyzer scores.
func (a *Analyzer) Exercise() Exercise {
	return a.exercise
}

// Phase returns the current movement phase of the exercise's primary
// angle.
func (a *Analyzer) Phase() Phase {
	return a.tracker.MovementPhase(a.exercise.PrimaryAngle())
}

// Analyze scores one frame. A nil frame means the extractor detected no
// pose. The timestamp is in seconds from any monotonic origin; it orders
// frames within the temporal window.
//
// Each call with a valid, fully visible frame advances the analyzer's
// smoothing and temporal state.
func (a *Analyzer) Analyze(frame *pose.Frame, timestamp float64) Result {
	if frame == nil {
		return Result{
			ExerciseType:  a.exercise.String(),
			Confidence:    ConfidenceNone,
			FormScore:     0,
			Corrections:   append([]string(nil), noPoseCorrections...),
			KeyPoints:     map[string][2]float64{},
			IsCorrectForm: false,
		}
	}

	visibility := CheckVisibility(frame)
	if !visibility.FullyVisible {
		corrections := append([]string(nil), visibility.Issues...)
		if visibility.Ratio > 0.3 {
			corrections = append(corrections,
				"Once your entire body is visible, we can analyze your exercise form.")
		}

		return Result{
			ExerciseType:  a.exercise.String(),
			Confidence:    ConfidencePartial,
			FormScore:     0,
			Corrections:   corrections,
			KeyPoints:     frame.KeyPoints(),
			IsCorrectForm: false,
		}
	}

	angles := a.smoother.SmoothAll(ExtractAngles(frame))
	a.tracker.AddFrame(frame, angles, timestamp)

	base, sub := a.scorer.score(frame, angles)
	score := clamp01(base*(1-consistencyBlend) + a.tracker.ConsistencyScore()*consistencyBlend)

	corrections := generateCorrections(a.exercise, angles, score)
	if visibility.Ratio > 0.8 {
		corrections = append([]string{"Great! Your entire body is visible for accurate analysis."}, corrections...)
	}

	return Result{
		ExerciseType:  a.exercise.String(),
		Confidence:    ConfidenceFull,
		FormScore:     score,
		Corrections:   corrections,
		KeyPoints:     frame.KeyPoints(),
		SubScores:     sub,
		IsCorrectForm: score > verdictThreshold && len(corrections) <= 1,
	}
}

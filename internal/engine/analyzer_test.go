package engine

import (
	"strings"
	"testing"

	"github.com/ayusman/formcoach/internal/pose"
)

func TestAnalyze_NoPose(t *testing.T) {
	a := NewAnalyzer(Squat)

	result := a.Analyze(nil, 0)

	if result.Confidence != ConfidenceNone {
		t.Errorf("Confidence = %f, want %f", result.Confidence, ConfidenceNone)
	}
	if result.FormScore != 0 {
		t.Errorf("FormScore = %f, want 0", result.FormScore)
	}
	if result.IsCorrectForm {
		t.Error("IsCorrectForm = true, want false with no pose")
	}
	if len(result.Corrections) == 0 {
		t.Fatal("expected repositioning guidance")
	}
	if !strings.Contains(result.Corrections[0], "No pose detected") {
		t.Errorf("Corrections[0] = %q, want a no-pose message", result.Corrections[0])
	}
	if result.KeyPoints == nil || len(result.KeyPoints) != 0 {
		t.Errorf("KeyPoints = %v, want empty non-nil map", result.KeyPoints)
	}
	if result.ExerciseType != "squat" {
		t.Errorf("ExerciseType = %q, want %q", result.ExerciseType, "squat")
	}
}

func TestAnalyze_PartialVisibility(t *testing.T) {
	a := NewAnalyzer(Squat)

	result := a.Analyze(pose.CroppedLowerBodyFrame(), 0)

	if result.Confidence != ConfidencePartial {
		t.Errorf("Confidence = %f, want %f", result.Confidence, ConfidencePartial)
	}
	if result.FormScore != 0 {
		t.Errorf("FormScore = %f, want 0 without full visibility", result.FormScore)
	}
	if result.IsCorrectForm {
		t.Error("IsCorrectForm = true, want false")
	}

	// Region guidance plus the follow-up tip, since the upper body remains
	foundRegion, foundTip := false, false
	for _, c := range result.Corrections {
		if strings.Contains(c, "legs") {
			foundRegion = true
		}
		if strings.Contains(c, "entire body is visible") {
			foundTip = true
		}
	}
	if !foundRegion {
		t.Errorf("Corrections = %v, want a legs-specific message", result.Corrections)
	}
	if !foundTip {
		t.Errorf("Corrections = %v, want the follow-up visibility tip", result.Corrections)
	}

	// Key points are still reported so the client can render the skeleton
	if len(result.KeyPoints) == 0 {
		t.Error("expected key points for a detected pose")
	}
}

func TestAnalyze_WellFormedSquat(t *testing.T) {
	a := NewAnalyzer(Squat)

	result := a.Analyze(pose.DeepSquatFrame(), 0)

	if result.Confidence != ConfidenceFull {
		t.Errorf("Confidence = %f, want %f", result.Confidence, ConfidenceFull)
	}
	if result.FormScore <= verdictThreshold {
		t.Errorf("FormScore = %f, want > %f for a deep squat", result.FormScore, verdictThreshold)
	}
	if result.SubScores["depth"] != 1.0 {
		t.Errorf("depth sub-score = %f, want 1.0", result.SubScores["depth"])
	}
	if !result.IsCorrectForm {
		t.Errorf("IsCorrectForm = false, want true (score %f, corrections %v)",
			result.FormScore, result.Corrections)
	}

	// A fully framed subject gets the visibility confirmation first
	if len(result.Corrections) == 0 || !strings.Contains(result.Corrections[0], "Great!") {
		t.Errorf("Corrections = %v, want a leading visibility confirmation", result.Corrections)
	}
}

func TestAnalyze_ShallowSquatCues(t *testing.T) {
	a := NewAnalyzer(Squat)

	// Standing legs read near 180 degrees, above the too-shallow band edge
	result := a.Analyze(pose.StandingFrame(), 0)

	if result.IsCorrectForm {
		t.Error("IsCorrectForm = true, want false for a standing subject")
	}

	found := false
	for _, c := range result.Corrections {
		if strings.Contains(c, "too deep") {
			found = true
		}
	}
	if !found {
		t.Errorf("Corrections = %v, want the over-extension cue above 120 degrees", result.Corrections)
	}
}

func TestAnalyze_ConsistencyRaisesScore(t *testing.T) {
	a := NewAnalyzer(Squat)
	f := pose.DeepSquatFrame()

	first := a.Analyze(f, 0)

	var last Result
	for i := 1; i < 10; i++ {
		last = a.Analyze(f, float64(i))
	}

	// Identical frames drive temporal consistency to 1.0, lifting the
	// blended score above the cold-start neutral prior
	if last.FormScore <= first.FormScore {
		t.Errorf("score after 10 identical frames = %f, want > first frame %f",
			last.FormScore, first.FormScore)
	}
	if last.FormScore < 0 || last.FormScore > 1 {
		t.Errorf("FormScore = %f out of [0,1]", last.FormScore)
	}
}

func TestAnalyzer_Phase(t *testing.T) {
	a := NewAnalyzer(Squat)

	if got := a.Phase(); got != PhaseUnknown {
		t.Errorf("Phase before any frames = %q, want %q", got, PhaseUnknown)
	}

	f := pose.DeepSquatFrame()
	for i := 0; i < 3; i++ {
		a.Analyze(f, float64(i))
	}

	if got := a.Phase(); got != PhaseStatic {
		t.Errorf("Phase after identical frames = %q, want %q", got, PhaseStatic)
	}
}

func TestAnalyze_StatelessVisibilityFailures(t *testing.T) {
	a := NewAnalyzer(Squat)

	// Rejected frames must not advance smoothing or temporal state
	a.Analyze(pose.CroppedLowerBodyFrame(), 0)
	a.Analyze(nil, 1)

	if a.tracker.Len() != 0 {
		t.Errorf("tracker length = %d, want 0 after rejected frames", a.tracker.Len())
	}
}

func TestAnalyze_AllExercises(t *testing.T) {
	f := pose.DeepSquatFrame()

	for _, exercise := range Exercises() {
		a := NewAnalyzer(exercise)
		result := a.Analyze(f, 0)

		if result.ExerciseType != exercise.String() {
			t.Errorf("ExerciseType = %q, want %q", result.ExerciseType, exercise.String())
		}
		if result.Confidence != ConfidenceFull {
			t.Errorf("%s: Confidence = %f, want %f", exercise, result.Confidence, ConfidenceFull)
		}
		if result.FormScore < 0 || result.FormScore > 1 {
			t.Errorf("%s: FormScore = %f out of [0,1]", exercise, result.FormScore)
		}
	}
}

package engine

import (
	"testing"

	"github.com/ayusman/formcoach/internal/pose"
)

func TestKneeDepthTier(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{90, 1.0},
		{85, 1.0},
		{95, 1.0},
		{80, 0.8},
		{100, 0.8},
		{70, 0.6},
		{110, 0.6},
		{50, 0.3},
		{180, 0.3},
	}

	for _, tt := range tests {
		if got := kneeDepthTier(tt.angle); got != tt.want {
			t.Errorf("kneeDepthTier(%f) = %f, want %f", tt.angle, got, tt.want)
		}
	}
}

func TestElbowDepthTier(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{90, 1.0},
		{75, 0.7},
		{105, 0.7},
		{60, 0.4},
		{180, 0.4},
	}

	for _, tt := range tests {
		if got := elbowDepthTier(tt.angle); got != tt.want {
			t.Errorf("elbowDepthTier(%f) = %f, want %f", tt.angle, got, tt.want)
		}
	}
}

func TestHipHingeTier(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{140, 1.0},
		{120, 1.0},
		{160, 1.0},
		{110, 0.7},
		{170, 0.7},
		{90, 0.4},
	}

	for _, tt := range tests {
		if got := hipHingeTier(tt.angle); got != tt.want {
			t.Errorf("hipHingeTier(%f) = %f, want %f", tt.angle, got, tt.want)
		}
	}
}

func TestSquatScorer_PerfectDepth(t *testing.T) {
	f := pose.DeepSquatFrame()
	angles := ExtractAngles(f)

	score, sub := squatScorer{}.score(f, angles)

	// 90 degree knees sit in the perfect depth band
	if sub["depth"] != 1.0 {
		t.Errorf("depth sub-score = %f, want 1.0 at a 90 degree knee angle", sub["depth"])
	}
	if score < 0.7 {
		t.Errorf("fused score = %f, want >= 0.7 for a well formed squat", score)
	}
}

func TestSquatScorer_ShallowDepth(t *testing.T) {
	// Standing legs read near 180 degrees: the worst depth tier
	f := pose.StandingFrame()
	angles := ExtractAngles(f)

	_, sub := squatScorer{}.score(f, angles)
	if sub["depth"] != 0.3 {
		t.Errorf("depth sub-score = %f, want 0.3 for straight legs", sub["depth"])
	}
}

func TestScorers_RangeInvariant(t *testing.T) {
	frames := map[string]*pose.Frame{
		"empty":    {},
		"standing": pose.StandingFrame(),
		"squat":    pose.DeepSquatFrame(),
		"cropped":  pose.CroppedLowerBodyFrame(),
	}

	for _, exercise := range Exercises() {
		for name, f := range frames {
			angles := ExtractAngles(f)
			score, sub := scorerFor(exercise).score(f, angles)

			if score < 0 || score > 1 {
				t.Errorf("%s on %s frame: fused score %f out of [0,1]", exercise, name, score)
			}
			for key, v := range sub {
				if v < 0 || v > 1 {
					t.Errorf("%s on %s frame: sub-score %s = %f out of [0,1]", exercise, name, key, v)
				}
			}
		}
	}
}

func TestLungeScorer_FrontBackSplit(t *testing.T) {
	// A 90 degree left knee leads; the straighter right knee trails
	_, sub := lungeScorer{}.score(&pose.Frame{}, AngleSet{
		LeftKneeAngle:  90,
		RightKneeAngle: 100,
	})

	if sub["front_knee"] != 1.0 {
		t.Errorf("front_knee = %f, want 1.0 for the 90 degree knee", sub["front_knee"])
	}
	if sub["back_knee"] != 0.8 {
		t.Errorf("back_knee = %f, want 0.8 for the 100 degree knee", sub["back_knee"])
	}
}

func TestDeadliftScorer_BarPathProxy(t *testing.T) {
	_, sub := deadliftScorer{}.score(pose.StandingFrame(), AngleSet{})

	// No barbell tracking exists; the bar path component is a fixed proxy
	if sub["bar_path"] != 0.5 {
		t.Errorf("bar_path = %f, want fixed 0.5", sub["bar_path"])
	}
}

func TestPushupScorer_DepthTiers(t *testing.T) {
	_, sub := pushupScorer{}.score(pose.StandingFrame(), AngleSet{LeftElbowAngle: 90})
	if sub["depth"] != 1.0 {
		t.Errorf("depth = %f, want 1.0 at a 90 degree elbow", sub["depth"])
	}

	_, sub = pushupScorer{}.score(pose.StandingFrame(), AngleSet{LeftElbowAngle: 160})
	if sub["depth"] != 0.4 {
		t.Errorf("depth = %f, want 0.4 for barely bent elbows", sub["depth"])
	}
}

func TestExtractAngles_DeepSquat(t *testing.T) {
	angles := ExtractAngles(pose.DeepSquatFrame())

	for _, key := range []string{LeftKneeAngle, RightKneeAngle} {
		got, ok := angles[key]
		if !ok {
			t.Fatalf("angle %s missing", key)
		}
		if got < 89.999 || got > 90.001 {
			t.Errorf("%s = %f, want 90", key, got)
		}
	}
}

func TestExtractAngles_MissingLandmarks(t *testing.T) {
	angles := ExtractAngles(&pose.Frame{})
	if len(angles) != 0 {
		t.Errorf("expected no angles from an empty frame, got %v", angles)
	}

	angles = ExtractAngles(nil)
	if len(angles) != 0 {
		t.Errorf("expected no angles from a nil frame, got %v", angles)
	}
}

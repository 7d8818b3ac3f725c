package engine

import "github.com/ayusman/formcoach/internal/pose"

// SubScores maps named sub-score components to values in [0,1].
type SubScores map[string]float64

// scorer evaluates one exercise variant. Implementations are pure given
// the landmark frame and angle set; temporal blending happens in the
// Analyzer so scorers stay stateless.
type scorer interface {
	// score returns the fused base score in [0,1] and its components.
	score(f *pose.Frame, angles AngleSet) (float64, SubScores)
}

// scorerFor returns the scorer for an exercise. The switch is exhaustive
// over the Exercise enum.
func scorerFor(e Exercise) scorer {
	switch e {
	case Squat:
		return squatScorer{}
	case Pushup:
		return pushupScorer{}
	case Plank:
		return plankScorer{}
	case Lunge:
		return lungeScorer{}
	case Deadlift:
		return deadliftScorer{}
	default:
		return squatScorer{}
	}
}

// kneeDepthTier grades a knee angle against squat-depth bands.
func kneeDepthTier(angle float64) float64 {
	switch {
	case angle >= 85 && angle <= 95:
		return 1.0
	case angle >= 75 && angle <= 105:
		return 0.8
	case angle >= 65 && angle <= 115:
		return 0.6
	default:
		return 0.3
	}
}

// elbowDepthTier grades an elbow angle against push-up depth bands.
func elbowDepthTier(angle float64) float64 {
	switch {
	case angle >= 80 && angle <= 100:
		return 1.0
	case angle >= 70 && angle <= 110:
		return 0.7
	default:
		return 0.4
	}
}

// hipHingeTier grades a hip hinge angle against deadlift bands.
func hipHingeTier(angle float64) float64 {
	switch {
	case angle >= 120 && angle <= 160:
		return 1.0
	case angle >= 100 && angle <= 180:
		return 0.7
	default:
		return 0.4
	}
}

// backStraightness converts a spine report into a straightness score. An
// undefined report (too few spine points) yields the neutral 0.5 so that
// missing evidence never reads as perfect form.
func backStraightness(report SpineReport) float64 {
	if !report.Defined {
		return 0.5
	}
	return clamp01(1.0 - report.Curvature)
}

// angleOr returns the named angle or a default when the set lacks it.
func angleOr(angles AngleSet, key string, def float64) float64 {
	if v, ok := angles[key]; ok {
		return v
	}
	return def
}

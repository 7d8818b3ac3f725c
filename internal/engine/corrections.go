package engine

// correctionThreshold is the form score below which exercise-specific
// corrective cues are emitted.
const correctionThreshold = 0.7

// noPoseCorrections guide the subject when no pose was detected at all.
var noPoseCorrections = []string{
	"No pose detected. Please ensure you're visible in the camera.",
	"Make sure you're standing in front of the camera with good lighting.",
	"Try moving closer to the camera or adjusting the angle.",
}

// generateCorrections builds the ordered corrective cue list for a scored
// frame. Angle-band cues fire regardless of the score; the general cue
// lists fire only below the correction threshold.
func generateCorrections(e Exercise, angles AngleSet, score float64) []string {
	var corrections []string

	switch e {
	case Squat:
		knee := angleOr(angles, LeftKneeAngle, 0)
		if knee < 80 {
			corrections = append(corrections, "Go deeper - aim for 90-degree knee angle")
		} else if knee > 120 {
			corrections = append(corrections, "Don't go too deep - maintain control")
		}
		if score < correctionThreshold {
			corrections = append(corrections,
				"Keep your back straight and chest up",
				"Ensure knees track over toes")
		}

	case Pushup:
		if score < correctionThreshold {
			corrections = append(corrections,
				"Keep your body in a straight line",
				"Lower chest closer to the ground",
				"Push through your palms, not fingertips")
		}

	case Plank:
		if score < correctionThreshold {
			corrections = append(corrections,
				"Keep your body straight from head to heels",
				"Engage your core muscles",
				"Don't let hips sag or pike up")
		}

	case Lunge:
		if score < correctionThreshold {
			corrections = append(corrections,
				"Keep front knee over ankle",
				"Lower back knee toward ground",
				"Maintain upright torso")
		}

	case Deadlift:
		if score < correctionThreshold {
			corrections = append(corrections,
				"Keep your back straight throughout the movement",
				"Hinge at hips, not waist",
				"Keep the bar close to your body")
		}
	}

	return corrections
}

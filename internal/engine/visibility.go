package engine

import (
	"math"

	"github.com/ayusman/formcoach/internal/pose"
)

// Visibility gate thresholds.
const (
	// minPointVisibility is the minimum per-landmark confidence for a
	// point to count as visible.
	minPointVisibility = 0.3
	// minBodySpan and maxBodySpan bound the normalized head-to-heel
	// distance; outside this range the subject is too far or too close.
	minBodySpan = 0.3
	maxBodySpan = 0.9
)

// VisibilityReport describes how completely the subject is framed.
// It is computed fresh for each frame and not retained.
type VisibilityReport struct {
	// FullyVisible is true when no body region is missing.
	FullyVisible bool
	// MissingRegions lists the names of regions with under half their
	// landmarks visible.
	MissingRegions []string
	// Issues holds human-readable corrective instructions.
	Issues []string
	// Ratio is the fraction of key landmarks (shoulders, hips, knees,
	// ankles) that are well placed in the frame.
	Ratio float64
}

// bodyRegion groups the landmark indices that make up one body region.
type bodyRegion struct {
	name    string
	indices []int
	issue   string
}

// bodyRegions is ordered so reports are deterministic.
var bodyRegions = []bodyRegion{
	{"head", []int{pose.Nose},
		"Your head is not fully visible. Move back or adjust camera angle."},
	{"shoulders", []int{pose.LeftShoulder, pose.RightShoulder},
		"Your shoulders are cut off. Move back to show your full upper body."},
	{"arms", []int{pose.LeftElbow, pose.RightElbow, pose.LeftWrist, pose.RightWrist},
		"Your arms are not fully visible. Extend your arms or move back."},
	{"hips", []int{pose.LeftHip, pose.RightHip},
		"Your hips are not visible. Make sure your torso is in frame."},
	{"legs", []int{pose.LeftKnee, pose.RightKnee, pose.LeftAnkle, pose.RightAnkle},
		"Your legs are cut off. Move back to show your full lower body."},
	{"feet", []int{pose.LeftHeel, pose.RightHeel, pose.LeftFootIndex, pose.RightFootIndex},
		"Your feet are not visible. Make sure your entire body is in frame."},
}

// keyIndices are the landmarks used for the overall visibility ratio.
var keyIndices = []int{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

// CheckVisibility verifies that every body region is adequately framed
// before any form scoring happens. Scoring an incompletely framed subject
// would produce meaningless results, so the orchestrator short-circuits on
// a report with missing regions.
func CheckVisibility(f *pose.Frame) VisibilityReport {
	report := VisibilityReport{}
	if f == nil {
		return report
	}

	for _, region := range bodyRegions {
		visible := 0
		for _, idx := range region.indices {
			if pointVisible(f.Points[idx]) {
				visible++
			}
		}

		// A region is missing when under half its points pass
		if float64(visible)/float64(len(region.indices)) < 0.5 {
			report.MissingRegions = append(report.MissingRegions, region.name)
			report.Issues = append(report.Issues, region.issue)
		}
	}

	// Aggregate positioning feedback
	switch {
	case len(report.MissingRegions) > 2:
		report.Issues = append(report.Issues,
			"Most of your body is not visible. Please step back and ensure your entire body is in the camera frame.")
	case len(report.MissingRegions) == 1:
		report.Issues = append(report.Issues,
			"One body part is not fully visible. Adjust your position for better analysis.")
	}

	// Distance check: head-to-heel span as a size proxy
	span := math.Abs(math.Max(f.Points[pose.LeftHeel].Y, f.Points[pose.RightHeel].Y) - f.Points[pose.Nose].Y)
	if span < minBodySpan {
		report.Issues = append(report.Issues,
			"You appear too far from the camera. Move closer for better analysis.")
	} else if span > maxBodySpan {
		report.Issues = append(report.Issues,
			"You appear too close to the camera. Move back to show your entire body.")
	}

	report.FullyVisible = len(report.MissingRegions) == 0
	report.Ratio = visibilityRatio(f)
	return report
}

// pointVisible reports whether a landmark is inside the image, at a
// plausible depth and confidently detected.
func pointVisible(lm pose.Landmark) bool {
	return lm.X >= 0.0 && lm.X <= 1.0 &&
		lm.Y >= 0.0 && lm.Y <= 1.0 &&
		math.Abs(lm.Z) < 1.0 &&
		lm.Visibility >= minPointVisibility
}

// visibilityRatio measures how many key landmarks sit well inside the
// frame, using stricter bounds than the per-region check.
func visibilityRatio(f *pose.Frame) float64 {
	visible := 0
	for _, idx := range keyIndices {
		lm := f.Points[idx]
		if lm.X >= 0.1 && lm.X <= 0.9 && lm.Y >= 0.1 && lm.Y <= 0.9 && math.Abs(lm.Z) < 0.5 {
			visible++
		}
	}
	return float64(visible) / float64(len(keyIndices))
}

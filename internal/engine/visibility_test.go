package engine

import (
	"strings"
	"testing"

	"github.com/ayusman/formcoach/internal/pose"
)

func TestCheckVisibility_AllPointsVisible(t *testing.T) {
	f := &pose.Frame{}
	for i := 0; i < pose.NumLandmarks; i++ {
		f.Points[i] = pose.Landmark{X: 0.5, Y: 0.5, Z: 0.0, Visibility: 1.0}
	}

	report := CheckVisibility(f)
	if !report.FullyVisible {
		t.Errorf("expected fully visible, missing regions: %v", report.MissingRegions)
	}
	if len(report.MissingRegions) != 0 {
		t.Errorf("MissingRegions = %v, want none", report.MissingRegions)
	}
	if report.Ratio != 1.0 {
		t.Errorf("Ratio = %f, want 1.0", report.Ratio)
	}
}

func TestCheckVisibility_StandingSubject(t *testing.T) {
	report := CheckVisibility(pose.StandingFrame())
	if !report.FullyVisible {
		t.Errorf("standing frame should be fully visible, missing: %v", report.MissingRegions)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none for a well framed subject", report.Issues)
	}
}

func TestCheckVisibility_CroppedLowerBody(t *testing.T) {
	report := CheckVisibility(pose.CroppedLowerBodyFrame())

	if report.FullyVisible {
		t.Fatal("expected incomplete visibility for cropped lower body")
	}

	wantMissing := map[string]bool{"legs": true, "feet": true}
	for _, region := range report.MissingRegions {
		if !wantMissing[region] {
			t.Errorf("unexpected missing region %q", region)
		}
		delete(wantMissing, region)
	}
	for region := range wantMissing {
		t.Errorf("region %q not reported missing", region)
	}

	// Region-specific guidance must be present
	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "legs") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a legs-specific issue, got %v", report.Issues)
	}
}

func TestCheckVisibility_LowConfidencePoints(t *testing.T) {
	f := pose.StandingFrame()
	// In-bounds points with confidence below the gate threshold
	for _, idx := range []int{pose.LeftShoulder, pose.RightShoulder} {
		f.Points[idx].Visibility = 0.1
	}

	report := CheckVisibility(f)
	if report.FullyVisible {
		t.Error("expected shoulders region to fail on low confidence")
	}
}

func TestCheckVisibility_TooFar(t *testing.T) {
	f := pose.StandingFrame()
	// Shrink the body span below the minimum by pulling the heels up
	for _, idx := range []int{pose.LeftHeel, pose.RightHeel} {
		f.Points[idx].Y = f.Points[pose.Nose].Y + 0.2
	}

	report := CheckVisibility(f)
	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "too far") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a too-far warning, got %v", report.Issues)
	}
}

func TestCheckVisibility_Ratio(t *testing.T) {
	report := CheckVisibility(pose.CroppedLowerBodyFrame())

	// Shoulders and hips remain in frame; knees and ankles are cropped
	if report.Ratio != 0.5 {
		t.Errorf("Ratio = %f, want 0.5 with half the key landmarks cropped", report.Ratio)
	}
}

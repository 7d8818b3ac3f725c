package advisor

import (
	"strings"
	"testing"

	"github.com/ayusman/formcoach/internal/engine"
)

func TestFormFeedback_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"excellent above 0.8", 0.9, "Excellent"},
		{"good above 0.6", 0.7, "Good form"},
		{"needs work at 0.6", 0.6, "improving"},
		{"needs work below", 0.3, "improving"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormFeedback(engine.Squat, tt.score, nil)
			if !strings.Contains(got, tt.want) {
				t.Errorf("FormFeedback(%f) = %q, want it to contain %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestLibrary(t *testing.T) {
	lib := Library()

	if len(lib) != len(engine.Exercises()) {
		t.Fatalf("library has %d entries, want %d", len(lib), len(engine.Exercises()))
	}

	for _, exercise := range engine.Exercises() {
		info, ok := lib[exercise.String()]
		if !ok {
			t.Errorf("library entry for %s missing", exercise)
			continue
		}
		if info.Name == "" || info.Description == "" || len(info.Muscles) == 0 {
			t.Errorf("library entry for %s is incomplete: %+v", exercise, info)
		}
	}

	if lib["deadlift"].Equipment != "barbell" {
		t.Errorf("deadlift equipment = %q, want barbell", lib["deadlift"].Equipment)
	}
}

func TestInfo(t *testing.T) {
	info, ok := Info(engine.Plank)
	if !ok {
		t.Fatal("expected a plank entry")
	}
	if info.Name != "Plank" {
		t.Errorf("Name = %q, want Plank", info.Name)
	}

	if _, ok := Info(engine.Exercise(99)); ok {
		t.Error("expected no entry for an unknown exercise")
	}
}

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/formcoach/internal/app"
	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/pose"
	"github.com/ayusman/formcoach/internal/server"
	"github.com/ayusman/formcoach/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	extractor := pose.NewMockExtractor()
	coaching := app.New(app.Config{
		Store:        s,
		MotionThresh: 0.05,
	})
	coaching.SetExtractor(extractor)

	srv := server.New(server.Config{Store: s, Extractor: extractor, Coach: coaching})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	var sessionID string
	t.Run("CreateSession", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/sessions",
			"application/json",
			strings.NewReader(`{"exercise": "squat"}`),
		)
		if err != nil {
			t.Fatalf("create session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID string `json:"id"`
		}
		json.NewDecoder(resp.Body).Decode(&created)
		sessionID = created.ID
		if sessionID == "" {
			t.Fatal("session ID missing from response")
		}
	})

	var results []engine.Result
	coaching.SetSink(func(result engine.Result, phase engine.Phase) {
		results = append(results, result)
	})

	t.Run("SelectExerciseViaAPI", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/live/exercise",
			"application/json",
			strings.NewReader(`{"exercise": "squat"}`),
		)
		if err != nil {
			t.Fatalf("select exercise error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if !coaching.IsEnabled() {
			t.Fatal("pipeline should be armed after selecting an exercise over HTTP")
		}
	})

	t.Run("AnalyzeSquatFrames", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			coaching.AnalyzeFrame(pose.DeepSquatFrame())
		}

		if len(results) != 5 {
			t.Fatalf("sink received %d results, want 5", len(results))
		}
		last := results[len(results)-1]
		if last.Confidence != engine.ConfidenceFull {
			t.Errorf("Confidence = %f, want %f", last.Confidence, engine.ConfidenceFull)
		}
		if !last.IsCorrectForm {
			t.Errorf("expected a correct-form verdict, score %f, corrections %v",
				last.FormScore, last.Corrections)
		}
	})

	t.Run("SessionStatsViaAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions/" + coaching.SessionID())
		if err != nil {
			t.Fatalf("get session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var detail struct {
			Frames         int     `json:"frames"`
			AvgFormScore   float64 `json:"avg_form_score"`
			CorrectPercent float64 `json:"correct_form_percent"`
		}
		json.NewDecoder(resp.Body).Decode(&detail)

		if detail.Frames != 5 {
			t.Errorf("Frames = %d, want 5", detail.Frames)
		}
		if detail.AvgFormScore <= 0.7 {
			t.Errorf("AvgFormScore = %f, want > 0.7 for deep squats", detail.AvgFormScore)
		}
	})

	t.Run("AnalysesViaAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions/" + coaching.SessionID() + "/analyses")
		if err != nil {
			t.Fatalf("list analyses error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Analyses []struct {
				FrameIndex int     `json:"frame_index"`
				FormScore  float64 `json:"form_score"`
			} `json:"analyses"`
		}
		json.NewDecoder(resp.Body).Decode(&list)

		if len(list.Analyses) != 5 {
			t.Fatalf("got %d analyses, want 5", len(list.Analyses))
		}
		for i, a := range list.Analyses {
			if a.FrameIndex != i {
				t.Errorf("analysis %d has frame index %d", i, a.FrameIndex)
			}
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_PartialVisibilityGuidance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	coaching := app.New(app.Config{Store: s, MotionThresh: 0.05})
	coaching.SetExtractor(pose.NewMockExtractor())

	var results []engine.Result
	coaching.SetSink(func(result engine.Result, phase engine.Phase) {
		results = append(results, result)
	})

	if err := coaching.SetExercise(engine.Pushup); err != nil {
		t.Fatalf("SetExercise() error = %v", err)
	}

	// A cropped subject, then no subject at all
	coaching.AnalyzeFrame(pose.CroppedLowerBodyFrame())
	coaching.AnalyzeFrame(nil)

	if len(results) != 2 {
		t.Fatalf("sink received %d results, want 2", len(results))
	}

	if results[0].Confidence != engine.ConfidencePartial {
		t.Errorf("cropped frame confidence = %f, want %f",
			results[0].Confidence, engine.ConfidencePartial)
	}
	if results[1].Confidence != engine.ConfidenceNone {
		t.Errorf("missing pose confidence = %f, want %f",
			results[1].Confidence, engine.ConfidenceNone)
	}

	// Both outcomes persisted with guidance attached
	analyses, err := s.Analyses().ListBySession(coaching.SessionID())
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("persisted %d analyses, want 2", len(analyses))
	}
	for i, a := range analyses {
		if len(a.Corrections) == 0 {
			t.Errorf("analysis %d persisted without guidance", i)
		}
		if a.IsCorrectForm {
			t.Errorf("analysis %d should not carry a correct verdict", i)
		}
	}
}

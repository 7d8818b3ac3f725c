package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/formcoach/internal/store"
)

func testHandler(t *testing.T) (*SessionsHandler, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewSessionsHandler(s), s
}

func createSession(t *testing.T, h *SessionsHandler, exercise string) sessionResponse {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"exercise": exercise})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestSessionsHandler_Create(t *testing.T) {
	h, _ := testHandler(t)

	resp := createSession(t, h, "squat")

	if resp.ID == "" {
		t.Error("response should carry a generated ID")
	}
	if resp.Exercise != "squat" {
		t.Errorf("Exercise = %q, want squat", resp.Exercise)
	}
	if resp.Source != store.SourceLive {
		t.Errorf("Source = %q, want live", resp.Source)
	}
}

func TestSessionsHandler_Create_InvalidExercise(t *testing.T) {
	h, _ := testHandler(t)

	body, _ := json.Marshal(map[string]string{"exercise": "handstand"})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSessionsHandler_Create_InvalidJSON(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSessionsHandler_List(t *testing.T) {
	h, _ := testHandler(t)

	createSession(t, h, "squat")
	createSession(t, h, "plank")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp listSessionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sessions) != 2 {
		t.Errorf("got %d sessions, want 2", len(resp.Sessions))
	}
}

func TestSessionsHandler_Get_WithStats(t *testing.T) {
	h, s := testHandler(t)

	created := createSession(t, h, "pushup")

	for i, score := range []float64{0.9, 0.5} {
		err := s.Analyses().Create(&store.Analysis{
			SessionID:     created.ID,
			FrameIndex:    i,
			FormScore:     score,
			Confidence:    0.85,
			IsCorrectForm: score > 0.7,
		})
		if err != nil {
			t.Fatalf("failed to seed analysis: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp sessionDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Frames != 2 {
		t.Errorf("Frames = %d, want 2", resp.Frames)
	}
	if resp.AvgFormScore < 0.699 || resp.AvgFormScore > 0.701 {
		t.Errorf("AvgFormScore = %f, want 0.7", resp.AvgFormScore)
	}
	if resp.CorrectPercent != 50.0 {
		t.Errorf("CorrectPercent = %f, want 50", resp.CorrectPercent)
	}
}

func TestSessionsHandler_Get_NotFound(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-id", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionsHandler_ListAnalyses(t *testing.T) {
	h, s := testHandler(t)

	created := createSession(t, h, "deadlift")
	err := s.Analyses().Create(&store.Analysis{
		SessionID:   created.ID,
		FormScore:   0.6,
		Confidence:  0.85,
		Corrections: []string{"Hinge at hips, not waist"},
	})
	if err != nil {
		t.Fatalf("failed to seed analysis: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.ID+"/analyses", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp listAnalysesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionID != created.ID {
		t.Errorf("SessionID = %q, want %q", resp.SessionID, created.ID)
	}
	if len(resp.Analyses) != 1 {
		t.Fatalf("got %d analyses, want 1", len(resp.Analyses))
	}
	if len(resp.Analyses[0].Corrections) != 1 {
		t.Errorf("corrections did not round-trip: %v", resp.Analyses[0].Corrections)
	}
}

func TestSessionsHandler_ListAnalyses_NotFound(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/no-such-id/analyses", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionsHandler_Delete(t *testing.T) {
	h, _ := testHandler(t)

	created := createSession(t, h, "lunge")

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+created.ID, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.ID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionsHandler_MethodNotAllowed(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

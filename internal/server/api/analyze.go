package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/formcoach/internal/advisor"
	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/pose"
	"github.com/ayusman/formcoach/internal/store"
	"github.com/ayusman/formcoach/internal/video"
)

// Upload limits.
const (
	maxImageUpload = 16 << 20  // 16 MiB
	maxVideoUpload = 256 << 20 // 256 MiB
)

// defaultFrameInterval is the video sampling stride when the client does
// not specify one.
const defaultFrameInterval = 5

// AnalyzeHandler scores uploaded images and videos.
type AnalyzeHandler struct {
	extractor     pose.Extractor
	store         *store.Store
	frameInterval int
}

// NewAnalyzeHandler creates an AnalyzeHandler. The store may be nil, in
// which case video sessions are not persisted. frameInterval is the video
// sampling stride used when the client does not send one; values below 1
// fall back to the built-in default.
func NewAnalyzeHandler(extractor pose.Extractor, s *store.Store, frameInterval int) *AnalyzeHandler {
	if frameInterval < 1 {
		frameInterval = defaultFrameInterval
	}
	return &AnalyzeHandler{extractor: extractor, store: s, frameInterval: frameInterval}
}

// ServeHTTP routes between single-image and video analysis.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch r.URL.Path {
	case "/api/analyze":
		h.analyzeImage(w, r)
	case "/api/analyze/video":
		h.analyzeVideo(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

type analyzeResponse struct {
	engine.Result
	Feedback         string  `json:"feedback"`
	Phase            string  `json:"movement_phase"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// analyzeImage handles POST /api/analyze: a multipart image plus an
// exercise_type field, scored as a single frame.
func (h *AnalyzeHandler) analyzeImage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	exercise, err := engine.ParseExercise(r.FormValue("exercise_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid exercise type. Must be one of: %v", engine.Exercises()))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image")
		return
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		writeError(w, http.StatusBadRequest, "Could not decode image")
		return
	}
	defer mat.Close()

	frame, err := h.extractor.Extract(&mat)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Pose extraction failed")
		return
	}

	analyzer := engine.NewAnalyzer(exercise)
	result := analyzer.Analyze(frame, 0)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:           result,
		Feedback:         advisor.FormFeedback(exercise, result.FormScore, result.Corrections),
		Phase:            string(analyzer.Phase()),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
	})
}

type videoFrameResult struct {
	FrameIndex int     `json:"frame_index"`
	Timestamp  float64 `json:"timestamp"`
	engine.Result
}

type analyzeVideoResponse struct {
	ExerciseType    string             `json:"exercise_type"`
	SessionID       string             `json:"session_id,omitempty"`
	FramesAnalyzed  int                `json:"frames_analyzed"`
	AvgFormScore    float64            `json:"avg_form_score"`
	AvgConfidence   float64            `json:"avg_confidence"`
	CorrectPercent  float64            `json:"correct_form_percent"`
	OverallFeedback string             `json:"overall_feedback"`
	Frames          []videoFrameResult `json:"frames"`
}

// analyzeVideo handles POST /api/analyze/video: a multipart video scored
// frame by frame with one analyzer carrying temporal state across the
// whole clip.
func (h *AnalyzeHandler) analyzeVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxVideoUpload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	exercise, err := engine.ParseExercise(r.FormValue("exercise_type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid exercise type. Must be one of: %v", engine.Exercises()))
		return
	}

	interval := h.frameInterval
	if v := r.FormValue("frame_interval"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "frame_interval must be a positive integer")
			return
		}
		interval = parsed
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Video file is required")
		return
	}
	defer file.Close()

	// gocv decodes from a path, so spool the upload to a temp file
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("formcoach-upload-%d%s",
		time.Now().UnixNano(), filepath.Ext(header.Filename)))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to buffer upload")
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "Failed to buffer upload")
		return
	}
	tmp.Close()

	source := video.NewFileSource(tmpPath, interval)
	if err := source.Open(); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode video")
		return
	}
	defer source.Close()

	var sessionID string
	if h.store != nil {
		session := &store.Session{Exercise: exercise.String(), Source: store.SourceUpload}
		if err := h.store.Sessions().Create(session); err == nil {
			sessionID = session.ID
		}
	}

	analyzer := engine.NewAnalyzer(exercise)
	response := analyzeVideoResponse{
		ExerciseType: exercise.String(),
		SessionID:    sessionID,
	}

	var scoreSum, confidenceSum float64
	var correctFrames int

	for frameIdx := 0; ; frameIdx++ {
		mat, timestamp, err := source.Next()
		if err != nil {
			break
		}

		frame, err := h.extractor.Extract(mat)
		mat.Close()
		if err != nil {
			continue
		}

		result := analyzer.Analyze(frame, timestamp)

		response.Frames = append(response.Frames, videoFrameResult{
			FrameIndex: frameIdx,
			Timestamp:  timestamp,
			Result:     result,
		})

		scoreSum += result.FormScore
		confidenceSum += result.Confidence
		if result.IsCorrectForm {
			correctFrames++
		}

		if sessionID != "" {
			analysis := &store.Analysis{
				SessionID:     sessionID,
				FrameIndex:    frameIdx,
				Timestamp:     timestamp,
				FormScore:     result.FormScore,
				Confidence:    result.Confidence,
				IsCorrectForm: result.IsCorrectForm,
				Corrections:   result.Corrections,
			}
			h.store.Analyses().Create(analysis)
		}
	}

	response.FramesAnalyzed = len(response.Frames)
	if response.FramesAnalyzed > 0 {
		n := float64(response.FramesAnalyzed)
		response.AvgFormScore = scoreSum / n
		response.AvgConfidence = confidenceSum / n
		response.CorrectPercent = float64(correctFrames) / n * 100
		response.OverallFeedback = advisor.FormFeedback(exercise, response.AvgFormScore, nil)
	} else {
		response.OverallFeedback = "No frames could be analyzed from the video."
	}

	writeJSON(w, http.StatusOK, response)
}

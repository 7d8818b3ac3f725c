// Package app wires the live coaching pipeline: camera frames flow through
// motion gating and pose extraction into the form analyzer, and results are
// delivered to a sink callback.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/pose"
	"github.com/ayusman/formcoach/internal/store"
	"github.com/ayusman/formcoach/internal/video"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active analysis.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// ResultSink receives each analyzed frame's result together with the
// analyzer's current movement phase. It is called from the pipeline
// goroutine.
type ResultSink func(result engine.Result, phase engine.Phase)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	WindowSize   int
}

// App orchestrates live form analysis from the camera.
type App struct {
	config    Config
	source    video.Source
	motion    *video.MotionDetector
	extractor pose.Extractor

	mu        sync.RWMutex
	analyzer  *engine.Analyzer
	sink      ResultSink
	sessionID string
	frameIdx  int
	enabled   bool
	stopCh    chan struct{}
	startTime time.Time
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config: config,
		source: video.NewCamera(config.CameraID),
		motion: video.NewMotionDetector(motionThreshold),
	}

	// Try MediaPipe first, fall back to the mock extractor
	if mp, err := pose.NewMediaPipeExtractor(pose.DefaultConfig()); err == nil {
		a.extractor = mp
		log.Println("Using MediaPipe pose extraction")
	} else {
		log.Printf("MediaPipe not available (%v), using mock extractor", err)
		a.extractor = pose.NewMockExtractor()
	}

	return a
}

// SetExercise resets the analyzer for a new exercise and opens a fresh
// session. Analysis is enabled as a side effect.
func (a *App) SetExercise(exercise engine.Exercise) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.analyzer = engine.NewAnalyzerWindow(exercise, a.config.WindowSize)
	a.frameIdx = 0
	a.startTime = time.Now()
	a.enabled = true

	if a.config.Store != nil {
		session := &store.Session{Exercise: exercise.String(), Source: store.SourceLive}
		if err := a.config.Store.Sessions().Create(session); err != nil {
			return err
		}
		a.sessionID = session.ID
	}

	return nil
}

// SessionID returns the current session's ID, or empty when no session is
// active.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// SetEnabled enables or disables form analysis without tearing down the
// pipeline.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether form analysis is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled && a.analyzer != nil
}

// SetExtractor sets the pose extractor implementation to use.
func (a *App) SetExtractor(e pose.Extractor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.extractor = e
}

// SetSource sets the frame source, replacing the default camera.
func (a *App) SetSource(s video.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.source = s
}

// SetSink registers the callback that receives analysis results.
func (a *App) SetSink(sink ResultSink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sink = sink
}

// Start begins the analysis pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.source.Open(); err != nil {
		return err
	}

	a.source.SetFPS(IdleFPS)
	a.startTime = time.Now()

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Analysis pipeline started")
	return nil
}

// Stop halts the analysis pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.source.Close(); err != nil {
		log.Printf("Error closing video source: %v", err)
	}

	a.motion.Close()

	if a.extractor != nil {
		if err := a.extractor.Close(); err != nil {
			log.Printf("Error closing pose extractor: %v", err)
		}
	}

	log.Println("Analysis pipeline stopped")
}

// Source returns the frame source.
func (a *App) Source() video.Source {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.source
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *video.MotionDetector {
	return a.motion
}

// Extractor returns the pose extractor.
func (a *App) Extractor() pose.Extractor {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.extractor
}

// Analyzer returns the current analyzer, or nil before the first
// SetExercise call.
func (a *App) Analyzer() *engine.Analyzer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.analyzer
}

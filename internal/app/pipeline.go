package app

import (
	"log"
	"time"

	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/pose"
	"github.com/ayusman/formcoach/internal/store"
)

// runPipeline is the main analysis loop that processes frames from the
// video source. It manages the transition between idle and active modes
// based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Extract the pose and analyze form for the selected exercise
// 4. Deliver each result to the sink and persist it to the session
// 5. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Source().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Source().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Source().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			poseFrame, err := a.Extractor().Extract(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error extracting pose: %v", err)
				continue
			}

			a.AnalyzeFrame(poseFrame)
		}
	}
}

// AnalyzeFrame runs one extracted frame through the analyzer, persists the
// result, and delivers it to the sink. The live pipeline calls it per tick;
// it can also be fed directly.
func (a *App) AnalyzeFrame(frame *pose.Frame) {
	a.mu.Lock()
	analyzer := a.analyzer
	sink := a.sink
	sessionID := a.sessionID
	frameIdx := a.frameIdx
	a.frameIdx++
	timestamp := time.Since(a.startTime).Seconds()
	a.mu.Unlock()

	if analyzer == nil {
		return
	}

	result := analyzer.Analyze(frame, timestamp)
	phase := analyzer.Phase()

	if a.config.Store != nil && sessionID != "" {
		analysis := &store.Analysis{
			SessionID:     sessionID,
			FrameIndex:    frameIdx,
			Timestamp:     timestamp,
			FormScore:     result.FormScore,
			Confidence:    result.Confidence,
			IsCorrectForm: result.IsCorrectForm,
			Corrections:   result.Corrections,
		}
		if err := a.config.Store.Analyses().Create(analysis); err != nil {
			log.Printf("Error persisting analysis: %v", err)
		}
	}

	if sink != nil {
		sink(result, phase)
	}
}

// Phase reports the analyzer's current movement phase, or unknown before
// an exercise is selected.
func (a *App) Phase() engine.Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.analyzer == nil {
		return engine.PhaseUnknown
	}
	return a.analyzer.Phase()
}

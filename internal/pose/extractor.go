package pose

import "gocv.io/x/gocv"

// Extractor defines the interface for pose estimation implementations.
type Extractor interface {
	// Extract analyzes an image and returns the detected body landmarks.
	// Returns (nil, nil) when no pose is detected in the image.
	Extract(frame *gocv.Mat) (*Frame, error)

	// Close releases any resources held by the extractor.
	Close() error
}

// Config holds configuration options for pose extraction.
type Config struct {
	// MinDetectionConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConfidence float64

	// ModelComplexity selects the pose model variant (0 fastest, 2 most accurate).
	ModelComplexity int
}

// DefaultConfig returns a Config with sensible default values.
// The low confidence thresholds favor detection over precision, matching
// single-image analysis where tracking context is unavailable.
func DefaultConfig() Config {
	return Config{
		MinDetectionConfidence: 0.3,
		MinTrackingConfidence:  0.3,
		ModelComplexity:        0,
	}
}

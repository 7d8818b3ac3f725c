package pose

import (
	"gocv.io/x/gocv"
)

// MockExtractor is a test implementation of the Extractor interface.
// It allows tests to control the extraction results.
type MockExtractor struct {
	frame *Frame
	err   error
}

// NewMockExtractor creates a new MockExtractor instance.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// SetFrame sets the frame that will be returned by Extract.
// A nil frame simulates "no pose detected".
func (m *MockExtractor) SetFrame(frame *Frame) {
	m.frame = frame
}

// SetError sets the error that will be returned by Extract.
func (m *MockExtractor) SetError(err error) {
	m.err = err
}

// Extract returns the pre-configured frame or error.
func (m *MockExtractor) Extract(image *gocv.Mat) (*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.frame, nil
}

// Close is a no-op for the mock extractor.
func (m *MockExtractor) Close() error {
	return nil
}

// set assigns a fully visible landmark at the given index.
func set(f *Frame, idx int, x, y, z float64) {
	f.Points[idx] = Landmark{X: x, Y: y, Z: z, Visibility: 1.0}
}

// StandingFrame returns a preset Frame of a subject standing upright,
// facing the camera, with the whole body in frame. Legs are fully
// extended (knee angles near 180 degrees).
func StandingFrame() *Frame {
	f := &Frame{}

	// Head
	set(f, Nose, 0.50, 0.15, 0.0)
	set(f, LeftEyeInner, 0.48, 0.13, 0.0)
	set(f, LeftEye, 0.47, 0.13, 0.0)
	set(f, LeftEyeOuter, 0.46, 0.13, 0.0)
	set(f, RightEyeInner, 0.52, 0.13, 0.0)
	set(f, RightEye, 0.53, 0.13, 0.0)
	set(f, RightEyeOuter, 0.54, 0.13, 0.0)
	set(f, LeftEar, 0.45, 0.14, 0.0)
	set(f, RightEar, 0.55, 0.14, 0.0)
	set(f, MouthLeft, 0.48, 0.17, 0.0)
	set(f, MouthRight, 0.52, 0.17, 0.0)

	// Torso
	set(f, LeftShoulder, 0.42, 0.28, 0.0)
	set(f, RightShoulder, 0.58, 0.28, 0.0)
	set(f, LeftHip, 0.45, 0.52, 0.0)
	set(f, RightHip, 0.55, 0.52, 0.0)

	// Arms hanging at the sides
	set(f, LeftElbow, 0.38, 0.40, 0.0)
	set(f, RightElbow, 0.62, 0.40, 0.0)
	set(f, LeftWrist, 0.36, 0.50, 0.0)
	set(f, RightWrist, 0.64, 0.50, 0.0)
	set(f, LeftPinky, 0.35, 0.53, 0.0)
	set(f, RightPinky, 0.65, 0.53, 0.0)
	set(f, LeftIndex, 0.36, 0.54, 0.0)
	set(f, RightIndex, 0.64, 0.54, 0.0)
	set(f, LeftThumb, 0.37, 0.52, 0.0)
	set(f, RightThumb, 0.63, 0.52, 0.0)

	// Legs fully extended: hip, knee and ankle are vertically aligned
	set(f, LeftKnee, 0.45, 0.66, 0.0)
	set(f, RightKnee, 0.55, 0.66, 0.0)
	set(f, LeftAnkle, 0.45, 0.80, 0.0)
	set(f, RightAnkle, 0.55, 0.80, 0.0)
	set(f, LeftHeel, 0.44, 0.84, 0.0)
	set(f, RightHeel, 0.56, 0.84, 0.0)
	set(f, LeftFootIndex, 0.47, 0.84, 0.0)
	set(f, RightFootIndex, 0.53, 0.84, 0.0)

	return f
}

// DeepSquatFrame returns a preset Frame of a subject at the bottom of a
// squat, seen from the side. The knee angles are exactly 90 degrees: the
// hip-to-knee and ankle-to-knee vectors are perpendicular by construction.
func DeepSquatFrame() *Frame {
	f := &Frame{}

	// Head, leaning slightly forward
	set(f, Nose, 0.58, 0.30, 0.0)
	set(f, LeftEyeInner, 0.58, 0.28, 0.0)
	set(f, LeftEye, 0.59, 0.28, 0.0)
	set(f, LeftEyeOuter, 0.60, 0.28, 0.0)
	set(f, RightEyeInner, 0.57, 0.28, 0.0)
	set(f, RightEye, 0.57, 0.285, 0.0)
	set(f, RightEyeOuter, 0.56, 0.285, 0.0)
	set(f, LeftEar, 0.55, 0.29, 0.0)
	set(f, RightEar, 0.55, 0.295, 0.0)
	set(f, MouthLeft, 0.58, 0.32, 0.0)
	set(f, MouthRight, 0.57, 0.32, 0.0)

	// Torso, hips dropped below the shoulders
	set(f, LeftShoulder, 0.52, 0.38, 0.0)
	set(f, RightShoulder, 0.53, 0.385, 0.0)
	set(f, LeftHip, 0.50, 0.55, 0.0)
	set(f, RightHip, 0.51, 0.555, 0.0)

	// Arms extended forward for balance
	set(f, LeftElbow, 0.58, 0.46, 0.0)
	set(f, RightElbow, 0.59, 0.465, 0.0)
	set(f, LeftWrist, 0.62, 0.52, 0.0)
	set(f, RightWrist, 0.63, 0.525, 0.0)
	set(f, LeftPinky, 0.64, 0.53, 0.0)
	set(f, RightPinky, 0.65, 0.535, 0.0)
	set(f, LeftIndex, 0.64, 0.54, 0.0)
	set(f, RightIndex, 0.65, 0.545, 0.0)
	set(f, LeftThumb, 0.63, 0.53, 0.0)
	set(f, RightThumb, 0.64, 0.535, 0.0)

	// Legs: thigh (hip-knee) and shin (ankle-knee) vectors are exact
	// 90-degree rotations of each other
	set(f, LeftKnee, 0.62, 0.62, 0.0)
	set(f, RightKnee, 0.63, 0.625, 0.0)
	set(f, LeftAnkle, 0.55, 0.74, 0.0)
	set(f, RightAnkle, 0.56, 0.745, 0.0)

	// Heels level with the forefeet (heels planted)
	set(f, LeftHeel, 0.53, 0.78, 0.0)
	set(f, RightHeel, 0.54, 0.785, 0.0)
	set(f, LeftFootIndex, 0.65, 0.78, 0.0)
	set(f, RightFootIndex, 0.66, 0.785, 0.0)

	return f
}

// CroppedLowerBodyFrame returns a preset Frame where the legs and feet are
// outside the image, as when the camera is framed too tightly. The upper
// body remains fully visible.
func CroppedLowerBodyFrame() *Frame {
	f := StandingFrame()

	// Lower body landmarks fall below the image with negligible confidence
	for _, idx := range []int{LeftKnee, RightKnee, LeftAnkle, RightAnkle, LeftHeel, RightHeel, LeftFootIndex, RightFootIndex} {
		f.Points[idx] = Landmark{X: f.Points[idx].X, Y: 1.05, Z: 0.0, Visibility: 0.1}
	}

	return f
}

// Package pose provides body-landmark types and pose extraction interfaces for exercise form analysis.
package pose

// Body landmark indices following MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark represents a single tracked body joint. X and Y are normalized
// image coordinates in [0,1], Z is a depth proxy relative to the hips, and
// Visibility is the extractor's detection confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame represents the 33 body landmarks extracted from a single image.
// A Frame is immutable after creation.
type Frame struct {
	Points [NumLandmarks]Landmark `json:"points"`
}

// keyPointNames maps landmark indices to the joint names used in analysis
// results. The list covers the first 32 landmarks.
var keyPointNames = []string{
	"nose", "left_eye_inner", "left_eye", "left_eye_outer",
	"right_eye_inner", "right_eye", "right_eye_outer",
	"left_ear", "right_ear", "mouth_left", "mouth_right",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_wrist", "right_wrist", "left_pinky", "right_pinky",
	"left_index", "right_index", "left_thumb", "right_thumb",
	"left_hip", "right_hip", "left_knee", "right_knee",
	"left_ankle", "right_ankle", "left_heel", "right_heel",
	"left_foot_index",
}

// KeyPoints returns the named 2D projections of the frame's landmarks,
// suitable for client-side skeleton rendering.
func (f *Frame) KeyPoints() map[string][2]float64 {
	if f == nil {
		return map[string][2]float64{}
	}

	keyPoints := make(map[string][2]float64, len(keyPointNames))
	for i, name := range keyPointNames {
		if i >= NumLandmarks {
			break
		}
		keyPoints[name] = [2]float64{f.Points[i].X, f.Points[i].Y}
	}
	return keyPoints
}

package engine

import "github.com/ayusman/formcoach/internal/pose"

// AngleSet maps named joint-angle keys to degree values in [0,180].
type AngleSet map[string]float64

// Angle keys produced by ExtractAngles.
const (
	LeftKneeAngle   = "left_knee_angle"
	RightKneeAngle  = "right_knee_angle"
	LeftElbowAngle  = "left_elbow_angle"
	RightElbowAngle = "right_elbow_angle"
)

// angleDef names a joint angle and the landmark triple that defines it:
// the angle is measured at the vertex between rays toward a and c.
type angleDef struct {
	key     string
	a, b, c int
}

var angleDefs = []angleDef{
	{LeftKneeAngle, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
	{RightKneeAngle, pose.RightHip, pose.RightKnee, pose.RightAnkle},
	{LeftElbowAngle, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
	{RightElbowAngle, pose.RightShoulder, pose.RightElbow, pose.RightWrist},
}

// ExtractAngles computes the named joint angles from a landmark frame.
// Angles whose landmarks are missing are omitted from the result.
func ExtractAngles(f *pose.Frame) AngleSet {
	angles := make(AngleSet, len(angleDefs))
	if f == nil {
		return angles
	}

	for _, def := range angleDefs {
		if !has(f, def.a) || !has(f, def.b) || !has(f, def.c) {
			continue
		}
		angles[def.key] = JointAngle(f.Points[def.a], f.Points[def.b], f.Points[def.c])
	}
	return angles
}

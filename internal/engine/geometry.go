package engine

import (
	"math"

	"github.com/ayusman/formcoach/internal/pose"
)

// The geometry kernel: stateless functions over a landmark frame. Every
// score returned here lies in [0,1], and every degenerate input (missing
// landmarks, zero-length vectors) resolves to a documented default rather
// than an error.

// neutralAngle is returned by JointAngle when a ray has no defined
// direction. A fully extended joint reads 180 degrees.
const neutralAngle = 180.0

// JointAngle returns the angle in degrees at vertex b between the rays
// b->a and b->c. Returns 180 when either ray has near-zero length.
func JointAngle(a, b, c pose.Landmark) float64 {
	v1x, v1y, v1z := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	v2x, v2y, v2z := c.X-b.X, c.Y-b.Y, c.Z-b.Z

	n1 := math.Sqrt(v1x*v1x + v1y*v1y + v1z*v1z)
	n2 := math.Sqrt(v2x*v2x + v2y*v2y + v2z*v2z)
	if n1 < 1e-10 || n2 < 1e-10 {
		return neutralAngle
	}

	cos := (v1x*v2x + v1y*v2y + v1z*v2z) / (n1 * n2)
	cos = clamp(cos, -1.0, 1.0)
	return math.Acos(cos) * 180.0 / math.Pi
}

// SpineReport describes the curvature of the spine landmarks.
type SpineReport struct {
	// Curvature is |180 - average segment angle| / 180, in [0,1].
	Curvature float64
	// IsStraight is true when the average segment angle exceeds 170 degrees.
	IsStraight bool
	// AvgAngle is the average angle between consecutive spine segments.
	AvgAngle float64
	// Defined is false when fewer than three usable spine points were
	// available; Curvature and IsStraight then hold optimistic defaults
	// that callers must not read as evidence of good form.
	Defined bool
}

// spineIndices are the landmarks approximating the spine line: head,
// both shoulders, both hips.
var spineIndices = [5]int{pose.Nose, pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip}

// SpineCurvature estimates spine curvature from the head, shoulder and hip
// landmarks projected onto the sagittal plane (the y/z axes). The angle at
// each interior point between its neighboring segments is averaged; a
// straight spine averages 180 degrees.
func SpineCurvature(f *pose.Frame) SpineReport {
	optimistic := SpineReport{Curvature: 0, IsStraight: true, AvgAngle: neutralAngle, Defined: false}
	if f == nil {
		return optimistic
	}

	var points []pose.Landmark
	for _, idx := range spineIndices {
		if has(f, idx) {
			points = append(points, f.Points[idx])
		}
	}
	if len(points) < 3 {
		return optimistic
	}

	var sum float64
	var count int
	for i := 1; i < len(points)-1; i++ {
		a, b, c := points[i-1], points[i], points[i+1]

		// Project onto the y/z plane
		v1y, v1z := a.Y-b.Y, a.Z-b.Z
		v2y, v2z := c.Y-b.Y, c.Z-b.Z

		n1 := math.Hypot(v1y, v1z)
		n2 := math.Hypot(v2y, v2z)
		if n1 < 1e-10 || n2 < 1e-10 {
			continue
		}

		cos := clamp((v1y*v2y+v1z*v2z)/(n1*n2), -1.0, 1.0)
		sum += math.Acos(cos) * 180.0 / math.Pi
		count++
	}

	if count == 0 {
		return optimistic
	}

	avg := sum / float64(count)
	return SpineReport{
		Curvature:  math.Abs(neutralAngle-avg) / neutralAngle,
		IsStraight: avg > 170,
		AvgAngle:   avg,
		Defined:    true,
	}
}

// TrackingReport describes how well the knees track over the feet.
type TrackingReport struct {
	Left    float64
	Right   float64
	Overall float64
}

// KneeTracking scores knee-over-foot tracking per side by comparing each
// knee's horizontal position against the midpoint of the ankle and
// forefoot. A side missing any of its hip, knee, ankle or forefoot
// landmarks scores 0.
func KneeTracking(f *pose.Frame) TrackingReport {
	left := kneeTrackingSide(f, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, pose.LeftFootIndex)
	right := kneeTrackingSide(f, pose.RightHip, pose.RightKnee, pose.RightAnkle, pose.RightFootIndex)
	return TrackingReport{
		Left:    left,
		Right:   right,
		Overall: (left + right) / 2.0,
	}
}

func kneeTrackingSide(f *pose.Frame, hip, knee, ankle, foot int) float64 {
	if f == nil || !has(f, hip) || !has(f, knee) || !has(f, ankle) || !has(f, foot) {
		return 0
	}

	centerX := (f.Points[foot].X + f.Points[ankle].X) / 2.0
	offset := math.Abs(f.Points[knee].X - centerX)
	return 1.0 / (1.0 + offset*20)
}

// AlignmentReport describes overall body alignment.
type AlignmentReport struct {
	// ShoulderHipParallel scores how parallel the shoulder line is to the
	// hip line: 1 - min(angle, 180-angle)/90.
	ShoulderHipParallel float64
	// VerticalAlignment scores the horizontal offset between shoulder and
	// hip: 1/(1 + 10*offset).
	VerticalAlignment float64
	// Overall is the mean of the two sub-scores.
	Overall float64
}

// BodyAlignment scores body alignment from the shoulder and hip lines.
// Missing landmarks leave the affected sub-score at the neutral 0.5.
func BodyAlignment(f *pose.Frame) AlignmentReport {
	parallel := 0.5
	vertical := 0.5

	if f != nil && has(f, pose.LeftShoulder) && has(f, pose.RightShoulder) && has(f, pose.LeftHip) && has(f, pose.RightHip) {
		sx := f.Points[pose.RightShoulder].X - f.Points[pose.LeftShoulder].X
		sy := f.Points[pose.RightShoulder].Y - f.Points[pose.LeftShoulder].Y
		hx := f.Points[pose.RightHip].X - f.Points[pose.LeftHip].X
		hy := f.Points[pose.RightHip].Y - f.Points[pose.LeftHip].Y

		ns := math.Hypot(sx, sy)
		nh := math.Hypot(hx, hy)
		if ns > 0 && nh > 0 {
			cos := clamp((sx*hx+sy*hy)/(ns*nh), -1.0, 1.0)
			angle := math.Acos(cos) * 180.0 / math.Pi
			parallel = math.Max(0, 1.0-math.Min(angle, 180-angle)/90.0)
		}
	}

	if f != nil && has(f, pose.LeftShoulder) && has(f, pose.LeftHip) {
		offset := math.Abs(f.Points[pose.LeftShoulder].X - f.Points[pose.LeftHip].X)
		vertical = 1.0 / (1.0 + offset*10)
	}

	return AlignmentReport{
		ShoulderHipParallel: parallel,
		VerticalAlignment:   vertical,
		Overall:             (parallel + vertical) / 2.0,
	}
}

// HipHinge returns the angle in degrees between the hip-to-knee and
// hip-to-shoulder vectors, projected onto the image plane. Returns 0 when
// any required landmark is missing or a vector degenerates.
func HipHinge(f *pose.Frame) float64 {
	if f == nil || !has(f, pose.LeftHip) || !has(f, pose.LeftKnee) || !has(f, pose.LeftShoulder) {
		return 0
	}

	hip := f.Points[pose.LeftHip]
	kx, ky := f.Points[pose.LeftKnee].X-hip.X, f.Points[pose.LeftKnee].Y-hip.Y
	sx, sy := f.Points[pose.LeftShoulder].X-hip.X, f.Points[pose.LeftShoulder].Y-hip.Y

	nk := math.Hypot(kx, ky)
	ns := math.Hypot(sx, sy)
	if nk < 1e-10 || ns < 1e-10 {
		return 0
	}

	cos := clamp((kx*sx+ky*sy)/(nk*ns), -1.0, 1.0)
	return math.Acos(cos) * 180.0 / math.Pi
}

// HeadCentering scores how centered the head is over the shoulder line:
// 1/(1 + 10*offset) where offset is the horizontal distance between the
// nose and the shoulder midpoint. Missing landmarks score the neutral 0.5.
func HeadCentering(f *pose.Frame) float64 {
	if f == nil || !has(f, pose.Nose) || !has(f, pose.LeftShoulder) || !has(f, pose.RightShoulder) {
		return 0.5
	}

	mid := (f.Points[pose.LeftShoulder].X + f.Points[pose.RightShoulder].X) / 2.0
	offset := math.Abs(f.Points[pose.Nose].X - mid)
	return 1.0 / (1.0 + offset*10)
}

// HeelContact scores whether the heels stay level with the forefeet. A
// heel raised above its forefoot is penalized as 1/(1 + 20*lift) per side;
// missing landmarks on a side score 0.
func HeelContact(f *pose.Frame) float64 {
	left := heelContactSide(f, pose.LeftHeel, pose.LeftFootIndex)
	right := heelContactSide(f, pose.RightHeel, pose.RightFootIndex)
	return (left + right) / 2.0
}

func heelContactSide(f *pose.Frame, heel, foot int) float64 {
	if f == nil || !has(f, heel) || !has(f, foot) {
		return 0
	}

	// y grows downward: a lifted heel sits above (smaller y than) the forefoot
	lift := math.Max(0, f.Points[foot].Y-f.Points[heel].Y)
	return 1.0 / (1.0 + lift*20)
}

// has reports whether the landmark at idx carries any information. The
// extractor writes zero values for indices it could not populate.
func has(f *pose.Frame, idx int) bool {
	if idx < 0 || idx >= pose.NumLandmarks {
		return false
	}
	lm := f.Points[idx]
	return lm.X != 0 || lm.Y != 0 || lm.Z != 0 || lm.Visibility != 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

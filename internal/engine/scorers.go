package engine

import (
	"math"

	"github.com/ayusman/formcoach/internal/pose"
)

// squatScorer grades squat depth, back posture, knee tracking and heel
// contact.
type squatScorer struct{}

func (squatScorer) score(f *pose.Frame, angles AngleSet) (float64, SubScores) {
	depth := kneeDepthTier(angleOr(angles, LeftKneeAngle, 180))
	back := backStraightness(SpineCurvature(f))
	tracking := KneeTracking(f).Overall
	heels := HeelContact(f)

	sub := SubScores{
		"depth":             depth,
		"back_straightness": back,
		"knee_tracking":     tracking,
		"heel_contact":      heels,
	}

	fused := depth*0.4 + back*0.3 + tracking*0.2 + heels*0.1
	return clamp01(fused), sub
}

// pushupScorer grades body line, elbow depth, head position and core
// engagement.
type pushupScorer struct{}

func (pushupScorer) score(f *pose.Frame, angles AngleSet) (float64, SubScores) {
	alignment := BodyAlignment(f)
	depth := elbowDepthTier(angleOr(angles, LeftElbowAngle, 180))
	head := HeadCentering(f)
	core := alignment.VerticalAlignment

	sub := SubScores{
		"body_alignment":  alignment.Overall,
		"depth":           depth,
		"head_position":   head,
		"core_engagement": core,
	}

	fused := alignment.Overall*0.4 + depth*0.3 + head*0.2 + core*0.1
	return clamp01(fused), sub
}

// plankScorer grades the straight body line, hip height and shoulder-hip
// parallelism of a plank hold.
type plankScorer struct{}

func (plankScorer) score(f *pose.Frame, angles AngleSet) (float64, SubScores) {
	alignment := BodyAlignment(f)
	hips := hipSymmetry(f)

	sub := SubScores{
		"body_straightness": alignment.VerticalAlignment,
		"hip_position":      hips,
		"shoulder_position": alignment.ShoulderHipParallel,
	}

	fused := alignment.VerticalAlignment*0.5 + hips*0.3 + alignment.ShoulderHipParallel*0.2
	return clamp01(fused), sub
}

// hipSymmetry compares the shoulder-to-hip and hip-to-ankle vertical drops.
// In a straight plank the two are roughly equal; sagging or piking hips
// break the symmetry. Missing landmarks score the neutral 0.5.
func hipSymmetry(f *pose.Frame) float64 {
	if f == nil || !has(f, pose.LeftShoulder) || !has(f, pose.LeftHip) || !has(f, pose.LeftAnkle) {
		return 0.5
	}

	shoulderHip := f.Points[pose.LeftHip].Y - f.Points[pose.LeftShoulder].Y
	hipAnkle := f.Points[pose.LeftAnkle].Y - f.Points[pose.LeftHip].Y
	return 1.0 / (1.0 + math.Abs(shoulderHip-hipAnkle)*5)
}

// lungeScorer grades the front knee angle, back knee bend and torso
// uprightness of a lunge.
type lungeScorer struct{}

func (lungeScorer) score(f *pose.Frame, angles AngleSet) (float64, SubScores) {
	// The more bent knee leads the lunge; the other is the back leg
	left := angleOr(angles, LeftKneeAngle, 180)
	right := angleOr(angles, RightKneeAngle, 180)
	front := math.Min(left, right)
	back := math.Max(left, right)

	frontScore := kneeDepthTier(front)
	backScore := kneeDepthTier(back)
	torso := backStraightness(SpineCurvature(f))

	sub := SubScores{
		"front_knee":      frontScore,
		"back_knee":       backScore,
		"torso_alignment": torso,
	}

	fused := frontScore*0.4 + backScore*0.3 + torso*0.3
	return clamp01(fused), sub
}

// deadliftScorer grades back straightness and hip hinge depth. The bar
// path cannot be observed without barbell tracking, so its component is a
// fixed neutral proxy.
type deadliftScorer struct{}

func (deadliftScorer) score(f *pose.Frame, angles AngleSet) (float64, SubScores) {
	back := backStraightness(SpineCurvature(f))
	hinge := hipHingeTier(HipHinge(f))
	const barPath = 0.5

	sub := SubScores{
		"back_straightness": back,
		"hip_hinge":         hinge,
		"bar_path":          barPath,
	}

	fused := back*0.5 + hinge*0.3 + barPath*0.2
	return clamp01(fused), sub
}

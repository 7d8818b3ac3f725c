// Package engine implements the posture analysis engine: geometric,
// temporal and biomechanical computations that turn body landmarks into
// exercise form scores and corrections.
package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownExercise is returned when an exercise name is not recognized.
var ErrUnknownExercise = errors.New("unknown exercise")

// Exercise identifies one of the supported exercise variants.
type Exercise int

const (
	// Squat is a bodyweight squat.
	Squat Exercise = iota
	// Pushup is a standard push-up.
	Pushup
	// Plank is an isometric plank hold.
	Plank
	// Lunge is a forward lunge.
	Lunge
	// Deadlift is a barbell or bodyweight deadlift.
	Deadlift
)

// Exercises returns all supported exercises in a fixed order.
func Exercises() []Exercise {
	return []Exercise{Squat, Pushup, Plank, Lunge, Deadlift}
}

// String returns the canonical lowercase name of the exercise.
func (e Exercise) String() string {
	switch e {
	case Squat:
		return "squat"
	case Pushup:
		return "pushup"
	case Plank:
		return "plank"
	case Lunge:
		return "lunge"
	case Deadlift:
		return "deadlift"
	default:
		return fmt.Sprintf("exercise(%d)", int(e))
	}
}

// ParseExercise converts an exercise name to an Exercise value.
func ParseExercise(name string) (Exercise, error) {
	switch name {
	case "squat":
		return Squat, nil
	case "pushup":
		return Pushup, nil
	case "plank":
		return Plank, nil
	case "lunge":
		return Lunge, nil
	case "deadlift":
		return Deadlift, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownExercise, name)
	}
}

// PrimaryAngle returns the angle key that best characterizes the
// exercise's range of motion, used for phase detection.
func (e Exercise) PrimaryAngle() string {
	switch e {
	case Pushup, Plank:
		return "left_elbow_angle"
	default:
		return "left_knee_angle"
	}
}

package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/formcoach/internal/pose"
)

// DefaultWindowSize is the default number of recent frames tracked.
const DefaultWindowSize = 10

// Phase classifies the direction of movement of an angle series.
type Phase string

const (
	// PhaseConcentric means the tracked angle is opening (coming up).
	PhaseConcentric Phase = "concentric"
	// PhaseEccentric means the tracked angle is closing (going down).
	PhaseEccentric Phase = "eccentric"
	// PhaseStatic means the tracked angle is holding steady.
	PhaseStatic Phase = "static"
	// PhaseUnknown means too few samples exist to classify.
	PhaseUnknown Phase = "unknown"
)

// phaseTrendThreshold is the angle change in degrees over the last three
// samples required to classify movement as concentric or eccentric.
const phaseTrendThreshold = 5.0

// Tracker maintains a bounded sliding window of recent frames, their
// derived angle sets and timestamps, and computes temporal statistics
// over it. The three queues always have equal length.
type Tracker struct {
	size       int
	frames     []*pose.Frame
	angles     []AngleSet
	timestamps []float64
}

// NewTracker creates a Tracker with the given window size.
// Sizes less than 1 fall back to DefaultWindowSize.
func NewTracker(size int) *Tracker {
	if size < 1 {
		size = DefaultWindowSize
	}
	return &Tracker{
		size:       size,
		frames:     make([]*pose.Frame, 0, size),
		angles:     make([]AngleSet, 0, size),
		timestamps: make([]float64, 0, size),
	}
}

// Len returns the number of frames currently in the window.
func (t *Tracker) Len() int {
	return len(t.frames)
}

// AddFrame appends a frame, its angle set and its timestamp (in seconds)
// to the window, evicting the oldest entry when the window is full.
func (t *Tracker) AddFrame(frame *pose.Frame, angles AngleSet, timestamp float64) {
	if len(t.frames) >= t.size {
		copy(t.frames, t.frames[1:])
		t.frames = t.frames[:t.size-1]
		copy(t.angles, t.angles[1:])
		t.angles = t.angles[:t.size-1]
		copy(t.timestamps, t.timestamps[1:])
		t.timestamps = t.timestamps[:t.size-1]
	}

	t.frames = append(t.frames, frame)
	t.angles = append(t.angles, angles)
	t.timestamps = append(t.timestamps, timestamp)
}

// MovementVelocity computes the average 2D speed of the requested joints
// across the window: the sum of consecutive displacement magnitudes divided
// by the elapsed time span. Joints yield 0 when the window holds fewer than
// two samples or the time span is not positive.
func (t *Tracker) MovementVelocity(jointIndices []int) map[int]float64 {
	velocities := make(map[int]float64, len(jointIndices))
	if len(t.frames) < 2 {
		return velocities
	}

	span := t.timestamps[len(t.timestamps)-1] - t.timestamps[0]

	for _, joint := range jointIndices {
		if joint < 0 || joint >= pose.NumLandmarks {
			continue
		}

		var total float64
		for i := 1; i < len(t.frames); i++ {
			prev := t.frames[i-1].Points[joint]
			cur := t.frames[i].Points[joint]
			total += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		}

		if span > 0 {
			velocities[joint] = total / span
		} else {
			velocities[joint] = 0
		}
	}

	return velocities
}

// AngleSmoothness estimates how smoothly an angle changes across the
// window from the mean absolute discrete second derivative. The result is
// in (0,1], where 1 means low acceleration. With fewer than three samples
// the sentinel 1.0 is returned, meaning "insufficient data" rather than
// measured smoothness.
func (t *Tracker) AngleSmoothness(key string) float64 {
	series := t.angleSeries(key)
	if len(series) < 3 {
		return 1.0
	}

	var sum float64
	var count int
	for i := 1; i < len(series)-1; i++ {
		sum += math.Abs(series[i+1] - 2*series[i] + series[i-1])
		count++
	}

	avgAccel := sum / float64(count)
	return math.Min(1.0, 1.0/(1.0+avgAccel/10.0))
}

// MovementPhase classifies the trend of the last three samples of an angle
// series. Rising angles beyond the threshold are concentric, falling ones
// eccentric, anything else static. Returns PhaseUnknown below 3 samples.
func (t *Tracker) MovementPhase(key string) Phase {
	series := t.angleSeries(key)
	if len(series) < 3 {
		return PhaseUnknown
	}

	change := series[len(series)-1] - series[len(series)-3]
	switch {
	case change > phaseTrendThreshold:
		return PhaseConcentric
	case change < -phaseTrendThreshold:
		return PhaseEccentric
	default:
		return PhaseStatic
	}
}

// ConsistencyScore measures how steady the form is across the window. For
// every angle key seen, the population variance of its series is normalized
// against the 180-degree reference range and converted to a per-key value
// 1/(1+10*normalizedVariance); the result is the mean across keys. Returns
// the neutral prior 0.5 with fewer than three samples.
func (t *Tracker) ConsistencyScore() float64 {
	if len(t.angles) < 3 {
		return 0.5
	}

	keys := make(map[string]struct{})
	for _, angles := range t.angles {
		for key := range angles {
			keys[key] = struct{}{}
		}
	}

	var scores []float64
	for key := range keys {
		series := t.angleSeries(key)
		if len(series) < 2 {
			continue
		}

		variance := stat.PopVariance(series, nil)
		normalized := variance / (180.0 * 180.0)
		scores = append(scores, 1.0/(1.0+normalized*10))
	}

	if len(scores) == 0 {
		return 0.5
	}
	return stat.Mean(scores, nil)
}

// angleSeries collects the value of one angle key across the window.
// Frames missing the key contribute 0, preserving sample alignment.
func (t *Tracker) angleSeries(key string) []float64 {
	series := make([]float64, len(t.angles))
	for i, angles := range t.angles {
		series[i] = angles[key]
	}
	return series
}

package engine

// Kalman filter defaults tuned for pose-estimation jitter: the process is
// assumed nearly static between frames while measurements are noisy.
const (
	defaultProcessVariance     = 0.01
	defaultMeasurementVariance = 0.1
)

// kalmanFilter is a scalar linear estimator for one angle signal.
type kalmanFilter struct {
	processVariance     float64
	measurementVariance float64
	estimate            float64
	estimationError     float64
	initialized         bool
}

func newKalmanFilter() *kalmanFilter {
	return &kalmanFilter{
		processVariance:     defaultProcessVariance,
		measurementVariance: defaultMeasurementVariance,
		estimationError:     1.0,
	}
}

// update feeds a new measurement to the filter and returns the current
// estimate. The first measurement initializes the estimate directly.
func (k *kalmanFilter) update(measurement float64) float64 {
	if !k.initialized {
		k.estimate = measurement
		k.initialized = true
		return measurement
	}

	// Prediction step: the state is assumed constant, only uncertainty grows
	predictionError := k.estimationError + k.processVariance

	// Update step: blend prediction and measurement by the Kalman gain
	gain := predictionError / (predictionError + k.measurementVariance)
	k.estimate += gain * (measurement - k.estimate)
	k.estimationError = (1 - gain) * predictionError

	return k.estimate
}

// AngleSmoother suppresses single-frame jitter in angle measurements,
// maintaining one Kalman filter per angle key. Filters are created lazily
// on first observation and persist for the smoother's lifetime.
type AngleSmoother struct {
	filters map[string]*kalmanFilter
}

// NewAngleSmoother creates a new AngleSmoother instance.
func NewAngleSmoother() *AngleSmoother {
	return &AngleSmoother{
		filters: make(map[string]*kalmanFilter),
	}
}

// Smooth filters a single angle observation and returns the estimate.
func (s *AngleSmoother) Smooth(key string, value float64) float64 {
	filter, ok := s.filters[key]
	if !ok {
		filter = newKalmanFilter()
		s.filters[key] = filter
	}
	return filter.update(value)
}

// SmoothAll filters every angle in the set and returns a new AngleSet.
func (s *AngleSmoother) SmoothAll(angles AngleSet) AngleSet {
	smoothed := make(AngleSet, len(angles))
	for key, value := range angles {
		smoothed[key] = s.Smooth(key, value)
	}
	return smoothed
}

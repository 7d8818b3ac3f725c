package video

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// ErrEndOfVideo is returned once a file source has yielded its last
// sampled frame.
var ErrEndOfVideo = errors.New("end of video")

// FileSource decodes frames from a video file, yielding every nth frame.
// Timestamps are derived from the file's declared frame rate, so a file
// processed faster than real time still carries real-time spacing.
type FileSource struct {
	path     string
	interval int

	mu       sync.Mutex
	capture  *gocv.VideoCapture
	fileFPS  float64
	frameIdx int
	running  bool
}

// NewFileSource creates a FileSource for the given path that yields every
// interval-th frame. An interval below 1 is treated as 1 (every frame).
func NewFileSource(path string, interval int) *FileSource {
	if interval < 1 {
		interval = 1
	}
	return &FileSource{
		path:     path,
		interval: interval,
	}
}

// Open opens the video file for decoding.
func (f *FileSource) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return nil
	}

	capture, err := gocv.VideoCaptureFile(f.path)
	if err != nil {
		return fmt.Errorf("open video file %s: %w", f.path, err)
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}

	f.capture = capture
	f.fileFPS = fps
	f.frameIdx = 0
	f.running = true

	return nil
}

// Close closes the video file and releases resources.
func (f *FileSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running || f.capture == nil {
		f.running = false
		return nil
	}

	err := f.capture.Close()
	f.capture = nil
	f.running = false

	return err
}

// Next decodes forward to the next sampled frame and returns it with its
// timestamp in seconds from the start of the video. It returns ErrEndOfVideo
// when the file is exhausted. The caller owns the returned Mat.
func (f *FileSource) Next() (*gocv.Mat, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running || f.capture == nil {
		return nil, 0, ErrSourceNotOpen
	}

	for {
		mat := gocv.NewMat()
		if ok := f.capture.Read(&mat); !ok {
			mat.Close()
			return nil, 0, ErrEndOfVideo
		}

		idx := f.frameIdx
		f.frameIdx++

		if mat.Empty() {
			mat.Close()
			continue
		}

		if idx%f.interval != 0 {
			mat.Close()
			continue
		}

		return &mat, float64(idx) / f.fileFPS, nil
	}
}

// ReadFrame reads the next sampled frame, discarding its timestamp. It
// satisfies the Source interface for pipelines that keep their own clock.
func (f *FileSource) ReadFrame() (*gocv.Mat, error) {
	mat, _, err := f.Next()
	return mat, err
}

// SetFPS is a no-op: playback rate comes from the file itself.
func (f *FileSource) SetFPS(fps int) {}

// FPS returns the file's declared frame rate, rounded down, or the default
// before Open.
func (f *FileSource) FPS() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fileFPS <= 0 {
		return DefaultFPS
	}
	return int(f.fileFPS)
}

// IsOpen returns true if the file is currently open.
func (f *FileSource) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.running
}

package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Recording defaults matching the live preview.
const (
	RecordCodec = "mp4v"
	RecordFPS   = 20.0
)

// Recorder writes annotated frames to a video file.
// A nil *Recorder is valid and discards frames, which is what callers get
// when recording is disabled.
type Recorder struct {
	mu     sync.Mutex
	writer *gocv.VideoWriter
	path   string
	frames int
}

// NewRecorder opens path for writing. An empty path returns a nil Recorder.
func NewRecorder(path string, width, height int) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}

	w, err := gocv.VideoWriterFile(path, RecordCodec, RecordFPS, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer %s: %w", path, err)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, fmt.Errorf("open video writer %s: codec %s unavailable", path, RecordCodec)
	}

	return &Recorder{writer: w, path: path}, nil
}

// Write appends a frame.
func (r *Recorder) Write(frame gocv.Mat) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return fmt.Errorf("recorder %s is closed", r.path)
	}
	if err := r.writer.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close flushes and closes the output file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return nil
	}
	err := r.writer.Close()
	r.writer = nil
	return err
}

package detector

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

// ErrNoScript is returned when the landmark service script cannot be located.
var ErrNoScript = errors.New("hand_landmarks.py not found")

// Detector defines the interface for hand landmark detectors.
type Detector interface {
	// Detect analyzes a video frame and returns the detected hands.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// ModelComplexity selects the MediaPipe hand model (0 = lite, 1 = full).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// IdleTimeout stops the service process after this long without frames.
	IdleTimeout time.Duration
}

// DefaultConfig returns the settings the live pipeline runs with.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		ModelComplexity: 0,
		MinConfidence:   0.6,
		MinTrackingConf: 0.5,
		IdleTimeout:     30 * time.Second,
	}
}

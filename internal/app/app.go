// Package app runs the capture, detect, classify and render loop.
package app

import (
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// DefaultLogEvery is how many frames pass between headless log lines.
const DefaultLogEvery = 15

// Config holds configuration options for the application.
type Config struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier *gesture.Classifier
	// Store receives one event per label change; nil disables persistence.
	Store *store.Store

	Width, Height int
	RecordPath    string
	Headless      bool
	LogEvery      int
	// PublishFrames keeps the latest annotated frame as JPEG for streaming.
	PublishFrames bool
}

// Observation is what the pipeline saw in one frame.
type Observation struct {
	gesture.Result
	Hands     int       `json:"hands"`
	Frame     uint64    `json:"frame"`
	Timestamp time.Time `json:"timestamp"`
}

// Observer is notified after every processed frame.
type Observer func(Observation)

// App is the main application that orchestrates capture, detection and display.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	classifier *gesture.Classifier

	mu        sync.RWMutex
	enabled   bool
	observers []Observer
	lastLabel gesture.Label
	frames    uint64
	stored    gesture.Label

	jpegMu  sync.RWMutex
	jpeg    []byte
	jpegSeq uint64

	logf func(format string, args ...any)
}

// New creates a new App. A nil Camera opens the default device at the
// configured size and a nil Classifier uses the default thresholds.
func New(config Config) *App {
	if config.LogEvery <= 0 {
		config.LogEvery = DefaultLogEvery
	}
	if config.Camera == nil {
		config.Camera = capture.NewCamera(0, config.Width, config.Height)
	}
	if config.Width <= 0 || config.Height <= 0 {
		config.Width, config.Height = config.Camera.Size()
	}
	if config.Classifier == nil {
		config.Classifier = gesture.NewClassifier(gesture.DefaultThresholds())
	}

	a := &App{
		config:     config,
		camera:     config.Camera,
		detector:   config.Detector,
		classifier: config.Classifier,
		enabled:    true,
		logf:       log.Printf,
	}

	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	if config.Store != nil {
		a.Subscribe(a.recordEvent)
	}

	return a
}

// SetEnabled enables or disables gesture classification.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture classification is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Classifier returns the classifier used for every frame.
func (a *App) Classifier() *gesture.Classifier {
	return a.classifier
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Subscribe registers an observer for every processed frame.
func (a *App) Subscribe(o Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, o)
}

// SetLogger replaces the function used for headless and error logging.
// Passing nil mutes the pipeline.
func (a *App) SetLogger(logf func(format string, args ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	a.logf = logf
}

// LastLabel returns the most recent label published to observers.
func (a *App) LastLabel() gesture.Label {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastLabel
}

// Latest returns the most recent annotated frame as JPEG together with its
// sequence number. It returns nil until the first frame was published.
func (a *App) Latest() ([]byte, uint64) {
	a.jpegMu.RLock()
	defer a.jpegMu.RUnlock()
	return a.jpeg, a.jpegSeq
}

func (a *App) publishFrame(frame gocv.Mat) {
	if !a.config.PublishFrames {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		a.logf("Error encoding frame: %v", err)
		return
	}
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	a.jpegMu.Lock()
	a.jpeg = data
	a.jpegSeq++
	a.jpegMu.Unlock()
}

// notify fans the observation out to every observer.
func (a *App) notify(obs Observation) {
	a.mu.Lock()
	a.lastLabel = obs.Label
	observers := append([]Observer(nil), a.observers...)
	a.mu.Unlock()

	for _, o := range observers {
		o(obs)
	}
}

// recordEvent stores an event whenever the label differs from the last
// stored one. Observers run on the pipeline goroutine, so stored needs no lock.
func (a *App) recordEvent(obs Observation) {
	if obs.Label == a.stored {
		return
	}

	e := &store.Event{
		Label:     string(obs.Label),
		Thumb:     string(obs.Thumb),
		Index:     obs.Fingers.Index,
		Middle:    obs.Fingers.Middle,
		Ring:      obs.Fingers.Ring,
		Pinky:     obs.Fingers.Pinky,
		CreatedAt: obs.Timestamp,
	}
	if err := a.config.Store.Events().Create(e); err != nil {
		a.logf("Error storing event: %v", err)
		return
	}
	a.stored = obs.Label
}

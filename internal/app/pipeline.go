package app

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/render"
)

// Process runs one camera frame through the pipeline:
//
//  1. Mirror and resize to the configured size
//  2. Detect hands
//  3. Classify every hand; the last one decides the label
//  4. Draw landmarks and the label box
//
// The returned Mat is owned by the caller. ok is false when classification is
// disabled, in which case the frame is only mirrored and resized.
func (a *App) Process(src gocv.Mat) (frame gocv.Mat, obs Observation, ok bool, err error) {
	frame = capture.PrepareFrame(src, a.config.Width, a.config.Height)

	if !a.IsEnabled() {
		return frame, obs, false, nil
	}

	hands, err := a.Detector().Detect(&frame)
	if err != nil {
		return frame, obs, false, fmt.Errorf("detect hands: %w", err)
	}

	obs = a.observe(hands, frame.Cols(), frame.Rows())
	for _, hand := range hands {
		render.DrawHand(&frame, hand)
	}
	render.DrawLabel(&frame, obs.Label.String())

	return frame, obs, true, nil
}

// observe classifies the detected hands. Hands without a full set of
// landmarks are skipped; with no usable hand the label is No Hand.
func (a *App) observe(hands []detector.HandLandmarks, width, height int) Observation {
	obs := Observation{
		Result:    gesture.Result{Label: gesture.LabelNoHand},
		Hands:     len(hands),
		Timestamp: time.Now(),
	}

	for _, hand := range hands {
		if len(hand.Points) != detector.NumLandmarks {
			a.logf("Skipping hand with %d landmarks", len(hand.Points))
			continue
		}
		obs.Result = a.classifier.Analyze(hand.Pose(width, height))
	}

	return obs
}

// Run opens the camera and processes frames until ctx is cancelled, the
// preview window is closed with 'q', or the camera fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return err
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			a.logf("Error closing camera: %v", err)
		}
	}()

	rec, err := capture.NewRecorder(a.config.RecordPath, a.config.Width, a.config.Height)
	if err != nil {
		return err
	}
	defer rec.Close()

	var win *render.Window
	if !a.config.Headless {
		win = render.NewWindow()
		defer win.Close()
	}

	a.logf("Detection pipeline started (%dx%d)", a.config.Width, a.config.Height)
	defer a.logf("Detection pipeline stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		quit, err := a.step(rec, win)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// step reads, processes and outputs one frame.
func (a *App) step(rec *capture.Recorder, win *render.Window) (bool, error) {
	src, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("failed to read from camera: %w", err)
	}

	frame, obs, ok, err := a.Process(*src)
	src.Close()
	defer frame.Close()

	if err != nil {
		a.logf("Error processing frame: %v", err)
	}

	a.mu.Lock()
	a.frames++
	n := a.frames
	a.mu.Unlock()

	if ok {
		obs.Frame = n
		a.notify(obs)
	}

	if err := rec.Write(frame); err != nil {
		a.logf("Error recording frame: %v", err)
	}
	a.publishFrame(frame)

	if win != nil {
		return win.Show(frame), nil
	}
	if ok && n%uint64(a.config.LogEvery) == 0 {
		a.logf("Gesture: %s", obs.Label)
	}
	return false, nil
}

// Frames returns how many frames have been read since start.
func (a *App) Frames() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frames
}

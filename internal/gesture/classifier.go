// Package gesture classifies a static hand pose into a named gesture using
// hand-written geometric rules over the 21 MediaPipe hand landmarks.
//
// Every function here is a pure function of the pose it is given, so a
// Classifier can be shared between goroutines without locking.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// Default thresholds. All distances are in normalized image units.
const (
	DefaultVerticalMargin = 0.015
	DefaultRadialMargin   = 0.02
	DefaultStraightAngle  = 150.0
	DefaultThumbFoldRatio = 0.8
	DefaultMinThumbLength = 1e-3
	DefaultDirectionAngle = 45.0
)

// Thresholds are the tuning constants of the rules. They were chosen
// empirically; changing any of them changes which labels poses receive.
type Thresholds struct {
	// VerticalMargin is how far a tip must sit above its PIP joint.
	VerticalMargin float64 `json:"vertical_margin" yaml:"vertical_margin"`
	// RadialMargin is how much farther from the wrist a tip must be than its PIP joint.
	RadialMargin float64 `json:"radial_margin" yaml:"radial_margin"`
	// StraightAngle is the PIP angle in degrees above which a finger counts as straight.
	StraightAngle float64 `json:"straight_angle" yaml:"straight_angle"`
	// ThumbFoldRatio folds the thumb when tip-to-palm < ratio * MCP-to-palm.
	ThumbFoldRatio float64 `json:"thumb_fold_ratio" yaml:"thumb_fold_ratio"`
	// MinThumbLength is the shortest MCP to TIP vector given a direction.
	MinThumbLength float64 `json:"min_thumb_length" yaml:"min_thumb_length"`
	// DirectionAngle is the widest angle in degrees to an axis still assigned to it.
	DirectionAngle float64 `json:"direction_angle" yaml:"direction_angle"`
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VerticalMargin: DefaultVerticalMargin,
		RadialMargin:   DefaultRadialMargin,
		StraightAngle:  DefaultStraightAngle,
		ThumbFoldRatio: DefaultThumbFoldRatio,
		MinThumbLength: DefaultMinThumbLength,
		DirectionAngle: DefaultDirectionAngle,
	}
}

// Result is a label together with the signals that produced it.
type Result struct {
	Label   Label          `json:"label"`
	Fingers FingerStates   `json:"fingers"`
	Thumb   ThumbDirection `json:"thumb"`
}

// Classifier applies the gesture rules with a fixed set of thresholds.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a Classifier using the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Thresholds returns the thresholds the classifier was built with.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Cues returns the three extension signals for one finger.
func (c *Classifier) Cues(pose detector.Pose, f Finger) Cues {
	return c.thresholds.cues(pose, f.Joints())
}

// FingerExtended reports whether the finger described by joints is extended.
func (c *Classifier) FingerExtended(pose detector.Pose, j Joints) bool {
	return c.thresholds.cues(pose, j).Extended()
}

// Fingers evaluates all four non-thumb fingers.
func (c *Classifier) Fingers(pose detector.Pose) FingerStates {
	return FingerStates{
		Index:  c.FingerExtended(pose, Index.Joints()),
		Middle: c.FingerExtended(pose, Middle.Joints()),
		Ring:   c.FingerExtended(pose, Ring.Joints()),
		Pinky:  c.FingerExtended(pose, Pinky.Joints()),
	}
}

// Thumb returns the thumb direction.
func (c *Classifier) Thumb(pose detector.Pose) ThumbDirection {
	return c.thresholds.thumb(pose)
}

// Analyze classifies the pose and reports the intermediate signals.
// The pose must hold NumLandmarks points; shorter poses panic.
func (c *Classifier) Analyze(pose detector.Pose) Result {
	fingers := c.Fingers(pose)
	thumb := c.Thumb(pose)
	return Result{
		Label:   Decide(fingers, thumb),
		Fingers: fingers,
		Thumb:   thumb,
	}
}

// Classify returns the gesture label for the pose.
func (c *Classifier) Classify(pose detector.Pose) Label {
	return c.Analyze(pose).Label
}

var defaultClassifier = NewClassifier(DefaultThresholds())

// Classify labels a pose with the default thresholds.
func Classify(pose detector.Pose) Label {
	return defaultClassifier.Classify(pose)
}

// Analyze analyzes a pose with the default thresholds.
func Analyze(pose detector.Pose) Result {
	return defaultClassifier.Analyze(pose)
}

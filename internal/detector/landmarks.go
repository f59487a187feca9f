// Package detector provides hand detection interfaces and landmark types for gesture recognition.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// PalmLandmarks lists the wrist and the four finger MCP joints.
var PalmLandmarks = [5]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Point3D is a landmark as reported by the detector, x and y normalized to [0,1].
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point2D is a normalized image-plane position of one hand landmark.
// Components are nominally in [0,1] but never clamped.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is the ordered sequence of landmarks for one hand, indexed by the
// constants above. Callers guarantee exactly NumLandmarks entries.
type Pose []Point2D

// HandLandmarks represents one detected hand.
type HandLandmarks struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"` // "Left" or "Right"
	Score      float64   `json:"score"`
}

// ExtractPose flattens detector landmarks into a Pose, keeping input order.
// width and height describe the source frame; the points are already
// normalized so neither is used. No count or range validation is done.
func ExtractPose(points []Point3D, width, height int) Pose {
	pose := make(Pose, len(points))
	for i, p := range points {
		pose[i] = Point2D{X: p.X, Y: p.Y}
	}
	return pose
}

// Pose returns the hand's landmarks as a Pose.
func (h HandLandmarks) Pose(width, height int) Pose {
	return ExtractPose(h.Points, width, height)
}

// Translate returns a copy of the pose shifted by (dx, dy).
func (p Pose) Translate(dx, dy float64) Pose {
	out := make(Pose, len(p))
	for i, pt := range p {
		out[i] = Point2D{X: pt.X + dx, Y: pt.Y + dy}
	}
	return out
}

// Pixel converts a normalized point to pixel coordinates for a frame of the given size.
func (p Point2D) Pixel(width, height int) (int, int) {
	return int(p.X * float64(width)), int(p.Y * float64(height))
}

package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

func rightHand(points [NumLandmarks]Point3D) HandLandmarks {
	return HandLandmarks{
		Points:     points[:],
		Handedness: "Right",
		Score:      0.95,
	}
}

// curledFingers sets all four fingers curled back toward the palm.
func curledFingers(p *[NumLandmarks]Point3D) {
	p[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	p[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	p[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	p[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	p[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	p[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	p[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	p[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	p[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	p[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	p[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	p[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	p[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	p[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}
}

// tuckedThumb lays the thumb across the palm.
func tuckedThumb(p *[NumLandmarks]Point3D) {
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.56, Y: 0.70, Z: -0.02}
	p[ThumbIP] = Point3D{X: 0.52, Y: 0.68, Z: -0.04}
	p[ThumbTip] = Point3D{X: 0.48, Y: 0.70, Z: -0.05}
}

// ThumbsUpLandmarks returns a right hand with the thumb pointing up and the other fingers curled.
func ThumbsUpLandmarks() HandLandmarks {
	var p [NumLandmarks]Point3D
	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	p[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	p[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	p[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	curledFingers(&p)
	return rightHand(p)
}

// FistLandmarks returns a right hand with every finger curled and the thumb tucked in.
func FistLandmarks() HandLandmarks {
	var p [NumLandmarks]Point3D
	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}
	tuckedThumb(&p)
	curledFingers(&p)
	return rightHand(p)
}

// OpenPalmLandmarks returns a right hand with all fingers extended upward.
func OpenPalmLandmarks() HandLandmarks {
	var p [NumLandmarks]Point3D
	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb out to the side
	p[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	p[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	p[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	p[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	p[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	p[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	p[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	p[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	p[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	p[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	p[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	p[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return rightHand(p)
}

// PeaceLandmarks returns a right hand with index and middle extended, ring and pinky
// curled and the thumb tucked in.
func PeaceLandmarks() HandLandmarks {
	var p [NumLandmarks]Point3D
	p[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}
	tuckedThumb(&p)
	curledFingers(&p)

	p[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	p[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	p[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	p[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	p[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	p[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	p[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	p[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	return rightHand(p)
}

// SyntheticPose builds a schematic pose: every landmark starts at (0.5, 0.5),
// PIPs sit at y=0.55, MCPs at y=0.60, and each finger tip is placed above its
// PIP (y=0.45) when extended or below it (y=0.65) when folded. thumbUp points
// the thumb straight up; otherwise it is angled slightly toward the palm.
func SyntheticPose(extended [4]bool, thumbUp bool) Pose {
	pose := make(Pose, NumLandmarks)
	for i := range pose {
		pose[i] = Point2D{X: 0.5, Y: 0.5}
	}

	tips := [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
	pips := [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	for i := range tips {
		pose[pips[i]] = Point2D{X: 0.5, Y: 0.55}
		pose[mcps[i]] = Point2D{X: 0.5, Y: 0.60}
		if extended[i] {
			pose[tips[i]] = Point2D{X: 0.5, Y: 0.45}
		} else {
			pose[tips[i]] = Point2D{X: 0.5, Y: 0.65}
		}
	}

	if thumbUp {
		pose[ThumbMCP] = Point2D{X: 0.4, Y: 0.55}
		pose[ThumbTip] = Point2D{X: 0.4, Y: 0.35}
	} else {
		pose[ThumbMCP] = Point2D{X: 0.45, Y: 0.55}
		pose[ThumbTip] = Point2D{X: 0.48, Y: 0.53}
	}

	return pose
}

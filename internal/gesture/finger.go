package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger identifies one of the four non-thumb fingers.
type Finger int

const (
	Index Finger = iota
	Middle
	Ring
	Pinky
)

// Fingers lists the non-thumb fingers in landmark order.
var Fingers = [4]Finger{Index, Middle, Ring, Pinky}

var fingerNames = [4]string{"index", "middle", "ring", "pinky"}

func (f Finger) String() string {
	if f < Index || f > Pinky {
		return "unknown"
	}
	return fingerNames[f]
}

// Joints holds the landmark indices a finger is judged by.
type Joints struct {
	Tip, PIP, MCP int
}

var fingerJoints = [4]Joints{
	Index:  {Tip: detector.IndexTip, PIP: detector.IndexPIP, MCP: detector.IndexMCP},
	Middle: {Tip: detector.MiddleTip, PIP: detector.MiddlePIP, MCP: detector.MiddleMCP},
	Ring:   {Tip: detector.RingTip, PIP: detector.RingPIP, MCP: detector.RingMCP},
	Pinky:  {Tip: detector.PinkyTip, PIP: detector.PinkyPIP, MCP: detector.PinkyMCP},
}

// Joints returns the finger's TIP, PIP and MCP landmark indices.
func (f Finger) Joints() Joints {
	return fingerJoints[f]
}

// FingerStates records which non-thumb fingers are extended.
type FingerStates struct {
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// Get returns the state of a single finger.
func (s FingerStates) Get(f Finger) bool {
	switch f {
	case Index:
		return s.Index
	case Middle:
		return s.Middle
	case Ring:
		return s.Ring
	case Pinky:
		return s.Pinky
	}
	return false
}

// Extended counts the extended fingers.
func (s FingerStates) Extended() int {
	n := 0
	for _, f := range Fingers {
		if s.Get(f) {
			n++
		}
	}
	return n
}

// AllExtended reports whether all four fingers are extended.
func (s FingerStates) AllExtended() bool { return s.Extended() == 4 }

// NoneExtended reports whether all four fingers are folded.
func (s FingerStates) NoneExtended() bool { return s.Extended() == 0 }

// Cues holds the three independent extension signals for one finger.
type Cues struct {
	// Vertical is set when the tip sits above the PIP joint by more than the margin.
	Vertical bool `json:"vertical"`
	// Radial is set when the tip is farther from the wrist than the PIP joint by more than the margin.
	Radial bool `json:"radial"`
	// Straight is set when the angle at the PIP joint exceeds the straightness threshold.
	Straight bool `json:"straight"`
}

// Votes returns how many cues are set.
func (c Cues) Votes() int {
	n := 0
	for _, v := range [3]bool{c.Vertical, c.Radial, c.Straight} {
		if v {
			n++
		}
	}
	return n
}

// Extended applies the majority vote.
func (c Cues) Extended() bool {
	return c.Votes() >= 2
}

// cues evaluates the extension signals for the finger with the given joints.
// The vertical cue assumes an upright hand; it is translation invariant but
// not rotation invariant, which the other two cues compensate for.
func (t Thresholds) cues(pose detector.Pose, j Joints) Cues {
	wrist := pose[detector.Wrist]
	tip, pip, mcp := pose[j.Tip], pose[j.PIP], pose[j.MCP]

	return Cues{
		Vertical: tip.Y < pip.Y-t.VerticalMargin,
		Radial:   dist(wrist, tip) > dist(wrist, pip)+t.RadialMargin,
		Straight: angleAt(pip, tip, mcp) > t.StraightAngle,
	}
}

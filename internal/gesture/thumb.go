package gesture

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ayusman/mudra/internal/detector"
)

// ThumbDirection is the coarse orientation of the thumb.
type ThumbDirection string

const (
	ThumbUp     ThumbDirection = "up"
	ThumbDown   ThumbDirection = "down"
	ThumbLeft   ThumbDirection = "left"
	ThumbRight  ThumbDirection = "right"
	ThumbFolded ThumbDirection = "folded"
)

// candidates is evaluated in order; on equal angles the earlier entry wins.
var candidates = [4]struct {
	dir ThumbDirection
	vec r2.Vec
}{
	{ThumbUp, dirUp},
	{ThumbDown, dirDown},
	{ThumbLeft, dirLeft},
	{ThumbRight, dirRight},
}

// PalmCenter returns the mean of the wrist and the four finger MCP joints.
func PalmCenter(pose detector.Pose) detector.Point2D {
	return centroid(pose, detector.PalmLandmarks[:])
}

// thumb classifies the thumb pose.
//
// A thumb whose tip is markedly closer to the palm center than its MCP joint is
// tucked in and reported as folded before any direction is considered. Otherwise
// the MCP to TIP vector is compared against the four axis directions; if none is
// within DirectionAngle the thumb is pointing diagonally and is also reported folded.
func (t Thresholds) thumb(pose detector.Pose) ThumbDirection {
	tip := pose[detector.ThumbTip]
	mcp := pose[detector.ThumbMCP]

	palm := PalmCenter(pose)
	if dist(tip, palm) < dist(mcp, palm)*t.ThumbFoldRatio {
		return ThumbFolded
	}

	v := vector(mcp, tip)
	if r2.Norm(v) < t.MinThumbLength {
		return ThumbFolded
	}

	best := candidates[0].dir
	bestAngle := angleDeg(v, candidates[0].vec)
	for _, c := range candidates[1:] {
		if a := angleDeg(v, c.vec); a < bestAngle {
			best, bestAngle = c.dir, a
		}
	}

	if bestAngle <= t.DirectionAngle {
		return best
	}
	return ThumbFolded
}

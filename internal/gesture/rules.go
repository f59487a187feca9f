package gesture

// Label is the classifier output for one hand in one frame.
type Label string

const (
	LabelOpenPalm Label = "Open Palm"
	LabelFist     Label = "Fist"
	LabelPeace    Label = "Peace"
	LabelThumbsUp Label = "Thumbs Up"
	LabelUnknown  Label = "Unknown"
	// LabelNoHand is reported by callers when the detector found no hand.
	LabelNoHand Label = "No Hand"
)

// Labels lists every label in rule order, followed by Unknown and No Hand.
var Labels = []Label{LabelOpenPalm, LabelFist, LabelPeace, LabelThumbsUp, LabelUnknown, LabelNoHand}

func (l Label) String() string { return string(l) }

type rule struct {
	label Label
	match func(f FingerStates, thumb ThumbDirection) bool
}

// rules are tried in order and the first match wins. Their domains overlap,
// so the order is part of the behavior.
var rules = []rule{
	{LabelOpenPalm, func(f FingerStates, _ ThumbDirection) bool {
		return f.AllExtended()
	}},
	{LabelFist, func(f FingerStates, thumb ThumbDirection) bool {
		return f.NoneExtended() && thumb != ThumbUp
	}},
	{LabelPeace, func(f FingerStates, _ ThumbDirection) bool {
		return f.Index && f.Middle && !f.Ring && !f.Pinky
	}},
	{LabelThumbsUp, func(f FingerStates, thumb ThumbDirection) bool {
		return thumb == ThumbUp && f.NoneExtended()
	}},
}

// Decide maps finger states and thumb direction to a gesture label.
func Decide(fingers FingerStates, thumb ThumbDirection) Label {
	for _, r := range rules {
		if r.match(fingers, thumb) {
			return r.label
		}
	}
	return LabelUnknown
}

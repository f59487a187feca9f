package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var thumbDirections = []ThumbDirection{ThumbUp, ThumbDown, ThumbLeft, ThumbRight, ThumbFolded}

// allFingerStates enumerates the 16 finger combinations.
func allFingerStates() []FingerStates {
	states := make([]FingerStates, 0, 16)
	for mask := 0; mask < 16; mask++ {
		states = append(states, FingerStates{
			Index:  mask&1 != 0,
			Middle: mask&2 != 0,
			Ring:   mask&4 != 0,
			Pinky:  mask&8 != 0,
		})
	}
	return states
}

func TestDecide(t *testing.T) {
	open := FingerStates{Index: true, Middle: true, Ring: true, Pinky: true}
	peace := FingerStates{Index: true, Middle: true}

	tests := []struct {
		name    string
		fingers FingerStates
		thumb   ThumbDirection
		want    Label
	}{
		{"open palm ignores thumb up", open, ThumbUp, LabelOpenPalm},
		{"open palm ignores folded thumb", open, ThumbFolded, LabelOpenPalm},
		{"fist with folded thumb", FingerStates{}, ThumbFolded, LabelFist},
		{"fist with thumb sideways", FingerStates{}, ThumbLeft, LabelFist},
		{"fist with thumb down", FingerStates{}, ThumbDown, LabelFist},
		{"thumbs up", FingerStates{}, ThumbUp, LabelThumbsUp},
		{"peace", peace, ThumbFolded, LabelPeace},
		{"peace with thumb up", peace, ThumbUp, LabelPeace},
		{"index only", FingerStates{Index: true}, ThumbFolded, LabelUnknown},
		{"index and middle with ring", FingerStates{Index: true, Middle: true, Ring: true}, ThumbUp, LabelUnknown},
		{"pinky only with thumb up", FingerStates{Pinky: true}, ThumbUp, LabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.fingers, tt.thumb))
		})
	}
}

func TestDecide_AllCombinations(t *testing.T) {
	counts := make(map[Label]int)

	for _, f := range allFingerStates() {
		for _, thumb := range thumbDirections {
			got := Decide(f, thumb)
			counts[got]++

			switch {
			case f.AllExtended():
				assert.Equal(t, LabelOpenPalm, got, "%+v %s", f, thumb)
			case f.NoneExtended() && thumb == ThumbUp:
				assert.Equal(t, LabelThumbsUp, got, "%+v %s", f, thumb)
			case f.NoneExtended():
				assert.Equal(t, LabelFist, got, "%+v %s", f, thumb)
			case f.Index && f.Middle && !f.Ring && !f.Pinky:
				assert.Equal(t, LabelPeace, got, "%+v %s", f, thumb)
			default:
				assert.Equal(t, LabelUnknown, got, "%+v %s", f, thumb)
			}
		}
	}

	assert.Equal(t, 5, counts[LabelOpenPalm])
	assert.Equal(t, 4, counts[LabelFist])
	assert.Equal(t, 1, counts[LabelThumbsUp])
	assert.Equal(t, 5, counts[LabelPeace])
	assert.Equal(t, 65, counts[LabelUnknown])
	assert.Zero(t, counts[LabelNoHand], "rules never report No Hand")
}

func TestLabels(t *testing.T) {
	assert.Len(t, Labels, 6)
	assert.Equal(t, "Thumbs Up", LabelThumbsUp.String())
	assert.Equal(t, "No Hand", string(LabelNoHand))
}

// Package render draws landmarks and gesture labels onto frames and shows the preview window.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// WindowTitle is the name of the preview window.
const WindowTitle = "Hand Gesture Recognition"

var (
	black = color.RGBA{0, 0, 0, 0}
	green = color.RGBA{0, 255, 0, 0}
	red   = color.RGBA{255, 0, 0, 0}
	white = color.RGBA{255, 255, 255, 0}
)

// Connections lists the landmark pairs joined when drawing a hand skeleton.
var Connections = [][2]int{
	// palm
	{detector.Wrist, detector.ThumbCMC},
	{detector.Wrist, detector.IndexMCP},
	{detector.IndexMCP, detector.MiddleMCP},
	{detector.MiddleMCP, detector.RingMCP},
	{detector.RingMCP, detector.PinkyMCP},
	{detector.Wrist, detector.PinkyMCP},
	// thumb
	{detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP},
	{detector.ThumbIP, detector.ThumbTip},
	// index
	{detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP},
	{detector.IndexDIP, detector.IndexTip},
	// middle
	{detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP},
	{detector.MiddleDIP, detector.MiddleTip},
	// ring
	{detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP},
	{detector.RingDIP, detector.RingTip},
	// pinky
	{detector.PinkyMCP, detector.PinkyPIP},
	{detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// Label box geometry, in pixels.
var (
	LabelBox    = image.Rect(10, 10, 330, 70)
	labelOrigin = image.Pt(20, 55)
)

// DrawHand overlays the landmark skeleton of one hand onto img.
// Connections referencing missing points are skipped.
func DrawHand(img *gocv.Mat, hand detector.HandLandmarks) {
	w, h := img.Cols(), img.Rows()
	pose := hand.Pose(w, h)

	for _, c := range Connections {
		if c[0] >= len(pose) || c[1] >= len(pose) {
			continue
		}
		x1, y1 := pose[c[0]].Pixel(w, h)
		x2, y2 := pose[c[1]].Pixel(w, h)
		gocv.Line(img, image.Pt(x1, y1), image.Pt(x2, y2), white, 2)
	}

	for _, p := range pose {
		x, y := p.Pixel(w, h)
		gocv.Circle(img, image.Pt(x, y), 4, red, -1)
	}
}

// LabelText is the caption drawn for a gesture label.
func LabelText(label string) string {
	return "Gesture: " + label
}

// DrawLabel paints the filled caption box and the gesture label in the top-left corner.
func DrawLabel(img *gocv.Mat, label string) {
	gocv.Rectangle(img, LabelBox, black, -1)
	gocv.PutText(img, LabelText(label), labelOrigin, gocv.FontHersheySimplex, 1.2, green, 3)
}

// Window wraps the OpenCV preview window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a preview window titled WindowTitle.
func NewWindow() *Window {
	return &Window{win: gocv.NewWindow(WindowTitle)}
}

// Show displays img and polls the keyboard once. It returns true when 'q' was pressed.
func (w *Window) Show(img gocv.Mat) bool {
	w.win.IMShow(img)
	return IsQuitKey(w.win.WaitKey(1))
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

// IsQuitKey reports whether the WaitKey code is 'q'.
func IsQuitKey(key int) bool {
	return key&0xFF == 'q'
}

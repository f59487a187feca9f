package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// PrepareFrame mirrors src horizontally so the preview behaves like a mirror,
// then resizes it to width x height when the sizes differ.
// The returned Mat is owned by the caller.
func PrepareFrame(src gocv.Mat, width, height int) gocv.Mat {
	mirrored := gocv.NewMat()
	gocv.Flip(src, &mirrored, 1)

	if width <= 0 || height <= 0 || (mirrored.Cols() == width && mirrored.Rows() == height) {
		return mirrored
	}

	resized := gocv.NewMat()
	gocv.Resize(mirrored, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	mirrored.Close()
	return resized
}

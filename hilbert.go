package halftone

import (
	"image"
	"iter"
)

// HilbertPath returns the Hilbert-curve traversal of a width×height
// rectangle: every cell exactly once, consecutive points adjacent in
// 2-D wherever the padded square order permits. The sequence is a pure
// function of the dimensions; callers may re-invoke it to restart.
//
// The curve is generated over the smallest power-of-two square that
// covers the rectangle and filtered to the rectangle, so producing
// width×height points can cost up to 4× that many index transforms
// when the sides are unequal.
func HilbertPath(width, height int) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		if width <= 0 || height <= 0 {
			return
		}
		size := hilbertSize(width, height)
		for d := 0; d < size*size; d++ {
			x, y := hilbertPoint(size, d)
			if x < width && y < height {
				if !yield(image.Pt(x, y)) {
					return
				}
			}
		}
	}
}

// hilbertSize returns the smallest power of two covering both sides.
func hilbertSize(width, height int) int {
	side := width
	if height > side {
		side = height
	}
	size := 1
	for size < side {
		size <<= 1
	}
	return size
}

// hilbertPoint maps a curve index d in [0, size²) to its (x, y) cell
// inside the size×size square. This is the standard index-to-coordinate
// transform, unrolled into a loop over the two bits of d consumed at
// each level: rotate or reflect the quadrant, then translate. size must
// be a power of two.
func hilbertPoint(size, d int) (x, y int) {
	t := d
	for s := 1; s < size; s <<= 1 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		if ry == 0 {
			if rx == 1 {
				x = s - 1 - x
				y = s - 1 - y
			}
			x, y = y, x
		}
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

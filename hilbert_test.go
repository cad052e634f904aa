package halftone

import (
	"image"
	"testing"
)

func collectPath(width, height int) []image.Point {
	var pts []image.Point
	for pt := range HilbertPath(width, height) {
		pts = append(pts, pt)
	}
	return pts
}

func TestHilbertPathCoversRectangle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width, height int
	}{
		{1, 1},
		{2, 2},
		{8, 8},
		{5, 3},
		{3, 5},
		{16, 9},
		{7, 7},
		{1, 12},
	}
	for _, tc := range cases {
		pts := collectPath(tc.width, tc.height)
		if len(pts) != tc.width*tc.height {
			t.Errorf("%dx%d: path has %d points, want %d",
				tc.width, tc.height, len(pts), tc.width*tc.height)
		}

		seen := make(map[image.Point]bool, len(pts))
		for _, pt := range pts {
			if pt.X < 0 || pt.X >= tc.width || pt.Y < 0 || pt.Y >= tc.height {
				t.Errorf("%dx%d: point %v out of bounds", tc.width, tc.height, pt)
			}
			if seen[pt] {
				t.Errorf("%dx%d: point %v visited twice", tc.width, tc.height, pt)
			}
			seen[pt] = true
		}
	}
}

func TestHilbertPathAdjacency(t *testing.T) {
	t.Parallel()

	// On an unpadded power-of-two square every consecutive pair of
	// points must be 4-neighbors; that is the defining property of
	// the curve.
	for _, side := range []int{2, 4, 8, 16} {
		pts := collectPath(side, side)
		for i := 1; i < len(pts); i++ {
			dx := pts[i].X - pts[i-1].X
			dy := pts[i].Y - pts[i-1].Y
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if dx+dy != 1 {
				t.Fatalf("side %d: points %v and %v not adjacent",
					side, pts[i-1], pts[i])
			}
		}
	}
}

func TestHilbertPathDeterministic(t *testing.T) {
	t.Parallel()

	first := collectPath(11, 6)
	second := collectPath(11, 6)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestHilbertPathDegenerate(t *testing.T) {
	t.Parallel()

	if pts := collectPath(0, 5); len(pts) != 0 {
		t.Errorf("zero width yielded %d points", len(pts))
	}
	if pts := collectPath(5, 0); len(pts) != 0 {
		t.Errorf("zero height yielded %d points", len(pts))
	}
}

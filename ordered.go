package halftone

import (
	"fmt"
	"math"
)

// ThresholdMatrix is a small square map from (x mod N, y mod N) to a
// threshold in [0,255], used by the ordered dithering strategies. It is
// immutable after construction; matrix indices always wrap, so any
// image size works against any order.
type ThresholdMatrix struct {
	order      int
	thresholds []uint8
}

// NewThresholdMatrix builds a matrix from explicit row-major threshold
// values. len(thresholds) must equal order×order.
func NewThresholdMatrix(order int, thresholds []uint8) (*ThresholdMatrix, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: matrix order %d", ErrBadConfig, order)
	}
	if len(thresholds) != order*order {
		return nil, fmt.Errorf("%w: %d thresholds for order %d matrix",
			ErrBadConfig, len(thresholds), order)
	}
	m := &ThresholdMatrix{order: order, thresholds: make([]uint8, len(thresholds))}
	copy(m.thresholds, thresholds)
	return m, nil
}

// Order returns the matrix side length.
func (m *ThresholdMatrix) Order() int {
	return m.order
}

// At returns the threshold governing pixel (x, y), wrapping both
// coordinates modulo the matrix order.
func (m *ThresholdMatrix) At(x, y int) uint8 {
	return m.thresholds[(y%m.order)*m.order+(x%m.order)]
}

// UniformThreshold returns a 1×1 matrix holding a single cutoff, which
// turns ordered dithering into plain thresholding.
func UniformThreshold(v uint8) *ThresholdMatrix {
	return &ThresholdMatrix{order: 1, thresholds: []uint8{v}}
}

// bayerRanks builds the dispersed-dot Bayer rank matrix of the given
// power-of-two order by the usual doubling construction: each step
// replicates the previous matrix into four quadrants with offsets
// 0, 2, 3, 1.
func bayerRanks(order int) ([]int, error) {
	if order <= 0 || order&(order-1) != 0 {
		return nil, fmt.Errorf("%w: matrix order %d is not a power of two",
			ErrBadConfig, order)
	}
	ranks := []int{0}
	for n := 1; n < order; n *= 2 {
		next := make([]int, 4*n*n)
		side := 2 * n
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				base := 4 * ranks[y*n+x]
				next[y*side+x] = base
				next[y*side+x+n] = base + 2
				next[(y+n)*side+x] = base + 3
				next[(y+n)*side+x+n] = base + 1
			}
		}
		ranks = next
	}
	return ranks, nil
}

// ranksToThresholds maps rank r in [0, cells) to the midpoint threshold
// (2r+1)·255 / (2·cells), so a rank-0 cell still marks pure black and
// no cell ever marks pure white.
func ranksToThresholds(ranks []int, cells int) []uint8 {
	thresholds := make([]uint8, len(ranks))
	for i, r := range ranks {
		thresholds[i] = uint8((255 * (2*r + 1)) / (2 * cells))
	}
	return thresholds
}

// Bayer returns the dispersed-dot Bayer threshold matrix of the given
// power-of-two order.
func Bayer(order int) (*ThresholdMatrix, error) {
	ranks, err := bayerRanks(order)
	if err != nil {
		return nil, err
	}
	return &ThresholdMatrix{
		order:      order,
		thresholds: ranksToThresholds(ranks, order*order),
	}, nil
}

// clusteredDot8x8Ranks is the classic 8×8 clustered-dot screen: ranks
// grow outward from two dot centers, so marks clump into printable
// dots instead of dispersing. Thermal heads render clustered dots more
// reliably than isolated pixels.
var clusteredDot8x8Ranks = []int{
	24, 10, 12, 26, 35, 47, 49, 37,
	8, 0, 2, 14, 45, 59, 61, 51,
	22, 6, 4, 16, 43, 57, 63, 53,
	30, 20, 18, 28, 33, 41, 55, 39,
	34, 46, 48, 36, 25, 11, 13, 27,
	44, 58, 60, 50, 9, 1, 3, 15,
	42, 56, 62, 52, 23, 7, 5, 17,
	32, 40, 54, 38, 31, 21, 19, 29,
}

// ClusteredDot8x8 returns the classic order-8 clustered-dot matrix.
func ClusteredDot8x8() *ThresholdMatrix {
	return &ThresholdMatrix{
		order:      8,
		thresholds: ranksToThresholds(clusteredDot8x8Ranks, 64),
	}
}

// ordered applies a fixed threshold matrix per pixel. Pixels are
// independent of each other, which is the strategy's chief advantage
// over error diffusion: no state, no scan-order artifacts, trivially
// parallelizable.
type ordered struct {
	name   string
	matrix *ThresholdMatrix
}

func (s *ordered) Name() string {
	return s.name
}

func (s *ordered) Apply(src *Grayscale) (*Binary, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()
	out := NewBinary(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetDark(x, y, src.Intensity(x, y) < s.matrix.At(x, y))
		}
	}
	return out, nil
}

// yliluoma performs a one-shot optimal ordered dither: for each input
// tone it devises the mixing plan over the printable palette that best
// reproduces the tone, then lets the Bayer rank of each pixel select
// its entry from the plan.
type yliluoma struct {
	order int
	ranks []int
}

func (s *yliluoma) Name() string {
	return "yliluoma"
}

func (s *yliluoma) Apply(src *Grayscale) (*Binary, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	cells := s.order * s.order

	// One plan per input tone; the plan search is the expensive part,
	// so it runs once up front rather than per pixel.
	var plans [256]int
	for t := 0; t < 256; t++ {
		plans[t] = deviseMixingPlan(uint8(t), cells)
	}

	width, height := src.Width(), src.Height()
	out := NewBinary(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rank := s.ranks[(y%s.order)*s.order+(x%s.order)]
			out.SetDark(x, y, rank >= plans[src.Intensity(x, y)])
		}
	}
	return out, nil
}

// deviseMixingPlan selects, for one input tone, how many of the matrix
// cells should resolve to white. It searches every ordered pair of
// palette entries and every mix proportion; for the two-entry thermal
// palette this settles on the white proportion nearest the target
// tone, but the search form keeps the door open for multi-level heads.
func deviseMixingPlan(target uint8, cells int) int {
	palette := [2]int{0, 255}
	bestWhite := 0
	bestPenalty := math.MaxFloat64
	for _, c1 := range palette {
		for _, c2 := range palette {
			for n := 0; n <= cells; n++ {
				mix := float64(c1*(cells-n)+c2*n) / float64(cells)
				penalty := math.Abs(float64(target) - mix)
				if penalty < bestPenalty {
					bestPenalty = penalty
					white := 0
					if c2 == 255 {
						white += n
					}
					if c1 == 255 {
						white += cells - n
					}
					bestWhite = white
				}
			}
		}
	}
	return bestWhite
}

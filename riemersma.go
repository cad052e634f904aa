package halftone

import "math"

// errorHistory is a fixed-capacity ring of the most recent quantization
// errors paired with a precomputed, L1-normalized weight vector.
// weights[i] applies to the i-th newest error, so the newest error
// always carries the largest weight and influence decays exponentially
// toward the oldest.
type errorHistory struct {
	buf     []float64
	head    int // index of the newest entry
	weights []float64
}

func newErrorHistory(depth int, ratio float64) *errorHistory {
	weights := make([]float64, depth)
	sum := 0.0
	for i := range weights {
		weights[i] = math.Pow(ratio, float64(i)/float64(depth-1))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return &errorHistory{
		buf:     make([]float64, depth),
		weights: weights,
	}
}

// accumulated returns the weighted sum of the remembered errors.
func (h *errorHistory) accumulated() float64 {
	acc := 0.0
	for i, w := range h.weights {
		acc += h.buf[(h.head+i)%len(h.buf)] * w
	}
	return acc
}

// push records a new error as the newest entry, evicting the oldest.
func (h *errorHistory) push(err float64) {
	h.head = (h.head + len(h.buf) - 1) % len(h.buf)
	h.buf[h.head] = err
}

// riemersma dithers along a Hilbert curve, feeding each pixel the
// exponentially decaying history of recent quantization errors. Because
// the curve preserves 2-D locality in its 1-D order, the error stays
// near where it was incurred without the directional streaking of
// raster-order diffusion, in O(n) time with a constant-size history.
type riemersma struct {
	depth int
	ratio float64
}

func (s *riemersma) Name() string {
	return "riemersma"
}

func (s *riemersma) Apply(src *Grayscale) (*Binary, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()
	out := NewBinary(width, height)
	hist := newErrorHistory(s.depth, s.ratio)

	for pt := range HilbertPath(width, height) {
		expected := float64(src.Intensity(pt.X, pt.Y)) + hist.accumulated()
		dark := expected < 127.5
		quantized := 0.0
		if !dark {
			quantized = 255.0
		}
		out.SetDark(pt.X, pt.Y, dark)
		hist.push(expected - quantized)
	}
	return out, nil
}

package halftone

import "sort"

// KernelOffset is one error-diffusion target: an offset from the
// current pixel in scan order and the numerator of its weight. DY is
// never negative and DX is negative only for cells on rows below the
// current one, so every offset references a pixel not yet visited in
// raster order.
type KernelOffset struct {
	DX, DY int
	Weight int
}

// Kernel is a named, fixed error-diffusion table. The quantization
// error of a pixel is distributed as Weight/Div to each offset.
type Kernel struct {
	name    string
	div     int
	offsets []KernelOffset
}

// Name returns the canonical kernel name.
func (k *Kernel) Name() string {
	return k.name
}

// Offsets returns the diffusion targets. Callers must not modify the
// returned slice.
func (k *Kernel) Offsets() []KernelOffset {
	return k.offsets
}

// Div returns the common weight denominator.
func (k *Kernel) Div() int {
	return k.div
}

// kernels holds the classic raster-order diffusion tables. Weights are
// kept as integer numerators over a power-of-two-ish denominator, the
// form they are published in. Atkinson deliberately sums to 6/8: it
// discards a quarter of the error, which lightens shadows and is part
// of its look.
var kernels = map[string]*Kernel{
	"floyd-steinberg": {
		name: "floyd-steinberg", div: 16,
		offsets: []KernelOffset{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
	},
	"atkinson": {
		name: "atkinson", div: 8,
		offsets: []KernelOffset{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
	},
	"jarvis-judice-ninke": {
		name: "jarvis-judice-ninke", div: 48,
		offsets: []KernelOffset{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
	},
	"stucki": {
		name: "stucki", div: 42,
		offsets: []KernelOffset{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
	},
	"burkes": {
		name: "burkes", div: 32,
		offsets: []KernelOffset{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		},
	},
	"sierra3": {
		name: "sierra3", div: 32,
		offsets: []KernelOffset{
			{1, 0, 5}, {2, 0, 3},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
			{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
		},
	},
	"sierra2": {
		name: "sierra2", div: 16,
		offsets: []KernelOffset{
			{1, 0, 4}, {2, 0, 3},
			{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
		},
	},
	"sierra-2-4a": {
		name: "sierra-2-4a", div: 4,
		offsets: []KernelOffset{
			{1, 0, 2},
			{-1, 1, 1}, {0, 1, 1},
		},
	},
}

// KernelByName looks up a diffusion kernel by canonical name.
func KernelByName(name string) (*Kernel, bool) {
	k, ok := kernels[name]
	return k, ok
}

// Kernels returns the sorted canonical kernel names.
func Kernels() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// errorDiffusion visits pixels in raster order, quantizes against the
// half-intensity midpoint and pushes the signed error forward to
// not-yet-visited neighbors through its kernel.
type errorDiffusion struct {
	kernel *Kernel
}

func (s *errorDiffusion) Name() string {
	return s.kernel.name
}

func (s *errorDiffusion) Apply(src *Grayscale) (*Binary, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()

	// Private floating-point working copy. Accumulated values may
	// drift outside [0,255] before a pixel is visited; they are only
	// resolved at quantization time.
	work := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			work[y*width+x] = float64(src.Pix[y*src.Stride+x])
		}
	}

	div := float64(s.kernel.div)
	out := NewBinary(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := work[y*width+x]
			dark := v < 127.5
			quantized := 0.0
			if !dark {
				quantized = 255.0
			}
			out.SetDark(x, y, dark)

			err := v - quantized
			for _, o := range s.kernel.offsets {
				tx, ty := x+o.DX, y+o.DY
				if tx < 0 || tx >= width || ty >= height {
					// Offsets that fall off the raster are dropped,
					// not wrapped.
					continue
				}
				work[ty*width+tx] += err * float64(o.Weight) / div
			}
		}
	}
	return out, nil
}

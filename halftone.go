// Package halftone converts grayscale images into 1-bit rasters
// suitable for thermal label printing. It implements a family of
// alternative dithering strategies behind a single interface: plain
// and ordered thresholding, classic raster-order error diffusion with
// a selection of named kernels, Riemersma dithering along a Hilbert
// curve, and a glyph-ramp halftone that trades resolution for a
// stylized output.
//
// Every strategy is a pure, synchronous transform: identical inputs
// produce identical outputs, the caller's buffer is never mutated, and
// independent invocations are safe from concurrent goroutines.
package halftone

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownStrategy is returned by New for a name that does not
	// select any dithering strategy.
	ErrUnknownStrategy = errors.New("halftone: unknown strategy")

	// ErrBadConfig is returned by New for parameter values outside
	// their documented domain, and by Apply for a missing or empty
	// input image. Configuration problems are always reported before
	// any pixel is processed.
	ErrBadConfig = errors.New("halftone: invalid configuration")
)

// Strategy converts a Grayscale into a Binary of identical dimensions.
// Implementations hold only immutable configuration, so a single
// Strategy may be shared across goroutines.
type Strategy interface {
	// Name returns the canonical strategy name.
	Name() string

	// Apply dithers src into a new Binary. The input is not modified.
	// The only possible error is a nil or empty input; the transform
	// itself is total over well-formed inputs.
	Apply(src *Grayscale) (*Binary, error)
}

// config collects the tunable parameters of all strategies. Each
// strategy reads only the fields relevant to it.
type config struct {
	matrixOrder  int
	threshold    uint8
	historyDepth int
	decayRatio   float64
	matrix       *ThresholdMatrix
	ramp         *GlyphRamp
}

func defaultConfig() config {
	return config{
		matrixOrder:  8,
		threshold:    128,
		historyDepth: 16,
		decayRatio:   0.1,
	}
}

// Option is a functional option for New.
type Option func(*config)

// WithMatrixOrder sets the threshold matrix order for the bayer and
// yliluoma strategies. The order must be a positive power of two.
func WithMatrixOrder(order int) Option {
	return func(c *config) {
		c.matrixOrder = order
	}
}

// WithThreshold sets the cutoff for the plain threshold strategy.
func WithThreshold(v uint8) Option {
	return func(c *config) {
		c.threshold = v
	}
}

// WithMatrix supplies an explicit threshold matrix, overriding the
// strategy's built-in one.
func WithMatrix(m *ThresholdMatrix) Option {
	return func(c *config) {
		c.matrix = m
	}
}

// WithHistoryDepth sets the Riemersma error history depth (≥ 2).
func WithHistoryDepth(depth int) Option {
	return func(c *config) {
		c.historyDepth = depth
	}
}

// WithDecayRatio sets the Riemersma weight ratio between the newest
// and the oldest remembered error, in (0, 1].
func WithDecayRatio(ratio float64) Option {
	return func(c *config) {
		c.decayRatio = ratio
	}
}

// WithGlyphRamp supplies the glyph ramp used by the ascii strategy,
// overriding the embedded monospace default.
func WithGlyphRamp(r *GlyphRamp) Option {
	return func(c *config) {
		c.ramp = r
	}
}

// aliases maps the loose names accepted by the original command
// surface onto canonical strategy names.
var aliases = map[string]string{
	"floyd": "floyd-steinberg",
	"none":  "threshold",
}

// New builds the named dithering strategy. All parameter validation
// happens here, never mid-pass: an unknown name or an out-of-domain
// parameter is reported before any pixel is processed.
func New(name string, opts ...Option) (Strategy, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	canonical := name
	if alias, ok := aliases[name]; ok {
		canonical = alias
	}

	switch canonical {
	case "threshold":
		m := cfg.matrix
		if m == nil {
			m = UniformThreshold(cfg.threshold)
		}
		return &ordered{name: canonical, matrix: m}, nil

	case "bayer":
		m := cfg.matrix
		if m == nil {
			var err error
			m, err = Bayer(cfg.matrixOrder)
			if err != nil {
				return nil, err
			}
		}
		return &ordered{name: canonical, matrix: m}, nil

	case "cluster":
		m := cfg.matrix
		if m == nil {
			m = ClusteredDot8x8()
		}
		return &ordered{name: canonical, matrix: m}, nil

	case "yliluoma":
		ranks, err := bayerRanks(cfg.matrixOrder)
		if err != nil {
			return nil, err
		}
		return &yliluoma{order: cfg.matrixOrder, ranks: ranks}, nil

	case "riemersma":
		if cfg.historyDepth < 2 {
			return nil, fmt.Errorf("%w: history depth %d, need at least 2",
				ErrBadConfig, cfg.historyDepth)
		}
		if cfg.decayRatio <= 0 || cfg.decayRatio > 1 {
			return nil, fmt.Errorf("%w: decay ratio %g outside (0,1]",
				ErrBadConfig, cfg.decayRatio)
		}
		return &riemersma{depth: cfg.historyDepth, ratio: cfg.decayRatio}, nil

	case "ascii":
		ramp := cfg.ramp
		if ramp == nil {
			var err error
			ramp, err = DefaultRamp()
			if err != nil {
				return nil, err
			}
		}
		return &glyphHalftone{ramp: ramp}, nil
	}

	if k, ok := KernelByName(canonical); ok {
		return &errorDiffusion{kernel: k}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies returns the sorted canonical strategy names accepted by
// New, aliases excluded.
func Strategies() []string {
	names := []string{"threshold", "bayer", "cluster", "yliluoma", "ascii", "riemersma"}
	names = append(names, Kernels()...)
	sort.Strings(names)
	return names
}

// checkInput rejects a missing or empty source image. Called by every
// strategy before processing starts.
func checkInput(src *Grayscale) error {
	if src == nil || src.Gray == nil {
		return fmt.Errorf("%w: nil input image", ErrBadConfig)
	}
	if src.Width() <= 0 || src.Height() <= 0 {
		return fmt.Errorf("%w: image dimensions %dx%d",
			ErrBadConfig, src.Width(), src.Height())
	}
	return nil
}

package halftone

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultRampChars orders ten printable glyphs from lightest to
// densest, the classic tone ramp of terminal ASCII art.
const DefaultRampChars = " .:-=+*#%@"

// GlyphRamp is an ordered sequence of pre-rendered glyph bitmaps, index
// 0 the lightest and the last index the darkest, all sharing one cell
// size. The glyph halftone strategy maps cell brightness onto ramp
// indexes, so the ordering is the contract: callers supplying their own
// ramp are responsible for sorting it light to dark.
type GlyphRamp struct {
	cellWidth  int
	cellHeight int
	glyphs     [][]bool
}

// NewGlyphRamp builds a ramp from explicit glyph bitmaps. Each bitmap
// is row-major cellWidth×cellHeight, true marking an inked pixel.
func NewGlyphRamp(cellWidth, cellHeight int, glyphs [][]bool) (*GlyphRamp, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("%w: glyph cell %dx%d",
			ErrBadConfig, cellWidth, cellHeight)
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("%w: empty glyph ramp", ErrBadConfig)
	}
	for i, g := range glyphs {
		if len(g) != cellWidth*cellHeight {
			return nil, fmt.Errorf("%w: glyph %d has %d bits, cell needs %d",
				ErrBadConfig, i, len(g), cellWidth*cellHeight)
		}
	}
	return &GlyphRamp{cellWidth: cellWidth, cellHeight: cellHeight, glyphs: glyphs}, nil
}

// RampFromFont renders chars (ordered light to dark) from TrueType
// font data into a ramp. The cell size is derived from the face
// metrics at the given point size and DPI, so a monospace font yields
// a uniform grid.
func RampFromFont(ttf []byte, chars string, sizePt, dpi float64) (*GlyphRamp, error) {
	if chars == "" {
		return nil, fmt.Errorf("%w: empty ramp characters", ErrBadConfig)
	}
	if sizePt <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("%w: font size %gpt at %g dpi",
			ErrBadConfig, sizePt, dpi)
	}
	ttfFont, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("halftone: parsing ramp font: %w", err)
	}

	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    sizePt,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellHeight := ascent + metrics.Descent.Ceil()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance = metrics.Height
	}
	cellWidth := advance.Ceil()
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("%w: font produced %dx%d glyph cell",
			ErrBadConfig, cellWidth, cellHeight)
	}

	glyphs := make([][]bool, 0, len([]rune(chars)))
	for _, r := range chars {
		bits, err := renderGlyph(ttfFont, r, cellWidth, cellHeight, ascent, sizePt, dpi)
		if err != nil {
			return nil, err
		}
		glyphs = append(glyphs, bits)
	}
	return &GlyphRamp{cellWidth: cellWidth, cellHeight: cellHeight, glyphs: glyphs}, nil
}

// renderGlyph rasterizes one rune into a cell-sized bitmap. The glyph
// is drawn onto an alpha image and thresholded at 25% coverage: the
// low cutoff keeps anti-aliased edge pixels, without which thin
// strokes and the dots of light ramp characters disappear.
func renderGlyph(ttfFont *truetype.Font, r rune, cellWidth, cellHeight, ascent int, sizePt, dpi float64) ([]bool, error) {
	img := image.NewAlpha(image.Rect(0, 0, cellWidth, cellHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(sizePt)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, ascent)); err != nil {
		return nil, fmt.Errorf("halftone: rendering glyph %q: %w", r, err)
	}

	bits := make([]bool, cellWidth*cellHeight)
	for y := 0; y < cellHeight; y++ {
		for x := 0; x < cellWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bits[y*cellWidth+x] = true
			}
		}
	}
	return bits, nil
}

// DefaultRamp renders DefaultRampChars from the embedded Go Mono face.
// It is the fallback when the caller supplies no ramp of its own, so
// the ascii strategy works without any font on disk.
func DefaultRamp() (*GlyphRamp, error) {
	return RampFromFont(gomono.TTF, DefaultRampChars, 12, 72)
}

// Len returns the number of glyphs in the ramp.
func (r *GlyphRamp) Len() int {
	return len(r.glyphs)
}

// CellSize returns the fixed pixel dimensions of one glyph cell.
func (r *GlyphRamp) CellSize() (width, height int) {
	return r.cellWidth, r.cellHeight
}

// Index maps a cell intensity to a ramp index: darker input selects a
// denser glyph, ties round to the nearest index, and the mapping is
// monotonic by construction.
func (r *GlyphRamp) Index(intensity uint8) int {
	return int(math.Round(float64(255-intensity) / 255 * float64(len(r.glyphs)-1)))
}

// stamp inks glyph idx into dst with its top-left corner at (ox, oy).
func (r *GlyphRamp) stamp(dst *Binary, idx, ox, oy int) {
	bits := r.glyphs[idx]
	for y := 0; y < r.cellHeight; y++ {
		for x := 0; x < r.cellWidth; x++ {
			if bits[y*r.cellWidth+x] {
				dst.SetDark(ox+x, oy+y, true)
			}
		}
	}
}

// glyphHalftone downsamples the input to a glyph cell grid and renders
// one ramp glyph per cell. It is deliberately the most lossy strategy:
// spatial resolution is traded for a stylized, text-like output.
type glyphHalftone struct {
	ramp *GlyphRamp
}

func (s *glyphHalftone) Name() string {
	return "ascii"
}

func (s *glyphHalftone) Apply(src *Grayscale) (*Binary, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()
	out := NewBinary(width, height)

	cellWidth, cellHeight := s.ramp.CellSize()
	cols, rows := width/cellWidth, height/cellHeight
	if cols == 0 || rows == 0 {
		// Image smaller than one cell: nothing to render, the whole
		// raster stays background.
		return out, nil
	}

	// Smooth resample to one sample per cell. Catmull-Rom keeps the
	// cell tone faithful when many source pixels collapse into one
	// sample; nearest-neighbor here would alias badly.
	grid := image.NewGray(image.Rect(0, 0, cols, rows))
	draw.CatmullRom.Scale(grid, grid.Bounds(), src.Gray, src.Bounds(), draw.Src, nil)

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			idx := s.ramp.Index(grid.GrayAt(cx, cy).Y)
			s.ramp.stamp(out, idx, cx*cellWidth, cy*cellHeight)
		}
	}
	return out, nil
}

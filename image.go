package halftone

import (
	"image"
	"image/color"
)

// Grayscale wraps image.Gray with convenience methods for pixel access.
// It is the sole input type of every dithering strategy. Strategies
// treat it as read-only; error-diffusion strategies copy it into a
// private floating-point working buffer before touching anything.
type Grayscale struct {
	*image.Gray
}

// NewGrayscale creates a new Grayscale with the specified dimensions.
func NewGrayscale(width, height int) *Grayscale {
	return &Grayscale{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// GrayscaleFromImage converts any image.Image to Grayscale using the
// standard library's luminance conversion.
func GrayscaleFromImage(img image.Image) *Grayscale {
	if g, ok := img.(*image.Gray); ok {
		return &Grayscale{Gray: g}
	}
	bounds := img.Bounds()
	gray := NewGrayscale(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

// Width returns the image width.
func (g *Grayscale) Width() int {
	return g.Bounds().Dx()
}

// Height returns the image height.
func (g *Grayscale) Height() int {
	return g.Bounds().Dy()
}

// Intensity returns the intensity value at (x, y).
func (g *Grayscale) Intensity(x, y int) uint8 {
	return g.Pix[y*g.Stride+x]
}

// SetIntensity sets the intensity value at (x, y).
func (g *Grayscale) SetIntensity(x, y int, v uint8) {
	g.Pix[y*g.Stride+x] = v
}

// Fill sets every pixel to the given intensity.
func (g *Grayscale) Fill(v uint8) {
	for i := range g.Pix {
		g.Pix[i] = v
	}
}

// Clone creates a deep copy of the image.
func (g *Grayscale) Clone() *Grayscale {
	clone := NewGrayscale(g.Width(), g.Height())
	copy(clone.Pix, g.Pix)
	return clone
}

// monoPalette maps index 0 to white (no mark) and index 1 to black
// (printable mark). Encoders such as image/png recognize a two-color
// paletted image and emit a true 1-bit file.
var monoPalette = color.Palette{color.White, color.Black}

// Binary is a 1-bit raster: every pixel is either a printable dark mark
// or untouched label background. It is the sole output type of every
// dithering strategy and always has exactly the requested dimensions.
type Binary struct {
	p *image.Paletted
}

var _ image.PalettedImage = (*Binary)(nil)

// NewBinary creates an all-light Binary with the specified dimensions.
func NewBinary(width, height int) *Binary {
	return &Binary{
		p: image.NewPaletted(image.Rect(0, 0, width, height), monoPalette),
	}
}

// ColorModel implements image.Image.
func (b *Binary) ColorModel() color.Model {
	return b.p.ColorModel()
}

// Bounds implements image.Image.
func (b *Binary) Bounds() image.Rectangle {
	return b.p.Bounds()
}

// At implements image.Image.
func (b *Binary) At(x, y int) color.Color {
	return b.p.At(x, y)
}

// ColorIndexAt implements image.PalettedImage.
func (b *Binary) ColorIndexAt(x, y int) uint8 {
	return b.p.ColorIndexAt(x, y)
}

// Width returns the raster width.
func (b *Binary) Width() int {
	return b.p.Bounds().Dx()
}

// Height returns the raster height.
func (b *Binary) Height() int {
	return b.p.Bounds().Dy()
}

// Dark reports whether the pixel at (x, y) is a printable mark.
func (b *Binary) Dark(x, y int) bool {
	return b.p.ColorIndexAt(x, y) == 1
}

// SetDark sets or clears the printable mark at (x, y).
func (b *Binary) SetDark(x, y int, dark bool) {
	if dark {
		b.p.SetColorIndex(x, y, 1)
	} else {
		b.p.SetColorIndex(x, y, 0)
	}
}

// DarkCount returns the number of printable marks in the raster.
func (b *Binary) DarkCount() int {
	n := 0
	for _, idx := range b.p.Pix {
		if idx == 1 {
			n++
		}
	}
	return n
}

// Pack serializes the raster into the packed 1-bit form consumed by
// print spoolers: one row at a time, eight pixels per byte, most
// significant bit first, set bits marking dark pixels. Rows whose
// width is not a multiple of eight are padded with light pixels.
func (b *Binary) Pack() []byte {
	width, height := b.Width(), b.Height()
	rowBytes := (width + 7) / 8
	out := make([]byte, rowBytes*height)
	for y := 0; y < height; y++ {
		row := out[y*rowBytes:]
		for x := 0; x < width; x++ {
			if b.p.Pix[y*b.p.Stride+x] == 1 {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return out
}

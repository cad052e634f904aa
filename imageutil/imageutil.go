// Package imageutil prepares arbitrary source images for 1-bit thermal
// printing: grayscale conversion, tone adjustment and fitting onto a
// fixed-size label canvas. It deliberately lives outside the halftone
// package so the dithering strategies stay pure raster transforms.
package imageutil

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"

	halftone "github.com/osbock/dymo-picture-print"
)

// ToGray converts any image to grayscale using the BT.601 luminance
// formula: Y = 0.299*R + 0.587*G + 0.114*B. An image that is already
// *image.Gray is returned as is.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Integer math scaled by 1000, rounded.
			lum := (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Pix[(y-bounds.Min.Y)*gray.Stride+(x-bounds.Min.X)] = uint8(lum)
		}
	}
	return gray
}

// Adjust applies brightness and contrast corrections. Both factors use
// the multiplicative convention of photo editors: 1.0 leaves the image
// unchanged, 1.2 lightens or adds contrast by 20%, 0.8 darkens or
// flattens by 20%. Lightening before halftoning suppresses the gray
// noise that thermal heads render as banding.
func Adjust(img image.Image, brightness, contrast float64) image.Image {
	out := img
	if brightness != 1.0 {
		out = adjust.Brightness(out, brightness-1)
	}
	if contrast != 1.0 {
		out = adjust.Contrast(out, contrast-1)
	}
	return out
}

// FitToLabel fits img onto a width x height label raster. A portrait
// source is first rotated onto the landscape roll, then Lanczos-resized
// to the largest size that fits while keeping its aspect ratio, and
// finally centered on a white canvas of exactly the label dimensions.
func FitToLabel(img image.Image, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imageutil: invalid label size %dx%d", width, height)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("imageutil: empty source image")
	}

	// On a label roll the short label edge runs across the print head,
	// so a portrait source prints sideways.
	oriented := img
	if width > height && bounds.Dy() > bounds.Dx() {
		oriented = imaging.Rotate90(img)
		bounds = oriented.Bounds()
	}

	scale := math.Min(
		float64(width)/float64(bounds.Dx()),
		float64(height)/float64(bounds.Dy()),
	)
	fitWidth := max(1, int(math.Round(float64(bounds.Dx())*scale)))
	fitHeight := max(1, int(math.Round(float64(bounds.Dy())*scale)))
	fitted := imaging.Resize(oriented, fitWidth, fitHeight, imaging.Lanczos)

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xFF
	}
	offset := image.Pt((width-fitWidth)/2, (height-fitHeight)/2)
	draw.Draw(canvas, image.Rectangle{
		Min: offset,
		Max: offset.Add(image.Pt(fitWidth, fitHeight)),
	}, fitted, fitted.Bounds().Min, draw.Src)
	return canvas, nil
}

// Prepare runs the full preprocessing pipeline: tone adjustment,
// orientation, resize and letterboxing onto the label canvas. The
// result is ready to hand to any halftoning strategy.
func Prepare(img image.Image, brightness, contrast float64, width, height int) (*halftone.Grayscale, error) {
	adjusted := Adjust(img, brightness, contrast)
	fitted, err := FitToLabel(adjusted, width, height)
	if err != nil {
		return nil, err
	}
	return halftone.GrayscaleFromImage(fitted), nil
}

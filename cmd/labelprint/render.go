package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	halftone "github.com/osbock/dymo-picture-print"
	"github.com/osbock/dymo-picture-print/imageutil"
	"github.com/osbock/dymo-picture-print/label"
)

var (
	inputPath    string
	outputPath   string
	ditherName   string
	brightness   float64
	contrast     float64
	labelCode    string
	matrixOrder  int
	threshold    int
	historyDepth int
	decayRatio   float64
	fontPath     string
	fontSize     float64
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the halftoned label to a 1-bit PNG",
	RunE:  runPreview,
}

func init() {
	for _, cmd := range []*cobra.Command{previewCmd, printCmd} {
		f := cmd.Flags()
		f.StringVarP(&inputPath, "input", "i", "", "Source image (jpeg, png or gif)")
		cmd.MarkFlagRequired("input")
		f.StringVar(&ditherName, "dither", "floyd", "Dithering strategy, see 'labelprint dithers'")
		f.Float64Var(&brightness, "brightness", 1.2, "Brightness factor, 1.0 leaves the image unchanged")
		f.Float64Var(&contrast, "contrast", 1.0, "Contrast factor, 1.0 leaves the image unchanged")
		f.StringVar(&labelCode, "label", "30256", "Label stock code, see 'labelprint labels'")
		f.IntVar(&matrixOrder, "matrix-order", 8, "Bayer matrix order for bayer and yliluoma (power of two)")
		f.IntVar(&threshold, "threshold", 128, "Cutoff for the threshold strategy (0-255)")
		f.IntVar(&historyDepth, "history-depth", 16, "Riemersma error history depth")
		f.Float64Var(&decayRatio, "ratio", 0.1, "Riemersma decay ratio in (0,1]")
		f.StringVar(&fontPath, "font", "", "TrueType font for the ascii strategy (default: embedded Go Mono)")
		f.Float64Var(&fontSize, "font-size", 12, "Glyph point size for the ascii strategy")
	}
	previewCmd.Flags().StringVarP(&outputPath, "output", "o", "preview.png", "Output PNG path")
	rootCmd.AddCommand(previewCmd)
}

// strategyOptions maps the flag surface onto engine options. The spec
// supplies the DPI so a custom ascii font renders at label density.
func strategyOptions(spec label.Spec) ([]halftone.Option, error) {
	if threshold < 0 || threshold > 255 {
		return nil, fmt.Errorf("threshold %d outside 0-255", threshold)
	}
	opts := []halftone.Option{
		halftone.WithMatrixOrder(matrixOrder),
		halftone.WithThreshold(uint8(threshold)),
		halftone.WithHistoryDepth(historyDepth),
		halftone.WithDecayRatio(decayRatio),
	}
	if fontPath != "" {
		ttf, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		ramp, err := halftone.RampFromFont(ttf, halftone.DefaultRampChars, fontSize, float64(spec.DPI))
		if err != nil {
			return nil, err
		}
		opts = append(opts, halftone.WithGlyphRamp(ramp))
	}
	return opts, nil
}

// renderLabel runs the full pipeline: decode, preprocess onto the
// label canvas, halftone.
func renderLabel() (*halftone.Binary, label.Spec, error) {
	spec, err := label.Lookup(labelCode)
	if err != nil {
		return nil, label.Spec{}, err
	}

	opts, err := strategyOptions(spec)
	if err != nil {
		return nil, label.Spec{}, err
	}
	strategy, err := halftone.New(ditherName, opts...)
	if err != nil {
		return nil, label.Spec{}, err
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, label.Spec{}, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, label.Spec{}, fmt.Errorf("decoding %s: %w", inputPath, err)
	}
	log.WithFields(log.Fields{
		"input":    inputPath,
		"format":   format,
		"label":    spec.Code,
		"strategy": strategy.Name(),
	}).Debug("rendering label")

	gray, err := imageutil.Prepare(img, brightness, contrast, spec.WidthPx, spec.HeightPx)
	if err != nil {
		return nil, label.Spec{}, err
	}
	out, err := strategy.Apply(gray)
	if err != nil {
		return nil, label.Spec{}, err
	}
	return out, spec, nil
}

// writePNG encodes the raster as a true 1-bit PNG.
func writePNG(img *halftone.Binary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runPreview(_ *cobra.Command, _ []string) error {
	out, spec, err := renderLabel()
	if err != nil {
		return err
	}
	if err := writePNG(out, outputPath); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"output": outputPath,
		"size":   fmt.Sprintf("%dx%d", spec.WidthPx, spec.HeightPx),
	}).Info("preview written")
	return nil
}

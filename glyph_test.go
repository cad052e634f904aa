package halftone

import (
	"errors"
	"testing"
)

// twoGlyphRamp builds a synthetic ramp with an empty light glyph and a
// fully inked dark glyph on a cell×cell grid.
func twoGlyphRamp(t *testing.T, cell int) *GlyphRamp {
	t.Helper()
	light := make([]bool, cell*cell)
	dark := make([]bool, cell*cell)
	for i := range dark {
		dark[i] = true
	}
	ramp, err := NewGlyphRamp(cell, cell, [][]bool{light, dark})
	if err != nil {
		t.Fatal(err)
	}
	return ramp
}

func TestGlyphDarkestCellSelected(t *testing.T) {
	t.Parallel()

	// A single all-black cell must pick the ramp's last glyph.
	ramp := twoGlyphRamp(t, 4)
	s, err := New("ascii", WithGlyphRamp(ramp))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Apply(uniformImage(4, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.DarkCount() != 16 {
		t.Errorf("dark cell inked %d of 16 pixels", out.DarkCount())
	}
}

func TestGlyphAllWhite(t *testing.T) {
	t.Parallel()

	ramp := twoGlyphRamp(t, 4)
	s, err := New("ascii", WithGlyphRamp(ramp))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Apply(uniformImage(8, 8, 255))
	if err != nil {
		t.Fatal(err)
	}
	if out.DarkCount() != 0 {
		t.Errorf("white input inked %d pixels", out.DarkCount())
	}
}

func TestGlyphMarginStaysBackground(t *testing.T) {
	t.Parallel()

	// 10x10 with 4x4 cells leaves a 2-pixel margin that no glyph may
	// touch, even for an all-black input.
	ramp := twoGlyphRamp(t, 4)
	s, err := New("ascii", WithGlyphRamp(ramp))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Apply(uniformImage(10, 10, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.Width() != 10 || out.Height() != 10 {
		t.Fatalf("output %dx%d, want 10x10", out.Width(), out.Height())
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inGrid := x < 8 && y < 8
			if !inGrid && out.Dark(x, y) {
				t.Errorf("margin pixel (%d,%d) was inked", x, y)
			}
			if inGrid && !out.Dark(x, y) {
				t.Errorf("grid pixel (%d,%d) missed its ink", x, y)
			}
		}
	}
}

func TestGlyphSmallerThanCell(t *testing.T) {
	t.Parallel()

	ramp := twoGlyphRamp(t, 8)
	s, err := New("ascii", WithGlyphRamp(ramp))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Apply(uniformImage(5, 5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.DarkCount() != 0 {
		t.Errorf("sub-cell input inked %d pixels", out.DarkCount())
	}
}

func TestGlyphIndexMonotonic(t *testing.T) {
	t.Parallel()

	cell := 2
	glyphs := make([][]bool, 10)
	for i := range glyphs {
		glyphs[i] = make([]bool, cell*cell)
	}
	ramp, err := NewGlyphRamp(cell, cell, glyphs)
	if err != nil {
		t.Fatal(err)
	}

	if ramp.Index(255) != 0 {
		t.Errorf("Index(255) = %d, want 0", ramp.Index(255))
	}
	if ramp.Index(0) != ramp.Len()-1 {
		t.Errorf("Index(0) = %d, want %d", ramp.Index(0), ramp.Len()-1)
	}
	prev := ramp.Index(255)
	for v := 254; v >= 0; v-- {
		idx := ramp.Index(uint8(v))
		if idx < prev {
			t.Fatalf("Index(%d) = %d dropped below Index(%d) = %d",
				v, idx, v+1, prev)
		}
		prev = idx
	}
}

func TestDefaultRamp(t *testing.T) {
	t.Parallel()

	ramp, err := DefaultRamp()
	if err != nil {
		t.Fatal(err)
	}
	if ramp.Len() != len(DefaultRampChars) {
		t.Errorf("ramp has %d glyphs, want %d", ramp.Len(), len(DefaultRampChars))
	}
	w, h := ramp.CellSize()
	if w <= 0 || h <= 0 {
		t.Errorf("cell size %dx%d", w, h)
	}
}

func TestRampValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewGlyphRamp(0, 4, nil); !errors.Is(err, ErrBadConfig) {
		t.Errorf("zero cell width: err = %v, want ErrBadConfig", err)
	}
	if _, err := NewGlyphRamp(2, 2, nil); !errors.Is(err, ErrBadConfig) {
		t.Errorf("empty ramp: err = %v, want ErrBadConfig", err)
	}
	if _, err := NewGlyphRamp(2, 2, [][]bool{make([]bool, 3)}); !errors.Is(err, ErrBadConfig) {
		t.Errorf("short glyph: err = %v, want ErrBadConfig", err)
	}
	if _, err := RampFromFont(nil, DefaultRampChars, 8, 72); err == nil {
		t.Error("garbage font data must not parse")
	}
	if _, err := RampFromFont(nil, "", 8, 72); !errors.Is(err, ErrBadConfig) {
		t.Errorf("empty chars: err = %v, want ErrBadConfig", err)
	}
	if _, err := RampFromFont(nil, "x", 0, 72); !errors.Is(err, ErrBadConfig) {
		t.Errorf("zero size: err = %v, want ErrBadConfig", err)
	}
}

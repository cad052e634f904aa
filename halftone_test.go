package halftone

import (
	"bytes"
	"errors"
	"sort"
	"testing"
)

func TestStrategiesList(t *testing.T) {
	t.Parallel()

	want := []string{
		"ascii", "atkinson", "bayer", "burkes", "cluster",
		"floyd-steinberg", "jarvis-judice-ninke", "riemersma",
		"sierra-2-4a", "sierra2", "sierra3", "stucki", "threshold",
		"yliluoma",
	}
	got := Strategies()
	if !sort.StringsAreSorted(got) {
		t.Error("Strategies() is not sorted")
	}
	if len(got) != len(want) {
		t.Fatalf("Strategies() returned %d names, want %d: %v",
			len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strategies()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewAliases(t *testing.T) {
	t.Parallel()

	s, err := New("floyd")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "floyd-steinberg" {
		t.Errorf("floyd resolves to %q", s.Name())
	}

	s, err = New("none")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "threshold" {
		t.Errorf("none resolves to %q", s.Name())
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	t.Parallel()

	if _, err := New("ostromoukhov"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}
}

func TestEveryStrategyKeepsWhiteWhite(t *testing.T) {
	t.Parallel()

	// The invariant shared by all strategies: a pure white input emits
	// no marks and keeps its dimensions.
	src := uniformImage(4, 4, 255)
	for _, name := range Strategies() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		out, err := s.Apply(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if out.Width() != 4 || out.Height() != 4 {
			t.Errorf("%s: output %dx%d, want 4x4",
				name, out.Width(), out.Height())
		}
		if out.DarkCount() != 0 {
			t.Errorf("%s: white input produced %d dark pixels",
				name, out.DarkCount())
		}
	}
}

func TestEveryStrategyPreservesDimensions(t *testing.T) {
	t.Parallel()

	src := uniformImage(13, 7, 90)
	for _, name := range Strategies() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		out, err := s.Apply(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if out.Width() != 13 || out.Height() != 7 {
			t.Errorf("%s: output %dx%d, want 13x7",
				name, out.Width(), out.Height())
		}
	}
}

func TestApplyRejectsNilInput(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"threshold", "floyd-steinberg", "riemersma"} {
		s, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Apply(nil); !errors.Is(err, ErrBadConfig) {
			t.Errorf("%s: err = %v, want ErrBadConfig", name, err)
		}
	}
}

func TestBinaryPack(t *testing.T) {
	t.Parallel()

	b := NewBinary(10, 2)
	b.SetDark(0, 0, true)
	b.SetDark(9, 1, true)

	want := []byte{0x80, 0x00, 0x00, 0x40}
	if got := b.Pack(); !bytes.Equal(got, want) {
		t.Errorf("Pack() = %x, want %x", got, want)
	}
}

func TestGrayscaleFromImageReusesGray(t *testing.T) {
	t.Parallel()

	src := NewGrayscale(6, 4)
	src.SetIntensity(3, 2, 77)
	got := GrayscaleFromImage(src.Gray)
	if got.Gray != src.Gray {
		t.Error("conversion from image.Gray should not copy")
	}
	if got.Intensity(3, 2) != 77 {
		t.Errorf("intensity = %d, want 77", got.Intensity(3, 2))
	}
}

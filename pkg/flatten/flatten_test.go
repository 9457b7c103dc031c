package flatten

import (
	"image"
	"image/color"
	"testing"
)

// frame builds an 8x8 dark background with a bright square in the middle.
func frame(object color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	bg := color.NRGBA{R: 13, G: 13, B: 13, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	for y := 3; y < 5; y++ {
		for x := 3; x < 5; x++ {
			img.SetNRGBA(x, y, object)
		}
	}
	return img
}

func TestVariantsMasked(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	masked, _ := Variants(frame(white))

	if got := masked.NRGBAAt(0, 0); got != replacementBG {
		t.Errorf("background pixel = %+v, want %+v", got, replacementBG)
	}
	if got := masked.NRGBAAt(3, 3); got != white {
		t.Errorf("object pixel = %+v, want %+v", got, white)
	}
}

func TestVariantsFlatUsesMeanObjectColor(t *testing.T) {
	img := frame(color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	// Make one object pixel brighter so the mean differs from any single pixel.
	img.SetNRGBA(4, 4, color.NRGBA{R: 240, G: 140, B: 90, A: 255})

	_, flat := Variants(img)

	// Mean of three (200,100,50) pixels and one (240,140,90) pixel.
	want := color.NRGBA{R: 210, G: 110, B: 60, A: 255}
	for _, xy := range [][2]int{{3, 3}, {4, 3}, {3, 4}, {4, 4}} {
		if got := flat.NRGBAAt(xy[0], xy[1]); got != want {
			t.Errorf("flat object pixel %v = %+v, want %+v", xy, got, want)
		}
	}
	if got := flat.NRGBAAt(7, 7); got != replacementBG {
		t.Errorf("flat background pixel = %+v, want %+v", got, replacementBG)
	}
}

func TestMaskThresholdIsSigned(t *testing.T) {
	// One pixel barely above the background (+1/255 < 0.005) and one
	// well below it: neither counts as object.
	img := frame(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(0, 7, color.NRGBA{R: 14, G: 13, B: 13, A: 255})
	img.SetNRGBA(7, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})

	masked, _ := Variants(img)
	if got := masked.NRGBAAt(0, 7); got != replacementBG {
		t.Errorf("near-background pixel kept: %+v", got)
	}
	if got := masked.NRGBAAt(7, 0); got != replacementBG {
		t.Errorf("darker-than-background pixel kept: %+v", got)
	}

	// Two units above background crosses the threshold.
	img.SetNRGBA(0, 7, color.NRGBA{R: 15, G: 13, B: 13, A: 255})
	masked, _ = Variants(img)
	if got := masked.NRGBAAt(0, 7); got == replacementBG {
		t.Error("above-threshold pixel was masked out")
	}
}

func TestVariantsEmptyObject(t *testing.T) {
	// A frame with no object pixels must not divide by zero.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 13, G: 13, B: 13, A: 255})
		}
	}
	masked, flat := Variants(img)
	if got := masked.NRGBAAt(2, 2); got != replacementBG {
		t.Errorf("masked pixel = %+v, want %+v", got, replacementBG)
	}
	if got := flat.NRGBAAt(2, 2); got != replacementBG {
		t.Errorf("flat pixel = %+v, want %+v", got, replacementBG)
	}
}

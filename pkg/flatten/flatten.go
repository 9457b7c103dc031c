// Package flatten post-processes rendered frames into the two published
// variants: the original render with its background replaced by a
// transparent uniform gray, and a "flat" copy where every object pixel is
// the mean object color. The object mask is derived from the render
// itself, not from scene knowledge, so the same pass works on any frame.
package flatten

import (
	"image"
	"image/color"
	"image/draw"
)

// maskDelta is the per-channel threshold (on a 0-1 scale) above the
// background color at which a pixel counts as object. The comparison is
// signed: pixels darker than the background stay background.
const maskDelta = 0.005

// replacementBG is the uniform background written into both variants:
// mid gray with zero alpha.
var replacementBG = color.NRGBA{R: 70, G: 70, B: 70, A: 0}

// Variants splits a rendered frame into its masked and flattened forms.
// The background color is read from the top-left pixel. The masked image
// keeps object pixels as rendered; the flat image replaces them all with
// their mean color. Both get replacementBG everywhere else.
func Variants(src image.Image) (masked, flat *image.NRGBA) {
	b := src.Bounds()
	orig := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(orig, orig.Bounds(), src, b.Min, draw.Src)

	mask := objectMask(orig)

	// Mean object color across all four channels.
	var sum [4]float64
	var count int
	for i, isObject := range mask {
		if !isObject {
			continue
		}
		for c := 0; c < 4; c++ {
			sum[c] += float64(orig.Pix[i*4+c])
		}
		count++
	}
	var mean color.NRGBA
	if count > 0 {
		mean = color.NRGBA{
			R: uint8(sum[0]/float64(count) + 0.5),
			G: uint8(sum[1]/float64(count) + 0.5),
			B: uint8(sum[2]/float64(count) + 0.5),
			A: uint8(sum[3]/float64(count) + 0.5),
		}
	}

	masked = image.NewNRGBA(orig.Bounds())
	flat = image.NewNRGBA(orig.Bounds())
	for i, isObject := range mask {
		o := i * 4
		if isObject {
			copy(masked.Pix[o:o+4], orig.Pix[o:o+4])
			flat.Pix[o] = mean.R
			flat.Pix[o+1] = mean.G
			flat.Pix[o+2] = mean.B
			flat.Pix[o+3] = mean.A
		} else {
			writeNRGBA(masked.Pix[o:o+4], replacementBG)
			writeNRGBA(flat.Pix[o:o+4], replacementBG)
		}
	}
	return masked, flat
}

// objectMask flags every pixel whose color exceeds the top-left
// background pixel by more than maskDelta on any channel.
func objectMask(img *image.NRGBA) []bool {
	n := len(img.Pix) / 4
	mask := make([]bool, n)
	if n == 0 {
		return mask
	}
	var bg [4]float64
	for c := 0; c < 4; c++ {
		bg[c] = float64(img.Pix[c]) / 255
	}
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			if float64(img.Pix[i*4+c])/255-bg[c] > maskDelta {
				mask[i] = true
				break
			}
		}
	}
	return mask
}

func writeNRGBA(dst []byte, c color.NRGBA) {
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
	dst[3] = c.A
}

// Package icon renders the studio brand mark as an in-memory image.
//
// The mark is a disc of the brand blue fading toward the center, crossed
// by a white S-curve snake with two fuchsia eyes. Sizes below 32 pixels
// are too small for the curve and fall back to a plain inset square.
package icon

import (
	"image"

	"github.com/fogleman/gg"
)

// Brand palette channels.
const (
	brandR, brandG, brandB    = 0, 212, 255 // electric blue
	eyeRed, eyeGreen, eyeBlue = 255, 0, 100 // fuchsia
)

const (
	// gradientSteps is the number of concentric discs in the background fade.
	gradientSteps = 10

	// markThreshold is the smallest size that still renders the full mark.
	markThreshold = 32

	// snakeSamples is the number of points along the S-curve polyline.
	snakeSamples = 100
)

// Draw renders the square brand icon at size×size pixels on a transparent
// canvas. The output is deterministic for a given size. size must be
// positive.
func Draw(size int) image.Image {
	dc := gg.NewContext(size, size)
	c := float64(size) / 2

	// Background: concentric discs, full alpha at the rim fading toward
	// the center.
	for i := 0; i < gradientSteps; i++ {
		r := size/2 - i*2
		if r < 1 {
			r = 1
		}
		dc.SetRGBA255(brandR, brandG, brandB, 255*(gradientSteps-i)/gradientSteps)
		dc.DrawCircle(c, c, float64(r))
		dc.Fill()
	}

	if size < markThreshold {
		m := float64(size) / 4
		dc.SetRGB255(255, 255, 255)
		dc.DrawRectangle(m, m, float64(size)-2*m, float64(size)-2*m)
		dc.Fill()
		return dc.Image()
	}

	// Snake body: a cubic S-curve sampled as a polyline.
	width := size / 8
	if width < 2 {
		width = 2
	}
	dc.SetRGB255(255, 255, 255)
	dc.SetLineWidth(float64(width))
	for i := 0; i < snakeSamples; i++ {
		t := float64(i) / snakeSamples
		x := c + 0.3*float64(size)*(t-0.5)
		y := c + 0.4*float64(size)*8*(t-0.5)*(t-0.5)*(t-0.5)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	// Eyes, symmetric about the vertical center line.
	er := size / 20
	if er < 1 {
		er = 1
	}
	ey := c - float64(size)/4
	dc.SetRGBA255(eyeRed, eyeGreen, eyeBlue, 255)
	dc.DrawCircle(c-float64(size)/6, ey, float64(er))
	dc.Fill()
	dc.DrawCircle(c+float64(size)/6, ey, float64(er))
	dc.Fill()

	return dc.Image()
}

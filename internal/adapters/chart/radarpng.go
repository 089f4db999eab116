package chart

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
)

// Raster geometry for embedded radar images. Square output keeps the
// aspect-ratio math in the document layer trivial.
const (
	imageSize   = 1000
	labelMargin = 0.82 // plot radius as a fraction of the half-size
	ringCount   = 5
)

type rgb struct{ r, g, b float64 }

// RenderPNG rasterizes a radar spec (or its placeholder) to a PNG file.
func RenderPNG(spec *Spec, path string, fontPath string) error {
	dc := gg.NewContext(imageSize, imageSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			// Best-effort; the built-in face still renders ASCII labels.
			_ = dc.LoadFontFace(fontPath, 22)
		}
	}

	if spec.Placeholder || len(spec.Axes) < minRadarAxes {
		dc.SetRGB(0.35, 0.35, 0.35)
		msg := spec.Message
		if msg == "" {
			msg = "insufficient rated attributes"
		}
		dc.DrawStringAnchored(msg, imageSize/2, imageSize/2, 0.5, 0.5)
		if err := dc.SavePNG(path); err != nil {
			return fmt.Errorf("render radar placeholder: %w", err)
		}
		return nil
	}

	cx, cy := float64(imageSize)/2, float64(imageSize)/2
	radius := cx * labelMargin * 0.85
	n := len(spec.Axes)
	maxVal := spec.MaxValue
	if maxVal <= 0 {
		maxVal = 5
	}

	// Grid rings and their scale labels.
	dc.SetLineWidth(1)
	for ring := 1; ring <= ringCount; ring++ {
		r := radius * float64(ring) / ringCount
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.DrawCircle(cx, cy, r)
		dc.Stroke()
		dc.SetRGB(0.55, 0.55, 0.55)
		label := strconv.FormatFloat(maxVal*float64(ring)/ringCount, 'f', -1, 64)
		dc.DrawStringAnchored(label, cx+6, cy-r, 0, 0.5)
	}

	// Spokes and axis labels, clockwise from the top.
	for i, axis := range spec.Axes {
		a := angleFor(i, n)
		x := cx + radius*math.Cos(a)
		y := cy + radius*math.Sin(a)
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()

		lx := cx + radius*1.12*math.Cos(a)
		ly := cy + radius*1.12*math.Sin(a)
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(axis, lx, ly, 0.5, 0.5)
	}

	// Series polygons, filled translucent then stroked.
	for si, series := range spec.Series {
		color := hexToRGB(series.Color)
		if series.Color == "" {
			color = hexToRGB(defaultPalette[si%len(defaultPalette)])
		}
		for i, p := range series.Data {
			a := angleFor(i, n)
			r := radius * clampUnit(p.Value/maxVal)
			x := cx + r*math.Cos(a)
			y := cy + r*math.Sin(a)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.SetRGBA(color.r, color.g, color.b, 0.15)
		dc.FillPreserve()
		dc.SetRGBA(color.r, color.g, color.b, 1)
		dc.SetLineWidth(3)
		dc.Stroke()
	}

	if spec.Title != "" {
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(spec.Title, cx, 28, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render radar: %w", err)
	}
	return nil
}

// angleFor places axis i of n clockwise starting at twelve o'clock.
func angleFor(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hexToRGB(hex string) rgb {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{r: 0.2, g: 0.2, b: 0.8}
	}
	parse := func(s string) float64 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255
	}
	return rgb{r: parse(hex[1:3]), g: parse(hex[3:5]), b: parse(hex[5:7])}
}

package report

import (
	"fmt"
	"image/png"
	"os"
)

// Layout constants, in millimetres on an A4 page.
const (
	pageBreakMargin = 15
	radarWidthMM    = 90
	radarGapMM      = 8
	radarPadBottom  = 10
	rowHeightMM     = 8
	lineHeightMM    = 6
)

// fitTwoAcross returns the per-image width for a two-image row. When the
// requested width would push the row past the usable page width, both
// images shrink proportionally so the row fits exactly.
func fitTwoAcross(pageW, leftMargin, rightMargin, gap, want float64) float64 {
	avail := pageW - leftMargin - rightMargin
	if 2*want+gap > avail {
		return (avail - gap) / 2
	}
	return want
}

// scaledHeight converts pixel dimensions to the height in mm of an image
// scaled to targetW, preserving aspect ratio.
func scaledHeight(widthPx, heightPx int, targetW float64) float64 {
	if widthPx <= 0 {
		return targetW
	}
	return targetW * float64(heightPx) / float64(widthPx)
}

// pngDimensions reads only the header of a PNG file.
func pngDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read image size: %w", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("read image size: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

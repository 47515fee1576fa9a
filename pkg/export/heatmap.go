package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/loadlens/loadlens/pkg/types"
)

const (
	heatmapCellW = 80
	heatmapCellH = 20
	heatmapPadX  = 40
	heatmapPadY  = 24
)

// yellow-to-red ramp endpoints, matching the dashboard palette
var (
	heatmapLow  = color.NRGBA{R: 255, G: 237, B: 160, A: 255}
	heatmapHigh = color.NRGBA{R: 189, G: 0, B: 38, A: 255}
)

// HeatmapPNG renders the weekly hour-by-day matrix as a raster image, hour 0
// at the top. Cells with no samples are left gray.
func HeatmapPNG(w io.Writer, hm types.Heatmap) error {
	width := heatmapPadX + 7*heatmapCellW
	height := heatmapPadY + 24*heatmapCellH
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 245, G: 245, B: 245, A: 255}), image.Point{}, draw.Src)

	var maxKW float64
	for h := 0; h < 24; h++ {
		for d := 0; d < 7; d++ {
			if hm.Values[h][d] > maxKW {
				maxKW = hm.Values[h][d]
			}
		}
	}

	for h := 0; h < 24; h++ {
		for d := 0; d < 7; d++ {
			cell := image.Rect(
				heatmapPadX+d*heatmapCellW,
				heatmapPadY+h*heatmapCellH,
				heatmapPadX+(d+1)*heatmapCellW-1,
				heatmapPadY+(h+1)*heatmapCellH-1,
			)
			fill := color.NRGBA{R: 220, G: 220, B: 220, A: 255}
			if hm.Counts[h][d] > 0 && maxKW > 0 {
				fill = rampColor(hm.Values[h][d] / maxKW)
			}
			draw.Draw(img, cell, image.NewUniform(fill), image.Point{}, draw.Src)
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return nil
}

func rampColor(t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return color.NRGBA{
		R: lerp(heatmapLow.R, heatmapHigh.R),
		G: lerp(heatmapLow.G, heatmapHigh.G),
		B: lerp(heatmapLow.B, heatmapHigh.B),
		A: 255,
	}
}

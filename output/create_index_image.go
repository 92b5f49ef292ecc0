package output

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/landsight/landsight-index-poc/internal/properties"
	"gonum.org/v1/gonum/floats"
)

// PlotConfig carries the rendering knobs explicitly instead of package globals.
type PlotConfig struct {
	Scale          int    // screen pixels per raster cell
	Colormap       string // one of Colormaps
	Title          string
	TitleBarHeight int
	ColorbarHeight int
}

func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Scale:          1,
		Colormap:       "Greens",
		TitleBarHeight: 24,
		ColorbarHeight: 16,
	}
}

type colorStop struct {
	R, G, B float64
}

// Colormaps maps names to gradient stops, interpolated linearly. Names follow
// the matplotlib palettes the analysis notebooks use.
var Colormaps = map[string][]colorStop{
	"Greens": {{1, 1, 1}, {0.6, 0.85, 0.6}, {0, 0.4, 0.1}},
	"Greys":  {{1, 1, 1}, {0, 0, 0}},
	"Blues":  {{1, 1, 1}, {0.5, 0.7, 0.95}, {0.03, 0.19, 0.42}},
	"RdYlGn": {{0.65, 0, 0.15}, {1, 1, 0.75}, {0, 0.4, 0.15}},
}

func colormapColor(name string, t float64) (float64, float64, float64) {
	stops, ok := Colormaps[name]
	if !ok {
		stops = Colormaps["Greens"]
	}
	if t <= 0 {
		return stops[0].R, stops[0].G, stops[0].B
	}
	if t >= 1 {
		last := stops[len(stops)-1]
		return last.R, last.G, last.B
	}
	scaled := t * float64(len(stops)-1)
	i := int(scaled)
	frac := scaled - float64(i)
	a, b := stops[i], stops[i+1]
	return a.R + (b.R-a.R)*frac, a.G + (b.G-a.G)*frac, a.B + (b.B-a.B)*frac
}

// finiteRange returns the min and max of the finite cells. A grid with no
// finite cells falls back to [-1, 1], the nominal normalized-difference range.
func finiteRange(data [][]float64) (float64, float64) {
	finite := []float64{}
	for _, row := range data {
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
	}
	if len(finite) == 0 {
		return -1, 1
	}
	min := floats.Min(finite)
	max := floats.Max(finite)
	if min == max {
		max = min + 1
	}
	return min, max
}

// CreateIndexImage renders a display-oriented index grid to a PNG under
// data/result. Missing cells come out neutral gray; a colorbar strip under the
// map shows the value ramp.
func CreateIndexImage(data [][]float64, outputImageName string, config PlotConfig) (string, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return "", fmt.Errorf("cannot render an empty grid")
	}
	if config.Scale < 1 {
		config.Scale = 1
	}

	height := len(data)
	width := len(data[0])
	canvasWidth := width * config.Scale
	canvasHeight := height*config.Scale + config.TitleBarHeight + config.ColorbarHeight

	min, max := finiteRange(data)

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if config.Title != "" && config.TitleBarHeight > 0 {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%s [%.2f, %.2f]", config.Title, min, max), float64(canvasWidth)/2, float64(config.TitleBarHeight)/2, 0.5, 0.5)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := data[y][x]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				dc.SetRGB(0.7, 0.7, 0.7)
			} else {
				dc.SetRGB(colormapColor(config.Colormap, (v-min)/(max-min)))
			}
			dc.DrawRectangle(float64(x*config.Scale), float64(config.TitleBarHeight+y*config.Scale), float64(config.Scale), float64(config.Scale))
			dc.Fill()
		}
	}

	if config.ColorbarHeight > 0 && canvasWidth > 1 {
		barTop := float64(config.TitleBarHeight + height*config.Scale)
		for px := 0; px < canvasWidth; px++ {
			dc.SetRGB(colormapColor(config.Colormap, float64(px)/float64(canvasWidth-1)))
			dc.DrawRectangle(float64(px), barTop, 1, float64(config.ColorbarHeight))
			dc.Fill()
		}
	}

	outputImagePath := fmt.Sprintf("%s/data/result/%s.png", properties.RootPath(), outputImageName)
	if err := os.MkdirAll(filepath.Dir(outputImagePath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result directory: %v", err)
	}
	if err := dc.SavePNG(outputImagePath); err != nil {
		return "", fmt.Errorf("failed to save PNG file: %v", err)
	}

	fmt.Println("PNG image created successfully at", outputImagePath)
	return outputImagePath, nil
}

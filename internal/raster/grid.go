package raster

import "fmt"

// Grid is a single 2-D raster of float64 values. Row 0 is the northernmost row,
// matching GDAL's north-up convention. Transform is a GDAL-style geotransform
// carried along from the source dataset so derived rasters keep their footprint.
type Grid struct {
	Data      [][]float64
	Transform [6]float64
}

func NewGrid(rows, cols int, transform [6]float64) *Grid {
	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
	}
	return &Grid{Data: data, Transform: transform}
}

func (g *Grid) Rows() int {
	return len(g.Data)
}

func (g *Grid) Cols() int {
	if len(g.Data) == 0 {
		return 0
	}
	return len(g.Data[0])
}

func (g *Grid) SameShape(other *Grid) bool {
	return g.Rows() == other.Rows() && g.Cols() == other.Cols()
}

// BandBundle holds the co-registered band grids of one scene, keyed by band name
// (red, green, blue, nir, swir16, swir22). All grids share shape and geotransform.
type BandBundle struct {
	Bands map[string]*Grid
}

type MissingBandError struct {
	Band string
}

func (e MissingBandError) Error() string {
	return fmt.Sprintf("required band %q is missing from the bundle", e.Band)
}

// Band returns the grid for the named band or a MissingBandError.
func (b *BandBundle) Band(name string) (*Grid, error) {
	grid, ok := b.Bands[name]
	if !ok || grid == nil {
		return nil, MissingBandError{Band: name}
	}
	return grid, nil
}

// ToDisplayGrid returns a copy of the grid data with the row order reversed, so
// row 0 of the result is the southernmost row. Applying it twice restores the
// original orientation.
func ToDisplayGrid(g *Grid) [][]float64 {
	rows := g.Rows()
	flipped := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		src := g.Data[rows-1-i]
		row := make([]float64, len(src))
		copy(row, src)
		flipped[i] = row
	}
	return flipped
}

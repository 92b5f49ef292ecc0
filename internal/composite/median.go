package composite

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/landsight/landsight-index-poc/internal/raster"
)

// ErrEmptyInput is returned when a reduction is requested over zero rasters.
var ErrEmptyInput = errors.New("cannot reduce an empty sequence of rasters")

// AlignmentError reports a raster whose shape differs from the rest of the stack.
type AlignmentError struct {
	Index      int
	Rows, Cols int
	WantRows   int
	WantCols   int
}

func (e AlignmentError) Error() string {
	return fmt.Sprintf("raster %d has shape %dx%d, expected %dx%d", e.Index, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

// Median stacks the given rasters along an observation axis and computes the
// per-cell median. Non-finite observations are excluded; a cell is NaN only when
// every observation is non-finite there. All rasters must share one shape, and
// the result inherits the first raster's geotransform.
func Median(rasters []*raster.Grid) (*raster.Grid, error) {
	if len(rasters) == 0 {
		return nil, ErrEmptyInput
	}

	first := rasters[0]
	for i, r := range rasters {
		if !r.SameShape(first) {
			return nil, AlignmentError{Index: i, Rows: r.Rows(), Cols: r.Cols(), WantRows: first.Rows(), WantCols: first.Cols()}
		}
	}

	result := raster.NewGrid(first.Rows(), first.Cols(), first.Transform)
	values := make([]float64, 0, len(rasters))
	for y := 0; y < first.Rows(); y++ {
		for x := 0; x < first.Cols(); x++ {
			values = values[:0]
			for _, r := range rasters {
				v := r.Data[y][x]
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					values = append(values, v)
				}
			}
			result.Data[y][x] = median(values)
		}
	}
	return result, nil
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

package pipeline

import (
	"github.com/landsight/landsight-index-poc/internal/raster"
	"github.com/landsight/landsight-index-poc/internal/sentinel"
	"github.com/landsight/landsight-index-poc/internal/spectral"
	"github.com/landsight/landsight-index-poc/internal/stac"
	"github.com/paulmach/orb"
	"github.com/schollz/progressbar/v3"
)

// CalculateIndexOverItems loads each scene in order and applies the formula to
// it, returning one derived raster per scene in the same order. Processing is
// strictly sequential; the first failing scene aborts the run and its error is
// returned with nothing salvaged. The progress bar ticks once per scene.
func CalculateIndexOverItems(backend sentinel.Backend, items []stac.Item, bands []string, aoi orb.Polygon, formula spectral.Formula) ([]*raster.Grid, error) {
	results := make([]*raster.Grid, 0, len(items))
	progressBar := progressbar.Default(int64(len(items)))

	for _, item := range items {
		data, err := sentinel.Load(backend, item, bands, aoi)
		if err != nil {
			return nil, err
		}
		index, err := formula(data)
		if err != nil {
			return nil, err
		}
		results = append(results, index)
		progressBar.Add(1)
	}

	return results, nil
}

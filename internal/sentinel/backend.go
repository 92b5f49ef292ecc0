package sentinel

import (
	"fmt"
	"math"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/landsight/landsight-index-poc/internal/raster"
	"github.com/landsight/landsight-index-poc/internal/stac"
	"github.com/paulmach/orb"
)

// GDALBackend reads band assets through GDAL. Remote hrefs go through
// /vsicurl/ so cloud-optimized GeoTIFFs are fetched windowed instead of whole.
// Callers must run godal.RegisterAll once before using it.
type GDALBackend struct{}

func (GDALBackend) LoadBands(item stac.Item, bands []string, extent orb.Bound) (*raster.BandBundle, error) {
	bundle := &raster.BandBundle{Bands: make(map[string]*raster.Grid, len(bands))}
	for _, name := range bands {
		asset, ok := item.Assets[name]
		if !ok {
			return nil, fmt.Errorf("scene %s has no asset for band %s", item.ID, name)
		}
		grid, err := readBandWindow(asset.Href, extent)
		if err != nil {
			return nil, fmt.Errorf("failed to load band %s of scene %s: %w", name, item.ID, err)
		}
		bundle.Bands[name] = grid
	}
	return bundle, nil
}

func openDataset(href string) (*godal.Dataset, error) {
	path := href
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		path = "/vsicurl/" + href
	}
	return godal.Open(path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
}

// readBandWindow reads the part of the asset that covers the extent into a
// float64 grid. Time-stacked assets expose one raster band per slice; only the
// first band is read. The window is clamped to the raster, so a scene that only
// partially covers the extent yields its covered part.
func readBandWindow(href string, extent orb.Bound) (*raster.Grid, error) {
	ds, err := openDataset(href)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	gt, err := ds.GeoTransform()
	if err != nil {
		return nil, err
	}

	sizeX := ds.Structure().SizeX
	sizeY := ds.Structure().SizeY

	// gt[5] is negative for north-up rasters, so extent.Max Y maps to row 0 side.
	col0 := int(math.Floor((extent.Min[0] - gt[0]) / gt[1]))
	col1 := int(math.Ceil((extent.Max[0] - gt[0]) / gt[1]))
	row0 := int(math.Floor((extent.Max[1] - gt[3]) / gt[5]))
	row1 := int(math.Ceil((extent.Min[1] - gt[3]) / gt[5]))

	col0 = clampInt(col0, 0, sizeX)
	col1 = clampInt(col1, 0, sizeX)
	row0 = clampInt(row0, 0, sizeY)
	row1 = clampInt(row1, 0, sizeY)

	width := col1 - col0
	height := row1 - row0
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("extent %v is outside the raster", extent)
	}

	band := ds.Bands()[0]
	data := make([]float64, width*height)
	if err := band.Read(col0, row0, data, width, height); err != nil {
		return nil, err
	}

	windowTransform := gt
	windowTransform[0] = gt[0] + float64(col0)*gt[1]
	windowTransform[3] = gt[3] + float64(row0)*gt[5]

	grid := &raster.Grid{Data: make([][]float64, height), Transform: windowTransform}
	for y := 0; y < height; y++ {
		grid.Data[y] = data[y*width : (y+1)*width]
	}
	return grid, nil
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

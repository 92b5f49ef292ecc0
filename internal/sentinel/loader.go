package sentinel

import (
	"fmt"

	"github.com/landsight/landsight-index-poc/internal/raster"
	"github.com/landsight/landsight-index-poc/internal/stac"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// Backend fetches and decodes the requested bands of one scene within a
// bounding extent, returning them as a co-registered bundle.
type Backend interface {
	LoadBands(item stac.Item, bands []string, extent orb.Bound) (*raster.BandBundle, error)
}

// EmptyIntersectionError means the AOI does not overlap the scene footprint,
// so there is no extent to load.
type EmptyIntersectionError struct {
	ItemID string
}

func (e EmptyIntersectionError) Error() string {
	return fmt.Sprintf("scene %s does not intersect the area of interest", e.ItemID)
}

// FindIntersection clips the scene footprint to the AOI's bounding box. The
// AOI is an axis-aligned box in this workflow, so the clip is the exact
// geometric intersection. A disjoint pair yields an empty polygon.
func FindIntersection(footprint, aoi orb.Polygon) orb.Polygon {
	if footprint == nil {
		return nil
	}
	return clip.Polygon(aoi.Bound(), footprint.Clone())
}

// Load fetches the requested bands of one scene, limited to the part of its
// footprint inside the AOI. Backend failures are returned as-is, no retry.
func Load(backend Backend, item stac.Item, bands []string, aoi orb.Polygon) (*raster.BandBundle, error) {
	intersection := FindIntersection(item.Footprint(), aoi)
	if len(intersection) == 0 || planar.Area(intersection) == 0 {
		return nil, EmptyIntersectionError{ItemID: item.ID}
	}
	return backend.LoadBands(item, bands, intersection.Bound())
}

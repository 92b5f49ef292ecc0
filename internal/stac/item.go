package stac

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Asset is one downloadable file attached to a catalog item. Band assets are
// keyed by band name (red, green, nir, ...) in Sentinel-2 collections.
type Asset struct {
	Href  string `json:"href"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Item is one scene returned by a STAC search: an identifier, a footprint
// geometry, a free-form properties map and the per-band assets.
type Item struct {
	ID         string                 `json:"id"`
	Collection string                 `json:"collection"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
	Assets     map[string]Asset       `json:"assets"`
}

// Footprint returns the item's footprint as a polygon. MultiPolygon footprints
// (scenes split across the antimeridian) collapse to their first polygon.
func (i Item) Footprint() orb.Polygon {
	if i.Geometry == nil {
		return nil
	}
	switch geom := i.Geometry.Geometry().(type) {
	case orb.Polygon:
		return geom
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return nil
		}
		return geom[0]
	}
	return nil
}

func (i Item) property(key string) float64 {
	value, ok := i.Properties[key].(float64)
	if !ok {
		return 0
	}
	return value
}

// CloudCover returns the item's eo:cloud_cover percentage, 0 when absent.
func (i Item) CloudCover() float64 {
	return i.property("eo:cloud_cover")
}

// NodataPercentage returns the s2:nodata_pixel_percentage property, 0 when absent.
func (i Item) NodataPercentage() float64 {
	return i.property("s2:nodata_pixel_percentage")
}

// DegradedPercentage returns the s2:degraded_msi_data_percentage property.
func (i Item) DegradedPercentage() float64 {
	return i.property("s2:degraded_msi_data_percentage")
}

// Datetime parses the item's acquisition timestamp. Zero time when absent or
// malformed.
func (i Item) Datetime() time.Time {
	raw, ok := i.Properties["datetime"].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AreaKm2 approximates the footprint area in square kilometers, assuming
// degrees at roughly 111 km each. Informational only.
func (i Item) AreaKm2() float64 {
	footprint := i.Footprint()
	if footprint == nil {
		return 0
	}
	return planar.Area(footprint) * 111.0 * 111.0
}

// MinByProperty returns the item with the smallest value of the given numeric
// property, e.g. eo:cloud_cover to pick the clearest scene.
func MinByProperty(items []Item, key string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("no items to select the minimum %q from", key)
	}
	min := items[0]
	for _, item := range items[1:] {
		if item.property(key) < min.property(key) {
			min = item
		}
	}
	return min, nil
}

// PrintSearchSummary prints the metadata fields of each item that matter when
// eyeballing a search result before running a composite.
func PrintSearchSummary(items []Item) {
	fmt.Printf("%d items found:\n\n", len(items))
	for _, item := range items {
		fmt.Println("ID:", item.ID)
		fmt.Println("  Cloud cover (%):", item.CloudCover())
		fmt.Println("  Missing pixels (%):", item.NodataPercentage())
		fmt.Println("  Missing band data (%):", item.DegradedPercentage())
		fmt.Printf("  Image area (km^2): %.2f\n\n", item.AreaKm2())
	}
}

package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/landsight/landsight-index-poc/internal/properties"
	"github.com/landsight/landsight-index-poc/internal/stac"
	"github.com/paulmach/orb"
)

func main() {
	// Hardcoded test parameters - modify these to test different scenarios
	bbox := orb.Bound{Min: orb.Point{-127.6, 54.2}, Max: orb.Point{-126.3, 54.6}}
	startDate := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2023, 8, 31, 0, 0, 0, 0, time.UTC)
	maxCloudCover := 20.0

	fmt.Println("=== Landsight Test Scene Search ===")
	fmt.Printf("Catalog: %s\n", properties.StacAPIURL())
	fmt.Printf("Collection: %s\n", properties.StacCollection())
	fmt.Printf("BBox: %v\n", bbox)
	fmt.Printf("Window: %s to %s\n", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	fmt.Println()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	client := stac.NewClient()
	items, err := client.SearchItems(properties.StacCollection(), bbox.ToPolygon(), startDate, endDate, maxCloudCover)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	stac.PrintSearchSummary(items)

	if len(items) > 0 {
		clearest, err := stac.MinByProperty(items, "eo:cloud_cover")
		if err != nil {
			log.Fatalf("failed to pick clearest scene: %v", err)
		}
		fmt.Printf("Clearest scene: %s (%.1f%% cloud cover)\n", clearest.ID, clearest.CloudCover())
	}
}

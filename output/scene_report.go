package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/landsight/landsight-index-poc/internal/properties"
	"github.com/landsight/landsight-index-poc/internal/stac"
)

type SceneRecord struct {
	ID            string  `csv:"id"`
	Date          string  `csv:"date"`
	CloudCover    float64 `csv:"cloud_cover_pct"`
	NodataPixels  float64 `csv:"nodata_pixel_pct"`
	DegradedData  float64 `csv:"degraded_data_pct"`
	FootprintArea float64 `csv:"footprint_area_km2"`
}

// CreateSceneReport writes one CSV row per scene that contributed to a run,
// with the catalog metadata worth keeping next to the rendered composite.
func CreateSceneReport(items []stac.Item, outputFileName string) (string, error) {
	records := make([]SceneRecord, 0, len(items))
	for _, item := range items {
		records = append(records, SceneRecord{
			ID:            item.ID,
			Date:          item.Datetime().Format("2006-01-02"),
			CloudCover:    item.CloudCover(),
			NodataPixels:  item.NodataPercentage(),
			DegradedData:  item.DegradedPercentage(),
			FootprintArea: item.AreaKm2(),
		})
	}

	outputPath := fmt.Sprintf("%s/data/result/%s.csv", properties.RootPath(), outputFileName)
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result directory: %v", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return "", err
	}

	fmt.Println("Scene report created successfully at", outputPath)
	return outputPath, nil
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/landsight/landsight-index-poc/internal/composite"
	"github.com/landsight/landsight-index-poc/internal/notification"
	"github.com/landsight/landsight-index-poc/internal/pipeline"
	"github.com/landsight/landsight-index-poc/internal/properties"
	"github.com/landsight/landsight-index-poc/internal/raster"
	"github.com/landsight/landsight-index-poc/internal/sentinel"
	"github.com/landsight/landsight-index-poc/internal/spectral"
	"github.com/landsight/landsight-index-poc/internal/stac"
	"github.com/landsight/landsight-index-poc/output"
	"github.com/paulmach/orb"
)

var indexColormaps = map[string]string{
	"ndvi": "Greens",
	"ndwi": "Blues",
	"nbr":  "RdYlGn",
	"ndbi": "Greys",
	"nbai": "Greys",
	"ibi":  "Greys",
}

func printBanner() {
	figure1 := figure.NewFigure("Landsight", "isometric1", true)
	figure2 := figure.NewFigure("CLI", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Printf("\033[34m%s\033[0m", prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readDate(reader *bufio.Reader, prompt string) (time.Time, error) {
	input := readLine(reader, prompt)
	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", input)
	}
	return date, nil
}

func readBBox(reader *bufio.Reader) (orb.Polygon, error) {
	input := readLine(reader, "Enter the AOI bbox as minLon,minLat,maxLon,maxLat: ")
	parts := strings.Split(input, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	coords := make([]float64, 4)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", part)
		}
		coords[i] = value
	}
	if coords[0] >= coords[2] || coords[1] >= coords[3] {
		return nil, fmt.Errorf("bbox min must be strictly below max")
	}
	bound := orb.Bound{Min: orb.Point{coords[0], coords[1]}, Max: orb.Point{coords[2], coords[3]}}
	return bound.ToPolygon(), nil
}

func readIndexName(reader *bufio.Reader) (string, error) {
	name := strings.ToLower(readLine(reader, "Enter the index name (ndvi, ndbi, ndwi, nbai, nbr, ibi): "))
	if _, ok := spectral.Formulas[name]; !ok {
		return "", fmt.Errorf("unsupported index %q", name)
	}
	return name, nil
}

func searchScenes(client *stac.Client, aoi orb.Polygon, startDate, endDate time.Time, maxCloudCover float64) ([]stac.Item, error) {
	items, err := client.SearchItems(properties.StacCollection(), aoi, startDate, endDate, maxCloudCover)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no scenes found for the given AOI and time range")
	}
	stac.PrintSearchSummary(items)
	return items, nil
}

func runComposite(reader *bufio.Reader) error {
	name, err := readIndexName(reader)
	if err != nil {
		return err
	}
	aoi, err := readBBox(reader)
	if err != nil {
		return err
	}
	startDate, err := readDate(reader, "Enter the start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	endDate, err := readDate(reader, "Enter the end date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	maxCloudCover, err := strconv.ParseFloat(readLine(reader, "Enter the maximum cloud cover (%): "), 64)
	if err != nil {
		return fmt.Errorf("invalid cloud cover value")
	}

	items, err := searchScenes(stac.NewClient(), aoi, startDate, endDate, maxCloudCover)
	if err != nil {
		return err
	}

	rasters, err := pipeline.CalculateIndexOverItems(sentinel.GDALBackend{}, items, spectral.RequiredBands[name], aoi, spectral.Formulas[name])
	if err != nil {
		return err
	}

	fmt.Println("Calculating the median composite, this can take a while.")
	medianRaster, err := composite.Median(rasters)
	if err != nil {
		return err
	}

	outputName := fmt.Sprintf("%s_composite_%s_%s", name, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	config := output.DefaultPlotConfig()
	config.Colormap = indexColormaps[name]
	config.Title = fmt.Sprintf("Median %s, %d scenes", strings.ToUpper(name), len(items))

	imagePath, err := output.CreateIndexImage(raster.ToDisplayGrid(medianRaster), outputName, config)
	if err != nil {
		return err
	}
	reportPath, err := output.CreateSceneReport(items, outputName)
	if err != nil {
		return err
	}

	fmt.Printf("\n\033[32mSuccessful analysis!\n Composite image located at: %s\n Scene report located at: %s\033[0m\n", imagePath, reportPath)
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Landsight CLI\n\nComposite %s ready.\nImage: %s\nReport: %s", strings.ToUpper(name), imagePath, reportPath))
	return nil
}

func runSingleScene(reader *bufio.Reader) error {
	name, err := readIndexName(reader)
	if err != nil {
		return err
	}
	aoi, err := readBBox(reader)
	if err != nil {
		return err
	}
	startDate, err := readDate(reader, "Enter the start date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	endDate, err := readDate(reader, "Enter the end date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	items, err := searchScenes(stac.NewClient(), aoi, startDate, endDate, 100)
	if err != nil {
		return err
	}

	item, err := stac.MinByProperty(items, "eo:cloud_cover")
	if err != nil {
		return err
	}
	fmt.Printf("Clearest scene: %s (%.1f%% cloud cover)\n", item.ID, item.CloudCover())

	data, err := sentinel.Load(sentinel.GDALBackend{}, item, spectral.RequiredBands[name], aoi)
	if err != nil {
		return err
	}
	index, err := spectral.Formulas[name](data)
	if err != nil {
		return err
	}

	config := output.DefaultPlotConfig()
	config.Colormap = indexColormaps[name]
	config.Title = fmt.Sprintf("%s on scene %s", strings.ToUpper(name), item.ID)

	imagePath, err := output.CreateIndexImage(raster.ToDisplayGrid(index), fmt.Sprintf("%s_%s", name, item.ID), config)
	if err != nil {
		return err
	}
	fmt.Printf("\n\033[32mIndex image located at: %s\033[0m\n", imagePath)
	return nil
}

func loadClearestBundle(client *stac.Client, aoi orb.Polygon, startDate, endDate time.Time) (*raster.BandBundle, stac.Item, error) {
	items, err := searchScenes(client, aoi, startDate, endDate, 100)
	if err != nil {
		return nil, stac.Item{}, err
	}
	item, err := stac.MinByProperty(items, "eo:cloud_cover")
	if err != nil {
		return nil, stac.Item{}, err
	}
	data, err := sentinel.Load(sentinel.GDALBackend{}, item, spectral.RequiredBands["dnbr"], aoi)
	if err != nil {
		return nil, stac.Item{}, err
	}
	return data, item, nil
}

func runBurnSeverity(reader *bufio.Reader) error {
	aoi, err := readBBox(reader)
	if err != nil {
		return err
	}
	preStart, err := readDate(reader, "Enter the pre-fire window start (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	preEnd, err := readDate(reader, "Enter the pre-fire window end (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	postStart, err := readDate(reader, "Enter the post-fire window start (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	postEnd, err := readDate(reader, "Enter the post-fire window end (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	client := stac.NewClient()
	preData, preItem, err := loadClearestBundle(client, aoi, preStart, preEnd)
	if err != nil {
		return fmt.Errorf("pre-fire scene: %w", err)
	}
	postData, postItem, err := loadClearestBundle(client, aoi, postStart, postEnd)
	if err != nil {
		return fmt.Errorf("post-fire scene: %w", err)
	}

	dnbr, err := spectral.DNBR(preData, postData)
	if err != nil {
		return err
	}

	config := output.DefaultPlotConfig()
	config.Colormap = "RdYlGn"
	config.Title = fmt.Sprintf("dNBR %s vs %s", preItem.Datetime().Format("2006-01-02"), postItem.Datetime().Format("2006-01-02"))

	imagePath, err := output.CreateIndexImage(raster.ToDisplayGrid(dnbr), fmt.Sprintf("dnbr_%s_%s", preItem.ID, postItem.ID), config)
	if err != nil {
		return err
	}
	fmt.Printf("\n\033[32mBurn severity image located at: %s\033[0m\n", imagePath)
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Landsight CLI\n\ndNBR ready.\nImage: %s", imagePath))
	return nil
}

func listIndices() {
	names := make([]string, 0, len(spectral.RequiredBands))
	for name := range spectral.RequiredBands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\033[32m\nSupported indices:\033[0m")
	for _, name := range names {
		fmt.Printf("\033[32m- %s (bands: %s)\033[0m\n", name, strings.Join(spectral.RequiredBands[name], ", "))
	}
}

func initCLI() {
	defer func() {
		if r := recover(); r != nil {
			pc, file, line, ok := runtime.Caller(3)
			var location string
			if ok {
				fn := runtime.FuncForPC(pc)
				location = fmt.Sprintf("%s:%d in %s", file, line, fn.Name())
			} else {
				location = "Unknown location"
			}

			fmt.Printf("\n\033[31mPANIC: %v\033[0m\n", r)
			fmt.Printf("\033[31mLocation: %s\033[0m\n", location)
			fmt.Printf("\033[31mExiting...\033[0m\n")

			stack := debug.Stack()
			errMessage := fmt.Sprintf("Landsight CLI panic:\n\n%v\n\nLocation: %s\n\nStack trace:\n%s", r, location, stack)
			if err := notification.SendDiscordErrorNotification(errMessage); err != nil {
				fmt.Printf("\033[31mFailed to send notification: %s\033[0m\n", err.Error())
			}
		}
	}()
	printBanner()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\033[34m===================\033[0m")
		fmt.Println("\033[34m1. Compute a median index composite over a time range\033[0m")
		fmt.Println("\033[34m2. Render an index for the clearest single scene\033[0m")
		fmt.Println("\033[34m3. Estimate burn severity (dNBR) between two windows\033[0m")
		fmt.Println("\033[34m4. List supported indices\033[0m")
		fmt.Println("\033[34m5. Exit\033[0m")
		fmt.Println("\033[34mEnter your choice:\033[0m")

		var choice int
		if _, err := fmt.Fscan(reader, &choice); err != nil {
			fmt.Printf("\n\033[31mInvalid input. Please enter a number.\033[0m\n")
			reader.ReadString('\n')
			continue
		}
		reader.ReadString('\n')

		var err error
		switch choice {
		case 1:
			err = runComposite(reader)
		case 2:
			err = runSingleScene(reader)
		case 3:
			err = runBurnSeverity(reader)
		case 4:
			listIndices()
		case 5:
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}

		if err != nil {
			fmt.Printf("\n\033[31mError: %s\033[0m\n", err.Error())
			notification.SendDiscordErrorNotification(fmt.Sprintf("Landsight CLI\n\nError: %s", err.Error()))
		}
	}
}

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		err = godotenv.Load("../.env")
		if err != nil {
			fmt.Println("\033[33mNo .env file found, relying on exported environment variables.\033[0m")
		}
	}

	godal.RegisterAll()
	initCLI()
}

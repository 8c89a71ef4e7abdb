package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atmoscan/calipso_cloud/internal/aoi"
	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/atmoscan/calipso_cloud/internal/colormap"
	"github.com/atmoscan/calipso_cloud/internal/converters/proj4_coordinate_converter"
	"github.com/atmoscan/calipso_cloud/internal/ingest"
	"github.com/atmoscan/calipso_cloud/pkg"
	"github.com/atmoscan/calipso_cloud/tools"
)

const VERSION = "1.0.2"

const logo = `
           _ _                              _                 _
  ___ __ _| (_)_ __  ___  ___         ___ | | ___  _   _  __| |
 / __/ _  | | | '_ \/ __|/ _ \      / __| |/ _ \| | | |/ _  |
| (_| (_| | | | |_) \__ \ (_) |    | (__| | (_) | |_| | (_| |
 \___\__,_|_|_| .__/|___/\___/_____ \___|_|\___/ \__,_|\__,_|
              |_|            |_____|
        Satellite lidar point cloud processing - YYYY
`

func main() {
	log.SetPrefix("[calipso] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	log.Println(tools.FmtJSONString(flagsGlobal))

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [ingest|filter].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandIngest:
		mainCommandIngest(args)
	case tools.CommandFilter:
		mainCommandFilter(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [ingest|filter]", cmd)
	}
}

func mainCommandIngest(args []string) {
	flags := tools.ParseFlagsForCommandIngest(args)

	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts := optionsFromFlags(flags.PipelineFlags)
	opts.Output = *flags.Output
	opts.ExportPly = *flags.ExportPly
	opts.ExportLas = *flags.ExportLas
	opts.TileByLatitude = *flags.TileByLatitude
	opts.Progress = consoleProgress()

	if msg, res := validateOptionsForCommandIngest(opts, &flags); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	converter := proj4_coordinate_converter.NewProj4CoordinateConverter()
	err := pkg.NewIngestor(tools.NewStandardFileFinder(), converter).Run(context.Background(), opts)

	if err != nil {
		log.Fatal("Error while ingesting: ", err)
	} else {
		tools.LogOutput("Ingestion Completed")
	}
}

func mainCommandFilter(args []string) {
	flags := tools.ParseFlagsForCommandFilter(args)

	if *flags.Silent {
		tools.DisableLogger()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	if *flags.Input == "" {
		log.Fatal("Error parsing input parameters: Input file not specified")
	}
	if *flags.Output == "" {
		log.Fatal("Error parsing input parameters: Output file not specified")
	}
	if *flags.Polygon == "" {
		log.Fatal("Error parsing input parameters: Polygon file not specified")
	}

	opts := optionsFromFlags(flags.PipelineFlags)

	polygon, err := readPolygonFile(*flags.Polygon)
	if err != nil {
		log.Fatal("Error reading polygon file: ", err)
	}
	if !polygon.Valid() {
		tools.LogOutput("Polygon has fewer than 3 vertices, output will be empty")
	}

	buf := tools.ReadFileOrFail(*flags.Input)

	converter := proj4_coordinate_converter.NewProj4CoordinateConverter()
	defer converter.Cleanup()

	dataset, err := pkg.NewIngestor(tools.NewStandardFileFinder(), converter).Ingest(context.Background(), buf, opts)
	if err != nil {
		log.Fatal("Error while ingesting: ", err)
	}

	backscatter := make([]float64, dataset.Count)
	for i, raw := range dataset.Intensities {
		backscatter[i] = colormap.IntensityToPhysical(raw)
	}

	altitudes, filtered := aoi.Filter(dataset.Positions, backscatter, polygon)

	if err := writeFilterCsv(*flags.Output, altitudes, filtered); err != nil {
		log.Fatal("Error writing output: ", err)
	}

	tools.LogOutput("Filtered", len(altitudes), "of", dataset.Count, "points into", *flags.Output)
}

func optionsFromFlags(flags tools.PipelineFlags) *ingest.Options {
	opts := ingest.NewDefaultOptions()
	opts.Input = *flags.Input
	opts.Srid = *flags.Srid
	opts.ZOffset = *flags.ZOffset
	opts.MaxPoints = *flags.MaxPoints
	opts.CellSizeDegrees = *flags.CellSize
	opts.ColorMode = *flags.ColorMode
	opts.Ramp = *flags.Ramp
	opts.FixedIntensityRange = *flags.FixedIntensityRange
	opts.FolderProcessing = *flags.FolderProcessing
	opts.Recursive = *flags.Recursive

	if *flags.Config != "" {
		cfg, err := tools.LoadTuningConfig(*flags.Config)
		if err != nil {
			log.Fatal("Error loading tuning config: ", err)
		}
		applyTuningConfig(opts, cfg)
	}

	return opts
}

// applyTuningConfig overlays file values on options still at their defaults,
// so values set explicitly on the command line keep priority over the file.
// The projection has no flag and is owned by the file alone.
func applyTuningConfig(opts *ingest.Options, cfg *tools.TuningConfig) {
	defaults := ingest.NewDefaultOptions()

	if opts.MaxPoints == defaults.MaxPoints {
		opts.MaxPoints = cfg.MaxPoints
	}
	if opts.CellSizeDegrees == defaults.CellSizeDegrees {
		opts.CellSizeDegrees = cfg.CellSizeDegrees
	}
	if opts.ColorMode == defaults.ColorMode {
		opts.ColorMode = cfg.ColorMode
	}
	if opts.Ramp == defaults.Ramp {
		opts.Ramp = cfg.Ramp
	}
	if opts.FixedIntensityRange == defaults.FixedIntensityRange {
		opts.FixedIntensityRange = cfg.FixedIntensityRange
	}
	opts.Projection = cloud.ProjectionOptions{
		Mode:         cloud.ProjectionSpherical,
		BaseRadius:   cfg.BaseRadius,
		Exaggeration: cfg.Exaggeration,
	}
}

// Validates the input options provided to the command line tool checking
// that input and output folders/files exist
func validateOptionsForCommandIngest(opts *ingest.Options, flags *tools.FlagsForCommandIngest) (string, bool) {
	if opts.Input == "" {
		return "Input file/folder not specified", false
	}
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}

	needsOutput := opts.ExportPly || opts.ExportLas || opts.TileByLatitude
	if needsOutput && opts.Output == "" {
		return "Output folder not specified", false
	}

	if opts.MaxPoints <= 0 {
		return "max-points must be positive", false
	}
	if opts.CellSizeDegrees <= 0 {
		return "cell-size must be positive", false
	}

	return "", true
}

// readPolygonFile parses a JSON array of [lat, lon] pairs into a polygon.
func readPolygonFile(filePath string) (aoi.Polygon, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return aoi.Polygon{}, err
	}

	var pairs [][]float64
	if err := json.Unmarshal(buf, &pairs); err != nil {
		return aoi.Polygon{}, fmt.Errorf("cannot parse polygon file %s: %w", filePath, err)
	}

	vertices := make([]aoi.Vertex, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return aoi.Polygon{}, fmt.Errorf("polygon vertex %d has %d coordinates, want [lat, lon]", i, len(pair))
		}
		vertices = append(vertices, aoi.Vertex{Lat: pair[0], Lon: pair[1]})
	}

	return aoi.NewPolygon(vertices), nil
}

func writeFilterCsv(filePath string, altitudes []float32, backscatter []float64) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"altitude_km", "backscatter_532nm"}); err != nil {
		return err
	}

	for i := range altitudes {
		record := []string{
			strconv.FormatFloat(float64(altitudes[i]), 'f', -1, 32),
			strconv.FormatFloat(backscatter[i], 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// consoleProgress logs batch progress at 10 percent steps.
func consoleProgress() ingest.ProgressFunc {
	lastDecile := -1
	return func(percent int) {
		if percent/10 > lastDecile {
			lastDecile = percent / 10
			tools.LogOutput("progress:", strconv.Itoa(percent)+"%")
		}
	}
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("calipso_cloud processes satellite lidar LAS files into decimated, time-ordered and colored point clouds")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}

package tools

import (
	"flag"
	"log"
)

const (
	CommandIngest = "ingest"
	CommandFilter = "filter"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type PipelineFlags struct {
	Input               *string `json:"input"`
	Srid                *int    `json:"srid"`
	ZOffset             *float64
	MaxPoints           *int     `json:"max_points"`
	CellSize            *float64 `json:"cell_size"`
	ColorMode           *string  `json:"color_mode"`
	Ramp                *string  `json:"ramp"`
	FixedIntensityRange *bool
	FolderProcessing    *bool
	Recursive           *bool
	Config              *string `json:"config"`
}

type FlagsForCommandIngest struct {
	PipelineFlags
	Output         *string
	ExportPly      *bool
	ExportLas      *bool
	TileByLatitude *bool
	Silent         *bool
	LogTimestamp   *bool
	Help           *bool
	Version        *bool
}

type FlagsForCommandFilter struct {
	PipelineFlags
	Output       *string
	Polygon      *string `json:"polygon"`
	Silent       *bool
	LogTimestamp *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of calipso_cloud.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandIngest(args []string) FlagsForCommandIngest {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-ingest", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input las file/folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write exports.")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", 4326, "EPSG srid code of input points.")
	zOffset := defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to points, in kilometers.")
	maxPoints := defineIntFlagCommand(flagCommand, "max-points", "m", 5000000, "Decimation target, maximum number of points kept per file.")
	cellSize := defineFloat64FlagCommand(flagCommand, "cell-size", "c", 0.01, "Spatial grid cell size in degrees used by the temporal ordering. Roughly 1km at the default.")
	colorMode := defineStringFlagCommand(flagCommand, "color-mode", "", "elevation", "Scalar field driving colors, one of 'elevation', 'intensity' or 'classification'.")
	ramp := defineStringFlagCommand(flagCommand, "ramp", "", "viridis", "Color ramp, one of 'viridis', 'coolwarm', 'rainbow' or 'grayscale'.")
	fixedRange := defineBoolFlagCommand(flagCommand, "fixed-range", "", true, "Color intensity against the fixed instrument range rather than the per-batch data range. Keeps files comparable with each other.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all las files from input folder. Input must be a folder if specified")
	recursive := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .las files inside the subfolders")
	exportPly := defineBoolFlagCommand(flagCommand, "ply", "", false, "Writes each processed dataset as a colored binary PLY file.")
	exportLas := defineBoolFlagCommand(flagCommand, "las", "", false, "Writes each processed dataset back to LAS.")
	tile := defineBoolFlagCommand(flagCommand, "tile", "", false, "Splits the LAS export into the four standard latitude bands.")
	config := defineStringFlagCommand(flagCommand, "config", "", "", "Optional YAML tuning file. Explicit flags win over the file.")

	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of calipso_cloud.")

	flagCommand.Parse(args)

	return FlagsForCommandIngest{
		PipelineFlags: PipelineFlags{
			Input:               input,
			Srid:                srid,
			ZOffset:             zOffset,
			MaxPoints:           maxPoints,
			CellSize:            cellSize,
			ColorMode:           colorMode,
			Ramp:                ramp,
			FixedIntensityRange: fixedRange,
			FolderProcessing:    folderProcessing,
			Recursive:           recursive,
			Config:              config,
		},
		Output:         output,
		ExportPly:      exportPly,
		ExportLas:      exportLas,
		TileByLatitude: tile,
		Silent:         silent,
		LogTimestamp:   logTimestamp,
		Help:           help,
		Version:        version,
	}
}

func ParseFlagsForCommandFilter(args []string) FlagsForCommandFilter {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-filter", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input las file.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output CSV file for the filtered samples.")
	polygon := defineStringFlagCommand(flagCommand, "polygon", "p", "", "Path to a JSON file holding the area-of-interest polygon as [[lat,lon],...].")
	srid := defineIntFlagCommand(flagCommand, "srid", "e", 4326, "EPSG srid code of input points.")
	maxPoints := defineIntFlagCommand(flagCommand, "max-points", "m", 5000000, "Decimation target, maximum number of points kept per file.")
	cellSize := defineFloat64FlagCommand(flagCommand, "cell-size", "c", 0.01, "Spatial grid cell size in degrees used by the temporal ordering.")
	config := defineStringFlagCommand(flagCommand, "config", "", "", "Optional YAML tuning file. Explicit flags win over the file.")

	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")

	zOffset := 0.0
	colorMode := "intensity"
	ramp := "viridis"
	fixedRange := true
	folderProcessing := false
	recursive := false

	flagCommand.Parse(args)

	return FlagsForCommandFilter{
		PipelineFlags: PipelineFlags{
			Input:               input,
			Srid:                srid,
			ZOffset:             &zOffset,
			MaxPoints:           maxPoints,
			CellSize:            cellSize,
			ColorMode:           &colorMode,
			Ramp:                &ramp,
			FixedIntensityRange: &fixedRange,
			FolderProcessing:    &folderProcessing,
			Recursive:           &recursive,
			Config:              config,
		},
		Output:       output,
		Polygon:      polygon,
		Silent:       silent,
		LogTimestamp: logTimestamp,
	}
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlag(name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flag.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

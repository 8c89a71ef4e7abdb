package ingest

import (
	"github.com/atmoscan/calipso_cloud/internal/cloud"
)

// ProgressFunc receives a monotonically non-decreasing completion percentage
// in [0,100]. Callbacks fire synchronously on the ingesting goroutine.
type ProgressFunc func(percent int)

// Options carries everything one ingestion run needs.
type Options struct {
	Input               string  // input LAS file/folder
	Output              string  // output folder for exports
	Srid                int     // EPSG code of the input coordinates, 4326 passes through
	ZOffset             float64 // constant vertical offset in km applied during decode
	MaxPoints           int     // decimation target, bounds the working set per file
	CellSizeDegrees     float64 // spatial cell resolution for the temporal grid sort
	ColorMode           string  // elevation | intensity | classification
	Ramp                string  // viridis | coolwarm | rainbow | grayscale
	FixedIntensityRange bool    // color against the instrument range instead of the data range
	FolderProcessing    bool    // process every LAS file in the input folder
	Recursive           bool    // recursive lookup of LAS files in subfolders
	ExportPly           bool    // write a colored PLY per dataset
	ExportLas           bool    // write the processed dataset back to LAS
	TileByLatitude      bool    // split LAS export into latitude bands

	Projection cloud.ProjectionOptions // render-space mapping used by the PLY export

	Progress ProgressFunc // optional, nil disables reporting
}

// NewDefaultOptions returns Options with the pipeline defaults filled in.
func NewDefaultOptions() *Options {
	return &Options{
		Srid:                4326,
		MaxPoints:           cloud.DefaultMaxPoints,
		CellSizeDegrees:     cloud.DefaultCellSizeDegrees,
		ColorMode:           "elevation",
		Ramp:                "viridis",
		FixedIntensityRange: true,
		Projection: cloud.ProjectionOptions{
			Mode:         cloud.ProjectionSpherical,
			BaseRadius:   100,
			Exaggeration: 1,
		},
	}
}

// Copy returns a shallow copy the caller may mutate independently.
func (opt *Options) Copy() *Options {
	newOpt := *opt
	return &newOpt
}

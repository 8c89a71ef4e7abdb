package pkg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/atmoscan/calipso_cloud/internal/colormap"
	"github.com/atmoscan/calipso_cloud/internal/converters"
	"github.com/atmoscan/calipso_cloud/internal/converters/elevation/offset_elevation_corrector"
	"github.com/atmoscan/calipso_cloud/internal/geometry"
	"github.com/atmoscan/calipso_cloud/internal/ingest"
	"github.com/atmoscan/calipso_cloud/internal/io"
	"github.com/atmoscan/calipso_cloud/internal/las"
	"github.com/atmoscan/calipso_cloud/internal/ply"
	"github.com/atmoscan/calipso_cloud/tools"
	"github.com/golang/glog"
)

const wgs84Srid = 4326

// cancellation is polled between record batches, not per record
const ctxCheckInterval = 1 << 16

type IIngestor interface {
	Ingest(ctx context.Context, buf []byte, opts *ingest.Options) (*cloud.Dataset, error)
	Run(ctx context.Context, opts *ingest.Options) error
}

type Ingestor struct {
	fileFinder tools.FileFinder
	converter  converters.CoordinateConverter
}

func NewIngestor(fileFinder tools.FileFinder, converter converters.CoordinateConverter) IIngestor {
	return &Ingestor{
		fileFinder: fileFinder,
		converter:  converter,
	}
}

// Ingest runs the full single-file pipeline on a materialized LAS buffer:
// header decode, decimation, record decode with gps time recovery, optional
// srid normalization and elevation correction, spatial-temporal sort and
// color encoding. The returned dataset is in its final point order.
func (ing *Ingestor) Ingest(ctx context.Context, buf []byte, opts *ingest.Options) (*cloud.Dataset, error) {
	header, err := las.ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	// resolve color options before the decode loop so a typo fails fast
	mode, err := colormap.ParseMode(opts.ColorMode)
	if err != nil {
		return nil, err
	}
	ramp, err := colormap.RampByName(opts.Ramp)
	if err != nil {
		return nil, err
	}

	decimation := cloud.NewDecimation(header.PointCount, opts.MaxPoints)
	if decimation.Factor > 1 {
		tools.LogOutput("> decimating", header.PointCount, "points by factor", decimation.Factor)
	}

	dataset := cloud.NewDataset(decimation.Kept())
	corrector := offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset)
	progress := newProgressTracker(opts.Progress)

	syntheticTimes := 0
	for i := uint64(0); i < header.PointCount; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// decoding dominates the runtime, budget it 90 of the 100 points
			progress.report(int(i * 90 / header.PointCount))
		}

		if !decimation.Keeps(i) {
			continue
		}

		p := las.DecodePoint(header.Record(buf, i), header, i)
		lon, lat, alt := p.Lon, p.Lat, p.Alt

		if opts.Srid != wgs84Srid {
			coord, err := ing.converter.ToWGS84(opts.Srid, geometry.Coordinate{X: lon, Y: lat, Z: alt})
			if err != nil {
				return nil, fmt.Errorf("cannot convert record %d from srid %d: %w", i, opts.Srid, err)
			}
			lon, lat, alt = coord.X, coord.Y, coord.Z
		}

		alt = corrector.CorrectElevation(lon, lat, alt)

		if p.TimeSource == las.GpsTimeSyntheticIndex {
			syntheticTimes++
		}

		dataset.Append(lon, lat, alt, p.Intensity, p.Classification, p.GpsTime)
	}

	if syntheticTimes > 0 {
		glog.Warningf("%d of %d points carry no recoverable gps time, substituted the record index", syntheticTimes, dataset.Count)
	}

	progress.report(90)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cloud.SortSpatialTemporal(dataset, opts.CellSizeDegrees)
	progress.report(95)

	if dataset.Count > 0 && syntheticTimes == 0 {
		tools.LogOutput("> acquisition window",
			cloud.TAIToTime(dataset.FirstPoint.GpsTime).Format(time.RFC3339), "-",
			cloud.TAIToTime(dataset.LastPoint.GpsTime).Format(time.RFC3339))
	}

	if err := colormap.Recolor(dataset, mode, colorRange(dataset, mode, opts), ramp); err != nil {
		return nil, err
	}
	progress.report(100)

	return dataset, nil
}

// Run processes every las file selected by the options with one consumer
// goroutine per CPU, then recolors and exports the surviving datasets. A
// failing file is logged and skipped, it never aborts the batch.
func (ing *Ingestor) Run(ctx context.Context, opts *ingest.Options) error {
	tools.LogOutput("Preparing list of files to process...")

	lasFiles := ing.fileFinder.GetLasFilesToProcess(opts)
	if len(lasFiles) == 0 {
		return errors.New("no las files found to process")
	}
	for i, filePath := range lasFiles {
		glog.Infof("las file %d [%s]", i, filePath)
	}

	mode, err := colormap.ParseMode(opts.ColorMode)
	if err != nil {
		return err
	}
	ramp, err := colormap.RampByName(opts.Ramp)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := tools.CreateDirectoryIfDoesNotExist(opts.Output); err != nil {
			return err
		}
	}

	results := ing.processFiles(ctx, opts, lasFiles)

	ing.converter.Cleanup()

	failed := len(lasFiles) - len(results)

	// deterministic export order regardless of which consumer finished first
	sort.Slice(results, func(i, j int) bool {
		return results[i].FileIndex < results[j].FileIndex
	})

	// a shared data-derived range keeps the batch visually comparable
	if mode == colormap.ModeIntensity && !opts.FixedIntensityRange && len(results) > 1 {
		globalRange := batchIntensityRange(results)
		for _, result := range results {
			if err := colormap.Recolor(result.Dataset, mode, globalRange, ramp); err != nil {
				return err
			}
		}
	}

	for _, result := range results {
		if err := ing.export(result, opts); err != nil {
			return err
		}
		tools.LogOutput("> done processing", filepath.Base(result.FilePath))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed, check log output for details", failed, len(lasFiles))
	}

	return ctx.Err()
}

// processFiles fans the file list out to one consumer per CPU and collects
// the successful datasets.
func (ing *Ingestor) processFiles(ctx context.Context, opts *ingest.Options, lasFiles []string) []*io.Result {
	numConsumers := runtime.NumCPU()

	workChannel := make(chan *io.WorkUnit, numConsumers*5)
	resultChannel := make(chan *io.Result, len(lasFiles))

	batchProgress := newBatchProgress(opts.Progress, len(lasFiles))

	process := func(ctx context.Context, unit *io.WorkUnit) (*cloud.Dataset, error) {
		tools.LogOutput("Processing file " + strconv.Itoa(unit.FileIndex+1) + "/" + strconv.Itoa(unit.TotalFiles))

		buf, err := os.ReadFile(unit.FilePath)
		if err != nil {
			return nil, err
		}

		fileOpts := unit.Opts.Copy()
		fileOpts.Progress = batchProgress.fileFunc(unit.FileIndex)

		return ing.Ingest(ctx, buf, fileOpts)
	}

	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	producer := io.NewStandardProducer(opts)
	go producer.Produce(workChannel, &waitGroup, lasFiles)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(process)
		go consumer.Consume(ctx, workChannel, resultChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(resultChannel)

	results := make([]*io.Result, 0, len(lasFiles))
	for result := range resultChannel {
		if result.Err != nil {
			glog.Errorf("processing %s failed: %v", result.FilePath, result.Err)
			continue
		}
		results = append(results, result)
	}

	return results
}

func (ing *Ingestor) export(result *io.Result, opts *ingest.Options) error {
	baseName := getFilenameWithoutExtension(result.FilePath)
	dataset := result.Dataset

	if opts.ExportLas {
		filePath := path.Join(opts.Output, baseName+"_processed.las")
		if err := las.WriteDataset(filePath, dataset); err != nil {
			return err
		}
		tools.LogOutput("> wrote", filePath)
	}

	if opts.TileByLatitude {
		written, err := las.WriteLatitudeTiles(opts.Output, baseName, dataset)
		if err != nil {
			return err
		}
		tools.LogOutput("> wrote", len(written), "latitude tiles for", baseName)
	}

	if opts.ExportPly {
		filePath := path.Join(opts.Output, baseName+".ply")
		if err := writePlyExport(filePath, dataset, opts.Projection); err != nil {
			return err
		}
		tools.LogOutput("> wrote", filePath)
	}

	return nil
}

func writePlyExport(filePath string, d *cloud.Dataset, projection cloud.ProjectionOptions) error {
	projected := cloud.Project(d.Positions, projection)

	verts := make([]ply.Vertex, d.Count)
	for i := 0; i < d.Count; i++ {
		verts[i] = ply.Vertex{
			X: projected[3*i],
			Y: projected[3*i+1],
			Z: projected[3*i+2],
			R: d.Colors[3*i],
			G: d.Colors[3*i+1],
			B: d.Colors[3*i+2],
		}
	}

	return ply.WritePlyFile(filePath, verts)
}

func colorRange(d *cloud.Dataset, mode colormap.Mode, opts *ingest.Options) colormap.Range {
	switch mode {
	case colormap.ModeIntensity:
		if opts.FixedIntensityRange {
			return colormap.FixedIntensityRange
		}
		return colormap.IntensityRange(d)
	case colormap.ModeElevation:
		return colormap.ElevationRange(d)
	}
	// classification mode uses the fixed lookup table, the range is unused
	return colormap.Range{}
}

func batchIntensityRange(results []*io.Result) colormap.Range {
	total := 0
	for _, result := range results {
		total += result.Dataset.Count
	}

	values := make([]float64, 0, total)
	for _, result := range results {
		for _, raw := range result.Dataset.Intensities {
			values = append(values, colormap.IntensityToPhysical(raw))
		}
	}

	return colormap.DataRange(values)
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}

// progressTracker enforces the monotonic non-decreasing progress contract for
// a single file.
type progressTracker struct {
	fn   ingest.ProgressFunc
	last int
}

func newProgressTracker(fn ingest.ProgressFunc) *progressTracker {
	return &progressTracker{fn: fn, last: -1}
}

func (t *progressTracker) report(percent int) {
	if t.fn == nil || percent <= t.last {
		return
	}
	t.last = percent
	t.fn(percent)
}

// batchProgress folds per-file percentages into one composite batch
// percentage. Consumers run concurrently, so the guard only lets the
// composite value move forward.
type batchProgress struct {
	mu    sync.Mutex
	fn    ingest.ProgressFunc
	total int
	last  int
}

func newBatchProgress(fn ingest.ProgressFunc, totalFiles int) *batchProgress {
	return &batchProgress{fn: fn, total: totalFiles, last: -1}
}

func (b *batchProgress) fileFunc(fileIndex int) ingest.ProgressFunc {
	if b.fn == nil {
		return nil
	}
	return func(percent int) {
		b.report((fileIndex*100 + percent) / b.total)
	}
}

func (b *batchProgress) report(percent int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if percent > b.last {
		b.last = percent
		b.fn(percent)
	}
}

package las

import (
	"fmt"
	"path"

	"github.com/atmoscan/calipso_cloud/internal/cloud"
	"github.com/golang/glog"
)

// LatitudeBand is one export tile of the latitude split. Latitude tiling
// follows orbital tracks better than longitude tiling, a polar orbit crosses
// every longitude each revolution but sweeps latitudes monotonically.
type LatitudeBand struct {
	Name   string
	MinLat float64
	MaxLat float64
}

// LatitudeBands are the four standard export bands. Bands are half open at
// the top except the northernmost one, which includes the pole.
var LatitudeBands = []LatitudeBand{
	{Name: "south", MinLat: -90, MaxLat: -30},
	{Name: "south_mid", MinLat: -30, MaxLat: 0},
	{Name: "north_mid", MinLat: 0, MaxLat: 30},
	{Name: "north", MinLat: 30, MaxLat: 90},
}

// Contains reports whether a latitude falls in the band.
func (b LatitudeBand) Contains(lat float64) bool {
	if b.MaxLat == 90 {
		return lat >= b.MinLat && lat <= b.MaxLat
	}
	return lat >= b.MinLat && lat < b.MaxLat
}

// WriteLatitudeTiles splits the dataset into the standard latitude bands and
// writes one LAS file per non-empty band into outputDir, named
// <baseName>_tile_<band>.las. It returns the written file paths.
func WriteLatitudeTiles(outputDir string, baseName string, d *cloud.Dataset) ([]string, error) {
	perBand := make([][]int32, len(LatitudeBands))

	for i := 0; i < d.Count; i++ {
		lat := float64(d.Positions[3*i+1])
		for b, band := range LatitudeBands {
			if band.Contains(lat) {
				perBand[b] = append(perBand[b], int32(i))
				break
			}
		}
	}

	written := make([]string, 0, len(LatitudeBands))
	for b, band := range LatitudeBands {
		if len(perBand[b]) == 0 {
			glog.V(1).Infof("band %s is empty, skipping", band.Name)
			continue
		}
		filePath := path.Join(outputDir, fmt.Sprintf("%s_tile_%s.las", baseName, band.Name))
		if err := WriteSubset(filePath, d, perBand[b]); err != nil {
			return written, err
		}
		written = append(written, filePath)
	}

	return written, nil
}

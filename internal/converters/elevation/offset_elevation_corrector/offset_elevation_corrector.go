package offset_elevation_corrector

import "github.com/atmoscan/calipso_cloud/internal/converters"

// OffsetElevationCorrector shifts every elevation by a constant amount, in
// the vertical unit of the input file (kilometers for satellite lidar).
type OffsetElevationCorrector struct {
	Offset float64
}

func NewOffsetElevationCorrector(offset float64) converters.ElevationCorrector {
	return &OffsetElevationCorrector{
		Offset: offset,
	}
}

func (c *OffsetElevationCorrector) CorrectElevation(lon, lat, z float64) float64 {
	return z + c.Offset
}

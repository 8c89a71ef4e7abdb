package converters

import (
	"github.com/atmoscan/calipso_cloud/internal/geometry"
)

// CoordinateConverter normalizes input coordinates between spatial reference
// systems. Ingestion uses it to bring LAS files stored in a projected SRID
// back to geographic EPSG 4326 before the pipeline runs; files already in
// 4326 pass through untouched.
type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error)
	ToWGS84(sourceSrid int, coord geometry.Coordinate) (geometry.Coordinate, error)
	Cleanup()
}

// ElevationCorrector adjusts point elevations during ingestion, for example
// to apply a constant vertical offset to a miscalibrated file.
type ElevationCorrector interface {
	CorrectElevation(lon, lat, z float64) float64
}

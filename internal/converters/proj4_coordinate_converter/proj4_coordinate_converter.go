package proj4_coordinate_converter

import (
	"fmt"
	"math"
	"sync"

	"github.com/atmoscan/calipso_cloud/internal/converters"
	"github.com/atmoscan/calipso_cloud/internal/geometry"
	proj "github.com/xeonx/proj4"
)

const toRadians = math.Pi / 180
const toDegrees = 180 / math.Pi

// proj4 definitions for the reference systems satellite lidar archives are
// distributed in. Geographic WGS84 plus the two mercator variants seen in
// downstream tiling pipelines.
var epsgDefinitions = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
	3395: "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
}

type proj4CoordinateConverter struct {
	projections map[int]*proj.Proj
	sync.Mutex
}

// NewProj4CoordinateConverter returns a proj4 backed CoordinateConverter.
// Projections are initialized lazily and cached; Cleanup releases them.
func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	src, err := cc.initProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.initProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	return executeConversion(&coord, src, dst)
}

func (cc *proj4CoordinateConverter) ToWGS84(sourceSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	return cc.ConvertCoordinateSrid(sourceSrid, 4326, coord)
}

func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()
	for code, projection := range cc.projections {
		projection.Close()
		delete(cc.projections, code)
	}
}

func (cc *proj4CoordinateConverter) initProjection(code int) (*proj.Proj, error) {
	cc.Lock()
	defer cc.Unlock()

	if projection, ok := cc.projections[code]; ok {
		return projection, nil
	}

	definition, ok := epsgDefinitions[code]
	if !ok {
		return nil, fmt.Errorf("unsupported epsg srid %d", code)
	}

	projection, err := proj.InitPlus(definition)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize projection for epsg %d: %w", code, err)
	}

	cc.projections[code] = projection
	return projection, nil
}

func executeConversion(coord *geometry.Coordinate, sourceProj *proj.Proj, destinationProj *proj.Proj) (geometry.Coordinate, error) {
	x, y, z := getCoordinateArraysForConversion(coord, sourceProj)

	if err := proj.TransformRaw(sourceProj, destinationProj, x, y, z); err != nil {
		return *coord, err
	}

	return geometry.Coordinate{
		X: fromProjectionUnit(x[0], destinationProj),
		Y: fromProjectionUnit(y[0], destinationProj),
		Z: z[0],
	}, nil
}

// proj4 wants angular coordinates in radians; projected ones pass unchanged
func getCoordinateArraysForConversion(coord *geometry.Coordinate, srid *proj.Proj) ([]float64, []float64, []float64) {
	return []float64{toProjectionUnit(coord.X, srid)},
		[]float64{toProjectionUnit(coord.Y, srid)},
		[]float64{coord.Z}
}

func toProjectionUnit(value float64, p *proj.Proj) float64 {
	if p.IsLatLong() {
		return value * toRadians
	}
	return value
}

func fromProjectionUnit(value float64, p *proj.Proj) float64 {
	if p.IsLatLong() {
		return value * toDegrees
	}
	return value
}

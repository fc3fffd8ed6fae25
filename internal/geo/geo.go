package geo

import (
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GEO POINTS
// Coordinates arrive as EPSG:4326 lat/lon degrees from AIS feeds and the
// simulator. Anything exported to storage or metrics is projected to
// EPSG:3857 so downstream map layers can consume it without a transform.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Coords3857From4326 creates a WebMercator point from longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	var x, y float64
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ = f(longitude, latitude, 0)
	point = geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Type: geom.DimXY,
		},
	)
	return point, nil
}

// Zone is a rectangular sea area in lat/lon degrees, held as a polygon
// for containment checks.
type Zone struct {
	Name string

	MinLat, MaxLat float64
	MinLon, MaxLon float64

	polygon geom.Polygon
}

// NewZone builds a Zone from bounding coordinates.
func NewZone(name string, minLat, maxLat, minLon, maxLon float64) (Zone, error) {
	if minLat > maxLat || minLon > maxLon {
		return Zone{}, ErrInvalidCoordinates
	}
	// closed ring, counter-clockwise
	flat := []float64{
		minLon, minLat,
		maxLon, minLat,
		maxLon, maxLat,
		minLon, maxLat,
		minLon, minLat,
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	ring := geom.NewLineString(seq)
	poly := geom.NewPolygon([]geom.LineString{ring})
	if err := poly.Validate(); err != nil {
		return Zone{}, fmt.Errorf("invalid zone polygon: %w", err)
	}
	return Zone{
		Name:   name,
		MinLat: minLat, MaxLat: maxLat,
		MinLon: minLon, MaxLon: maxLon,
		polygon: poly,
	}, nil
}

// Contains reports whether the lat/lon position falls inside the zone.
func (z Zone) Contains(lat, lon float64) bool {
	pt := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: lon, Y: lat},
		Type: geom.DimXY,
	})
	return geom.Intersects(z.polygon.AsGeometry(), pt.AsGeometry())
}

// LatRangeString formats the zone's latitude extent for event cards,
// e.g. "10.3°N - 18.3°N".
func (z Zone) LatRangeString() string {
	return fmt.Sprintf("%.1f°%s - %.1f°%s",
		abs(z.MinLat), hemisphereNS(z.MinLat),
		abs(z.MaxLat), hemisphereNS(z.MaxLat))
}

// LonRangeString formats the zone's longitude extent, e.g.
// "109.8°E - 118.2°E".
func (z Zone) LonRangeString() string {
	return fmt.Sprintf("%.1f°%s - %.1f°%s",
		abs(z.MinLon), hemisphereEW(z.MinLon),
		abs(z.MaxLon), hemisphereEW(z.MaxLon))
}

// InAnyZone reports whether the position falls inside any of the zones.
func InAnyZone(zones []Zone, lat, lon float64) bool {
	for _, z := range zones {
		if z.Contains(lat, lon) {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func hemisphereNS(lat float64) string {
	if lat < 0 {
		return "S"
	}
	return "N"
}

func hemisphereEW(lon float64) string {
	if lon < 0 {
		return "W"
	}
	return "E"
}

package geometry

import (
	"fmt"

	"github.com/go-spatial/geom"
	geomwkt "github.com/go-spatial/geom/encoding/wkt"
	"github.com/paulsmith/gogeos/geos"
)

// Generates a geom.Geometry from a geos.Geometry
func GeosToGeom(g *geos.Geometry) (geom.Geometry, error) {
	wkt, err := g.ToWKT()
	if err != nil {
		return nil, fmt.Errorf("GeosToGeom.ToWKT: %w", err)
	}
	geometry, err := geomwkt.DecodeString(wkt)
	if err != nil {
		return nil, fmt.Errorf("GeosToGeom.DecodeString: %w", err)
	}

	return geometry, nil
}

// Generates a geos.Geometry from a geom.Geometry
func GeomToGeos(g geom.Geometry) (*geos.Geometry, error) {
	wkt, err := geomwkt.EncodeString(g)
	if err != nil {
		return nil, fmt.Errorf("GeomToGeos.EncodeString: %w", err)
	}
	geometry, err := geos.FromWKT(wkt)
	if err != nil {
		return nil, fmt.Errorf("GeomToGeos.FromWKT: %w", err)
	}
	return geometry, nil
}

// ConvexHull of the geometry
func ConvexHull(g geom.Geometry) (geom.Geometry, error) {
	geo, err := GeomToGeos(g)
	if err != nil {
		return nil, fmt.Errorf("ConvexHull.%w", err)
	}
	hull, err := geo.ConvexHull()
	if err != nil {
		return nil, fmt.Errorf("ConvexHull: %w", err)
	}
	hullGeom, err := GeosToGeom(hull)
	if err != nil {
		return nil, fmt.Errorf("ConvexHull.%w", err)
	}
	return hullGeom, nil
}

// Centroid of the geometry as lon, lat
func Centroid(g geom.Geometry) (float64, float64, error) {
	geo, err := GeomToGeos(g)
	if err != nil {
		return 0, 0, fmt.Errorf("Centroid.%w", err)
	}
	center, err := geo.Centroid()
	if err != nil {
		return 0, 0, fmt.Errorf("Centroid: %w", err)
	}
	x, err := center.X()
	if err != nil {
		return 0, 0, fmt.Errorf("Centroid.X: %w", err)
	}
	y, err := center.Y()
	if err != nil {
		return 0, 0, fmt.Errorf("Centroid.Y: %w", err)
	}
	return x, y, nil
}

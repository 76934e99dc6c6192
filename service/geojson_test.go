package service

import (
	"testing"

	"github.com/go-spatial/geom"
)

func TestUnmarshalGeometry(t *testing.T) {
	polygon := []byte(`{"type":"Polygon","coordinates":[[[83,27],[88,27],[88,30],[83,30],[83,27]]]}`)
	g, err := UnmarshalGeometry(polygon)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(geom.Polygon); !ok {
		t.Errorf("expected Polygon, got %T", g)
	}

	fc := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[2,2],[3,2],[3,3],[2,3],[2,2]]]}}]}`)
	g, err = UnmarshalGeometry(fc)
	if err != nil {
		t.Fatal(err)
	}
	mp, ok := g.(geom.MultiPolygon)
	if !ok {
		t.Fatalf("expected MultiPolygon, got %T", g)
	}
	if len(mp.Polygons()) != 2 {
		t.Errorf("expected 2 polygons, got %d", len(mp.Polygons()))
	}
}

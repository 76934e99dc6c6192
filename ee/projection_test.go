package ee

import (
	"math"
	"testing"
)

func TestNominalScale(t *testing.T) {
	utm := Projection{CRS: "EPSG:32645", Transform: [6]float64{10, 0, 499980, 0, -10, 3100020}}
	if s := utm.NominalScale(); math.Abs(s-10) > 1e-9 {
		t.Errorf("expected a 10m scale, got %f", s)
	}
	if utm.IsGeographic() {
		t.Errorf("EPSG:32645 is not geographic")
	}

	geographic := Projection{CRS: "EPSG:4326", Transform: [6]float64{0.00025, 0, -180, 0, -0.00025, 90}}
	expected := 0.00025 * MetersPerDegree
	if s := geographic.NominalScale(); math.Abs(s-expected) > 1e-6 {
		t.Errorf("expected a %fm scale, got %f", expected, s)
	}
	if !geographic.IsGeographic() {
		t.Errorf("EPSG:4326 is geographic")
	}
}

func TestNominalScaleSheared(t *testing.T) {
	p := Projection{CRS: "EPSG:32645", Transform: [6]float64{8, 6, 0, -6, 8, 0}}
	if s := p.NominalScale(); math.Abs(s-10) > 1e-9 {
		t.Errorf("expected a 10m scale on a rotated grid, got %f", s)
	}
}

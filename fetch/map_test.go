package fetch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/geopull/eefetch/preview"
)

func TestAddImageToMapEmpty(t *testing.T) {
	c, _ := newTestClient(t, &fakePlatform{})

	m, err := c.AddImageToMap(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("AddImageToMap: %v", err)
	}
	defer m.Close()
	if n := len(m.Layers()); n != 0 {
		t.Errorf("Expecting 0 layers got %d", n)
	}
	var buf bytes.Buffer
	if err := m.HTML(&buf); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(buf.String(), "leaflet") {
		t.Error("Expecting a leaflet page")
	}
}

func TestAddImageToMapAsset(t *testing.T) {
	c, _ := newTestClient(t, &fakePlatform{})

	m, err := c.AddImageToMap(context.Background(), "", "COPERNICUS/S2/IMG", "scene")
	if err != nil {
		t.Fatalf("AddImageToMap: %v", err)
	}
	defer m.Close()
	layers := m.Layers()
	if len(layers) != 1 {
		t.Fatalf("Expecting 1 layer got %d", len(layers))
	}
	if layers[0].Kind != preview.Tile {
		t.Errorf("Expecting a tile layer got %s", layers[0].Kind)
	}
	if layers[0].Name != "scene" {
		t.Errorf("Expecting scene got %s", layers[0].Name)
	}
	if !strings.Contains(layers[0].URL, "/maps/m1/tiles/") {
		t.Errorf("Expecting the rendering session tiles, got %s", layers[0].URL)
	}
	var buf bytes.Buffer
	if err := m.HTML(&buf); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(buf.String(), "/maps/m1/tiles/") {
		t.Error("Expecting the tile URL in the page")
	}
}

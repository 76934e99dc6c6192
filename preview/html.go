package preview

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/map.html.tmpl
var pageTemplate string

var page = template.Must(template.New("map").Parse(pageTemplate))

type pageData struct {
	Title  string
	Lon    float64
	Lat    float64
	Zoom   int
	Layers template.JS
}

// HTML writes the map as a standalone page. Overlay layers resolve when the
// page is served by Serve.
func (m *Map) HTML(w io.Writer) error {
	m.mu.Lock()
	layers := m.layers
	if layers == nil {
		layers = []Layer{}
	}
	encoded, err := json.Marshal(layers)
	center := m.center
	zoom := m.zoom
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("HTML.Marshal: %w", err)
	}

	data := pageData{
		Title:  "eefetch preview",
		Lon:    center[0],
		Lat:    center[1],
		Zoom:   zoom,
		Layers: template.JS(encoded),
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("HTML.Execute: %w", err)
	}
	return nil
}

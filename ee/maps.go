package ee

import (
	"context"
	"fmt"
)

// MapRequest asks for an interactive tiled rendering of an expression.
type MapRequest struct {
	Expression           Expression  `json:"expression"`
	FileFormat           string      `json:"fileFormat,omitempty"`
	BandIDs              []string    `json:"bandIds,omitempty"`
	VisualizationOptions *VisOptions `json:"visualizationOptions,omitempty"`
}

// VisOptions control how bands are stretched into display colors.
type VisOptions struct {
	Ranges        []ValueRange `json:"ranges,omitempty"`
	PaletteColors []string     `json:"paletteColors,omitempty"`
	Gamma         float64      `json:"gamma,omitempty"`
	Opacity       float64      `json:"opacity,omitempty"`
}

// MapSession is a server side tile rendering of an expression.
type MapSession struct {
	Name    string `json:"name"`
	baseURL string
}

// CreateMap starts a tiling session for the expression.
func (c *Client) CreateMap(ctx context.Context, req *MapRequest) (*MapSession, error) {
	m := MapSession{}
	if err := c.postJSON(ctx, projectParent(c.project)+"/maps", req, &m); err != nil {
		return nil, fmt.Errorf("CreateMap.%w", err)
	}
	m.baseURL = c.baseURL
	return &m, nil
}

// TileURL returns a tile address template with {z}/{x}/{y} placeholders,
// ready for a slippy map client.
func (m *MapSession) TileURL() string {
	return m.baseURL + "/" + m.Name + "/tiles/{z}/{x}/{y}"
}

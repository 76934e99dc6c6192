// Package ee is a thin client for the Earth Engine REST API. It covers asset
// metadata, image listing, pixel exports and interactive map sessions,
// building expressions that are evaluated server side.
package ee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/go-spatial/geom"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"

	"github.com/geopull/eefetch/service"
	"github.com/geopull/eefetch/service/log"
)

const DefaultBaseURL = "https://earthengine.googleapis.com/v1"

// DefaultScopes are requested when authenticating with application default
// credentials.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/earthengine",
	"https://www.googleapis.com/auth/devstorage.full_control",
}

// Client issues authenticated requests on behalf of a cloud project.
type Client struct {
	project string
	baseURL string
	client  *http.Client
}

type clientConfig struct {
	baseURL     string
	scopes      []string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

type Option func(*clientConfig)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(cfg *clientConfig) { cfg.baseURL = strings.TrimSuffix(u, "/") }
}

// WithScopes overrides the OAuth scopes requested by Authenticate.
func WithScopes(scopes ...string) Option {
	return func(cfg *clientConfig) { cfg.scopes = scopes }
}

// WithTokenSource provides the credentials, skipping Authenticate.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(cfg *clientConfig) { cfg.tokenSource = ts }
}

// WithHTTPClient provides the underlying http client, skipping authentication
// entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = hc }
}

// Authenticate loads the application default credentials.
func Authenticate(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("Authenticate.FindDefaultCredentials: %w", err)
	}
	return creds.TokenSource, nil
}

// Initialize authenticates and returns a client bound to the given cloud
// project. The project is checked with a lightweight request; an invalid
// project or credential is a fatal error.
func Initialize(ctx context.Context, project string, opts ...Option) (*Client, error) {
	if project == "" {
		return nil, service.MakeFatal(fmt.Errorf("Initialize: missing project"))
	}
	cfg := clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		ts := cfg.tokenSource
		if ts == nil {
			var err error
			if ts, err = Authenticate(ctx, cfg.scopes...); err != nil {
				return nil, service.MakeFatal(fmt.Errorf("Initialize.%w", err))
			}
		}
		httpClient = oauth2.NewClient(ctx, ts)
	}

	c := &Client{project: project, baseURL: cfg.baseURL, client: httpClient}
	if err := c.ping(ctx); err != nil {
		if !service.Temporary(err) {
			err = service.MakeFatal(err)
		}
		return nil, fmt.Errorf("Initialize.Ping: %w", err)
	}
	log.Logger(ctx).Sugar().Debugf("[EE] connected to %s (project %s)", c.baseURL, project)
	return c, nil
}

// Project returns the cloud project the client was initialized with.
func (c *Client) Project() string {
	return c.project
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying authenticated http client.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

func (c *Client) ping(ctx context.Context) error {
	q := neturl.Values{"pageSize": []string{"1"}}
	return c.getJSON(ctx, projectParent(c.project)+":listAssets", q, &struct{}{})
}

// Asset is the metadata of a catalog entry.
type Asset struct {
	Type       string                 `json:"type"`
	Name       string                 `json:"name"`
	ID         string                 `json:"id"`
	StartTime  time.Time              `json:"startTime"`
	EndTime    time.Time              `json:"endTime"`
	Bands      []Band                 `json:"bands"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
	SizeBytes  string                 `json:"sizeBytes"`
}

// Band describes one band of an image asset.
type Band struct {
	ID       string    `json:"id"`
	DataType DataType  `json:"dataType"`
	Grid     PixelGrid `json:"grid"`
}

// DataType is the pixel type of a band.
type DataType struct {
	Precision string      `json:"precision"`
	Range     *ValueRange `json:"range,omitempty"`
}

// ValueRange bounds the values of an integer band.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PixelGrid locates pixels in a reference system. It describes the native
// grid of a band and, on requests, the grid of an export.
type PixelGrid struct {
	Dimensions      *GridDimensions  `json:"dimensions,omitempty"`
	AffineTransform *AffineTransform `json:"affineTransform,omitempty"`
	CRSCode         string           `json:"crsCode,omitempty"`
	CRSWKT          string           `json:"crsWkt,omitempty"`
}

// GridDimensions is the size of a grid in pixels.
type GridDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AffineTransform maps pixel coordinates to the reference system.
type AffineTransform struct {
	ScaleX     float64 `json:"scaleX"`
	ShearX     float64 `json:"shearX"`
	TranslateX float64 `json:"translateX"`
	ShearY     float64 `json:"shearY"`
	ScaleY     float64 `json:"scaleY"`
	TranslateY float64 `json:"translateY"`
}

// Asset fetches the metadata of an asset.
func (c *Client) Asset(ctx context.Context, ref string) (*Asset, error) {
	asset := Asset{}
	if err := c.getJSON(ctx, NormalizeAsset(ref), nil, &asset); err != nil {
		return nil, fmt.Errorf("Asset.%w", err)
	}
	return &asset, nil
}

// AssetGeometry fetches the footprint of an asset. FeatureCollection
// footprints are merged into a multipolygon.
func (c *Client) AssetGeometry(ctx context.Context, ref string) (geom.Geometry, error) {
	asset, err := c.Asset(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("AssetGeometry.%w", err)
	}
	if len(asset.Geometry) == 0 {
		return nil, fmt.Errorf("AssetGeometry: no footprint on %s", NormalizeAsset(ref))
	}
	g, err := service.UnmarshalGeometry(asset.Geometry)
	if err != nil {
		return nil, fmt.Errorf("AssetGeometry.UnmarshalGeometry: %w", err)
	}
	return g, nil
}

// Projection returns the native grid of the first band of an asset.
func (c *Client) Projection(ctx context.Context, ref string) (*Projection, error) {
	asset, err := c.Asset(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("Projection.%w", err)
	}
	proj, err := asset.Projection()
	if err != nil {
		return nil, fmt.Errorf("Projection.%w", err)
	}
	return proj, nil
}

// Projection returns the native grid of the first band.
func (a *Asset) Projection() (*Projection, error) {
	if len(a.Bands) == 0 {
		return nil, fmt.Errorf("Projection: no bands on %s", a.Name)
	}
	grid := a.Bands[0].Grid
	if grid.AffineTransform == nil {
		return nil, fmt.Errorf("Projection: no affine transform on %s (band %s)", a.Name, a.Bands[0].ID)
	}
	crs := grid.CRSCode
	if crs == "" {
		crs = grid.CRSWKT
	}
	t := grid.AffineTransform
	return &Projection{
		CRS:       crs,
		Transform: [6]float64{t.ScaleX, t.ShearX, t.TranslateX, t.ShearY, t.ScaleY, t.TranslateY},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query neturl.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query neturl.Values, body, out interface{}) error {
	url := c.baseURL + "/" + path
	if len(query) > 0 {
		url += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("doJSON.Marshal: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("doJSON.NewRequest: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("doJSON.Do: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		switch resp.StatusCode {
		case http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return service.MakeTemporary(fmt.Errorf("doJSON: %w", err))
		}
		return fmt.Errorf("doJSON: %w", err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("doJSON.Decode: %w", err)
	}
	return nil
}

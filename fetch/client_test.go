package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/go-spatial/geom"

	"github.com/geopull/eefetch/downloader"
	"github.com/geopull/eefetch/ee"
)

const regionAssetJSON = `{
	"type": "TABLE",
	"name": "projects/ee-joshisur231/assets/pa_effectiveness/nepal_boundary",
	"geometry": {"type": "Polygon", "coordinates": [[[80,26],[88,26],[88,31],[80,31],[80,26]]]}
}`

const imageAssetJSON = `{
	"type": "IMAGE",
	"name": "projects/earthengine-public/assets/COPERNICUS/S2/IMG",
	"geometry": {"type": "Polygon", "coordinates": [[[85,27],[86,27],[86,28],[85,28],[85,27]]]},
	"bands": [{"id": "B1", "grid": {
		"crsCode": "EPSG:32645",
		"affineTransform": {"scaleX": 30, "translateX": 300000, "scaleY": -30, "translateY": 3100000},
		"dimensions": {"width": 1000, "height": 1000}
	}}]
}`

const memberListJSON = `{"images": [
	{"name": "projects/earthengine-public/assets/COPERNICUS/S2/A", "bands": [{"id": "B2", "grid": {
		"crsCode": "EPSG:32645",
		"affineTransform": {"scaleX": 10, "translateX": 300000, "scaleY": -10, "translateY": 3100000}
	}}]},
	{"name": "projects/earthengine-public/assets/COPERNICUS/S2/B", "bands": [{"id": "B2", "grid": {
		"crsCode": "EPSG:32645",
		"affineTransform": {"scaleX": 10, "translateX": 300000, "scaleY": -10, "translateY": 3100000}
	}}]}
]}`

// fakePlatform answers the session ping, asset lookups, member listings and
// map rendering.
type fakePlatform struct {
	members string
}

func (f *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, ":listAssets"):
		w.Write([]byte(`{}`))
	case strings.HasSuffix(r.URL.Path, ":listImages"):
		members := f.members
		if members == "" {
			members = memberListJSON
		}
		w.Write([]byte(members))
	case strings.HasSuffix(r.URL.Path, "/maps"):
		w.Write([]byte(`{"name": "projects/test-project/maps/m1"}`))
	case strings.HasSuffix(r.URL.Path, "nepal_boundary"):
		w.Write([]byte(regionAssetJSON))
	case strings.HasSuffix(r.URL.Path, "COPERNICUS/S2/IMG"):
		w.Write([]byte(imageAssetJSON))
	default:
		http.NotFound(w, r)
	}
}

type imageCall struct {
	img       ee.Image
	region    geom.Geometry
	scale     float64
	dest      string
	opts      downloader.Options
	parentErr error
}

type colCall struct {
	col     ee.ImageCollection
	region  geom.Geometry
	scale   float64
	destDir string
	opts    downloader.Options
	dirErr  error
}

// recorder captures delegated transfers and checks the destination has been
// prepared by the time they run.
type recorder struct {
	mu     sync.Mutex
	err    error
	images []imageCall
	cols   []colCall
}

func (r *recorder) DownloadImage(ctx context.Context, img ee.Image, region geom.Geometry, scale float64, dest string, opts downloader.Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, statErr := os.Stat(filepath.Dir(dest))
	r.images = append(r.images, imageCall{img, region, scale, dest, opts, statErr})
	return r.err
}

func (r *recorder) DownloadImageCollection(ctx context.Context, col ee.ImageCollection, region geom.Geometry, scale float64, destDir string, opts downloader.Options) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, statErr := os.Stat(destDir)
	r.cols = append(r.cols, colCall{col, region, scale, destDir, opts, statErr})
	return nil, r.err
}

func newTestClient(t *testing.T, platform *fakePlatform) (*Client, *recorder) {
	t.Helper()
	srv := httptest.NewServer(platform)
	t.Cleanup(srv.Close)
	eec, err := ee.Initialize(context.Background(), "test-project", ee.WithBaseURL(srv.URL+"/v1"), ee.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	rec := &recorder{}
	c := New(eec, WithDownloader(rec), WithErrorLog(filepath.Join(t.TempDir(), "error_log.log")))
	return c, rec
}

func TestNewErrorLogPath(t *testing.T) {
	c := New(nil)
	if c.errlogPath != ErrorLogFile {
		t.Errorf("Expecting %s got %s", ErrorLogFile, c.errlogPath)
	}
}

func TestErrorLogEntry(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	c, rec := newTestClient(t, &fakePlatform{})
	c.errlogPath = ErrorLogFile
	rec.err = errors.New("transfer failed")

	if _, err := c.Image(context.Background(), "COPERNICUS/S2/IMG"); err == nil {
		t.Fatal("Expecting an error")
	} else if !strings.Contains(err.Error(), "transfer failed") {
		t.Errorf("Expecting the transfer error, got %v", err)
	}

	content, err := os.ReadFile(ErrorLogFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expecting 1 entry got %d: %q", len(lines), string(content))
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`).MatchString(lines[0]) {
		t.Errorf("Expecting a timestamped entry, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "error") {
		t.Errorf("Expecting an error entry, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "COPERNICUS/S2/IMG") {
		t.Errorf("Expecting the asset in the entry, got %q", lines[0])
	}

	// A second failure appends a second entry
	if _, err := c.Image(context.Background(), "COPERNICUS/S2/IMG"); err == nil {
		t.Fatal("Expecting an error")
	}
	content, err = os.ReadFile(ErrorLogFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if n := len(strings.Split(strings.TrimRight(string(content), "\n"), "\n")); n != 2 {
		t.Errorf("Expecting 2 entries got %d", n)
	}
}

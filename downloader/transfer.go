package downloader

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliercoder/grab"
	"github.com/mholt/archiver"

	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service"
	"github.com/geopull/eefetch/service/log"
)

func fmtBytes(bytes int64) string {
	v := float64(bytes)
	switch {
	case v > 1<<30:
		return fmt.Sprintf("%.2fGo", v/(1<<30))
	case v > 1<<20:
		return fmt.Sprintf("%.2fMo", v/(1<<20))
	case v > 1<<10:
		return fmt.Sprintf("%.2fko", v/(1<<10))
	default:
		return fmt.Sprintf("%.2fo", v)
	}
}

func displayProgress(ctx context.Context, prefix string, resp *grab.Response, progressPeriod float64) {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	progress, lastBytes, seconds := 0.0, int64(0), int64(0)
	for {
		select {
		case <-t.C:
			seconds++
			if resp.Progress() > progress {
				log.Logger(ctx).Sugar().Debugf("%s: %.2f%% %s/%s (%s/s)", prefix, 100*resp.Progress(), fmtBytes(resp.BytesComplete()), fmtBytes(resp.Size), fmtBytes((resp.BytesComplete()-lastBytes)/seconds))
				seconds = 0
				progress += progressPeriod
				lastBytes = resp.BytesComplete()
			}

		case <-resp.Done:
			return
		}
	}
}

// fetchZip downloads the rendered archive and unpacks the GeoTIFF it holds.
func fetchZip(ctx context.Context, c *ee.Client, thumb *ee.Thumbnail, workdir, displayPrefix string) (string, error) {
	localZip := filepath.Join(workdir, "pixels.zip")
	req, err := grab.NewRequest(localZip, c.PixelsURL(thumb))
	if err != nil {
		return "", fmt.Errorf("fetchZip.NewRequest: %w", err)
	}
	req = req.WithContext(ctx)

	if err := download(ctx, c.HTTPClient(), req, displayPrefix); err != nil {
		return "", fmt.Errorf("fetchZip.%w", err)
	}

	defer os.Remove(localZip)
	if err := unarchive(localZip, workdir); err != nil {
		return "", fmt.Errorf("fetchZip.Unarchive: %w", err)
	}

	tifs, err := filepath.Glob(filepath.Join(workdir, "*.tif"))
	if err != nil {
		return "", fmt.Errorf("fetchZip.Glob: %w", err)
	}
	if len(tifs) != 1 {
		return "", service.MakeTemporary(fmt.Errorf("fetchZip: expected one tif in the archive, got %d", len(tifs)))
	}
	return tifs[0], nil
}

// download a file with display every 5%
func download(ctx context.Context, httpClient *http.Client, req *grab.Request, displayPrefix string) error {
	client := grab.NewClient()
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	resp := client.Do(req)

	displayProgress(ctx, displayPrefix, resp, 0.05)

	if err := resp.Err(); err != nil {
		err = fmt.Errorf("download[%s]: %w", req.URL(), err)
		if resp.HTTPResponse == nil {
			return service.MakeTemporary(err)
		}
		switch resp.HTTPResponse.StatusCode {
		case 408, 429, 500, 501, 502, 503, 504:
			return service.MakeTemporary(err)
		default:
			return err
		}
	}
	return nil
}

// unarchive file with basic check. All errors are temporary.
func unarchive(localZip, localDir string) error {
	tmpdir, err := os.MkdirTemp(localDir, filepath.Base(localZip))
	if err != nil {
		return service.MakeTemporary(err)
	}
	defer os.RemoveAll(tmpdir)
	if err := archiver.Unarchive(localZip, tmpdir); err != nil {
		return service.MakeTemporary(err)
	}
	entries, err := os.ReadDir(tmpdir)
	if err != nil {
		return service.MakeTemporary(err)
	}
	if len(entries) == 0 {
		return service.MakeTemporary(fmt.Errorf("empty zip"))
	}
	for _, f := range entries {
		os.Rename(filepath.Join(tmpdir, f.Name()), filepath.Join(localDir, f.Name()))
	}
	return nil
}

package downloader_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-spatial/geom"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/geopull/eefetch/downloader"
	"github.com/geopull/eefetch/ee"
	"github.com/geopull/eefetch/service"
)

// fakePlatform serves the endpoints the download pipeline walks through:
// the ping, the collection listing, the export creation and the pixels.
type fakePlatform struct {
	mu         sync.Mutex
	thumbnails int
	images     []string
	tifBytes   []byte
}

func (f *fakePlatform) createdThumbnails() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.thumbnails
}

func (f *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, ":listAssets"):
		fmt.Fprint(w, "{}")
	case strings.HasSuffix(r.URL.Path, ":listImages"):
		type image struct {
			Name string `json:"name"`
		}
		resp := struct {
			Images []image `json:"images"`
		}{}
		for _, name := range f.images {
			resp.Images = append(resp.Images, image{name})
		}
		json.NewEncoder(w).Encode(resp)
	case strings.HasSuffix(r.URL.Path, "/thumbnails"):
		f.mu.Lock()
		f.thumbnails++
		n := f.thumbnails
		f.mu.Unlock()
		fmt.Fprintf(w, `{"name":"projects/test-project/thumbnails/%d"}`, n)
	case strings.HasSuffix(r.URL.Path, ":getPixels"):
		w.Write(f.zipBytes())
	default:
		http.NotFound(w, r)
	}
}

func (f *fakePlatform) zipBytes() []byte {
	buf := bytes.Buffer{}
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("download.tif")
	Expect(err).NotTo(HaveOccurred())
	_, err = fw.Write(f.tifBytes)
	Expect(err).NotTo(HaveOccurred())
	Expect(zw.Close()).To(Succeed())
	return buf.Bytes()
}

var region = geom.Polygon{{{85, 27}, {86, 27}, {86, 28}, {85, 28}, {85, 27}}}

var _ = Describe("DownloadImage", func() {
	var (
		ctx      context.Context
		platform *fakePlatform
		server   *httptest.Server
		client   *ee.Client
		workdir  string
		dest     string
		opts     downloader.Options
	)

	BeforeEach(func() {
		ctx = context.Background()
		platform = &fakePlatform{tifBytes: []byte("GeoTIFF pixels")}
		server = httptest.NewServer(platform)
		var err error
		client, err = ee.Initialize(ctx, "test-project", ee.WithBaseURL(server.URL+"/v1"), ee.WithHTTPClient(server.Client()))
		Expect(err).NotTo(HaveOccurred())
		workdir, err = os.MkdirTemp("", "downloader")
		Expect(err).NotTo(HaveOccurred())
		dest = filepath.Join(workdir, "out", "srtm.tif")
		opts = downloader.Options{}
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(workdir)
	})

	It("delivers the exported pixels", func() {
		err := downloader.DownloadImage(ctx, client, ee.Img("CGIAR/SRTM90_V4"), region, 90, dest, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(dest).To(BeAnExistingFile())
		content, err := os.ReadFile(dest)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal([]byte("GeoTIFF pixels")))
		Expect(platform.createdThumbnails()).To(Equal(1))
	})

	It("skips an existing destination", func() {
		Expect(os.MkdirAll(filepath.Dir(dest), 0766)).To(Succeed())
		Expect(os.WriteFile(dest, []byte("previous"), 0644)).To(Succeed())

		err := downloader.DownloadImage(ctx, client, ee.Img("CGIAR/SRTM90_V4"), region, 90, dest, opts)
		Expect(err).NotTo(HaveOccurred())
		content, err := os.ReadFile(dest)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal([]byte("previous")))
		Expect(platform.createdThumbnails()).To(Equal(0))
	})

	It("overwrites an existing destination when asked", func() {
		Expect(os.MkdirAll(filepath.Dir(dest), 0766)).To(Succeed())
		Expect(os.WriteFile(dest, []byte("previous"), 0644)).To(Succeed())

		opts.Overwrite = true
		err := downloader.DownloadImage(ctx, client, ee.Img("CGIAR/SRTM90_V4"), region, 90, dest, opts)
		Expect(err).NotTo(HaveOccurred())
		content, err := os.ReadFile(dest)
		Expect(err).NotTo(HaveOccurred())
		Expect(content).To(Equal([]byte("GeoTIFF pixels")))
	})

	It("rejects an oversized export before rendering anything", func() {
		opts.MaxDim = 10
		err := downloader.DownloadImage(ctx, client, ee.Img("CGIAR/SRTM90_V4"), region, 90, dest, opts)
		Expect(err).To(HaveOccurred())
		Expect(service.Fatal(err)).To(BeTrue())
		Expect(platform.createdThumbnails()).To(Equal(0))
	})
})

var _ = Describe("DownloadImageCollection", func() {
	const collection = "projects/earthengine-public/assets/COPERNICUS/S2"

	var (
		ctx      context.Context
		platform *fakePlatform
		server   *httptest.Server
		client   *ee.Client
		destDir  string
		opts     downloader.Options
	)

	BeforeEach(func() {
		ctx = context.Background()
		platform = &fakePlatform{tifBytes: []byte("GeoTIFF pixels")}
		server = httptest.NewServer(platform)
		var err error
		client, err = ee.Initialize(ctx, "test-project", ee.WithBaseURL(server.URL+"/v1"), ee.WithHTTPClient(server.Client()))
		Expect(err).NotTo(HaveOccurred())
		destDir, err = os.MkdirTemp("", "collection")
		Expect(err).NotTo(HaveOccurred())
		opts = downloader.Options{}
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(destDir)
	})

	It("downloads every member of the collection", func() {
		platform.images = []string{collection + "/A", collection + "/B"}
		col := ee.Col("COPERNICUS/S2").FilterBounds(region)

		dests, err := downloader.DownloadImageCollection(ctx, client, col, region, 90, destDir, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(dests).To(HaveLen(2))
		Expect(dests[0]).To(HaveSuffix("A.tif"))
		Expect(dests[1]).To(HaveSuffix("B.tif"))
		for _, d := range dests {
			Expect(d).To(BeAnExistingFile())
		}
		Expect(platform.createdThumbnails()).To(Equal(2))
	})

	It("fails on an empty collection", func() {
		col := ee.Col("COPERNICUS/S2").FilterBounds(region)
		_, err := downloader.DownloadImageCollection(ctx, client, col, region, 90, destDir, opts)
		Expect(err).To(MatchError(ContainSubstring("empty collection")))
	})

	It("names the files after Filenames", func() {
		platform.images = []string{collection + "/A", collection + "/B"}
		opts.Filenames = []string{"first.tif", "second.tif"}
		col := ee.Col("COPERNICUS/S2").FilterBounds(region)

		dests, err := downloader.DownloadImageCollection(ctx, client, col, region, 90, destDir, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(dests[0]).To(HaveSuffix("first.tif"))
		Expect(dests[1]).To(HaveSuffix("second.tif"))
		Expect(dests[0]).To(BeAnExistingFile())
	})

	It("rejects misaligned Filenames", func() {
		platform.images = []string{collection + "/A", collection + "/B"}
		opts.Filenames = []string{"only.tif"}
		col := ee.Col("COPERNICUS/S2").FilterBounds(region)

		_, err := downloader.DownloadImageCollection(ctx, client, col, region, 90, destDir, opts)
		Expect(err).To(MatchError(ContainSubstring("filenames")))
	})
})

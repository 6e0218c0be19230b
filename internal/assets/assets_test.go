package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, data := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a/b.PNG"))
	assert.True(t, IsImage("x.jpeg"))
	assert.True(t, IsImage("logo.svg"))
	assert.True(t, IsImage("photo.WebP"))
	assert.False(t, IsImage("catalog.yaml"))
	assert.False(t, IsImage("README"))

	assert.True(t, IsRaster("a.JPG"))
	assert.False(t, IsRaster("a.svg"))
	assert.False(t, IsRaster("a.webp"))
}

func TestDirSourceListAndRead(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"dynamic-products/HMI/b.svg": []byte("<svg/>"),
		"dynamic-products/HMI/a.svg": []byte("<svg/>"),
		"Clients/acme.svg":           []byte("<svg/>"),
	})

	src := NewDirSource(root)
	objects, err := src.List(context.Background())
	require.NoError(t, err)

	var keys []string
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	assert.Equal(t, []string{
		"Clients/acme.svg",
		"dynamic-products/HMI/a.svg",
		"dynamic-products/HMI/b.svg",
	}, keys)

	data, err := src.Read(context.Background(), "Clients/acme.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = src.Read(context.Background(), "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirSourceMissingRoot(t *testing.T) {
	objects, err := NewDirSource(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestThumbnailWidth(t *testing.T) {
	thumb, err := Thumbnail(pngBytes(t, 800, 400), 200, 80)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// Narrow images keep their size
	thumb, err = Thumbnail(pngBytes(t, 50, 20), 200, 0)
	require.NoError(t, err)
	img, err = jpeg.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())

	_, err = Thumbnail([]byte("not an image"), 200, 80)
	assert.Error(t, err)
}

func TestImporter(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"dynamic-products/PLC iQF/FX5U.png": pngBytes(t, 640, 320),
		"dynamic-products/HMI/GOT2000.svg":  []byte("<svg/>"),
		"dynamic-products/HMI/broken.jpg":   []byte("garbage"),
		"Clients/Acme Steel.svg":            []byte("<svg/>"),
		"hero.svg":                          []byte("<svg/>"),
		"notes.txt":                         []byte("skip me"),
		"catalog.yaml":                      []byte("products:\n  dynamic-products/HMI/GOT2000.svg:\n    title: GOT 2000\n"),
	})

	logger, hook := test.NewNullLogger()
	im := NewImporter(NewDirSource(root), out, config.ThumbnailConfig{Enabled: true, Width: 160, Quality: 80}, logger)

	res, err := im.Import(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Images, 5)
	assert.NoFileExists(t, filepath.Join(out, "assets", "notes.txt"))
	assert.FileExists(t, filepath.Join(out, "assets", "hero.svg"))
	assert.FileExists(t, filepath.Join(out, "assets", "Clients", "Acme Steel.svg"))

	thumb, ok := res.Thumbnails["dynamic-products/PLC iQF/FX5U.png"]
	require.True(t, ok)
	assert.Equal(t, "/assets/_thumbs/dynamic-products/PLC%20iQF/FX5U.png.jpg", thumb)

	f, err := os.Open(filepath.Join(out, "assets", "_thumbs", "dynamic-products", "PLC iQF", "FX5U.png.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 160)

	// corrupt raster: published, no thumbnail, warning logged
	assert.FileExists(t, filepath.Join(out, "assets", "dynamic-products", "HMI", "broken.jpg"))
	assert.NotContains(t, res.Thumbnails, "dynamic-products/HMI/broken.jpg")
	warned := false
	for _, e := range hook.AllEntries() {
		if e.Message == "Thumbnail skipped" {
			warned = true
		}
	}
	assert.True(t, warned)

	assert.Len(t, res.Products(), 3)
	clients := res.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Steel", clients[0].Name)
	assert.Equal(t, "/assets/Clients/Acme%20Steel.svg", clients[0].Image.Path)

	entry, ok := res.Manifest.Lookup("dynamic-products/HMI/GOT2000.svg")
	require.True(t, ok)
	assert.Equal(t, "GOT 2000", entry.Title)
}

func TestImporterSameStemThumbnails(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, img, nil))
	writeTree(t, root, map[string][]byte{
		"dynamic-products/HMI/GOT.png": pngBytes(t, 400, 200),
		"dynamic-products/HMI/GOT.jpg": jpg.Bytes(),
	})

	log, _ := test.NewNullLogger()
	im := NewImporter(NewDirSource(root), out, config.ThumbnailConfig{Enabled: true, Width: 100, Quality: 80}, log)
	res, err := im.Import(context.Background())
	require.NoError(t, err)

	fromPNG := res.Thumbnails["dynamic-products/HMI/GOT.png"]
	fromJPG := res.Thumbnails["dynamic-products/HMI/GOT.jpg"]
	require.NotEmpty(t, fromPNG)
	require.NotEmpty(t, fromJPG)
	assert.NotEqual(t, fromPNG, fromJPG)

	// each thumbnail keeps its own source's aspect ratio
	for key, height := range map[string]int{"GOT.png.jpg": 50, "GOT.jpg.jpg": 66} {
		f, err := os.Open(filepath.Join(out, "assets", "_thumbs", "dynamic-products", "HMI", key))
		require.NoError(t, err)
		cfg, err := jpeg.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, height, cfg.Height, key)
	}
}

func TestImporterBadManifest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"catalog.yaml": []byte("products:\n  a.png:\n    colour: red\n")})

	_, err := NewImporter(NewDirSource(root), t.TempDir(), config.ThumbnailConfig{}, nil).Import(context.Background())
	assert.ErrorContains(t, err, "catalog.yaml")
}

func TestNewSource(t *testing.T) {
	src, err := New(config.AssetsConfig{Source: "dir"}, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &DirSource{}, src)

	_, err = New(config.AssetsConfig{Source: "ftp"}, "")
	assert.Error(t, err)

	_, err = New(config.AssetsConfig{Source: "s3"}, "")
	assert.ErrorContains(t, err, "bucket")

	src, err = New(config.AssetsConfig{Source: "s3", S3: config.S3Config{
		Endpoint: "localhost:9000",
		Bucket:   "site",
		Prefix:   "/assets/",
	}}, "")
	require.NoError(t, err)
	assert.Equal(t, "assets/", src.(*S3Source).prefix)
}

func TestPublicPath(t *testing.T) {
	assert.Equal(t, "/assets/dynamic-products/HMI/GOT%20Simple.png", PublicPath("dynamic-products/HMI/GOT Simple.png"))
	assert.Equal(t, "/assets/a/b.png", PublicPath(`a\b.png`))
	assert.Equal(t, "_thumbs/x/y.PNG.jpg", ThumbKey("x/y.PNG"))
}

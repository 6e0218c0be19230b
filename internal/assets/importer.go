package assets

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/dcsystems/dcsite/internal/catalog"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// PublicDir is the directory under the output root that receives imported files
	PublicDir = "assets"
	// ThumbDir holds generated thumbnails, inside PublicDir
	ThumbDir = "_thumbs"
	// ClientsDir is the folder whose images become client logos
	ClientsDir = "Clients"
)

// New picks the source configured under [assets]. root is the local assets
// directory used by the "dir" source.
func New(cfg config.AssetsConfig, root string) (Source, error) {
	switch cfg.Source {
	case "", "dir":
		return NewDirSource(root), nil
	case "s3":
		return NewS3Source(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown assets source %q", cfg.Source)
	}
}

// Result is what one import produced
type Result struct {
	Images     []models.AssetRef // every imported image, sorted by key
	Thumbnails map[string]string // asset key -> site-absolute thumbnail path
	Manifest   *catalog.Manifest
	Bytes      int64 // total size of imported images
}

// Products returns the images below the catalog marker directory
func (r *Result) Products() []models.AssetRef {
	var out []models.AssetRef
	for _, ref := range r.Images {
		if hasSegment(ref.Key, catalog.MarkerDir) {
			out = append(out, ref)
		}
	}
	return out
}

// Clients turns the images in the Clients folder into logo records
func (r *Result) Clients() []*models.Client {
	var out []*models.Client
	for _, ref := range r.Images {
		if !hasSegment(ref.Key, ClientsDir) {
			continue
		}
		filename := path.Base(ref.Key)
		out = append(out, &models.Client{
			Name:     models.StripExt(filename),
			Filename: filename,
			Image:    ref,
		})
	}
	return out
}

func hasSegment(key, segment string) bool {
	parts := strings.Split(key, "/")
	for _, p := range parts[:len(parts)-1] {
		if strings.EqualFold(p, segment) {
			return true
		}
	}
	return false
}

// Importer copies images from a source into the output tree
type Importer struct {
	src        Source
	outDir     string
	thumbnails config.ThumbnailConfig
	log        logrus.FieldLogger
}

// NewImporter creates an importer that publishes into outDir/assets
func NewImporter(src Source, outDir string, thumbs config.ThumbnailConfig, log logrus.FieldLogger) *Importer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Importer{src: src, outDir: outDir, thumbnails: thumbs, log: log}
}

// Import lists the source, publishes every image and reads the optional
// catalog manifest. Files are copied concurrently with a bounded group;
// the first failure cancels the rest.
func (im *Importer) Import(ctx context.Context) (*Result, error) {
	objects, err := im.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	manifest, err := im.readManifest(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Thumbnails: make(map[string]string),
		Manifest:   manifest,
	}
	for _, obj := range objects {
		if !IsImage(obj.Key) {
			continue
		}
		res.Images = append(res.Images, models.AssetRef{
			Key:  obj.Key,
			Path: PublicPath(obj.Key),
			Size: obj.Size,
		})
		res.Bytes += obj.Size
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, ref := range res.Images {
		g.Go(func() error {
			thumb, err := im.publish(gctx, ref)
			if err != nil {
				return err
			}
			if thumb != "" {
				mu.Lock()
				res.Thumbnails[ref.Key] = thumb
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	im.log.WithFields(logrus.Fields{
		"images":     len(res.Images),
		"thumbnails": len(res.Thumbnails),
	}).Info("Assets imported")
	return res, nil
}

func (im *Importer) readManifest(ctx context.Context) (*catalog.Manifest, error) {
	data, err := im.src.Read(ctx, catalog.ManifestFile)
	if errors.Is(err, ErrNotFound) {
		return catalog.EmptyManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog manifest: %w", err)
	}
	m, err := catalog.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", catalog.ManifestFile, err)
	}
	return m, nil
}

// publish writes one image and, for raster formats, its thumbnail
func (im *Importer) publish(ctx context.Context, ref models.AssetRef) (string, error) {
	data, err := im.src.Read(ctx, ref.Key)
	if err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(im.outDir, PublicDir, filepath.FromSlash(ref.Key)), data); err != nil {
		return "", err
	}

	if !im.thumbnails.Enabled || !IsRaster(ref.Key) {
		return "", nil
	}
	thumb, err := Thumbnail(data, im.thumbnails.Width, im.thumbnails.Quality)
	if err != nil {
		// A corrupt image still gets published; only the thumbnail is skipped
		im.log.WithError(err).WithField("asset", ref.Key).Warn("Thumbnail skipped")
		return "", nil
	}
	key := ThumbKey(ref.Key)
	if err := writeFile(filepath.Join(im.outDir, PublicDir, filepath.FromSlash(key)), thumb); err != nil {
		return "", err
	}
	return PublicPath(key), nil
}

// ThumbKey is where the thumbnail of key is stored, relative to PublicDir.
// The source extension stays in the name so GOT.png and GOT.jpg never share
// a thumbnail.
func ThumbKey(key string) string {
	return path.Join(ThumbDir, key+".jpg")
}

// PublicPath is the escaped site-absolute URL of an imported key
func PublicPath(key string) string {
	parts := strings.Split(cleanKey(key), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/" + PublicDir + "/" + strings.Join(parts, "/")
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

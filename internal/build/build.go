// Package build runs one full site build: import assets, derive the product
// catalog, load content and render every page.
package build

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dcsystems/dcsite/internal/assets"
	"github.com/dcsystems/dcsite/internal/catalog"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/loader"
	"github.com/dcsystems/dcsite/internal/renderer"
	"github.com/dcsystems/dcsite/internal/utils"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Options control one build
type Options struct {
	// Root is the project directory holding site.toml, content and assets
	Root string
	// DestDir overrides build.build-dir when set
	DestDir string
	// LiveReloadPath is injected into pages when serving
	LiveReloadPath string
	// AssetsFS provides the embedded front-end (expects paths under "frontend/")
	AssetsFS fs.FS
	// BuildTime is forwarded to the renderer; zero means now
	BuildTime time.Time
}

// Summary describes a finished build
type Summary struct {
	DestDir  string
	Routes   []string
	Files    int
	Posts    int
	Products int
	Clients  int
	Images   int
	Bytes    int64
	Duration time.Duration
}

// OutputDir resolves the directory a build writes to
func OutputDir(cfg *config.Config, opts Options) string {
	dir := opts.DestDir
	if dir == "" {
		dir = cfg.Build.BuildDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(opts.Root, dir)
	}
	return dir
}

// resetOutputDir empties the output directory so pages and assets from a
// previous build never outlive their source. An output directory that holds
// the project itself is refused.
func resetOutputDir(outDir, root string) error {
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(absOut, absRoot); err == nil && !strings.HasPrefix(rel, "..") {
		return fmt.Errorf("output directory '%s' contains the project directory", outDir)
	}
	if !utils.DirExists(outDir) {
		return nil
	}
	if err := utils.RemoveDirContents(outDir); err != nil {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	return nil
}

// Run builds the site described by cfg into the output directory
func Run(ctx context.Context, cfg *config.Config, opts Options, log logrus.FieldLogger) (*Summary, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	start := time.Now()
	outDir := OutputDir(cfg, opts)
	if err := resetOutputDir(outDir, opts.Root); err != nil {
		return nil, err
	}

	src, err := assets.New(cfg.Assets, filepath.Join(opts.Root, cfg.Site.Assets))
	if err != nil {
		return nil, err
	}
	imported, err := assets.NewImporter(src, outDir, cfg.Build.Thumbnails, log).Import(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to import assets: %w", err)
	}

	products := catalog.NewBuilder(imported.Manifest, log).Build(imported.Products())
	for _, p := range products {
		p.Thumbnail = imported.Thumbnails[p.Image.Key]
	}

	site, err := loader.NewSiteLoader(opts.Root, cfg, log).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	site.Products = products
	site.Clients = imported.Clients()

	themeDir := filepath.Join(opts.Root, "theme")
	res, err := renderer.NewHtmlRenderer(log).Render(&renderer.RenderContext{
		DestDir:                outDir,
		Site:                   site,
		Config:                 cfg,
		ThemeDir:               themeDir,
		LiveReloadEndpointPath: opts.LiveReloadPath,
		AssetsFS:               opts.AssetsFS,
		BuildTime:              opts.BuildTime,
	})
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	sum := &Summary{
		DestDir:  outDir,
		Routes:   res.Routes,
		Files:    res.Files + len(imported.Images) + len(imported.Thumbnails),
		Posts:    len(site.PublishedPosts()),
		Products: len(products),
		Clients:  len(site.Clients),
		Images:   len(imported.Images),
		Bytes:    imported.Bytes,
		Duration: time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"dest":     outDir,
		"pages":    len(sum.Routes),
		"files":    sum.Files,
		"products": sum.Products,
		"assets":   humanize.Bytes(uint64(sum.Bytes)),
		"duration": sum.Duration.Round(time.Millisecond).String(),
	}).Info("Site built")
	return sum, nil
}

package renderer

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aymerick/raymond"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/models"
	"github.com/dcsystems/dcsite/internal/seo"
	"github.com/sirupsen/logrus"
)

// RenderContext holds context for rendering
type RenderContext struct {
	DestDir string
	Site    *models.Site
	Config  *config.Config
	// ThemeDir optionally overrides templates by file name
	ThemeDir string
	// If non-empty, pages inject an SSE live-reload client targeting this path.
	LiveReloadEndpointPath string
	// AssetsFS optionally provides embedded front-end assets (expects paths under "frontend/")
	AssetsFS fs.FS
	// ResourceMap provides mapping original -> fingerprinted asset paths for templates
	ResourceMap map[string]string
	// BuildTime stamps the footer year and sitemap; zero means now
	BuildTime time.Time
}

// Result summarizes one render
type Result struct {
	Routes []string // every page route written, in render order
	Files  int
}

// HtmlRenderer renders a site to HTML
type HtmlRenderer struct {
	markdown *markdownConverter
	log      logrus.FieldLogger
}

// NewHtmlRenderer creates a new HTML renderer
func NewHtmlRenderer(log logrus.FieldLogger) *HtmlRenderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HtmlRenderer{markdown: newMarkdownConverter(), log: log}
}

// Render writes every route, the 404 page, redirects and crawler files
func (r *HtmlRenderer) Render(ctx *RenderContext) (*Result, error) {
	if ctx.BuildTime.IsZero() {
		ctx.BuildTime = time.Now()
	}

	// Create output directory
	if err := os.MkdirAll(ctx.DestDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Prepare and copy assets first, building the resource mapping for fingerprinting
	if err := r.copyAssets(ctx); err != nil {
		return nil, fmt.Errorf("failed to copy assets: %w", err)
	}

	src, err := newTemplateSource(ctx.AssetsFS, ctx.ThemeDir)
	if err != nil {
		return nil, err
	}
	tpls, err := loadTemplates(src, r.helpers(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	for _, post := range ctx.Site.Posts {
		html, err := r.markdown.Convert(post.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to render post %s: %w", post.Source, err)
		}
		post.HTML = html
	}

	pages, err := buildPages(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, p := range pages {
		if err := r.renderPage(ctx, tpls, p); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", p.route, err)
		}
		res.Files++
		if p.route != notFoundRoute {
			res.Routes = append(res.Routes, p.route)
		}
		r.log.WithField("route", p.route).Debug("Page written")
	}

	n, err := r.generateRedirects(ctx, tpls)
	if err != nil {
		return nil, fmt.Errorf("failed to write redirects: %w", err)
	}
	res.Files += n

	n, err = writeCrawlerFiles(ctx, res.Routes)
	if err != nil {
		return nil, err
	}
	res.Files += n

	return res, nil
}

// helpers are registered on every template of one render
func (r *HtmlRenderer) helpers(ctx *RenderContext) map[string]interface{} {
	return map[string]interface{}{
		// fingerprinted path of a front-end file
		"resource": func(name string) string {
			if v, ok := ctx.ResourceMap[name]; ok {
				return "/" + v
			}
			return "/" + name
		},
	}
}

// renderPage renders the page body, wraps it in the layout and writes it
func (r *HtmlRenderer) renderPage(ctx *RenderContext, tpls *templateSet, p *page) error {
	body, ok := tpls.pages[p.template]
	if !ok {
		return fmt.Errorf("no template %q", p.template)
	}

	data := layoutData(ctx, p)
	content, err := body.Exec(data)
	if err != nil {
		return fmt.Errorf("failed to render template %s: %w", p.template, err)
	}
	data["content"] = raymond.SafeString(content)

	out, err := tpls.layout.Exec(data)
	if err != nil {
		return fmt.Errorf("failed to render layout: %w", err)
	}
	return writeOutput(ctx.DestDir, routeFile(p.route), []byte(out))
}

// layoutData merges the page data over the shared chrome
func layoutData(ctx *RenderContext, p *page) map[string]interface{} {
	site := ctx.Site.Data
	name := siteName(ctx)
	head := seo.NewHead(name, ctx.Config.Site.BaseURL, p.canonicalRoute(), p.title, p.description)

	var script map[string]interface{}
	if p.script != nil {
		script = map[string]interface{}{"id": p.script.ID, "json": raymond.SafeString(p.script.JSON)}
	}

	language := ctx.Config.Site.Language
	if language == "" {
		language = "en"
	}

	data := map[string]interface{}{
		"language":             language,
		"title":                head.Title,
		"description":          head.Description,
		"og_title":             p.title,
		"canonical":            head.Canonical,
		"structured_data":      script,
		"site_name":            name,
		"logo":                 logoPath(site),
		"tagline":              tagline(site),
		"nav":                  navLinks(p.route),
		"training_url":         trainingURL(site),
		"footer_products":      orDefault(site.FooterProducts, defaultFooterProducts),
		"footer_company":       orDefault(site.FooterCompany, defaultFooterCompany),
		"footer_support":       orDefault(site.FooterSupport, defaultFooterSupport),
		"year":                 ctx.BuildTime.Year(),
		"live_reload_endpoint": ctx.LiveReloadEndpointPath,
		"page_class":           p.template,
	}
	if data["og_title"] == "" {
		data["og_title"] = name
	}
	for k, v := range p.data {
		data[k] = v
	}
	return data
}

// routeFile maps a route to its file under the output root
func routeFile(route string) string {
	switch route {
	case "/":
		return "index.html"
	case notFoundRoute:
		return "404.html"
	}
	return path.Join(strings.Trim(route, "/"), "index.html")
}

func writeOutput(destDir, rel string, data []byte) error {
	out := filepath.Join(destDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return os.WriteFile(out, data, 0644)
}

// frontendAssets are copied from frontend/; hashed ones get a content
// fingerprint in their file name
var frontendAssets = []struct {
	key  string
	src  string
	hash bool
}{
	{"css/site.css", "css/site.css", true},
	{"js/site.js", "js/site.js", true},
	{"placeholder.svg", "images/placeholder.svg", false},
	{"logo.svg", "images/logo.svg", false},
	{"favicon.svg", "images/favicon.svg", false},
}

var resourceRe = regexp.MustCompile(`\{\{\s*resource\s+["']([^"']+)["']\s*\}\}`)

// copyAssets copies CSS, JS and images to the output directory
func (r *HtmlRenderer) copyAssets(ctx *RenderContext) error {
	type asset struct {
		key  string
		dest string
		data []byte
	}
	read := func(rel string) ([]byte, error) {
		if ctx.AssetsFS != nil {
			return fs.ReadFile(ctx.AssetsFS, path.Join("frontend", rel))
		}
		return os.ReadFile(filepath.Join("frontend", filepath.FromSlash(rel)))
	}

	mapping := map[string]string{}
	var assets []asset
	for _, a := range frontendAssets {
		data, err := read(a.src)
		if err != nil {
			r.log.WithField("asset", a.src).Debug("Front-end asset missing")
			continue
		}
		dest := a.key
		if a.hash {
			dest = hashName(a.key, data)
		}
		mapping[a.key] = dest
		assets = append(assets, asset{key: a.key, dest: dest, data: data})
	}

	// Write assets with placeholder rewrite
	for _, a := range assets {
		content := a.data
		ext := strings.ToLower(path.Ext(a.dest))
		if ext == ".css" || ext == ".js" {
			content = resourceRe.ReplaceAllFunc(content, func(m []byte) []byte {
				key := string(resourceRe.FindSubmatch(m)[1])
				if v, ok := mapping[key]; ok {
					return []byte("/" + v)
				}
				return []byte("/" + key)
			})
		}
		if err := writeOutput(ctx.DestDir, a.dest, content); err != nil {
			return err
		}
	}

	ctx.ResourceMap = mapping
	return nil
}

// hashName inserts a short content hash before the extension
func hashName(name string, data []byte) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s-%x%s", base, sum[:4], ext)
}

func safe(s string) raymond.SafeString {
	return raymond.SafeString(s)
}

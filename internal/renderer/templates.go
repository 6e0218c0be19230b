package renderer

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/aymerick/raymond"
)

// partialNames are registered on every page template
var partialNames = []string{"head", "header", "footer", "product-card", "office"}

// pageTemplates are the body templates, one per page kind
var pageTemplates = []string{
	"home", "about", "products", "blog", "post", "clients",
	"contact", "case-studies", "investors", "404",
}

// templateSet holds the parsed layout, page bodies and the redirect stub.
// Helpers and partials are registered per template, so sets built by
// concurrent or repeated renders never collide in raymond's globals.
type templateSet struct {
	layout   *raymond.Template
	pages    map[string]*raymond.Template
	redirect *raymond.Template
}

// templateSource reads templates, preferring a site theme directory over
// the embedded defaults
type templateSource struct {
	themeDir string
	fsys     fs.FS
	base     string
}

func newTemplateSource(assets fs.FS, themeDir string) (*templateSource, error) {
	if assets != nil {
		return &templateSource{themeDir: themeDir, fsys: assets, base: "frontend/templates"}, nil
	}
	// Fallback to disk
	tmplDir := filepath.Join("frontend", "templates")
	if _, err := os.Stat(tmplDir); err != nil {
		return nil, fmt.Errorf("templates directory not found at %s", tmplDir)
	}
	return &templateSource{themeDir: themeDir, fsys: os.DirFS(tmplDir), base: "."}, nil
}

func (s *templateSource) read(name string) ([]byte, error) {
	if s.themeDir != "" {
		if data, err := os.ReadFile(filepath.Join(s.themeDir, name)); err == nil {
			return data, nil
		}
	}
	data, err := fs.ReadFile(s.fsys, path.Join(s.base, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return data, nil
}

func (s *templateSource) parse(name string) (*raymond.Template, error) {
	data, err := s.read(name)
	if err != nil {
		return nil, err
	}
	tpl, err := raymond.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return tpl, nil
}

// loadTemplates parses every template and wires helpers and partials
func loadTemplates(src *templateSource, helpers map[string]interface{}) (*templateSet, error) {
	partials := make(map[string]string, len(partialNames))
	for _, name := range partialNames {
		data, err := src.read(name + ".hbs")
		if err != nil {
			return nil, err
		}
		partials[name] = string(data)
	}

	prepare := func(name string) (*raymond.Template, error) {
		tpl, err := src.parse(name)
		if err != nil {
			return nil, err
		}
		tpl.RegisterHelpers(helpers)
		tpl.RegisterPartials(partials)
		return tpl, nil
	}

	set := &templateSet{pages: make(map[string]*raymond.Template, len(pageTemplates))}
	var err error
	if set.layout, err = prepare("layout.hbs"); err != nil {
		return nil, err
	}
	if set.redirect, err = prepare("redirect.hbs"); err != nil {
		return nil, err
	}
	for _, name := range pageTemplates {
		tpl, err := prepare(name + ".hbs")
		if err != nil {
			return nil, err
		}
		set.pages[name] = tpl
	}
	return set, nil
}

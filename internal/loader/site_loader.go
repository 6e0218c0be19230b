package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/dcsystems/dcsite/internal/config"
	"github.com/dcsystems/dcsite/internal/models"
	"github.com/dcsystems/dcsite/internal/preprocessor"
	"github.com/dcsystems/dcsite/internal/preprocessor/excerpt"
	"github.com/dcsystems/dcsite/internal/preprocessor/readtime"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	dataDir  = "data"
	postsDir = "posts"
)

// dateLayouts are tried in order when parsing a post date
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	time.RFC3339,
}

// SiteLoader loads site content from disk
type SiteLoader struct {
	contentDir string
	pipeline   *preprocessor.Pipeline
	log        logrus.FieldLogger
}

// NewSiteLoader creates a loader for the content directory configured under [site]
func NewSiteLoader(rootDir string, cfg *config.Config, log logrus.FieldLogger) *SiteLoader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SiteLoader{
		contentDir: filepath.Join(rootDir, cfg.Site.Content),
		pipeline: preprocessor.NewPipeline(
			excerpt.NewExcerptPreprocessor(),
			readtime.NewReadTimePreprocessor(),
		),
		log: log,
	}
}

// Load reads site data and posts, then runs the preprocessors.
// Products and clients come from the asset import and are attached later.
func (l *SiteLoader) Load() (*models.Site, error) {
	site := models.NewSite()

	data, err := LoadData(filepath.Join(l.contentDir, dataDir))
	if err != nil {
		return nil, err
	}
	site.Data = data

	posts, err := LoadPosts(filepath.Join(l.contentDir, postsDir))
	if err != nil {
		return nil, err
	}
	site.Posts = posts

	if err := l.pipeline.Process(site); err != nil {
		return nil, fmt.Errorf("failed to preprocess content: %w", err)
	}

	l.log.WithFields(logrus.Fields{
		"posts":        len(posts),
		"preprocessed": strings.Join(l.pipeline.Names(), ","),
	}).Debug("Content loaded")
	return site, nil
}

// LoadData merges every YAML file in dir, in lexical order, into one
// SiteData. Later files override keys set by earlier ones. Unknown keys
// are an error so typos do not silently drop content.
func LoadData(dir string) (models.SiteData, error) {
	var data models.SiteData

	files, err := listFiles(dir, ".yaml", ".yml")
	if err != nil {
		return data, err
	}

	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return data, fmt.Errorf("failed to read %s: %w", file, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			return data, fmt.Errorf("failed to parse %s: %w", file, err)
		}
	}
	return data, nil
}

// LoadPosts parses every markdown file in dir. Posts are ordered newest
// first; undated posts go last, ordered by id.
func LoadPosts(dir string) ([]*models.Post, error) {
	files, err := listFiles(dir, ".md")
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(files))
	seen := make(map[string]string)
	for _, file := range files {
		post, err := parsePost(file)
		if err != nil {
			return nil, err
		}
		post.Source = filepath.ToSlash(filepath.Join(postsDir, filepath.Base(file)))
		if !validID(post.ID) {
			return nil, fmt.Errorf("invalid post id %q in %s", post.ID, post.Source)
		}
		if prev, dup := seen[post.ID]; dup {
			return nil, fmt.Errorf("duplicate post id %q in %s and %s", post.ID, prev, post.Source)
		}
		seen[post.ID] = post.Source
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.Time.IsZero() != b.Time.IsZero() {
			return !a.Time.IsZero()
		}
		if !a.Time.Equal(b.Time) {
			return a.Time.After(b.Time)
		}
		return a.ID < b.ID
	})
	return posts, nil
}

func parsePost(file string) (*models.Post, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	post := &models.Post{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), post)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter in %s: %w", file, err)
	}
	post.Content = strings.TrimSpace(string(body))

	slug := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if post.ID == "" {
		post.ID = slug
	}
	if post.Title == "" {
		post.Title = cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	}
	post.Time = parseDate(post.Date)
	return post, nil
}

// validID reports whether id can be used as a single URL path segment
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\?#% ")
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// listFiles returns the files in dir (not recursive) with one of exts,
// sorted by name. A missing dir yields no files.
func listFiles(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

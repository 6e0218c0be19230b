// Package seo builds the per-page head metadata: the canonical URL and the
// JSON-LD structured data block.
package seo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Script ids of the JSON-LD blocks
const (
	DefaultScriptID  = "structured-data"
	OrganizationID   = "organization-schema"
	ArticleID        = "article-schema"
	ProductCatalogID = "product-catalog-schema"
	ContactPageID    = "contact-page-schema"
)

// Schema is a schema.org object
type Schema = map[string]interface{}

// CanonicalURL joins base and a route path into an absolute URL. Query and
// fragment are dropped, and so is a trailing slash except on the home page.
func CanonicalURL(baseURL, route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	route = "/" + strings.Trim(route, "/")
	return strings.TrimRight(baseURL, "/") + route
}

// Script is a rendered <script type="application/ld+json"> block
type Script struct {
	ID   string
	JSON string
}

// NewScript encodes schema for embedding in a page. The encoder escapes
// <, > and & so the payload cannot close the script element.
func NewScript(id string, schema Schema) (*Script, error) {
	if id == "" {
		id = DefaultScriptID
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", id, err)
	}
	return &Script{ID: id, JSON: string(data)}, nil
}

// Head is the metadata rendered once into every page's <head>
type Head struct {
	Title       string
	Description string
	Canonical   string
	Script      *Script // nil when the page carries no structured data
}

// NewHead builds head metadata for route. Title gets the site name appended
// unless it already is the site name.
func NewHead(siteName, baseURL, route, title, description string) Head {
	full := siteName
	if title != "" && title != siteName {
		full = title + " | " + siteName
	}
	return Head{
		Title:       full,
		Description: description,
		Canonical:   CanonicalURL(baseURL, route),
	}
}
